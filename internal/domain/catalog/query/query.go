package query

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/storefront/internal/domain/catalog/filter"
	"github.com/kailas-cloud/storefront/internal/domain/catalog/sortkey"
)

// Query parameter limits.
const (
	// MaxTermLength is the maximum allowed search term length in characters.
	MaxTermLength  = 256
	DefaultPerPage = 20
	MaxPerPage     = 100
	DefaultPage    = 1
)

// Query is a validated catalog query.
type Query struct {
	term    string
	filters filter.Set
	sort    sortkey.Key
	page    int
	perPage int
}

// New validates and normalizes query parameters.
// The term is trimmed; sort defaults to relevance; page defaults to 1 and
// per-page to 20, clamped to 100.
func New(term string, filters filter.Set, sort sortkey.Key, page, perPage int) (Query, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) > MaxTermLength {
		return Query{}, fmt.Errorf("search term too long (max %d chars)", MaxTermLength)
	}
	if sort == "" {
		sort = sortkey.Relevance
	}
	if !sort.IsValid() {
		return Query{}, fmt.Errorf("invalid sort key: %q", sort)
	}
	if page <= 0 {
		page = DefaultPage
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	return Query{
		term:    term,
		filters: filters,
		sort:    sort,
		page:    page,
		perPage: perPage,
	}, nil
}

// Term returns the trimmed free-text term (may be empty).
func (q *Query) Term() string { return q.term }

// Filters returns the active facet selection.
func (q *Query) Filters() filter.Set { return q.filters }

// Sort returns the ordering.
func (q *Query) Sort() sortkey.Key { return q.sort }

// Page returns the 1-based page number.
func (q *Query) Page() int { return q.page }

// PerPage returns the page size.
func (q *Query) PerPage() int { return q.perPage }

// Offset returns the index of the first item on the page.
func (q *Query) Offset() int { return (q.page - 1) * q.perPage }
