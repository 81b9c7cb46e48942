package storefront

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/storefront/internal/domain/catalog/query"
)

// QueryBuilder is a fluent builder for catalog queries.
type QueryBuilder struct {
	c       *Catalog
	term    string
	filters FilterSet
	sort    SortKey
	page    int
	perPage int
}

// Term sets the free-text search term.
func (b *QueryBuilder) Term(term string) *QueryBuilder {
	b.term = term
	return b
}

// Filter selects values on a multi-select facet.
func (b *QueryBuilder) Filter(key FacetKey, values ...string) *QueryBuilder {
	for _, v := range values {
		b.filters = b.filters.Add(key, v)
	}
	return b
}

// Filters replaces the whole facet selection.
func (b *QueryBuilder) Filters(fs FilterSet) *QueryBuilder {
	b.filters = fs
	return b
}

// Price bounds the price range. A nil bound is open.
func (b *QueryBuilder) Price(minPrice, maxPrice *float64) *QueryBuilder {
	b.filters = b.filters.WithPriceRange(minPrice, maxPrice)
	return b
}

// Sort sets the ordering.
func (b *QueryBuilder) Sort(k SortKey) *QueryBuilder {
	b.sort = k
	return b
}

// Page sets the 1-based page and its size. Zero values use the defaults.
func (b *QueryBuilder) Page(page, perPage int) *QueryBuilder {
	b.page = page
	b.perPage = perPage
	return b
}

// All evaluates the query and returns the whole ordered result.
func (b *QueryBuilder) All(ctx context.Context) (_ Result, err error) {
	start := time.Now()
	defer func() { b.c.obs.observe("query.all", start, err) }()

	q, err := b.build()
	if err != nil {
		return Result{}, err
	}
	res, err := b.c.svc.Evaluate(ctx, &q)
	if err != nil {
		return Result{}, fmt.Errorf("storefront: evaluate: %w", err)
	}
	return res, nil
}

// Do evaluates the query and returns the requested page.
func (b *QueryBuilder) Do(ctx context.Context) (_ Page, err error) {
	start := time.Now()
	defer func() { b.c.obs.observe("query.page", start, err) }()

	q, err := b.build()
	if err != nil {
		return Page{}, err
	}
	page, err := b.c.svc.Search(ctx, &q)
	if err != nil {
		return Page{}, fmt.Errorf("storefront: search: %w", err)
	}
	return page, nil
}

func (b *QueryBuilder) build() (query.Query, error) {
	q, err := query.New(b.term, b.filters, b.sort, b.page, b.perPage)
	if err != nil {
		return query.Query{}, fmt.Errorf("storefront: %w", err)
	}
	return q, nil
}
