package chi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/oapi-codegen/runtime"
	"github.com/shopspring/decimal"

	"github.com/kailas-cloud/storefront/internal/domain/catalog/filter"
	"github.com/kailas-cloud/storefront/internal/domain/catalog/query"
	"github.com/kailas-cloud/storefront/internal/domain/catalog/sortkey"
)

// listParams are the raw catalog query parameters.
type listParams struct {
	Q          string
	Categories []string
	Brands     []string
	Location   []string
	Features   []string
	Rating     []string
	PriceMin   string
	PriceMax   string
	Sort       string
	Page       int
	PerPage    int
	Locale     string
}

// bindListParams reads form-style parameters. Multi-value facets accept both
// repeated keys (categories=a&categories=b) and comma lists (categories=a,b).
func bindListParams(r *http.Request) (listParams, error) {
	var p listParams
	qv := r.URL.Query()

	binds := []struct {
		name string
		dest any
	}{
		{"q", &p.Q},
		{"categories", &p.Categories},
		{"brands", &p.Brands},
		{"location", &p.Location},
		{"features", &p.Features},
		{"rating", &p.Rating},
		{"price_min", &p.PriceMin},
		{"price_max", &p.PriceMax},
		{"sort", &p.Sort},
		{"page", &p.Page},
		{"per_page", &p.PerPage},
		{"locale", &p.Locale},
	}
	for _, b := range binds {
		if err := runtime.BindQueryParameter("form", true, false, b.name, qv, b.dest); err != nil {
			return listParams{}, fmt.Errorf("invalid parameter %s: %w", b.name, err)
		}
	}

	for _, vs := range []*[]string{&p.Categories, &p.Brands, &p.Location, &p.Features, &p.Rating} {
		*vs = splitCommas(*vs)
	}
	return p, nil
}

func splitCommas(values []string) []string {
	var out []string
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// filters builds the FilterSet. Unknown values are dropped; malformed price
// bounds are rejected.
func (p listParams) filters() (filter.Set, error) {
	fs := filter.Parse(map[string][]string{
		string(filter.Categories): p.Categories,
		string(filter.Brands):     p.Brands,
		string(filter.Location):   p.Location,
		string(filter.Features):   p.Features,
		string(filter.Rating):     p.Rating,
	})

	minPrice, err := parsePrice("price_min", p.PriceMin)
	if err != nil {
		return filter.Set{}, err
	}
	maxPrice, err := parsePrice("price_max", p.PriceMax)
	if err != nil {
		return filter.Set{}, err
	}
	return fs.WithPriceRange(minPrice, maxPrice), nil
}

func parsePrice(name, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%s must be non-negative", name)
	}
	f := d.InexactFloat64()
	return &f, nil
}

// query validates the parameters into a catalog query using the server's page defaults.
func (p listParams) query(defaultPerPage, maxPerPage int) (query.Query, error) {
	fs, err := p.filters()
	if err != nil {
		return query.Query{}, err
	}
	sort, err := sortkey.Parse(p.Sort)
	if err != nil {
		return query.Query{}, err
	}
	if p.Page < 0 || p.PerPage < 0 {
		return query.Query{}, fmt.Errorf("page and per_page must be positive")
	}
	perPage := p.PerPage
	if perPage == 0 {
		perPage = defaultPerPage
	}
	if maxPerPage > 0 && perPage > maxPerPage {
		perPage = maxPerPage
	}
	q, err := query.New(p.Q, fs, sort, p.Page, perPage)
	if err != nil {
		return query.Query{}, fmt.Errorf("build query: %w", err)
	}
	return q, nil
}
