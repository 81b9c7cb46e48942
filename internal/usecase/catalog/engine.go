package catalog

import (
	"github.com/kailas-cloud/storefront/internal/domain/catalog/filter"
	"github.com/kailas-cloud/storefront/internal/domain/catalog/result"
	"github.com/kailas-cloud/storefront/internal/domain/catalog/sortkey"
	"github.com/kailas-cloud/storefront/internal/domain/product"
)

// Evaluate filters products by term and facets, then orders them by sort.
//
// The term is a case-insensitive substring match on name, category and brand.
// Facets combine with AND; within the rating facet thresholds combine with OR,
// within the features facet every feature is required. Sorting is stable and
// relevance keeps input order. Evaluate never fails and never mutates products.
func Evaluate(
	products []*product.Product, term string, filters filter.Set, sort sortkey.Key,
) result.Result {
	m := newMatcher(term, filters)

	matched := make([]*product.Product, 0, len(products))
	for _, p := range products {
		if m.matches(p) {
			matched = append(matched, p)
		}
	}

	sortProducts(matched, sort)
	return result.New(matched)
}
