// Package storefront is the embeddable catalog query library: evaluate a
// product snapshot against a search term, facet filters and a sort order.
package storefront

import (
	"github.com/kailas-cloud/storefront/internal/domain/catalog/filter"
	"github.com/kailas-cloud/storefront/internal/domain/catalog/result"
	"github.com/kailas-cloud/storefront/internal/domain/catalog/sortkey"
	"github.com/kailas-cloud/storefront/internal/domain/product"
	catalogAPI "github.com/kailas-cloud/storefront/internal/usecase/catalog"
)

// Product is an immutable catalog item.
type Product = product.Product

// ProductAttrs carries raw attributes into NewProduct.
type ProductAttrs = product.Attrs

// Category, Location and Feature are the product vocabularies.
type (
	Category = product.Category
	Location = product.Location
	Feature  = product.Feature
)

// FilterSet is an immutable facet selection. Mutators return a new set.
type FilterSet = filter.Set

// FacetKey names a facet.
type FacetKey = filter.Key

// Facet keys.
const (
	Categories = filter.Categories
	Brands     = filter.Brands
	PriceRange = filter.PriceRange
	Rating     = filter.Rating
	Locations  = filter.Location
	Features   = filter.Features
)

// SortKey is the result ordering.
type SortKey = sortkey.Key

// Sort keys.
const (
	SortRelevance  = sortkey.Relevance
	SortPriceAsc   = sortkey.PriceAsc
	SortPriceDesc  = sortkey.PriceDesc
	SortRatingDesc = sortkey.RatingDesc
	SortNewest     = sortkey.Newest
	SortPopularity = sortkey.PopularityDesc
)

// Result is the ordered outcome of Evaluate.
type Result = result.Result

// Page is a window over a Result.
type Page = result.Page

// FacetCounts maps each facet to its option counts.
type FacetCounts = catalogAPI.FacetCounts

// NewProduct validates attrs and creates a Product.
func NewProduct(attrs ProductAttrs) (*Product, error) {
	return product.New(attrs)
}

// ParseFilters builds a FilterSet from raw facet values, dropping unknown
// keys and out-of-domain values. Price bounds use "min:<n>" and "max:<n>"
// under the priceRange key.
func ParseFilters(raw map[string][]string) FilterSet {
	return filter.Parse(raw)
}

// ParseSort resolves a sort key or storefront alias (price-low, price-high,
// rating, popular). Empty means relevance.
func ParseSort(s string) (SortKey, error) {
	return sortkey.Parse(s)
}

// Evaluate filters products by term and facets and orders the matches.
// It is a pure function: safe for concurrent use, never mutates products.
func Evaluate(products []*Product, term string, filters FilterSet, sort SortKey) Result {
	return catalogAPI.Evaluate(products, term, filters, sort)
}

// CountFacets returns, for every facet option, the number of products that
// would match with that option as the facet's only selection.
func CountFacets(products []*Product, term string, filters FilterSet) FacetCounts {
	return catalogAPI.CountFacets(products, term, filters)
}
