package catalog

import (
	"cmp"
	"slices"

	"github.com/kailas-cloud/storefront/internal/domain/catalog/sortkey"
	"github.com/kailas-cloud/storefront/internal/domain/product"
)

// comparator returns the ordering for a sort key, or nil to keep input order.
func comparator(key sortkey.Key) func(a, b *product.Product) int {
	switch key {
	case sortkey.PriceAsc:
		return func(a, b *product.Product) int { return cmp.Compare(a.Price(), b.Price()) }
	case sortkey.PriceDesc:
		return func(a, b *product.Product) int { return cmp.Compare(b.Price(), a.Price()) }
	case sortkey.RatingDesc:
		return func(a, b *product.Product) int { return cmp.Compare(b.Rating(), a.Rating()) }
	case sortkey.Newest:
		return func(a, b *product.Product) int { return cmp.Compare(b.Recency(), a.Recency()) }
	case sortkey.PopularityDesc:
		return func(a, b *product.Product) int { return cmp.Compare(b.ReviewCount(), a.ReviewCount()) }
	default:
		// Relevance or unknown: keep input order.
		return nil
	}
}

// sortProducts orders products in place; ties keep their relative order.
func sortProducts(products []*product.Product, key sortkey.Key) {
	if c := comparator(key); c != nil {
		slices.SortStableFunc(products, c)
	}
}
