package catalog

import (
	"slices"
	"strconv"

	"github.com/kailas-cloud/storefront/internal/domain/catalog/filter"
	"github.com/kailas-cloud/storefront/internal/domain/product"
)

// FacetValue is one selectable sidebar option with its match count.
type FacetValue struct {
	Value    string
	Count    int
	Selected bool
}

// FacetCounts maps each facet to its options in sidebar order.
type FacetCounts map[filter.Key][]FacetValue

// CountFacets computes, for every option of every facet, how many products
// would match if that option were the facet's only selection, keeping the
// term and all other active facets.
func CountFacets(products []*product.Product, term string, filters filter.Set) FacetCounts {
	m := newMatcher(term, filters)
	counts := make(FacetCounts, len(filter.Keys))

	for _, key := range filter.Keys {
		pool := make([]*product.Product, 0, len(products))
		for _, p := range products {
			if m.matchesExcept(p, key) {
				pool = append(pool, p)
			}
		}
		counts[key] = countOptions(key, pool, products, filters)
	}
	return counts
}

func countOptions(key filter.Key, pool, all []*product.Product, filters filter.Set) []FacetValue {
	if key == filter.PriceRange {
		return countQuickRanges(pool, filters)
	}

	selected := filters.Values(key)
	options := facetOptions(key, all)
	out := make([]FacetValue, 0, len(options))
	for _, opt := range options {
		only := filter.Set{}.Add(key, opt)
		preds := compileFacets(only)
		n := 0
		for _, p := range pool {
			if len(preds) == 1 && preds[0].match(p) {
				n++
			}
		}
		out = append(out, FacetValue{Value: opt, Count: n, Selected: slices.Contains(selected, opt)})
	}
	return out
}

// facetOptions returns the vocabulary of a facet. Brands also include any
// brand present in the catalog but missing from the sidebar list.
func facetOptions(key filter.Key, all []*product.Product) []string {
	var opts []string
	switch key {
	case filter.Categories:
		for _, c := range product.Categories {
			opts = append(opts, string(c))
		}
	case filter.Brands:
		opts = append(opts, product.Brands...)
		for _, p := range all {
			if p.Brand() != "" && !slices.Contains(opts, p.Brand()) {
				opts = append(opts, p.Brand())
			}
		}
	case filter.Location:
		for _, l := range product.Locations {
			opts = append(opts, string(l))
		}
	case filter.Features:
		for _, f := range product.Features {
			opts = append(opts, string(f))
		}
	case filter.Rating:
		for _, r := range product.RatingThresholds {
			opts = append(opts, ratingValue(r))
		}
	}
	return opts
}

func countQuickRanges(pool []*product.Product, filters filter.Set) []FacetValue {
	out := make([]FacetValue, 0, len(filter.QuickRanges))
	current := filters.Price()
	for _, qr := range filter.QuickRanges {
		rng, _ := filter.NewRange(qr.Min, qr.Max)
		n := 0
		for _, p := range pool {
			if rng.Contains(p.Price()) {
				n++
			}
		}
		out = append(out, FacetValue{
			Value:    QuickRangeValue(qr),
			Count:    n,
			Selected: current != nil && sameBound(current.Min(), qr.Min) && sameBound(current.Max(), qr.Max),
		})
	}
	return out
}

// QuickRangeValue renders a preset as "min-max" with open sides left empty.
func QuickRangeValue(qr filter.QuickRange) string {
	s := ""
	if qr.Min != nil {
		s = strconv.FormatFloat(*qr.Min, 'f', -1, 64)
	}
	s += "-"
	if qr.Max != nil {
		s += strconv.FormatFloat(*qr.Max, 'f', -1, 64)
	}
	return s
}

func sameBound(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
