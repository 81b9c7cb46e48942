package catalog

import (
	"slices"
	"strings"

	"github.com/kailas-cloud/storefront/internal/domain/catalog/filter"
	"github.com/kailas-cloud/storefront/internal/domain/product"
)

// facetPredicate reports whether a product satisfies one active facet.
type facetPredicate struct {
	key   filter.Key
	match func(p *product.Product) bool
}

// matcher holds the compiled term and facet predicates of one evaluation.
type matcher struct {
	termLower string
	facets    []facetPredicate
}

func newMatcher(term string, filters filter.Set) *matcher {
	return &matcher{
		termLower: strings.ToLower(term),
		facets:    compileFacets(filters),
	}
}

func (m *matcher) matches(p *product.Product) bool {
	return m.matchesExcept(p, "")
}

// matchesExcept evaluates the term and every facet but skip.
func (m *matcher) matchesExcept(p *product.Product, skip filter.Key) bool {
	if !m.matchesTerm(p) {
		return false
	}
	for _, f := range m.facets {
		if f.key == skip {
			continue
		}
		if !f.match(p) {
			return false
		}
	}
	return true
}

func (m *matcher) matchesTerm(p *product.Product) bool {
	if m.termLower == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name()), m.termLower) ||
		strings.Contains(strings.ToLower(string(p.Category())), m.termLower) ||
		strings.Contains(strings.ToLower(p.Brand()), m.termLower)
}

// compileFacets turns the active facets into predicates, skipping absent ones.
func compileFacets(filters filter.Set) []facetPredicate {
	var preds []facetPredicate

	if cats := filters.Categories(); len(cats) > 0 {
		preds = append(preds, facetPredicate{filter.Categories, func(p *product.Product) bool {
			return slices.Contains(cats, p.Category())
		}})
	}
	if r := filters.Price(); r != nil {
		rng := *r
		preds = append(preds, facetPredicate{filter.PriceRange, func(p *product.Product) bool {
			return rng.Contains(p.Price())
		}})
	}
	if brands := filters.Brands(); len(brands) > 0 {
		preds = append(preds, facetPredicate{filter.Brands, func(p *product.Product) bool {
			return slices.Contains(brands, p.Brand())
		}})
	}
	if ratings := filters.Ratings(); len(ratings) > 0 {
		preds = append(preds, facetPredicate{filter.Rating, func(p *product.Product) bool {
			return slices.ContainsFunc(ratings, func(threshold float64) bool { return p.Rating() >= threshold })
		}})
	}
	if locs := filters.Locations(); len(locs) > 0 {
		preds = append(preds, facetPredicate{filter.Location, func(p *product.Product) bool {
			return slices.Contains(locs, p.Location())
		}})
	}
	if feats := filters.Features(); len(feats) > 0 {
		preds = append(preds, facetPredicate{filter.Features, func(p *product.Product) bool {
			for _, f := range feats {
				if !p.HasFeature(f) {
					return false
				}
			}
			return true
		}})
	}

	return preds
}
