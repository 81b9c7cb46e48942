package filter

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/kailas-cloud/storefront/internal/domain/product"
)

// MaxValuesPerFacet is the maximum number of selections kept per facet.
const MaxValuesPerFacet = 32

// Key names a facet.
type Key string

// Facet keys.
const (
	Categories Key = "categories"
	Brands     Key = "brands"
	PriceRange Key = "priceRange"
	Rating     Key = "rating"
	Location   Key = "location"
	Features   Key = "features"
)

// Keys lists every facet in sidebar order.
var Keys = []Key{Categories, PriceRange, Brands, Rating, Location, Features}

// IsValid checks if the key names a known facet.
func (k Key) IsValid() bool {
	return slices.Contains(Keys, k)
}

// Set is the active facet selection. Absent facets impose no constraint and
// a facet is absent exactly when it has no selection. Mutators return a new
// Set and never modify the receiver.
type Set struct {
	categories []product.Category
	brands     []string
	locations  []product.Location
	features   []product.Feature
	ratings    []float64
	price      *Range
}

// Parse builds a Set from raw facet values. Unknown keys and values outside a
// facet's domain are dropped. Price bounds are read from PriceRange values
// "min:<n>" and "max:<n>".
func Parse(raw map[string][]string) Set {
	var s Set
	for _, k := range Keys {
		for _, v := range raw[string(k)] {
			if k == PriceRange {
				s = s.withPriceBound(v)
				continue
			}
			s = s.Add(k, v)
		}
	}
	return s
}

// Add returns a Set with value selected on facet k.
// Out-of-domain values, duplicates and PriceRange are ignored (use WithPriceRange).
func (s Set) Add(k Key, value string) Set {
	value = strings.TrimSpace(value)
	if value == "" {
		return s
	}
	out := s.clone()
	switch k {
	case Categories:
		c := product.Category(strings.ToLower(value))
		if c.IsValid() && !slices.Contains(out.categories, c) && len(out.categories) < MaxValuesPerFacet {
			out.categories = append(out.categories, c)
		}
	case Brands:
		b := strings.ToLower(value)
		if !slices.Contains(out.brands, b) && len(out.brands) < MaxValuesPerFacet {
			out.brands = append(out.brands, b)
		}
	case Location:
		l := product.Location(strings.ToLower(value))
		if l.IsValid() && !slices.Contains(out.locations, l) && len(out.locations) < MaxValuesPerFacet {
			out.locations = append(out.locations, l)
		}
	case Features:
		f := product.Feature(value)
		if f.IsValid() && !slices.Contains(out.features, f) && len(out.features) < MaxValuesPerFacet {
			out.features = append(out.features, f)
		}
	case Rating:
		r, ok := parseRating(value)
		if ok && !slices.Contains(out.ratings, r) && len(out.ratings) < MaxValuesPerFacet {
			out.ratings = append(out.ratings, r)
		}
	}
	return out
}

// Remove returns a Set with value deselected on facet k. Removing the last
// value drops the facet. For PriceRange the value is ignored and the range cleared.
func (s Set) Remove(k Key, value string) Set {
	out := s.clone()
	value = strings.TrimSpace(value)
	switch k {
	case Categories:
		out.categories = without(out.categories, product.Category(strings.ToLower(value)))
	case Brands:
		out.brands = without(out.brands, strings.ToLower(value))
	case Location:
		out.locations = without(out.locations, product.Location(strings.ToLower(value)))
	case Features:
		out.features = without(out.features, product.Feature(value))
	case Rating:
		if r, ok := parseRating(value); ok {
			out.ratings = without(out.ratings, r)
		}
	case PriceRange:
		out.price = nil
	}
	return out
}

// WithPriceRange returns a Set with the given price bounds. Both nil clears the facet.
func (s Set) WithPriceRange(minPrice, maxPrice *float64) Set {
	out := s.clone()
	r, ok := NewRange(minPrice, maxPrice)
	if !ok {
		out.price = nil
		return out
	}
	out.price = &r
	return out
}

// Clear returns a Set without facet k.
func (s Set) Clear(k Key) Set {
	out := s.clone()
	switch k {
	case Categories:
		out.categories = nil
	case Brands:
		out.brands = nil
	case Location:
		out.locations = nil
	case Features:
		out.features = nil
	case Rating:
		out.ratings = nil
	case PriceRange:
		out.price = nil
	}
	return out
}

// Has reports whether facet k is active.
func (s Set) Has(k Key) bool {
	switch k {
	case Categories:
		return len(s.categories) > 0
	case Brands:
		return len(s.brands) > 0
	case Location:
		return len(s.locations) > 0
	case Features:
		return len(s.features) > 0
	case Rating:
		return len(s.ratings) > 0
	case PriceRange:
		return s.price != nil
	}
	return false
}

// Active returns the active facet keys in sidebar order.
func (s Set) Active() []Key {
	var keys []Key
	for _, k := range Keys {
		if s.Has(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// IsEmpty reports whether no facet is active.
func (s Set) IsEmpty() bool { return len(s.Active()) == 0 }

// Values returns the selections of a multi-select facet as strings.
// PriceRange has no discrete values and returns nil.
func (s Set) Values(k Key) []string {
	var out []string
	switch k {
	case Categories:
		for _, c := range s.categories {
			out = append(out, string(c))
		}
	case Brands:
		out = append(out, s.brands...)
	case Location:
		for _, l := range s.locations {
			out = append(out, string(l))
		}
	case Features:
		for _, f := range s.features {
			out = append(out, string(f))
		}
	case Rating:
		for _, r := range s.ratings {
			out = append(out, strconv.FormatFloat(r, 'f', -1, 64))
		}
	}
	return out
}

// Categories returns the selected categories.
func (s Set) Categories() []product.Category { return s.categories }

// Brands returns the selected brand slugs.
func (s Set) Brands() []string { return s.brands }

// Locations returns the selected seller locations.
func (s Set) Locations() []product.Location { return s.locations }

// Features returns the required features.
func (s Set) Features() []product.Feature { return s.features }

// Ratings returns the selected rating thresholds.
func (s Set) Ratings() []float64 { return s.ratings }

// Price returns the price range, or nil.
func (s Set) Price() *Range { return s.price }

func (s Set) withPriceBound(v string) Set {
	bound, num, ok := strings.Cut(v, ":")
	if !ok {
		return s
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return s
	}
	var minPrice, maxPrice *float64
	if s.price != nil {
		minPrice, maxPrice = s.price.Min(), s.price.Max()
	}
	switch bound {
	case "min":
		minPrice = &f
	case "max":
		maxPrice = &f
	default:
		return s
	}
	return s.WithPriceRange(minPrice, maxPrice)
}

func (s Set) clone() Set {
	out := Set{
		categories: slices.Clone(s.categories),
		brands:     slices.Clone(s.brands),
		locations:  slices.Clone(s.locations),
		features:   slices.Clone(s.features),
		ratings:    slices.Clone(s.ratings),
	}
	if s.price != nil {
		r := *s.price
		out.price = &r
	}
	return out
}

func parseRating(v string) (float64, bool) {
	r, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(r) || r < 0 || r > product.MaxRating {
		return 0, false
	}
	return r, true
}

// without removes v and returns nil once the slice is empty.
func without[T comparable](in []T, v T) []T {
	out := slices.DeleteFunc(in, func(x T) bool { return x == v })
	if len(out) == 0 {
		return nil
	}
	return out
}
