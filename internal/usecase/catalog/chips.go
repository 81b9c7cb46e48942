package catalog

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kailas-cloud/storefront/internal/domain/catalog/filter"
	"github.com/kailas-cloud/storefront/internal/domain/product"
)

// Chip is one removable active-filter badge.
type Chip struct {
	Key   filter.Key
	Value string
	Label string
}

// Chips lists the active selections of filters in sidebar order with labels
// in locale. The price range yields a single chip.
func Chips(tr Translator, locale string, filters filter.Set) []Chip {
	var chips []Chip
	for _, key := range filters.Active() {
		if key == filter.PriceRange {
			rng := filters.Price()
			chips = append(chips, Chip{
				Key:   key,
				Value: QuickRangeValue(filter.QuickRange{Min: rng.Min(), Max: rng.Max()}),
				Label: priceLabel(tr, locale, *rng),
			})
			continue
		}
		for _, v := range filters.Values(key) {
			chips = append(chips, Chip{Key: key, Value: v, Label: Label(tr, locale, key, v)})
		}
	}
	return chips
}

// Label returns the display label of a facet option. PriceRange values use
// the "min-max" form produced by QuickRangeValue.
func Label(tr Translator, locale string, key filter.Key, value string) string {
	switch key {
	case filter.PriceRange:
		if rng, ok := parseQuickRange(value); ok {
			return priceLabel(tr, locale, rng)
		}
	case filter.Categories:
		return tr.T(locale, "category."+value)
	case filter.Location:
		return tr.T(locale, "location."+value)
	case filter.Features:
		return tr.T(locale, "feature."+value)
	case filter.Brands:
		return product.BrandName(value)
	case filter.Rating:
		return tr.T(locale, "rating.chip", value)
	}
	return value
}

func priceLabel(tr Translator, locale string, rng filter.Range) string {
	lo, hi := rng.Min(), rng.Max()
	switch {
	case lo != nil && hi != nil:
		return tr.T(locale, "price.between", FormatMoney(*lo), FormatMoney(*hi))
	case lo != nil:
		return tr.T(locale, "price.over", FormatMoney(*lo))
	case hi != nil:
		return tr.T(locale, "price.under", FormatMoney(*hi))
	}
	return tr.T(locale, "price.any")
}

// FormatMoney renders whole amounts without decimals and the rest with two.
func FormatMoney(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.IsInteger() {
		return d.String()
	}
	return d.StringFixed(2)
}

func parseQuickRange(v string) (filter.Range, bool) {
	lo, hi, ok := strings.Cut(v, "-")
	if !ok {
		return filter.Range{}, false
	}
	bound := func(s string) (*float64, bool) {
		if s == "" {
			return nil, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		return &f, true
	}
	minPrice, okMin := bound(lo)
	maxPrice, okMax := bound(hi)
	if !okMin || !okMax {
		return filter.Range{}, false
	}
	return filter.NewRange(minPrice, maxPrice)
}

// ratingValue renders a threshold the way the rating facet stores it.
func ratingValue(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
