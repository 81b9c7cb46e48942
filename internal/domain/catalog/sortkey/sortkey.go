package sortkey

import "fmt"

// Key is the result ordering.
type Key string

// Sort key constants.
const (
	// Relevance keeps the filtered input order.
	Relevance      Key = "relevance"
	PriceAsc       Key = "price-asc"
	PriceDesc      Key = "price-desc"
	RatingDesc     Key = "rating-desc"
	Newest         Key = "newest"
	PopularityDesc Key = "popularity-desc"
)

// All lists the sort keys in the order offered to shoppers.
var All = []Key{Relevance, PriceAsc, PriceDesc, RatingDesc, Newest, PopularityDesc}

// aliases maps the storefront's URL values onto canonical keys.
var aliases = map[string]Key{
	"price-low":  PriceAsc,
	"price-high": PriceDesc,
	"rating":     RatingDesc,
	"popular":    PopularityDesc,
}

// IsValid checks if the key is one of the supported values.
func (k Key) IsValid() bool {
	switch k {
	case Relevance, PriceAsc, PriceDesc, RatingDesc, Newest, PopularityDesc:
		return true
	}
	return false
}

// Parse resolves a canonical key or storefront alias. Empty means Relevance.
func Parse(s string) (Key, error) {
	if s == "" {
		return Relevance, nil
	}
	if k := Key(s); k.IsValid() {
		return k, nil
	}
	if k, ok := aliases[s]; ok {
		return k, nil
	}
	return "", fmt.Errorf("invalid sort key: %q", s)
}
