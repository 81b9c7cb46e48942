package product

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// LowStockThreshold is the stock level below which a product is reported as low on stock.
const LowStockThreshold = 10

// StockStatus is the availability label shown on product cards and the inventory table.
type StockStatus string

// Stock statuses.
const (
	OutOfStock StockStatus = "out_of_stock"
	LowStock   StockStatus = "low_stock"
	InStock    StockStatus = "in_stock"
)

// Attrs carries raw product attributes into New.
type Attrs struct {
	ID            string
	Name          string
	Category      Category
	Brand         string
	Seller        string
	Location      Location
	Price         float64
	OriginalPrice *float64
	Currency      string
	Rating        float64
	ReviewCount   int
	Stock         int
	FreeShipping  bool
	Features      []Feature
	Recency       int64
	Image         string
	Specs         map[string]string
}

// Product is a catalog item (immutable value object).
type Product struct {
	id            string
	name          string
	category      Category
	brand         string
	seller        string
	location      Location
	price         float64
	originalPrice *float64
	currency      string
	rating        float64
	reviewCount   int
	stock         int
	freeShipping  bool
	features      []Feature
	recency       int64
	image         string
	specs         map[string]string
}

// New validates and creates a Product.
// ID: ^[a-zA-Z0-9_-]+$, 1-64 chars. Price >= 0, original price >= price,
// rating within [0, 5], review count and stock >= 0, feature tags from the
// non-derived vocabulary.
func New(a Attrs) (*Product, error) {
	if a.ID == "" {
		return nil, fmt.Errorf("product ID is required")
	}
	if len(a.ID) > 64 {
		return nil, fmt.Errorf("product ID too long (max 64)")
	}
	if !idRegex.MatchString(a.ID) {
		return nil, fmt.Errorf("product ID must be alphanumeric with underscores and hyphens")
	}
	if strings.TrimSpace(a.Name) == "" {
		return nil, fmt.Errorf("product %s: name is required", a.ID)
	}
	if !a.Category.IsValid() {
		return nil, fmt.Errorf("product %s: invalid category %q", a.ID, a.Category)
	}
	if a.Location != "" && !a.Location.IsValid() {
		return nil, fmt.Errorf("product %s: invalid location %q", a.ID, a.Location)
	}
	if !isFinite(a.Price) || a.Price < 0 {
		return nil, fmt.Errorf("product %s: price must be a non-negative number", a.ID)
	}
	if a.OriginalPrice != nil && (!isFinite(*a.OriginalPrice) || *a.OriginalPrice < a.Price) {
		return nil, fmt.Errorf("product %s: original price must be >= price", a.ID)
	}
	if !isFinite(a.Rating) || a.Rating < 0 || a.Rating > MaxRating {
		return nil, fmt.Errorf("product %s: rating must be between 0 and %.0f", a.ID, MaxRating)
	}
	if a.ReviewCount < 0 {
		return nil, fmt.Errorf("product %s: review count must be non-negative", a.ID)
	}
	if a.Stock < 0 {
		return nil, fmt.Errorf("product %s: stock must be non-negative", a.ID)
	}

	features := make([]Feature, 0, len(a.Features))
	seen := make(map[Feature]bool, len(a.Features))
	for _, f := range a.Features {
		if !f.IsValid() {
			return nil, fmt.Errorf("product %s: unknown feature %q", a.ID, f)
		}
		if f.IsDerived() {
			return nil, fmt.Errorf("product %s: feature %q is derived from product fields", a.ID, f)
		}
		if !seen[f] {
			seen[f] = true
			features = append(features, f)
		}
	}

	currency := a.Currency
	if currency == "" {
		currency = "USD"
	}

	var orig *float64
	if a.OriginalPrice != nil {
		v := *a.OriginalPrice
		orig = &v
	}

	return &Product{
		id:            a.ID,
		name:          a.Name,
		category:      a.Category,
		brand:         strings.ToLower(a.Brand),
		seller:        a.Seller,
		location:      a.Location,
		price:         a.Price,
		originalPrice: orig,
		currency:      currency,
		rating:        a.Rating,
		reviewCount:   a.ReviewCount,
		stock:         a.Stock,
		freeShipping:  a.FreeShipping,
		features:      features,
		recency:       a.Recency,
		image:         a.Image,
		specs:         cloneSpecs(a.Specs),
	}, nil
}

// ID returns the product identifier.
func (p *Product) ID() string { return p.id }

// Name returns the display name.
func (p *Product) Name() string { return p.name }

// Category returns the product category.
func (p *Product) Category() Category { return p.category }

// Brand returns the lowercase brand slug.
func (p *Product) Brand() string { return p.brand }

// Seller returns the seller display name.
func (p *Product) Seller() string { return p.seller }

// Location returns the seller origin (empty if unknown).
func (p *Product) Location() Location { return p.location }

// Price returns the current price.
func (p *Product) Price() float64 { return p.price }

// OriginalPrice returns the pre-discount price, or nil.
func (p *Product) OriginalPrice() *float64 { return p.originalPrice }

// Currency returns the ISO currency code.
func (p *Product) Currency() string { return p.currency }

// Rating returns the average rating (0-5).
func (p *Product) Rating() float64 { return p.rating }

// ReviewCount returns the number of reviews.
func (p *Product) ReviewCount() int { return p.reviewCount }

// Stock returns the units available.
func (p *Product) Stock() int { return p.stock }

// FreeShipping reports whether shipping is free.
func (p *Product) FreeShipping() bool { return p.freeShipping }

// Features returns the feature tags carried by the product.
func (p *Product) Features() []Feature { return p.features }

// Recency returns the ordinal used for "newest" ordering (larger is newer).
func (p *Product) Recency() int64 { return p.recency }

// Image returns the primary image URL.
func (p *Product) Image() string { return p.image }

// Specs returns the specification table.
func (p *Product) Specs() map[string]string { return p.specs }

// HasFeature reports whether the product satisfies a feature requirement.
// freeShipping, onSale and inStock are computed from fields; other features are tags.
func (p *Product) HasFeature(f Feature) bool {
	switch f {
	case FeatureFreeShipping:
		return p.freeShipping
	case FeatureOnSale:
		return p.originalPrice != nil && *p.originalPrice > p.price
	case FeatureInStock:
		return p.stock > 0
	}
	for _, tag := range p.features {
		if tag == f {
			return true
		}
	}
	return false
}

// StockStatus classifies the current stock level.
func (p *Product) StockStatus() StockStatus {
	switch {
	case p.stock == 0:
		return OutOfStock
	case p.stock < LowStockThreshold:
		return LowStock
	default:
		return InStock
	}
}

// DiscountPercent returns the rounded discount relative to the original price, 0 if none.
func (p *Product) DiscountPercent() int {
	if p.originalPrice == nil || *p.originalPrice <= p.price || *p.originalPrice == 0 {
		return 0
	}
	orig := decimal.NewFromFloat(*p.originalPrice)
	off := orig.Sub(decimal.NewFromFloat(p.price))
	return int(off.Div(orig).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func cloneSpecs(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
