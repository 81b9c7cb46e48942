package chi

import (
	"time"

	"github.com/kailas-cloud/storefront/internal/domain/product"
	catalog "github.com/kailas-cloud/storefront/internal/usecase/catalog"
)

// ErrorCode is a machine-readable error category.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeInvalidQuery     ErrorCode = "invalid_query"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeProductNotFound  ErrorCode = "product_not_found"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeCatalogNotLoaded ErrorCode = "catalog_not_loaded"
	ErrorCodeSourceError      ErrorCode = "source_unavailable"
	ErrorCodeInvalidProduct   ErrorCode = "invalid_product"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ProductItem is a product card.
type ProductItem struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	CategoryLabel   string   `json:"category_label"`
	Brand           string   `json:"brand"`
	BrandLabel      string   `json:"brand_label"`
	Seller          string   `json:"seller,omitempty"`
	Location        string   `json:"location,omitempty"`
	Price           float64  `json:"price"`
	OriginalPrice   *float64 `json:"original_price,omitempty"`
	DiscountPercent int      `json:"discount_percent,omitempty"`
	Currency        string   `json:"currency"`
	Rating          float64  `json:"rating"`
	ReviewCount     int      `json:"review_count"`
	Stock           int      `json:"stock"`
	StockStatus     string   `json:"stock_status"`
	StockLabel      string   `json:"stock_label"`
	FreeShipping    bool     `json:"free_shipping"`
	Features        []string `json:"features"`
	Image           string   `json:"image,omitempty"`
}

// ProductDetail is a product page.
type ProductDetail struct {
	ProductItem
	Specs   map[string]string `json:"specs,omitempty"`
	Related []ProductItem     `json:"related"`
}

// ChipItem is an active-filter chip.
type ChipItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Label string `json:"label"`
}

// ProductListResponse is the body of GET /products.
type ProductListResponse struct {
	Items     []ProductItem `json:"items"`
	Total     int           `json:"total"`
	Page      int           `json:"page"`
	PerPage   int           `json:"per_page"`
	HasMore   bool          `json:"has_more"`
	Sort      string        `json:"sort"`
	SortLabel string        `json:"sort_label"`
	Chips     []ChipItem    `json:"chips"`
	Locale    string        `json:"locale"`
	Dir       string        `json:"dir"`
}

// FacetOption is one sidebar option.
type FacetOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

// FacetGroup is one sidebar section.
type FacetGroup struct {
	Key     string        `json:"key"`
	Options []FacetOption `json:"options"`
}

// FacetsResponse is the body of GET /facets.
type FacetsResponse struct {
	Facets []FacetGroup `json:"facets"`
	Locale string       `json:"locale"`
}

// ReloadResponse is the body of POST /admin/reload.
type ReloadResponse struct {
	Products int       `json:"products"`
	Version  string    `json:"version"`
	LoadedAt time.Time `json:"loaded_at"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (s *Server) productToItem(p *product.Product, locale string) ProductItem {
	features := make([]string, 0, len(product.Features))
	for _, f := range product.Features {
		if p.HasFeature(f) {
			features = append(features, string(f))
		}
	}
	return ProductItem{
		ID:              p.ID(),
		Name:            p.Name(),
		Category:        string(p.Category()),
		CategoryLabel:   s.tr.T(locale, "category."+string(p.Category())),
		Brand:           p.Brand(),
		BrandLabel:      product.BrandName(p.Brand()),
		Seller:          p.Seller(),
		Location:        string(p.Location()),
		Price:           p.Price(),
		OriginalPrice:   p.OriginalPrice(),
		DiscountPercent: p.DiscountPercent(),
		Currency:        p.Currency(),
		Rating:          p.Rating(),
		ReviewCount:     p.ReviewCount(),
		Stock:           p.Stock(),
		StockStatus:     string(p.StockStatus()),
		StockLabel:      s.tr.T(locale, "stock."+string(p.StockStatus())),
		FreeShipping:    p.FreeShipping(),
		Features:        features,
		Image:           p.Image(),
	}
}

func (s *Server) productsToItems(ps []*product.Product, locale string) []ProductItem {
	items := make([]ProductItem, len(ps))
	for i, p := range ps {
		items[i] = s.productToItem(p, locale)
	}
	return items
}

func chipsToItems(chips []catalog.Chip) []ChipItem {
	items := make([]ChipItem, len(chips))
	for i, c := range chips {
		items[i] = ChipItem{Key: string(c.Key), Value: c.Value, Label: c.Label}
	}
	return items
}
