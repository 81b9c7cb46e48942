// Package product implements the catalog product sources: the embedded demo
// catalog, YAML files, Valkey/Redis snapshots, Postgres tables and SQLite files.
package product

import (
	"fmt"

	"github.com/kailas-cloud/storefront/internal/domain"
	domprod "github.com/kailas-cloud/storefront/internal/domain/product"
)

// record is the serialized form of a product shared by every source.
type record struct {
	ID            string            `json:"id" yaml:"id"`
	Name          string            `json:"name" yaml:"name"`
	Category      string            `json:"category" yaml:"category"`
	Brand         string            `json:"brand" yaml:"brand"`
	Seller        string            `json:"seller,omitempty" yaml:"seller"`
	Location      string            `json:"location,omitempty" yaml:"location"`
	Price         float64           `json:"price" yaml:"price"`
	OriginalPrice *float64          `json:"original_price,omitempty" yaml:"original_price"`
	Currency      string            `json:"currency,omitempty" yaml:"currency"`
	Rating        float64           `json:"rating" yaml:"rating"`
	ReviewCount   int               `json:"review_count" yaml:"review_count"`
	Stock         int               `json:"stock" yaml:"stock"`
	FreeShipping  bool              `json:"free_shipping" yaml:"free_shipping"`
	Features      []string          `json:"features,omitempty" yaml:"features"`
	Recency       int64             `json:"recency" yaml:"recency"`
	Image         string            `json:"image,omitempty" yaml:"image"`
	Specs         map[string]string `json:"specs,omitempty" yaml:"specs"`
}

func (r *record) toProduct() (*domprod.Product, error) {
	features := make([]domprod.Feature, len(r.Features))
	for i, f := range r.Features {
		features[i] = domprod.Feature(f)
	}
	p, err := domprod.New(domprod.Attrs{
		ID:            r.ID,
		Name:          r.Name,
		Category:      domprod.Category(r.Category),
		Brand:         r.Brand,
		Seller:        r.Seller,
		Location:      domprod.Location(r.Location),
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		Currency:      r.Currency,
		Rating:        r.Rating,
		ReviewCount:   r.ReviewCount,
		Stock:         r.Stock,
		FreeShipping:  r.FreeShipping,
		Features:      features,
		Recency:       r.Recency,
		Image:         r.Image,
		Specs:         r.Specs,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidProduct, err)
	}
	return p, nil
}

func recordFromProduct(p *domprod.Product) record {
	features := make([]string, len(p.Features()))
	for i, f := range p.Features() {
		features[i] = string(f)
	}
	return record{
		ID:            p.ID(),
		Name:          p.Name(),
		Category:      string(p.Category()),
		Brand:         p.Brand(),
		Seller:        p.Seller(),
		Location:      string(p.Location()),
		Price:         p.Price(),
		OriginalPrice: p.OriginalPrice(),
		Currency:      p.Currency(),
		Rating:        p.Rating(),
		ReviewCount:   p.ReviewCount(),
		Stock:         p.Stock(),
		FreeShipping:  p.FreeShipping(),
		Features:      features,
		Recency:       p.Recency(),
		Image:         p.Image(),
		Specs:         p.Specs(),
	}
}

// toProducts converts records in order, failing on the first invalid one.
func toProducts(records []record) ([]*domprod.Product, error) {
	out := make([]*domprod.Product, 0, len(records))
	for i := range records {
		p, err := records[i].toProduct()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}
