package product

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/kailas-cloud/storefront/internal/domain"
	domprod "github.com/kailas-cloud/storefront/internal/domain/product"
)

func TestFixture_Load(t *testing.T) {
	products, err := NewFixture().Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(products) != 6 {
		t.Fatalf("got %d products, want 6", len(products))
	}

	var gotIDs []string
	for _, p := range products {
		gotIDs = append(gotIDs, p.ID())
	}
	if !slices.Equal(gotIDs, []string{"1", "2", "3", "4", "5", "6"}) {
		t.Errorf("ids = %v", gotIDs)
	}

	adidas := products[4]
	if adidas.Stock() != 0 || adidas.StockStatus() != domprod.OutOfStock {
		t.Errorf("adidas stock = %d, status %s", adidas.Stock(), adidas.StockStatus())
	}
	if products[2].FreeShipping() {
		t.Error("nike should not ship free")
	}
	if *products[0].OriginalPrice() != 1299 {
		t.Errorf("iphone original price = %v", *products[0].OriginalPrice())
	}
	if products[0].Specs()["Chip"] != "A17 Pro" {
		t.Errorf("iphone specs = %v", products[0].Specs())
	}
}

func TestFile_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	data := []byte(`
- id: sku-1
  name: Desk Lamp
  category: home
  brand: IKEA
  price: 24.5
  rating: 4.1
  stock: 3
  features: [warranty]
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	products, err := NewFile(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(products) != 1 || products[0].Brand() != "ikea" {
		t.Fatalf("products = %+v", products)
	}
}

func TestFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := []byte(`[{"id":"a","name":"Book","category":"books","price":12,"rating":3.5,"stock":1}]`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	products, err := NewFile(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if products[0].Category() != domprod.CategoryBooks {
		t.Errorf("category = %s", products[0].Category())
	}
}

func TestFile_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing file", filepath.Join(dir, "nope.yaml"), domain.ErrSourceUnavailable},
		{"malformed", write("bad.yaml", "- id: [unclosed"), domain.ErrInvalidProduct},
		{"invalid product", write("neg.yaml", "- {id: x, name: X, category: toys, price: -1}"), domain.ErrInvalidProduct},
		{"unknown category", write("cat.yaml", "- {id: x, name: X, category: garden, price: 1}"), domain.ErrInvalidProduct},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFile(tt.path).Load(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
