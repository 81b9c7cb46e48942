package product

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/storefront/internal/domain"
	domprod "github.com/kailas-cloud/storefront/internal/domain/product"
)

//go:embed fixtures/products.yaml
var demoCatalog []byte

// Fixture serves the embedded six-product demo catalog.
type Fixture struct{}

// NewFixture creates the demo catalog source.
func NewFixture() *Fixture { return &Fixture{} }

// Load parses the embedded catalog.
func (Fixture) Load(context.Context) ([]*domprod.Product, error) {
	return parseYAML(demoCatalog)
}

// File reads a YAML (or JSON) list of products from disk on every Load.
type File struct {
	path string
}

// NewFile creates a file source.
func NewFile(path string) *File { return &File{path: path} }

// Load reads and parses the file.
func (f *File) Load(context.Context) ([]*domprod.Product, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", f.path, domain.ErrSourceUnavailable, err)
	}
	products, err := parseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}
	return products, nil
}

func parseYAML(data []byte) ([]*domprod.Product, error) {
	var records []record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse products: %w: %w", domain.ErrInvalidProduct, err)
	}
	return toProducts(records)
}
