package catalog

import (
	"testing"

	"github.com/kailas-cloud/storefront/internal/domain/catalog/filter"
	"github.com/kailas-cloud/storefront/internal/domain/product"
)

func ptr(f float64) *float64 { return &f }

// mockProducts is the six-product storefront catalog.
func mockProducts(t *testing.T) []*product.Product {
	t.Helper()
	tags := func(newArrival, fast bool) []product.Feature {
		fs := []product.Feature{product.FeatureWarranty, product.FeatureReturnPolicy}
		if fast {
			fs = append(fs, product.FeatureFastDelivery)
		}
		if newArrival {
			fs = append(fs, product.FeatureNewArrival)
		}
		return fs
	}
	attrs := []product.Attrs{
		{
			ID: "1", Name: "iPhone 15 Pro Max 256GB Natural Titanium", Category: product.CategoryElectronics,
			Brand: "apple", Seller: "Apple Store", Location: product.LocationUSA,
			Price: 1199, OriginalPrice: ptr(1299), Rating: 4.8, ReviewCount: 2847, Stock: 15,
			FreeShipping: true, Features: tags(true, true), Recency: 1,
		},
		{
			ID: "2", Name: "Samsung Galaxy S24 Ultra 512GB Titanium Black", Category: product.CategoryElectronics,
			Brand: "samsung", Seller: "Samsung Official", Location: product.LocationGermany,
			Price: 1299, Rating: 4.7, ReviewCount: 1923, Stock: 8,
			FreeShipping: true, Features: tags(true, true), Recency: 2,
		},
		{
			ID: "3", Name: "Nike Air Max 270 React Running Shoes", Category: product.CategoryClothing,
			Brand: "nike", Seller: "Nike Store", Location: product.LocationUSA,
			Price: 89.99, OriginalPrice: ptr(129.99), Rating: 4.5, ReviewCount: 567, Stock: 23,
			FreeShipping: false, Features: tags(true, false), Recency: 3,
		},
		{
			ID: "4", Name: "Sony WH-1000XM5 Wireless Noise Canceling Headphones", Category: product.CategoryElectronics,
			Brand: "sony", Seller: "Sony Electronics", Location: product.LocationUK,
			Price: 349.99, OriginalPrice: ptr(399.99), Rating: 4.9, ReviewCount: 1234, Stock: 12,
			FreeShipping: true, Features: tags(false, true), Recency: 4,
		},
		{
			ID: "5", Name: "Adidas Ultraboost 22 Running Shoes", Category: product.CategoryClothing,
			Brand: "adidas", Seller: "Adidas Official", Location: product.LocationGermany,
			Price: 119.99, OriginalPrice: ptr(179.99), Rating: 4.6, ReviewCount: 892, Stock: 0,
			FreeShipping: true, Features: tags(false, true), Recency: 5,
		},
		{
			ID: "6", Name: "MacBook Pro 14-inch M3 Pro 512GB Space Black", Category: product.CategoryElectronics,
			Brand: "apple", Seller: "Apple Store", Location: product.LocationUSA,
			Price: 2399, Rating: 4.8, ReviewCount: 456, Stock: 6,
			FreeShipping: true, Features: tags(false, true), Recency: 6,
		},
	}
	return build(t, attrs)
}

// ratedProducts has ratings 2.9, 3.0, 4.5 and 5.0 (ids a..d).
func ratedProducts(t *testing.T) []*product.Product {
	t.Helper()
	var attrs []product.Attrs
	for i, r := range []float64{2.9, 3.0, 4.5, 5.0} {
		attrs = append(attrs, product.Attrs{
			ID: string(rune('a' + i)), Name: "Rated", Category: product.CategoryBooks,
			Price: 10, Rating: r, Stock: 1,
		})
	}
	return build(t, attrs)
}

func build(t *testing.T, attrs []product.Attrs) []*product.Product {
	t.Helper()
	out := make([]*product.Product, 0, len(attrs))
	for _, a := range attrs {
		p, err := product.New(a)
		if err != nil {
			t.Fatalf("product.New(%s): %v", a.ID, err)
		}
		out = append(out, p)
	}
	return out
}

func ids(ps []*product.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID()
	}
	return out
}

func set(kv ...string) filter.Set {
	var s filter.Set
	for i := 0; i+1 < len(kv); i += 2 {
		s = s.Add(filter.Key(kv[i]), kv[i+1])
	}
	return s
}
