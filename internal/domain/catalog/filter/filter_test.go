package filter

import (
	"slices"
	"testing"

	"github.com/kailas-cloud/storefront/internal/domain/product"
)

func floatPtr(f float64) *float64 { return &f }

// --- Range tests ---

func TestNewRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max *float64
		wantOK   bool
	}{
		{"both nil", nil, nil, false},
		{"min only", floatPtr(10), nil, true},
		{"max only", nil, floatPtr(10), true},
		{"both", floatPtr(10), floatPtr(20), true},
		{"inverted", floatPtr(20), floatPtr(10), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := NewRange(tt.min, tt.max)
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestRange_Contains(t *testing.T) {
	r, _ := NewRange(floatPtr(25), floatPtr(50))
	for price, want := range map[float64]bool{24.99: false, 25: true, 37: true, 50: true, 50.01: false} {
		if got := r.Contains(price); got != want {
			t.Errorf("Contains(%v) = %v, want %v", price, got, want)
		}
	}

	open, _ := NewRange(nil, floatPtr(25))
	if !open.Contains(0) || open.Contains(26) {
		t.Error("open lower bound mismatch")
	}

	inverted, _ := NewRange(floatPtr(100), floatPtr(10))
	for _, price := range []float64{5, 50, 500} {
		if inverted.Contains(price) {
			t.Errorf("inverted range contains %v", price)
		}
	}
}

func TestNewRange_CopiesBounds(t *testing.T) {
	v := 10.0
	r, _ := NewRange(&v, nil)
	v = 99
	if *r.Min() != 10 {
		t.Errorf("Min() = %v, want 10", *r.Min())
	}
}

// --- Set tests ---

func TestSet_Empty(t *testing.T) {
	var s Set
	if !s.IsEmpty() {
		t.Error("zero Set should be empty")
	}
	if len(s.Active()) != 0 {
		t.Errorf("Active() = %v", s.Active())
	}
}

func TestSet_AddRemove(t *testing.T) {
	var s Set
	s = s.Add(Categories, "electronics").Add(Categories, "clothing")
	if got := s.Values(Categories); !slices.Equal(got, []string{"electronics", "clothing"}) {
		t.Errorf("Values(categories) = %v", got)
	}

	s = s.Remove(Categories, "electronics")
	if !s.Has(Categories) {
		t.Fatal("categories should still be active")
	}
	s = s.Remove(Categories, "clothing")
	if s.Has(Categories) {
		t.Error("removing last value must drop the facet")
	}
	if s.Categories() != nil {
		t.Errorf("Categories() = %v, want nil", s.Categories())
	}
}

func TestSet_Immutable(t *testing.T) {
	base := Set{}.Add(Brands, "apple")
	next := base.Add(Brands, "sony")
	if len(base.Brands()) != 1 {
		t.Errorf("receiver mutated: %v", base.Brands())
	}
	if len(next.Brands()) != 2 {
		t.Errorf("next.Brands() = %v", next.Brands())
	}
	removed := next.Remove(Brands, "apple")
	if len(next.Brands()) != 2 {
		t.Errorf("Remove mutated receiver: %v", next.Brands())
	}
	if !slices.Equal(removed.Brands(), []string{"sony"}) {
		t.Errorf("removed.Brands() = %v", removed.Brands())
	}
}

func TestSet_AddIgnoresOutOfDomain(t *testing.T) {
	var s Set
	s = s.Add(Categories, "garden").
		Add(Location, "mars").
		Add(Features, "teleport").
		Add(Rating, "7").
		Add(Rating, "abc").
		Add(PriceRange, "100").
		Add("colour", "red").
		Add(Brands, "  ")
	if !s.IsEmpty() {
		t.Errorf("expected empty set, active = %v", s.Active())
	}
}

func TestSet_AddNormalizes(t *testing.T) {
	s := Set{}.Add(Brands, "Apple").Add(Brands, "apple").Add(Categories, "ELECTRONICS")
	if !slices.Equal(s.Brands(), []string{"apple"}) {
		t.Errorf("Brands() = %v", s.Brands())
	}
	if !slices.Equal(s.Categories(), []product.Category{product.CategoryElectronics}) {
		t.Errorf("Categories() = %v", s.Categories())
	}
}

func TestSet_Ratings(t *testing.T) {
	s := Set{}.Add(Rating, "4").Add(Rating, "4.0").Add(Rating, "3")
	if !slices.Equal(s.Ratings(), []float64{4, 3}) {
		t.Errorf("Ratings() = %v", s.Ratings())
	}
	if !slices.Equal(s.Values(Rating), []string{"4", "3"}) {
		t.Errorf("Values(rating) = %v", s.Values(Rating))
	}
	s = s.Remove(Rating, "4.0")
	if !slices.Equal(s.Ratings(), []float64{3}) {
		t.Errorf("after remove Ratings() = %v", s.Ratings())
	}
}

func TestSet_PriceRange(t *testing.T) {
	s := Set{}.WithPriceRange(floatPtr(25), nil)
	if !s.Has(PriceRange) {
		t.Fatal("price range should be active")
	}
	if s.Values(PriceRange) != nil {
		t.Error("Values(priceRange) should be nil")
	}
	s = s.WithPriceRange(nil, nil)
	if s.Has(PriceRange) {
		t.Error("nil bounds must clear the facet")
	}
	s = s.WithPriceRange(floatPtr(1), floatPtr(2)).Remove(PriceRange, "")
	if s.Has(PriceRange) {
		t.Error("Remove(priceRange) must clear the facet")
	}
}

func TestSet_Clear(t *testing.T) {
	s := Set{}.Add(Features, "freeShipping").Add(Location, "usa")
	s = s.Clear(Features)
	if s.Has(Features) {
		t.Error("features should be cleared")
	}
	if !slices.Equal(s.Active(), []Key{Location}) {
		t.Errorf("Active() = %v", s.Active())
	}
}

func TestSet_MaxValues(t *testing.T) {
	var s Set
	for i := 0; i < MaxValuesPerFacet+5; i++ {
		s = s.Add(Brands, "brand"+string(rune('a'+i%26))+string(rune('a'+i/26)))
	}
	if len(s.Brands()) != MaxValuesPerFacet {
		t.Errorf("Brands() len = %d, want %d", len(s.Brands()), MaxValuesPerFacet)
	}
}

func TestParse(t *testing.T) {
	s := Parse(map[string][]string{
		"categories": {"electronics", "garden"},
		"brands":     {"apple"},
		"rating":     {"4", "5"},
		"features":   {"freeShipping", "inStock"},
		"location":   {"usa"},
		"priceRange": {"min:25", "max:1300", "avg:3", "min:x"},
		"unknown":    {"x"},
	})

	want := []Key{Categories, PriceRange, Brands, Rating, Location, Features}
	if !slices.Equal(s.Active(), want) {
		t.Errorf("Active() = %v, want %v", s.Active(), want)
	}
	if len(s.Categories()) != 1 {
		t.Errorf("Categories() = %v", s.Categories())
	}
	p := s.Price()
	if p == nil || p.Min() == nil || p.Max() == nil || *p.Min() != 25 || *p.Max() != 1300 {
		t.Errorf("Price() = %+v", p)
	}
}

func TestKey_IsValid(t *testing.T) {
	for _, k := range Keys {
		if !k.IsValid() {
			t.Errorf("%q.IsValid() = false", k)
		}
	}
	if Key("colour").IsValid() {
		t.Error("unknown key reported valid")
	}
}
