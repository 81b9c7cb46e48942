package product

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is a top-level catalog department.
type Category string

// Catalog categories.
const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryHome        Category = "home"
	CategorySports      Category = "sports"
	CategoryBooks       Category = "books"
	CategoryBeauty      Category = "beauty"
	CategoryAutomotive  Category = "automotive"
	CategoryToys        Category = "toys"
)

// Categories lists every category in sidebar order.
var Categories = []Category{
	CategoryElectronics, CategoryClothing, CategoryHome, CategorySports,
	CategoryBooks, CategoryBeauty, CategoryAutomotive, CategoryToys,
}

// IsValid checks if the category is part of the vocabulary.
func (c Category) IsValid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Location is the seller's country of origin.
type Location string

// Seller locations.
const (
	LocationUSA     Location = "usa"
	LocationCanada  Location = "canada"
	LocationUK      Location = "uk"
	LocationGermany Location = "germany"
	LocationFrance  Location = "france"
	LocationSaudi   Location = "saudi"
)

// Locations lists every seller location in sidebar order.
var Locations = []Location{
	LocationUSA, LocationCanada, LocationUK, LocationGermany, LocationFrance, LocationSaudi,
}

// IsValid checks if the location is part of the vocabulary.
func (l Location) IsValid() bool {
	for _, v := range Locations {
		if v == l {
			return true
		}
	}
	return false
}

// Brands is the brand list offered by the filter sidebar.
// Brands are open-ended: products may carry a brand outside this list.
var Brands = []string{"apple", "samsung", "nike", "adidas", "sony", "lg", "hp", "dell"}

var brandNames = map[string]string{
	"apple":   "Apple",
	"samsung": "Samsung",
	"nike":    "Nike",
	"adidas":  "Adidas",
	"sony":    "Sony",
	"lg":      "LG",
	"hp":      "HP",
	"dell":    "Dell",
}

// BrandName returns the display name of a brand slug. Unknown brands are
// title-cased.
func BrandName(slug string) string {
	if name, ok := brandNames[slug]; ok {
		return name
	}
	return cases.Title(language.Und).String(slug)
}

// Feature is a product capability that can be required by the features facet.
type Feature string

// Product features.
const (
	FeatureFreeShipping Feature = "freeShipping"
	FeatureFastDelivery Feature = "fastDelivery"
	FeatureWarranty     Feature = "warranty"
	FeatureReturnPolicy Feature = "returnPolicy"
	FeatureNewArrival   Feature = "newArrival"
	FeatureOnSale       Feature = "onSale"
	// FeatureInStock restricts results to products with stock > 0.
	FeatureInStock Feature = "inStock"
)

// Features lists every feature in sidebar order.
var Features = []Feature{
	FeatureFreeShipping, FeatureFastDelivery, FeatureWarranty, FeatureReturnPolicy,
	FeatureNewArrival, FeatureOnSale, FeatureInStock,
}

// IsValid checks if the feature is part of the vocabulary.
func (f Feature) IsValid() bool {
	for _, v := range Features {
		if v == f {
			return true
		}
	}
	return false
}

// IsDerived reports whether the feature is computed from product fields
// rather than carried as a tag.
func (f Feature) IsDerived() bool {
	return f == FeatureFreeShipping || f == FeatureOnSale || f == FeatureInStock
}

// RatingThresholds are the "N stars & up" options of the rating facet.
var RatingThresholds = []float64{5, 4, 3, 2, 1}

// MaxRating is the upper bound of the rating scale.
const MaxRating = 5.0
