package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrProductNotFound signals an unknown product ID.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidProduct signals a product record that fails validation.
	ErrInvalidProduct = errors.New("invalid product")
	// ErrInvalidQuery signals catalog query parameters that cannot be used.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrSourceUnavailable signals that the product source could not be read.
	ErrSourceUnavailable = errors.New("product source unavailable")
	// ErrCatalogNotLoaded signals a query before the first snapshot load.
	ErrCatalogNotLoaded = errors.New("catalog not loaded")
)
