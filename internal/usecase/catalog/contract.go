package catalog

import (
	"context"

	"github.com/kailas-cloud/storefront/internal/domain/product"
)

// ProductSource loads the full product snapshot.
type ProductSource interface {
	Load(ctx context.Context) ([]*product.Product, error)
}

// Translator resolves localized labels by (locale, message key).
type Translator interface {
	T(locale, key string, args ...any) string
}
