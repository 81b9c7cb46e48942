package storefront

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/storefront/internal/domain"
)

// translateError maps internal sentinels onto the package's public errors.
func translateError(err error) error {
	if errors.Is(err, domain.ErrProductNotFound) {
		return fmt.Errorf("%w: %w", ErrProductNotFound, err)
	}
	return fmt.Errorf("storefront: %w", err)
}
