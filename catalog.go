package storefront

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/kailas-cloud/storefront/internal/db"
	dbValkey "github.com/kailas-cloud/storefront/internal/db/valkey"
	"github.com/kailas-cloud/storefront/internal/i18n"
	prodrepo "github.com/kailas-cloud/storefront/internal/repository/product"
	catalogAPI "github.com/kailas-cloud/storefront/internal/usecase/catalog"
)

const defaultReadinessTimeout = 10 * time.Second

// ErrProductNotFound is returned by Product and Related for unknown ids.
var ErrProductNotFound = errors.New("storefront: product not found")

// Chip is an active-filter chip with a localized label.
type Chip = catalogAPI.Chip

// Catalog serves queries over a product snapshot loaded from a source.
// It is safe for concurrent use; Load swaps the snapshot atomically.
type Catalog struct {
	store db.Store
	svc   *catalogAPI.Service
	obs   *observer
}

// New creates a Catalog and loads its first snapshot. Without a source
// option it serves the built-in six-product demo catalog.
func New(ctx context.Context, opts ...Option) (*Catalog, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	tr, err := i18n.New(cfg.locale)
	if err != nil {
		return nil, fmt.Errorf("storefront: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	source, store, err := createSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c := &Catalog{store: store, svc: catalogAPI.New(source, tr), obs: obs}
	if _, err := c.svc.Load(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("storefront: initial load: %w", err)
	}
	return c, nil
}

func createSource(ctx context.Context, cfg *catalogConfig) (catalogAPI.ProductSource, db.Store, error) {
	switch {
	case cfg.products != nil:
		return staticSource(slices.Clone(cfg.products)), nil, nil
	case cfg.file != "":
		return prodrepo.NewFile(cfg.file), nil, nil
	case cfg.driver != "":
		if cfg.driver != "valkey" && cfg.driver != "redis" {
			return nil, nil, fmt.Errorf("storefront: unknown driver %q", cfg.driver)
		}
		if len(cfg.addrs) == 0 {
			return nil, nil, fmt.Errorf("storefront: %s address required", cfg.driver)
		}
		store, err := dbValkey.NewStore(dbValkey.Config{Addrs: cfg.addrs, Password: cfg.password})
		if err != nil {
			return nil, nil, fmt.Errorf("storefront: create %s store: %w", cfg.driver, err)
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("storefront: database not ready: %w", err)
		}
		return prodrepo.NewKV(store, cfg.snapshotKey), store, nil
	default:
		return prodrepo.NewFixture(), nil, nil
	}
}

// Close releases the backing store, if any.
func (c *Catalog) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Reload re-reads the source. On failure the previous snapshot stays live.
func (c *Catalog) Reload(ctx context.Context) (n int, err error) {
	start := time.Now()
	defer func() { c.obs.observe("reload", start, err) }()

	n, err = c.svc.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("storefront: reload: %w", err)
	}
	return n, nil
}

// Version identifies the live snapshot.
func (c *Catalog) Version() string { return c.svc.Version() }

// Query starts a fluent query over the live snapshot.
func (c *Catalog) Query() *QueryBuilder {
	return &QueryBuilder{c: c}
}

// Product returns one product by id.
func (c *Catalog) Product(ctx context.Context, id string) (_ *Product, err error) {
	start := time.Now()
	defer func() { c.obs.observe("product", start, err) }()

	p, err := c.svc.Product(ctx, id)
	if err != nil {
		return nil, translateError(err)
	}
	return p, nil
}

// Related returns up to limit products of the same category, best rated first.
func (c *Catalog) Related(ctx context.Context, id string, limit int) (_ []*Product, err error) {
	start := time.Now()
	defer func() { c.obs.observe("related", start, err) }()

	ps, err := c.svc.Related(ctx, id, limit)
	if err != nil {
		return nil, translateError(err)
	}
	return ps, nil
}

// Facets returns sidebar counts for term and filters.
func (c *Catalog) Facets(ctx context.Context, term string, filters FilterSet) (_ FacetCounts, err error) {
	start := time.Now()
	defer func() { c.obs.observe("facets", start, err) }()

	fc, err := c.svc.Facets(ctx, term, filters)
	if err != nil {
		return nil, fmt.Errorf("storefront: facets: %w", err)
	}
	return fc, nil
}

// Chips returns the active-filter chips labelled in locale.
func (c *Catalog) Chips(locale string, filters FilterSet) []Chip {
	return c.svc.Chips(locale, filters)
}

// staticSource serves a fixed product list.
type staticSource []*Product

func (s staticSource) Load(context.Context) ([]*Product, error) {
	return s, nil
}
