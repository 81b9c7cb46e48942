package catalog

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/storefront/internal/domain"
	"github.com/kailas-cloud/storefront/internal/domain/catalog/filter"
	"github.com/kailas-cloud/storefront/internal/domain/catalog/query"
	"github.com/kailas-cloud/storefront/internal/domain/catalog/result"
	"github.com/kailas-cloud/storefront/internal/domain/product"
	"github.com/kailas-cloud/storefront/internal/logger"
	"github.com/kailas-cloud/storefront/internal/metrics"
)

// DefaultRelatedLimit is the number of related products returned when the caller passes 0.
const DefaultRelatedLimit = 4

// snapshot is an immutable loaded catalog.
type snapshot struct {
	products []*product.Product
	byID     map[string]*product.Product
	version  string
	loadedAt time.Time
}

// Service serves catalog queries over the current product snapshot.
// Reloads swap the snapshot atomically; readers never block.
type Service struct {
	source  ProductSource
	tr      Translator
	current atomic.Pointer[snapshot]
}

// New creates a catalog service. Call Load before serving queries.
func New(source ProductSource, tr Translator) *Service {
	return &Service{source: source, tr: tr}
}

// Load reads the source and replaces the snapshot. The previous snapshot is
// kept when the source fails or returns duplicate ids.
func (s *Service) Load(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	products, err := s.source.Load(ctx)
	if err != nil {
		metrics.CatalogReloadsTotal.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("load products: %w", err)
	}

	byID := make(map[string]*product.Product, len(products))
	for _, p := range products {
		if _, dup := byID[p.ID()]; dup {
			metrics.CatalogReloadsTotal.WithLabelValues("error").Inc()
			return 0, fmt.Errorf("duplicate product id %q: %w", p.ID(), domain.ErrInvalidProduct)
		}
		byID[p.ID()] = p
	}

	snap := &snapshot{products: products, byID: byID, version: uuid.NewString(), loadedAt: time.Now()}
	s.current.Store(snap)
	metrics.CatalogReloadsTotal.WithLabelValues("ok").Inc()
	metrics.CatalogProducts.Set(float64(len(products)))

	log.Info("catalog loaded",
		zap.String("version", snap.version),
		zap.Int("products", len(products)),
		zap.Duration("duration", time.Since(start)),
	)
	return len(products), nil
}

// Loaded reports whether a snapshot is available.
func (s *Service) Loaded() bool { return s.current.Load() != nil }

// LoadedAt returns the time of the last successful load (zero if none).
func (s *Service) LoadedAt() time.Time {
	if snap := s.current.Load(); snap != nil {
		return snap.loadedAt
	}
	return time.Time{}
}

// Version identifies the current snapshot (empty if none). Every load gets a new version.
func (s *Service) Version() string {
	if snap := s.current.Load(); snap != nil {
		return snap.version
	}
	return ""
}

// Evaluate runs q against the snapshot and returns the whole ordered result.
func (s *Service) Evaluate(ctx context.Context, q *query.Query) (result.Result, error) {
	snap, err := s.snapshot()
	if err != nil {
		return result.Result{}, err
	}

	start := time.Now()
	res := Evaluate(snap.products, q.Term(), q.Filters(), q.Sort())
	elapsed := time.Since(start)

	metrics.CatalogQueriesTotal.WithLabelValues(string(q.Sort())).Inc()
	metrics.CatalogQueryDuration.Observe(elapsed.Seconds())
	metrics.CatalogResults.Observe(float64(res.Total()))

	logger.FromContext(ctx).Debug("catalog query evaluated",
		zap.String("term", q.Term()),
		zap.Any("facets", q.Filters().Active()),
		zap.String("sort", string(q.Sort())),
		zap.Int("total", res.Total()),
		zap.Duration("duration", elapsed),
	)
	return res, nil
}

// Search evaluates q and returns the requested page.
func (s *Service) Search(ctx context.Context, q *query.Query) (result.Page, error) {
	res, err := s.Evaluate(ctx, q)
	if err != nil {
		return result.Page{}, err
	}
	return res.Paginate(q.Page(), q.PerPage()), nil
}

// Facets returns sidebar counts for term and filters.
func (s *Service) Facets(_ context.Context, term string, filters filter.Set) (FacetCounts, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return CountFacets(snap.products, term, filters), nil
}

// Chips returns the localized active-filter chips.
func (s *Service) Chips(locale string, filters filter.Set) []Chip {
	return Chips(s.tr, locale, filters)
}

// Product returns a product by id.
func (s *Service) Product(_ context.Context, id string) (*product.Product, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.product(id)
}

// Related returns up to limit products of the same category, best rated
// first, excluding the product itself.
func (s *Service) Related(_ context.Context, id string, limit int) ([]*product.Product, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.related(id, limit)
}

func (s *Service) snapshot() (*snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, domain.ErrCatalogNotLoaded
	}
	return snap, nil
}

func (snap *snapshot) product(id string) (*product.Product, error) {
	p, ok := snap.byID[id]
	if !ok {
		return nil, fmt.Errorf("product %q: %w", id, domain.ErrProductNotFound)
	}
	return p, nil
}

// related resolves the product and its neighbours from the same snapshot.
func (snap *snapshot) related(id string, limit int) ([]*product.Product, error) {
	p, err := snap.product(id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	related := make([]*product.Product, 0, limit)
	for _, other := range snap.products {
		if other.ID() != p.ID() && other.Category() == p.Category() {
			related = append(related, other)
		}
	}
	slices.SortStableFunc(related, func(a, b *product.Product) int {
		return cmp.Compare(b.Rating(), a.Rating())
	})
	if len(related) > limit {
		related = related[:limit]
	}
	return related, nil
}
