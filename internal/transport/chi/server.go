// Package chi serves the storefront catalog over HTTP.
package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/storefront/internal/domain"
	"github.com/kailas-cloud/storefront/internal/domain/catalog/filter"
	"github.com/kailas-cloud/storefront/internal/domain/catalog/query"
	"github.com/kailas-cloud/storefront/internal/domain/catalog/result"
	"github.com/kailas-cloud/storefront/internal/domain/product"
	"github.com/kailas-cloud/storefront/internal/i18n"
	"github.com/kailas-cloud/storefront/internal/logger"
	catalog "github.com/kailas-cloud/storefront/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/storefront/internal/usecase/health"
)

// CatalogService is the catalog use case consumed by the handlers.
type CatalogService interface {
	Load(ctx context.Context) (int, error)
	LoadedAt() time.Time
	Version() string
	Search(ctx context.Context, q *query.Query) (result.Page, error)
	Facets(ctx context.Context, term string, filters filter.Set) (catalog.FacetCounts, error)
	Chips(locale string, filters filter.Set) []catalog.Chip
	Product(ctx context.Context, id string) (*product.Product, error)
	Related(ctx context.Context, id string, limit int) ([]*product.Product, error)
}

// Translator resolves labels and negotiates the response locale.
type Translator interface {
	catalog.Translator
	Negotiate(explicit, acceptLanguage string) string
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Options tunes response shaping.
type Options struct {
	DefaultPerPage int
	MaxPerPage     int
	RelatedLimit   int
	AdminKeys      []string
}

// Server holds the HTTP handlers.
type Server struct {
	catalog       CatalogService
	health        HealthChecker
	tr            Translator
	opts          Options
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalogSvc CatalogService,
	health HealthChecker,
	tr Translator,
	opts Options,
	log *zap.Logger,
) *Server {
	if opts.DefaultPerPage <= 0 {
		opts.DefaultPerPage = query.DefaultPerPage
	}
	if opts.MaxPerPage <= 0 {
		opts.MaxPerPage = query.MaxPerPage
	}
	s := &Server{
		catalog: catalogSvc,
		health:  health,
		tr:      tr,
		opts:    opts,
		logger:  log,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound, ErrorCodeProductNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorCodeInvalidQuery),
		sentinelHandler(domain.ErrCatalogNotLoaded, http.StatusServiceUnavailable, ErrorCodeCatalogNotLoaded),
		sentinelHandler(domain.ErrSourceUnavailable, http.StatusBadGateway, ErrorCodeSourceError),
		sentinelHandler(domain.ErrInvalidProduct, http.StatusUnprocessableEntity, ErrorCodeInvalidProduct),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/products", s.ListProducts)
	r.Get("/products/{id}", s.GetProduct)
	r.Get("/facets", s.ListFacets)
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Route("/admin", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(s.opts.AdminKeys))
		r.Post("/reload", s.Reload)
	})
}

// ListProducts handles GET /products.
func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	params, err := bindListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	q, err := params.query(s.opts.DefaultPerPage, s.opts.MaxPerPage)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeInvalidQuery, err.Error())
		return
	}
	ctx, locale := s.locale(w, r, params.Locale)

	page, err := s.catalog.Search(ctx, &q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ProductListResponse{
		Items:     s.productsToItems(page.Items, locale),
		Total:     page.Total,
		Page:      page.Page,
		PerPage:   page.PerPage,
		HasMore:   page.HasMore,
		Sort:      string(q.Sort()),
		SortLabel: s.tr.T(locale, "sort."+string(q.Sort())),
		Chips:     chipsToItems(s.catalog.Chips(locale, q.Filters())),
		Locale:    locale,
		Dir:       direction(locale),
	})
}

// GetProduct handles GET /products/{id}.
func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, locale := s.locale(w, r, r.URL.Query().Get("locale"))

	p, err := s.catalog.Product(ctx, id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	related, err := s.catalog.Related(ctx, id, s.opts.RelatedLimit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ProductDetail{
		ProductItem: s.productToItem(p, locale),
		Specs:       p.Specs(),
		Related:     s.productsToItems(related, locale),
	})
}

// ListFacets handles GET /facets.
func (s *Server) ListFacets(w http.ResponseWriter, r *http.Request) {
	params, err := bindListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	q, err := params.query(s.opts.DefaultPerPage, s.opts.MaxPerPage)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeInvalidQuery, err.Error())
		return
	}
	ctx, locale := s.locale(w, r, params.Locale)

	counts, err := s.catalog.Facets(ctx, q.Term(), q.Filters())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	groups := make([]FacetGroup, 0, len(filter.Keys))
	for _, key := range filter.Keys {
		opts := make([]FacetOption, len(counts[key]))
		for i, v := range counts[key] {
			opts[i] = FacetOption{
				Value:    v.Value,
				Label:    catalog.Label(s.tr, locale, key, v.Value),
				Count:    v.Count,
				Selected: v.Selected,
			}
		}
		groups = append(groups, FacetGroup{Key: string(key), Options: opts})
	}
	writeJSON(w, http.StatusOK, FacetsResponse{Facets: groups, Locale: locale})
}

// Reload handles POST /admin/reload.
func (s *Server) Reload(w http.ResponseWriter, r *http.Request) {
	ctx := logger.With(r.Context(), zap.String("op", "reload"))
	n, err := s.catalog.Load(ctx)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ReloadResponse{
		Products: n,
		Version:  s.catalog.Version(),
		LoadedAt: s.catalog.LoadedAt(),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, HealthResponse{Status: string(report.Status), Checks: checks})
}

// locale negotiates the response locale, announces it in Content-Language and
// attaches it to the request context and logger.
func (s *Server) locale(w http.ResponseWriter, r *http.Request, explicit string) (context.Context, string) {
	loc := s.tr.Negotiate(explicit, r.Header.Get("Accept-Language"))
	w.Header().Set("Content-Language", loc)
	ctx := i18n.ContextWithLocale(r.Context(), loc)
	return logger.With(ctx, zap.String("locale", loc)), loc
}

func direction(locale string) string {
	if i18n.IsRTL(locale) {
		return "rtl"
	}
	return "ltr"
}
