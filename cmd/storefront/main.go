package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/kailas-cloud/storefront/internal/config"
	dbValkey "github.com/kailas-cloud/storefront/internal/db/valkey"
	"github.com/kailas-cloud/storefront/internal/i18n"
	logpkg "github.com/kailas-cloud/storefront/internal/logger"
	"github.com/kailas-cloud/storefront/internal/metrics"
	prodrepo "github.com/kailas-cloud/storefront/internal/repository/product"
	chiTransport "github.com/kailas-cloud/storefront/internal/transport/chi"
	catalogAPI "github.com/kailas-cloud/storefront/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/storefront/internal/usecase/health"
	"github.com/kailas-cloud/storefront/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting storefront API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_source", cfg.Catalog.Source),
	)

	ctx := logpkg.ContextWithLogger(context.Background(), logger)

	source, pinger, closeSource, err := buildSource(ctx, &cfg)
	if err != nil {
		logger.Fatal("Failed to open catalog source", zap.Error(err))
	}
	defer closeSource()

	tr, err := i18n.New(cfg.Catalog.DefaultLocale)
	if err != nil {
		logger.Fatal("Failed to load translations", zap.Error(err))
	}

	metrics.RegisterCatalogMetrics()

	catalogSvc := catalogAPI.New(source, tr)
	if n, err := catalogSvc.Load(ctx); err != nil {
		// Keep serving: /health reports the missing snapshot and /admin/reload can retry.
		logger.Error("Initial catalog load failed", zap.Error(err))
	} else {
		logger.Info("Catalog ready", zap.Int("products", n))
	}

	healthSvc := healthuc.New(catalogSvc, pinger)

	server := chiTransport.NewServer(catalogSvc, healthSvc, tr, chiTransport.Options{
		DefaultPerPage: cfg.Catalog.DefaultPageSize,
		MaxPerPage:     cfg.Catalog.MaxPageSize,
		RelatedLimit:   cfg.Catalog.RelatedLimit,
		AdminKeys:      cfg.Auth.APIKeys,
	}, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not_found", "route not found")
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildSource opens the configured product source. The pinger is a nil
// interface (never a typed nil) for sources without a backend.
func buildSource(
	ctx context.Context,
	cfg *config.Config,
) (catalogAPI.ProductSource, healthuc.SourcePinger, func(), error) {
	log := logpkg.FromContext(ctx)
	noop := func() {}

	switch cfg.Catalog.Source {
	case config.SourceFixture:
		return prodrepo.NewFixture(), nil, noop, nil

	case config.SourceFile:
		return prodrepo.NewFile(cfg.Catalog.File), nil, noop, nil

	case config.SourceKV:
		store, err := dbValkey.NewStore(dbValkey.Config{
			Addrs:    cfg.Database.Addrs,
			Username: cfg.Database.Username,
			Password: cfg.Database.Password,
			DB:       cfg.Database.DB,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("create %s store: %w", cfg.Database.Driver, err)
		}
		timeout := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, timeout); err != nil {
			store.Close()
			return nil, nil, nil, fmt.Errorf("database not ready: %w", err)
		}
		log.Info("Connected to database",
			zap.String("driver", cfg.Database.Driver),
			zap.Strings("addrs", cfg.Database.Addrs),
		)

		kv := prodrepo.NewKV(store, cfg.Catalog.SnapshotKey)
		if cfg.Catalog.SeedOnStart {
			if err := seedKV(ctx, kv); err != nil {
				store.Close()
				return nil, nil, nil, err
			}
		}
		return kv, kv, store.Close, nil

	case config.SourcePostgres:
		poolCfg, err := pgxpool.ParseConfig(cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("parse postgres dsn: %w", err)
		}
		poolCfg.MaxConns = cfg.Postgres.MaxConns
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("create postgres pool: %w", err)
		}
		pg := prodrepo.NewPostgres(pool, cfg.Postgres.Table)
		if cfg.Postgres.EnsureSchema {
			if err := pg.EnsureSchema(ctx); err != nil {
				pool.Close()
				return nil, nil, nil, err
			}
		}
		log.Info("Connected to postgres", zap.String("table", cfg.Postgres.Table))
		return pg, pg, pool.Close, nil

	case config.SourceSQLite:
		lite, err := prodrepo.OpenSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		closeLite := func() { _ = lite.Close() }
		if err := lite.EnsureSchema(ctx); err != nil {
			closeLite()
			return nil, nil, nil, err
		}
		if cfg.Catalog.SeedOnStart {
			products, err := prodrepo.NewFixture().Load(ctx)
			if err == nil {
				err = lite.Import(ctx, products)
			}
			if err != nil {
				closeLite()
				return nil, nil, nil, fmt.Errorf("seed sqlite: %w", err)
			}
		}
		log.Info("Opened sqlite catalog", zap.String("path", cfg.SQLite.Path))
		return lite, lite, closeLite, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
}

// seedKV publishes the demo catalog unless a snapshot already exists.
func seedKV(ctx context.Context, kv *prodrepo.KV) error {
	products, err := prodrepo.NewFixture().Load(ctx)
	if err != nil {
		return fmt.Errorf("load demo catalog: %w", err)
	}
	written, err := kv.Seed(ctx, products)
	if err != nil {
		return err
	}
	logpkg.FromContext(ctx).Info("Snapshot seed",
		zap.String("key", kv.Key()),
		zap.Bool("written", written),
	)
	return nil
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    code,
		"message": message,
	})
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					writeJSONError(w, http.StatusInternalServerError, "internal_error", "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits one canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("accept_language", r.Header.Get("Accept-Language")),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
