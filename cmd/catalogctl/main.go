// Command catalogctl publishes product catalogs to the storefront's
// writable sources (Valkey/Redis snapshot or SQLite file).
//
//	catalogctl check   [-file products.yaml]
//	catalogctl publish [-file products.yaml] [-target kv|sqlite]
//	catalogctl clear
//	catalogctl version
//
// Configuration is read the same way as the API server (ENV selects config/<env>.yaml).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/storefront/internal/config"
	dbValkey "github.com/kailas-cloud/storefront/internal/db/valkey"
	"github.com/kailas-cloud/storefront/internal/domain/product"
	logpkg "github.com/kailas-cloud/storefront/internal/logger"
	prodrepo "github.com/kailas-cloud/storefront/internal/repository/product"
	"github.com/kailas-cloud/storefront/internal/version"
)

const commandTimeout = 30 * time.Second

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	if os.Args[1] == "version" {
		fmt.Println("catalogctl", version.String())
		return
	}

	env := config.GetEnv()
	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(logpkg.ContextWithLogger(context.Background(), logger), commandTimeout)
	defer cancel()

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "check":
		err = runCheck(ctx, args)
	case "publish":
		err = runPublish(ctx, &cfg, args)
	case "clear":
		err = runClear(ctx, &cfg)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("command failed", zap.String("command", cmd), zap.Error(err))
		cancel()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: catalogctl <check|publish|clear|version> [-file products.yaml] [-target kv|sqlite]")
}

// readProducts loads a products file, or the demo catalog when path is empty.
func readProducts(ctx context.Context, path string) ([]*product.Product, error) {
	if path == "" {
		return prodrepo.NewFixture().Load(ctx)
	}
	return prodrepo.NewFile(path).Load(ctx)
}

func runCheck(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	file := fs.String("file", "", "products file (default: demo catalog)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	products, err := readProducts(ctx, *file)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(products))
	for _, p := range products {
		if seen[p.ID()] {
			return fmt.Errorf("duplicate product id %q", p.ID())
		}
		seen[p.ID()] = true
	}
	logpkg.FromContext(ctx).Info("catalog valid", zap.Int("products", len(products)))
	return nil
}

func runPublish(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("publish", flag.ContinueOnError)
	file := fs.String("file", "", "products file (default: demo catalog)")
	target := fs.String("target", config.SourceKV, "destination: kv or sqlite")
	if err := fs.Parse(args); err != nil {
		return err
	}

	products, err := readProducts(ctx, *file)
	if err != nil {
		return err
	}
	log := logpkg.FromContext(ctx)

	switch *target {
	case config.SourceKV:
		kv, closeFn, err := openKV(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeFn()
		if err := kv.Publish(ctx, products); err != nil {
			return err
		}
		log.Info("snapshot published", zap.String("key", kv.Key()), zap.Int("products", len(products)))
	case config.SourceSQLite:
		if cfg.SQLite.Path == "" {
			return errors.New("sqlite.path is not configured")
		}
		lite, err := prodrepo.OpenSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return err
		}
		defer func() { _ = lite.Close() }()
		if err := lite.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := lite.Import(ctx, products); err != nil {
			return err
		}
		log.Info("sqlite catalog imported", zap.String("path", cfg.SQLite.Path), zap.Int("products", len(products)))
	default:
		return fmt.Errorf("unknown target %q", *target)
	}
	return nil
}

func runClear(ctx context.Context, cfg *config.Config) error {
	kv, closeFn, err := openKV(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()
	if err := kv.Clear(ctx); err != nil {
		return err
	}
	logpkg.FromContext(ctx).Info("snapshot cleared", zap.String("key", kv.Key()))
	return nil
}

func openKV(ctx context.Context, cfg *config.Config) (*prodrepo.KV, func(), error) {
	if len(cfg.Database.Addrs) == 0 {
		return nil, nil, errors.New("database.addrs is not configured")
	}
	store, err := dbValkey.NewStore(dbValkey.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create %s store: %w", cfg.Database.Driver, err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("database not ready: %w", err)
	}
	return prodrepo.NewKV(store, cfg.Catalog.SnapshotKey), store.Close, nil
}
