package storefront

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/storefront/internal/i18n"
)

// Option configures a Catalog.
type Option interface {
	apply(*catalogConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*catalogConfig)

func (f optionFunc) apply(c *catalogConfig) { f(c) }

type catalogConfig struct {
	products    []*Product
	file        string
	driver      string
	addrs       []string
	password    string
	snapshotKey string
	locale      string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithProducts serves a fixed in-memory product list.
func WithProducts(products []*Product) Option {
	return optionFunc(func(c *catalogConfig) {
		c.products = products
	})
}

// WithFile reads products from a YAML or JSON file on every Load.
func WithFile(path string) Option {
	return optionFunc(func(c *catalogConfig) {
		c.file = path
	})
}

// WithValkey reads the catalog snapshot from Valkey.
func WithValkey(addrs ...string) Option {
	return optionFunc(func(c *catalogConfig) {
		c.driver = "valkey"
		c.addrs = addrs
	})
}

// WithRedis reads the catalog snapshot from Redis.
func WithRedis(addrs ...string) Option {
	return optionFunc(func(c *catalogConfig) {
		c.driver = "redis"
		c.addrs = addrs
	})
}

// WithPassword sets the Valkey/Redis password.
func WithPassword(password string) Option {
	return optionFunc(func(c *catalogConfig) {
		c.password = password
	})
}

// WithSnapshotKey overrides the Valkey/Redis snapshot key.
func WithSnapshotKey(key string) Option {
	return optionFunc(func(c *catalogConfig) {
		c.snapshotKey = key
	})
}

// WithLocale sets the fallback locale for labels (en, fr, ar).
func WithLocale(locale string) Option {
	return optionFunc(func(c *catalogConfig) {
		c.locale = locale
	})
}

// WithLogger enables structured logging of catalog operations.
// Pass nil to disable (default).
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *catalogConfig) {
		c.logger = l
	})
}

// WithPrometheus registers operation counts and durations on reg.
// Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *catalogConfig) {
		c.metricsReg = reg
	})
}

func defaultConfig() *catalogConfig {
	return &catalogConfig{locale: i18n.DefaultLocale}
}
