package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Catalog source drivers.
const (
	SourceFixture  = "fixture"
	SourceFile     = "file"
	SourceKV       = "kv"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// Config holds the storefront API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Database DatabaseConfig `yaml:"database"`
	Postgres PostgresConfig `yaml:"postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings. Keys guard the admin routes.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CatalogConfig selects the product source and query defaults.
type CatalogConfig struct {
	Source          string `yaml:"source"`       // fixture, file, kv, postgres, sqlite (default: fixture)
	File            string `yaml:"file"`         // products file for the file source
	SnapshotKey     string `yaml:"snapshot_key"` // key for the kv source
	SeedOnStart     bool   `yaml:"seed_on_start"`
	DefaultPageSize int    `yaml:"default_page_size"`
	MaxPageSize     int    `yaml:"max_page_size"`
	RelatedLimit    int    `yaml:"related_limit"`
	DefaultLocale   string `yaml:"default_locale"`
}

// DatabaseConfig holds Valkey/Redis connection settings for the kv source.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // valkey, redis (default: valkey)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// PostgresConfig holds settings for the postgres source.
type PostgresConfig struct {
	DSN          string `yaml:"dsn"`
	Table        string `yaml:"table"`
	MaxConns     int32  `yaml:"max_conns"`
	EnsureSchema bool   `yaml:"ensure_schema"`
}

// SQLiteConfig holds settings for the sqlite source.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A .env file in the working directory, when present, is loaded first; it never
// overrides variables already set in the process environment.
func Load(env string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Catalog.Source == "" {
		c.Catalog.Source = SourceFixture
	}
	if c.Catalog.SnapshotKey == "" {
		c.Catalog.SnapshotKey = "storefront:catalog:products"
	}
	if c.Catalog.DefaultPageSize <= 0 {
		c.Catalog.DefaultPageSize = 20
	}
	if c.Catalog.MaxPageSize <= 0 {
		c.Catalog.MaxPageSize = 100
	}
	if c.Catalog.RelatedLimit <= 0 {
		c.Catalog.RelatedLimit = 4
	}
	if c.Catalog.DefaultLocale == "" {
		c.Catalog.DefaultLocale = "en"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "valkey"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Postgres.Table == "" {
		c.Postgres.Table = "products"
	}
	if c.Postgres.MaxConns <= 0 {
		c.Postgres.MaxConns = 4
	}
}

var supportedLocales = []string{"en", "fr", "ar"}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Catalog.MaxPageSize > 100 {
		return fmt.Errorf("catalog.max_page_size must be at most 100, got %d", c.Catalog.MaxPageSize)
	}
	if c.Catalog.DefaultPageSize > c.Catalog.MaxPageSize {
		return fmt.Errorf("catalog.default_page_size (%d) exceeds max_page_size (%d)",
			c.Catalog.DefaultPageSize, c.Catalog.MaxPageSize)
	}
	if !slices.Contains(supportedLocales, c.Catalog.DefaultLocale) {
		return fmt.Errorf("catalog.default_locale must be one of %v, got %q", supportedLocales, c.Catalog.DefaultLocale)
	}

	switch c.Catalog.Source {
	case SourceFixture:
	case SourceFile:
		if c.Catalog.File == "" {
			return fmt.Errorf("catalog.file is required for source %q", SourceFile)
		}
	case SourceKV:
		if c.Database.Driver != "valkey" && c.Database.Driver != "redis" {
			return fmt.Errorf("database.driver must be \"valkey\" or \"redis\", got %q", c.Database.Driver)
		}
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for source %q", SourceKV)
		}
	case SourcePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("postgres.dsn is required for source %q", SourcePostgres)
		}
	case SourceSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("sqlite.path is required for source %q", SourceSQLite)
		}
	default:
		return fmt.Errorf("catalog.source must be one of fixture, file, kv, postgres, sqlite, got %q", c.Catalog.Source)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// Relative to the source file, for tests run from package directories.
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
