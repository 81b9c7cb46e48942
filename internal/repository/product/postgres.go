package product

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/kailas-cloud/storefront/internal/domain"
	domprod "github.com/kailas-cloud/storefront/internal/domain/product"
)

// DefaultTable is the products table when none is configured.
const DefaultTable = "products"

const queryTimeout = 5 * time.Second

// pgQuerier is the subset of *pgxpool.Pool used by the source.
type pgQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

// Postgres reads the catalog from a products table. Rows are returned in
// (recency, id) order, which becomes the relevance order.
type Postgres struct {
	db    pgQuerier
	table string
}

// NewPostgres creates a table source. table may be schema-qualified.
func NewPostgres(db pgQuerier, table string) *Postgres {
	if table == "" {
		table = DefaultTable
	}
	return &Postgres{db: db, table: pgx.Identifier(strings.Split(table, ".")).Sanitize()}
}

// EnsureSchema creates the products table if it does not exist.
func (r *Postgres) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS `+r.table+` (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			category       TEXT NOT NULL,
			brand          TEXT NOT NULL DEFAULT '',
			seller         TEXT,
			location       TEXT,
			price          NUMERIC(12,2) NOT NULL CHECK (price >= 0),
			original_price NUMERIC(12,2),
			currency       TEXT NOT NULL DEFAULT 'USD',
			rating         NUMERIC(2,1) NOT NULL DEFAULT 0,
			review_count   INTEGER NOT NULL DEFAULT 0,
			stock          INTEGER NOT NULL DEFAULT 0,
			free_shipping  BOOLEAN NOT NULL DEFAULT FALSE,
			features       TEXT[] NOT NULL DEFAULT '{}',
			recency        BIGINT NOT NULL DEFAULT 0,
			image          TEXT,
			specs          JSONB
		)
	`)
	if err != nil {
		return fmt.Errorf("create table %s: %w", r.table, err)
	}
	return nil
}

// Load selects every product.
func (r *Postgres) Load(ctx context.Context) ([]*domprod.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, r.selectSQL())
	if err != nil {
		return nil, fmt.Errorf("query %s: %w: %w", r.table, domain.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	var records []record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", r.table, domain.ErrSourceUnavailable, err)
	}
	return toProducts(records)
}

// Ping checks database connectivity.
func (r *Postgres) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	return nil
}

func (r *Postgres) selectSQL() string {
	return `
		SELECT id, name, category, brand,
		       COALESCE(seller, ''), COALESCE(location, ''),
		       price::text, original_price::text, currency,
		       rating::text, review_count, stock, free_shipping,
		       features, recency, COALESCE(image, ''), specs
		FROM ` + r.table + `
		ORDER BY recency, id`
}

// rowScanner is satisfied by pgx.Rows and pgx.Row.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one row. Numeric columns arrive as text and are parsed
// with decimal so no float rounding happens in the driver.
func scanRecord(row rowScanner) (record, error) {
	var (
		rec           record
		price, rating string
		originalPrice *string
		specs         map[string]string
	)
	err := row.Scan(
		&rec.ID, &rec.Name, &rec.Category, &rec.Brand,
		&rec.Seller, &rec.Location,
		&price, &originalPrice, &rec.Currency,
		&rating, &rec.ReviewCount, &rec.Stock, &rec.FreeShipping,
		&rec.Features, &rec.Recency, &rec.Image, &specs,
	)
	if err != nil {
		return record{}, fmt.Errorf("scan product: %w", err)
	}

	if rec.Price, err = parseNumeric(price); err != nil {
		return record{}, fmt.Errorf("product %s price: %w", rec.ID, err)
	}
	if rec.Rating, err = parseNumeric(rating); err != nil {
		return record{}, fmt.Errorf("product %s rating: %w", rec.ID, err)
	}
	if originalPrice != nil {
		v, err := parseNumeric(*originalPrice)
		if err != nil {
			return record{}, fmt.Errorf("product %s original price: %w", rec.ID, err)
		}
		rec.OriginalPrice = &v
	}
	rec.Specs = specs
	return rec, nil
}

func parseNumeric(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrInvalidProduct, err)
	}
	return d.InexactFloat64(), nil
}
