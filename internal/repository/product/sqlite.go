package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	// Registers the pure-Go "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	"github.com/kailas-cloud/storefront/internal/domain"
	domprod "github.com/kailas-cloud/storefront/internal/domain/product"
)

// SQLite reads the catalog from a products table in a local database file.
// Money and rating columns are TEXT holding decimal strings; features and
// specs are JSON text.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&_pragma=busy_timeout(5000)"
	} else {
		dsn += "?_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sqlite %s: %w: %w", path, domain.ErrSourceUnavailable, err)
	}
	return &SQLite{db: db, path: path}, nil
}

// Close releases the database handle.
func (r *SQLite) Close() error { return r.db.Close() }

// EnsureSchema creates the products table if it does not exist.
func (r *SQLite) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			category       TEXT NOT NULL,
			brand          TEXT NOT NULL DEFAULT '',
			seller         TEXT NOT NULL DEFAULT '',
			location       TEXT NOT NULL DEFAULT '',
			price          TEXT NOT NULL,
			original_price TEXT,
			currency       TEXT NOT NULL DEFAULT 'USD',
			rating         TEXT NOT NULL DEFAULT '0',
			review_count   INTEGER NOT NULL DEFAULT 0,
			stock          INTEGER NOT NULL DEFAULT 0,
			free_shipping  INTEGER NOT NULL DEFAULT 0,
			features       TEXT NOT NULL DEFAULT '[]',
			recency        INTEGER NOT NULL DEFAULT 0,
			image          TEXT NOT NULL DEFAULT '',
			specs          TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("create sqlite table: %w", err)
	}
	return nil
}

// Import upserts products in a single transaction.
func (r *SQLite) Import(ctx context.Context, products []*domprod.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO products (
			id, name, category, brand, seller, location, price, original_price,
			currency, rating, review_count, stock, free_shipping, features,
			recency, image, specs
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare import: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, p := range products {
		rec := recordFromProduct(p)
		features, err := json.Marshal(rec.Features)
		if err != nil {
			return fmt.Errorf("encode features %s: %w", rec.ID, err)
		}
		var specs *string
		if rec.Specs != nil {
			b, err := json.Marshal(rec.Specs)
			if err != nil {
				return fmt.Errorf("encode specs %s: %w", rec.ID, err)
			}
			s := string(b)
			specs = &s
		}
		var orig *string
		if rec.OriginalPrice != nil {
			s := decimal.NewFromFloat(*rec.OriginalPrice).String()
			orig = &s
		}
		_, err = stmt.ExecContext(ctx,
			rec.ID, rec.Name, rec.Category, rec.Brand, rec.Seller, rec.Location,
			decimal.NewFromFloat(rec.Price).String(), orig, rec.Currency,
			decimal.NewFromFloat(rec.Rating).String(), rec.ReviewCount, rec.Stock, rec.FreeShipping,
			string(features), rec.Recency, rec.Image, specs,
		)
		if err != nil {
			return fmt.Errorf("insert %s: %w", rec.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

// Load selects every product in (recency, id) order.
func (r *SQLite) Load(ctx context.Context) ([]*domprod.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, category, brand, seller, location,
		       price, original_price, currency, rating, review_count, stock,
		       free_shipping, features, recency, image, specs
		FROM products
		ORDER BY recency, id`)
	if err != nil {
		return nil, fmt.Errorf("query sqlite %s: %w: %w", r.path, domain.ErrSourceUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	var records []record
	for rows.Next() {
		rec, err := scanSQLiteRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read sqlite %s: %w: %w", r.path, domain.ErrSourceUnavailable, err)
	}
	return toProducts(records)
}

// Ping checks the database handle.
func (r *SQLite) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	return nil
}

func scanSQLiteRecord(row rowScanner) (record, error) {
	var (
		rec                  record
		price, rating        string
		originalPrice, specs sql.NullString
		features             string
	)
	err := row.Scan(
		&rec.ID, &rec.Name, &rec.Category, &rec.Brand, &rec.Seller, &rec.Location,
		&price, &originalPrice, &rec.Currency, &rating, &rec.ReviewCount, &rec.Stock,
		&rec.FreeShipping, &features, &rec.Recency, &rec.Image, &specs,
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
	if originalPrice.Valid {
		v, err := parseNumeric(originalPrice.String)
		if err != nil {
			return record{}, fmt.Errorf("product %s original price: %w", rec.ID, err)
		}
		rec.OriginalPrice = &v
	}
	if err := json.Unmarshal([]byte(features), &rec.Features); err != nil {
		return record{}, fmt.Errorf("product %s features: %w: %w", rec.ID, domain.ErrInvalidProduct, err)
	}
	if specs.Valid {
		if err := json.Unmarshal([]byte(specs.String), &rec.Specs); err != nil {
			return record{}, fmt.Errorf("product %s specs: %w: %w", rec.ID, domain.ErrInvalidProduct, err)
		}
	}
	return rec, nil
}
