package product

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/kailas-cloud/storefront/internal/domain"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	ctx := context.Background()
	src, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = src.Close() })
	if err := src.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	return src
}

func TestSQLite_ImportAndLoad(t *testing.T) {
	ctx := context.Background()
	src := openTestSQLite(t)

	fixture, err := NewFixture().Load(ctx)
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	// Reverse the insert order: Load must still return recency order.
	reversed := slices.Clone(fixture)
	slices.Reverse(reversed)
	if err := src.Import(ctx, reversed); err != nil {
		t.Fatalf("Import: %v", err)
	}

	got, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(fixture) {
		t.Fatalf("got %d products, want %d", len(got), len(fixture))
	}
	for i, p := range got {
		want := fixture[i]
		if p.ID() != want.ID() || p.Price() != want.Price() || p.Rating() != want.Rating() {
			t.Errorf("product %d = %s/%v/%v, want %s/%v/%v",
				i, p.ID(), p.Price(), p.Rating(), want.ID(), want.Price(), want.Rating())
		}
		if (p.OriginalPrice() == nil) != (want.OriginalPrice() == nil) {
			t.Errorf("product %s original price presence differs", p.ID())
		}
		if p.FreeShipping() != want.FreeShipping() || p.Stock() != want.Stock() {
			t.Errorf("product %s shipping/stock differs", p.ID())
		}
		if !slices.Equal(p.Features(), want.Features()) {
			t.Errorf("product %s features = %v, want %v", p.ID(), p.Features(), want.Features())
		}
	}
}

func TestSQLite_ImportIsUpsert(t *testing.T) {
	ctx := context.Background()
	src := openTestSQLite(t)

	fixture, err := NewFixture().Load(ctx)
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	for range 2 {
		if err := src.Import(ctx, fixture); err != nil {
			t.Fatalf("Import: %v", err)
		}
	}
	got, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 6 {
		t.Errorf("got %d products after re-import, want 6", len(got))
	}
}

func TestSQLite_InvalidRow(t *testing.T) {
	ctx := context.Background()
	src := openTestSQLite(t)

	_, err := src.db.ExecContext(ctx, `
		INSERT INTO products (id, name, category, price, rating)
		VALUES ('x', 'Broken', 'electronics', 'cheap', '4')`)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	_, err = src.Load(ctx)
	if !errors.Is(err, domain.ErrInvalidProduct) {
		t.Errorf("error = %v, want ErrInvalidProduct", err)
	}
}

func TestSQLite_Ping(t *testing.T) {
	src := openTestSQLite(t)
	if err := src.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}
