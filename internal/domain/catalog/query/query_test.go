package query

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/storefront/internal/domain/catalog/filter"
	"github.com/kailas-cloud/storefront/internal/domain/catalog/sortkey"
)

func TestNew_Defaults(t *testing.T) {
	q, err := New("  iphone ", filter.Set{}, "", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Term() != "iphone" {
		t.Errorf("Term() = %q, want trimmed", q.Term())
	}
	if q.Sort() != sortkey.Relevance {
		t.Errorf("Sort() = %q, want relevance (default)", q.Sort())
	}
	if q.Page() != DefaultPage {
		t.Errorf("Page() = %d", q.Page())
	}
	if q.PerPage() != DefaultPerPage {
		t.Errorf("PerPage() = %d", q.PerPage())
	}
	if q.Offset() != 0 {
		t.Errorf("Offset() = %d", q.Offset())
	}
}

func TestNew_ExplicitValues(t *testing.T) {
	f := filter.Set{}.Add(filter.Categories, "electronics")
	q, err := New("", f, sortkey.PriceAsc, 3, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Term() != "" {
		t.Errorf("Term() = %q", q.Term())
	}
	if !q.Filters().Has(filter.Categories) {
		t.Error("Filters() lost categories")
	}
	if q.Sort() != sortkey.PriceAsc {
		t.Errorf("Sort() = %q", q.Sort())
	}
	if q.Offset() != 20 {
		t.Errorf("Offset() = %d, want 20", q.Offset())
	}
}

func TestNew_PerPageClamped(t *testing.T) {
	q, err := New("", filter.Set{}, "", 1, MaxPerPage+50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.PerPage() != MaxPerPage {
		t.Errorf("PerPage() = %d, want %d", q.PerPage(), MaxPerPage)
	}
}

func TestNew_TermTooLong(t *testing.T) {
	_, err := New(strings.Repeat("x", MaxTermLength+1), filter.Set{}, "", 1, 10)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "too long") {
		t.Errorf("error = %q", err)
	}
}

func TestNew_TermAtMaxLength(t *testing.T) {
	if _, err := New(strings.Repeat("é", MaxTermLength), filter.Set{}, "", 1, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNew_InvalidSort(t *testing.T) {
	_, err := New("q", filter.Set{}, "price-low", 1, 10)
	if err == nil {
		t.Fatal("expected error for alias passed as key")
	}
	if !strings.Contains(err.Error(), "invalid sort key") {
		t.Errorf("error = %q", err)
	}
}
