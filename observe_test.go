package storefront

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCatalog_Observability(t *testing.T) {
	reg := prometheus.NewRegistry()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c, err := New(context.Background(), WithPrometheus(reg), WithLogger(logger))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	if _, err := c.Query().Term("sony").All(ctx); err != nil {
		t.Fatalf("All: %v", err)
	}
	if _, err := c.Product(ctx, "missing"); err == nil {
		t.Fatal("expected not found")
	}

	ops := c.obs.metrics.operations
	if got := testutil.ToFloat64(ops.WithLabelValues("query.all", "ok")); got != 1 {
		t.Errorf("query.all ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ops.WithLabelValues("product", "error")); got != 1 {
		t.Errorf("product error = %v, want 1", got)
	}

	out := buf.String()
	if !strings.Contains(out, "op=query.all") || !strings.Contains(out, "catalog operation failed") {
		t.Errorf("log output missing operations:\n%s", out)
	}
}

func TestNewLibraryMetrics_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := newLibraryMetrics(reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := newLibraryMetrics(reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.operations != second.operations {
		t.Error("second registration should reuse the existing collector")
	}
}

func TestObserver_NilIsNoop(t *testing.T) {
	var o *observer
	o.observe("query.all", time.Now(), nil)
}
