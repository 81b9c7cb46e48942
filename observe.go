package storefront

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/storefront/internal/metrics"
)

// libraryMetrics are the operation metrics of an embedded Catalog.
type libraryMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func newLibraryMetrics(reg prometheus.Registerer) (*libraryMetrics, error) {
	m := &libraryMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "library",
			Name:      "operations_total",
			Help:      "Catalog library operations by type and status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: "library",
			Name:      "operation_duration_seconds",
			Help:      "Catalog library operation duration in seconds.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"operation"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers c or adopts the identical collector already on reg,
// so several Catalogs can share one registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("storefront: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("storefront: register metric: %w", err)
	}
	return nil
}

// observer logs and measures Catalog operations. A nil observer is a no-op.
type observer struct {
	logger  *slog.Logger
	metrics *libraryMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *libraryMetrics
	if reg != nil {
		var err error
		if m, err = newLibraryMetrics(reg); err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	if o.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		o.metrics.operations.WithLabelValues(op, status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	if err != nil {
		o.logger.Warn("catalog operation failed", "op", op, "duration", dur, "error", err)
		return
	}
	o.logger.Debug("catalog operation", "op", op, "duration", dur)
}
