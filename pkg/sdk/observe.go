package knowhub

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/knowhub/internal/domain"
	"github.com/kailas-cloud/knowhub/internal/metrics"
)

// Operation outcomes reported by the SDK.
const (
	statusOK      = "ok"
	statusInvalid = "invalid"
	statusError   = "error"
)

// sdkMetrics holds prometheus metrics registered for the SDK.
type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Total SDK operations by operation, entity and status.",
		}, []string{"operation", "entity", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
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

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("knowhub: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("knowhub: register metric: %w", err)
	}
	return nil
}

// observer provides logging and metrics for SDK operations.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

func classify(err error) string {
	if err == nil {
		return statusOK
	}
	if _, ok := domain.AsValidationError(err); ok || errors.Is(err, domain.ErrUnknownEntity) {
		return statusInvalid
	}
	return statusError
}

func (o *observer) observe(op, entity string, start time.Time, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)
	status := classify(err)

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(op, entity, status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	switch status {
	case statusError:
		o.logger.Warn("operation failed", "op", op, "entity", entity, "duration", dur, "error", err)
	case statusInvalid:
		o.logger.Debug("operation rejected", "op", op, "entity", entity, "error", err)
	default:
		o.logger.Debug("operation completed", "op", op, "entity", entity, "duration", dur)
	}
}
