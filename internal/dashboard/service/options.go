package service

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	dashmetrics "tenantdash/internal/dashboard/metrics"
)

// serviceConfig holds optional dependencies and tuning.
type serviceConfig struct {
	logger      *slog.Logger
	metrics     *dashmetrics.Metrics
	tracer      trace.Tracer
	loadTimeout time.Duration
	fanOutLimit int
	pageSize    int
}

// Option configures a Service.
type Option func(c *serviceConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = logger
	}
}

func WithMetrics(m *dashmetrics.Metrics) Option {
	return func(c *serviceConfig) {
		c.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(c *serviceConfig) {
		c.tracer = t
	}
}

// WithLoadTimeout bounds a whole dashboard aggregation. Zero disables the bound.
func WithLoadTimeout(d time.Duration) Option {
	return func(c *serviceConfig) {
		c.loadTimeout = d
	}
}

// WithFanOutLimit caps concurrent data service calls per resource. Zero or
// negative means unbounded.
func WithFanOutLimit(n int) Option {
	return func(c *serviceConfig) {
		c.fanOutLimit = n
	}
}

func WithPageSize(n int) Option {
	return func(c *serviceConfig) {
		c.pageSize = n
	}
}
