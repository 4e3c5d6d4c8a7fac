package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"tenantdash/internal/dashboard/models"
	id "tenantdash/pkg/domain"
	"tenantdash/pkg/requestcontext"
)

// result is the outcome of one per-tenant fetch. Failures stay inside the
// batch instead of cancelling siblings.
type result[T any] struct {
	value T
	err   error
}

// fanOut calls fetch once per tenant, at most limit at a time, and returns the
// outcomes in tenant order. Each goroutine writes only its own slot.
func fanOut[T any](ctx context.Context, limit int, tenants []models.Tenant, fetch func(context.Context, id.TenantID) (T, error)) []result[T] {
	results := make([]result[T], len(tenants))
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, tenant := range tenants {
		g.Go(func() error {
			v, err := fetch(ctx, tenant.ID)
			results[i] = result[T]{value: v, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// collect fans out one resource across tenants under its own span, logging
// and counting every failed fetch.
func collect[T any](
	ctx context.Context,
	s *Service,
	resource models.Resource,
	tenants []models.Tenant,
	fetch func(context.Context, id.TenantID) ([]T, error),
) []result[[]T] {
	ctx, span := s.tracer.Start(ctx, "dashboard.fetch",
		trace.WithAttributes(
			attribute.String("dashboard.resource", string(resource)),
			attribute.Int("dashboard.tenants", len(tenants)),
		))
	defer span.End()

	start := time.Now()
	results := fanOut(ctx, s.fanOutLimit, tenants, fetch)

	failed := 0
	for i, r := range results {
		if r.err == nil {
			continue
		}
		failed++
		results[i].value = nil
		s.logger.WarnContext(ctx, "tenant fetch failed, counting as empty",
			"resource", resource,
			"tenant_id", tenants[i].ID,
			"error", r.err,
			"request_id", requestcontext.RequestID(ctx),
		)
		if s.metrics != nil {
			s.metrics.IncrementFetchFailure(string(resource))
		}
	}

	span.SetAttributes(
		attribute.Int("dashboard.failed", failed),
		attribute.Int64("dashboard.duration_ms", time.Since(start).Milliseconds()),
	)
	if failed > 0 {
		span.SetStatus(codes.Error, "partial fetch failure")
	}
	return results
}

func sumLengths[T any](results []result[[]T]) int {
	total := 0
	for _, r := range results {
		total += len(r.value)
	}
	return total
}

func appendIssues[T any](issues []models.Issue, tenants []models.Tenant, resource models.Resource, results []result[T]) []models.Issue {
	for i, r := range results {
		if r.err != nil {
			issues = append(issues, models.Issue{
				TenantID: tenants[i].ID,
				Resource: resource,
				Reason:   r.err.Error(),
			})
		}
	}
	return issues
}
