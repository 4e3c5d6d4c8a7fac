package data

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	dashmetrics "tenantdash/internal/dashboard/metrics"
	"tenantdash/internal/dashboard/models"
	"tenantdash/internal/dashboard/ports"
	id "tenantdash/pkg/domain"
	"tenantdash/pkg/platform/circuit"
	"tenantdash/pkg/requestcontext"
)

// ResilientStore wraps a data service with circuit breaker protection. Every
// read still goes to the delegate; once the circuit opens, a failed read is
// answered with the last good result for the same call when one is cached.
type ResilientStore struct {
	delegate ports.DataService
	breaker  *circuit.Breaker
	cache    *resultCache
	logger   *slog.Logger
	metrics  *dashmetrics.Metrics
}

// ResilientOption configures the resilient store.
type ResilientOption func(*ResilientStore)

// WithBreaker replaces the default breaker (5 failures to open, 3 successes to close).
func WithBreaker(b *circuit.Breaker) ResilientOption {
	return func(r *ResilientStore) {
		r.breaker = b
	}
}

// WithFallbackTTL bounds how stale a fallback result may be. Default 5 minutes.
func WithFallbackTTL(ttl time.Duration) ResilientOption {
	return func(r *ResilientStore) {
		r.cache = newResultCache(ttl)
	}
}

func WithResilientMetrics(m *dashmetrics.Metrics) ResilientOption {
	return func(r *ResilientStore) {
		r.metrics = m
	}
}

func NewResilient(delegate ports.DataService, logger *slog.Logger, opts ...ResilientOption) *ResilientStore {
	r := &ResilientStore{
		delegate: delegate,
		breaker:  circuit.New("data_service"),
		cache:    newResultCache(5 * time.Minute),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CircuitState reports "open" or "closed" for the data circuit.
func (r *ResilientStore) CircuitState() string {
	return r.breaker.State().String()
}

func (r *ResilientStore) ListAllTenants(ctx context.Context) ([]models.Tenant, error) {
	return guard(ctx, r, "tenants_all", "", func() ([]models.Tenant, error) {
		return r.delegate.ListAllTenants(ctx)
	})
}

func (r *ResilientStore) ListTenantsForUser(ctx context.Context, userID id.UserID) ([]models.Tenant, error) {
	return guard(ctx, r, "tenants_for_user", userID.String(), func() ([]models.Tenant, error) {
		return r.delegate.ListTenantsForUser(ctx, userID)
	})
}

func (r *ResilientStore) ListTenantMembers(ctx context.Context, tenantID id.TenantID) ([]models.Member, error) {
	return guard(ctx, r, "members", tenantID.String(), func() ([]models.Member, error) {
		return r.delegate.ListTenantMembers(ctx, tenantID)
	})
}

func (r *ResilientStore) ListTenantMembersForCaller(ctx context.Context, callerID id.UserID, tenantID id.TenantID) ([]models.Member, error) {
	return guard(ctx, r, "members_for_caller", callerID.String()+"/"+tenantID.String(), func() ([]models.Member, error) {
		return r.delegate.ListTenantMembersForCaller(ctx, callerID, tenantID)
	})
}

func (r *ResilientStore) ListMonitoredPersons(ctx context.Context, tenantID id.TenantID) ([]models.MonitoredPerson, error) {
	return guard(ctx, r, "monitored_persons", tenantID.String(), func() ([]models.MonitoredPerson, error) {
		return r.delegate.ListMonitoredPersons(ctx, tenantID)
	})
}

func (r *ResilientStore) ListIoTDevices(ctx context.Context, tenantID id.TenantID) ([]models.IoTDevice, error) {
	return guard(ctx, r, "iot_devices", tenantID.String(), func() ([]models.IoTDevice, error) {
		return r.delegate.ListIoTDevices(ctx, tenantID)
	})
}

func (r *ResilientStore) ListMedicalDevices(ctx context.Context, tenantID id.TenantID) ([]models.MedicalDeviceRecord, error) {
	return guard(ctx, r, "medical_devices", tenantID.String(), func() ([]models.MedicalDeviceRecord, error) {
		return r.delegate.ListMedicalDevices(ctx, tenantID)
	})
}

func guard[T any](ctx context.Context, r *ResilientStore, call, subject string, fetch func() ([]T, error)) ([]T, error) {
	key := call + ":" + subject

	out, err := fetch()
	if err == nil {
		r.recordSuccess(ctx)
		r.cache.set(key, out)
		return out, nil
	}

	// The caller gave up; that says nothing about the delegate's health.
	if ctx.Err() != nil {
		return nil, err
	}

	if !r.recordFailure(ctx, err) {
		return nil, err
	}
	cached, ok := r.cache.get(key)
	if !ok {
		return nil, err
	}
	r.logger.WarnContext(ctx, "circuit open, serving last known result",
		"call", call,
		"subject", subject,
		"circuit", r.breaker.Name(),
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	if r.metrics != nil {
		r.metrics.IncrementFallback(call)
	}
	return slices.Clone(cached.([]T)), nil
}

func (r *ResilientStore) recordFailure(ctx context.Context, err error) (useFallback bool) {
	useFallback, change := r.breaker.RecordFailure()
	if change.Opened {
		r.logger.ErrorContext(ctx, "circuit breaker opened",
			"circuit", r.breaker.Name(),
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		if r.metrics != nil {
			r.metrics.SetCircuitOpen(true)
		}
	}
	return useFallback
}

func (r *ResilientStore) recordSuccess(ctx context.Context) {
	_, change := r.breaker.RecordSuccess()
	if change.Closed {
		r.logger.InfoContext(ctx, "circuit breaker closed",
			"circuit", r.breaker.Name(),
			"open_for", change.OpenFor,
			"request_id", requestcontext.RequestID(ctx),
		)
		if r.metrics != nil {
			r.metrics.SetCircuitOpen(false)
		}
	}
}

type cachedResult struct {
	value    any
	storedAt time.Time
}

// resultCache keeps the last good result per call and subject.
type resultCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cachedResult
	now     func() time.Time
}

func newResultCache(ttl time.Duration) *resultCache {
	return &resultCache{
		ttl:     ttl,
		entries: make(map[string]cachedResult),
		now:     time.Now,
	}
}

func (c *resultCache) set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cachedResult{value: value, storedAt: c.now()}
}

func (c *resultCache) get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || c.now().Sub(entry.storedAt) > c.ttl {
		return nil, false
	}
	return entry.value, true
}

var _ ports.DataService = (*ResilientStore)(nil)
