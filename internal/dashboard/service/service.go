// Package service aggregates the tenants dashboard: it resolves which tenants
// a session may see, fans out per-tenant reads to the data service, and keeps
// the resulting table views.
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	dashmetrics "tenantdash/internal/dashboard/metrics"
	"tenantdash/internal/dashboard/models"
	"tenantdash/internal/dashboard/ports"
	id "tenantdash/pkg/domain"
	dErrors "tenantdash/pkg/domain-errors"
	platformsync "tenantdash/pkg/platform/sync"
	"tenantdash/pkg/requestcontext"
)

const tracerName = "tenantdash/dashboard"

// Service is the dashboard aggregator.
type Service struct {
	data        ports.DataService
	views       ports.ViewStore
	logger      *slog.Logger
	metrics     *dashmetrics.Metrics
	tracer      trace.Tracer
	loadTimeout time.Duration
	fanOutLimit int
	pageSize    int

	// viewLocks serializes load-modify-save on a single view.
	viewLocks *platformsync.ShardedMutex
}

func New(data ports.DataService, views ports.ViewStore, opts ...Option) (*Service, error) {
	if data == nil {
		return nil, errors.New("data service is required")
	}
	if views == nil {
		return nil, errors.New("view store is required")
	}
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.tracer == nil {
		cfg.tracer = otel.Tracer(tracerName)
	}
	return &Service{
		data:        data,
		views:       views,
		logger:      cfg.logger,
		metrics:     cfg.metrics,
		tracer:      cfg.tracer,
		loadTimeout: cfg.loadTimeout,
		fanOutLimit: cfg.fanOutLimit,
		pageSize:    cfg.pageSize,
		viewLocks:   platformsync.NewShardedMutex(),
	}, nil
}

// ResolveScope returns the tenants visible to session: every tenant for the
// privileged role, otherwise the tenants the caller belongs to.
func (s *Service) ResolveScope(ctx context.Context, session id.Session) ([]models.Tenant, error) {
	if session.UserID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "session has no user")
	}

	var (
		tenants []models.Tenant
		err     error
	)
	if session.IsPrivileged() {
		tenants, err = s.data.ListAllTenants(ctx)
	} else {
		tenants, err = s.data.ListTenantsForUser(ctx, session.UserID)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to resolve tenant scope",
			"error", err,
			"privileged", session.IsPrivileged(),
			"request_id", requestcontext.RequestID(ctx),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "tenant scope lookup timed out")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve tenant scope")
	}
	return tenants, nil
}

// Load aggregates the dashboard for session. Only a failure to resolve the
// tenant scope is returned as an error; per-tenant failures count as empty
// collections and are reported in Dashboard.Issues.
func (s *Service) Load(ctx context.Context, session id.Session) (*models.Dashboard, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "dashboard.Load",
		trace.WithAttributes(attribute.Bool("dashboard.privileged", session.IsPrivileged())))
	defer span.End()

	if s.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.loadTimeout)
		defer cancel()
	}

	tenants, err := s.ResolveScope(ctx, session)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("dashboard.tenants", len(tenants)))

	// Each stage writes only its own variable; they are read after Wait.
	var (
		members   []result[[]models.Member]
		monitored []result[[]models.MonitoredPerson]
		iot       []result[[]models.IoTDevice]
		medical   []result[[]models.MedicalDeviceRecord]
	)
	var g errgroup.Group
	g.Go(func() error {
		members = collect(ctx, s, models.ResourceMembers, tenants, s.memberLister(session))
		return nil
	})
	g.Go(func() error {
		monitored = collect(ctx, s, models.ResourceMonitored, tenants, s.data.ListMonitoredPersons)
		return nil
	})
	g.Go(func() error {
		iot = collect(ctx, s, models.ResourceIoTDevices, tenants, s.data.ListIoTDevices)
		return nil
	})
	g.Go(func() error {
		medical = collect(ctx, s, models.ResourceMedicalDevices, tenants, s.data.ListMedicalDevices)
		return nil
	})
	_ = g.Wait() // stages never fail; failures live in the results

	rows, rowIssues := s.buildRows(ctx, tenants, members, iot)
	devices := s.medicalDevices(medical)

	dashboard := &models.Dashboard{
		Summary: models.Summary{
			Accounts:       len(tenants),
			Users:          sumLengths(members),
			Monitored:      sumLengths(monitored),
			DevicesIoT:     sumLengths(iot),
			MedicalDevices: len(devices),
		},
		Rows: rows,
	}
	dashboard.Issues = appendIssues(dashboard.Issues, tenants, models.ResourceMembers, members)
	dashboard.Issues = appendIssues(dashboard.Issues, tenants, models.ResourceMonitored, monitored)
	dashboard.Issues = appendIssues(dashboard.Issues, tenants, models.ResourceIoTDevices, iot)
	dashboard.Issues = appendIssues(dashboard.Issues, tenants, models.ResourceMedicalDevices, medical)
	dashboard.Issues = append(dashboard.Issues, rowIssues...)

	span.SetAttributes(attribute.Int("dashboard.issues", len(dashboard.Issues)))
	if s.metrics != nil {
		s.metrics.ObserveLoad(start, len(tenants))
	}
	s.logger.InfoContext(ctx, "dashboard aggregated",
		"tenants", len(tenants),
		"issues", len(dashboard.Issues),
		"duration_ms", time.Since(start).Milliseconds(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return dashboard, nil
}

// memberLister picks the privileged or caller-scoped member listing.
func (s *Service) memberLister(session id.Session) func(context.Context, id.TenantID) ([]models.Member, error) {
	if session.IsPrivileged() {
		return s.data.ListTenantMembers
	}
	return func(ctx context.Context, tenantID id.TenantID) ([]models.Member, error) {
		return s.data.ListTenantMembersForCaller(ctx, session.UserID, tenantID)
	}
}

// buildRows assembles one row per tenant, in scope order, from the member and
// IoT device fetches already made for the counts.
func (s *Service) buildRows(
	ctx context.Context,
	tenants []models.Tenant,
	members []result[[]models.Member],
	iot []result[[]models.IoTDevice],
) ([]models.TenantRow, []models.Issue) {
	rows := make([]models.TenantRow, 0, len(tenants))
	var issues []models.Issue
	for i, tenant := range tenants {
		row, err := models.NewTenantRow(tenant, members[i].value, iot[i].value)
		// A failed member fetch is already reported; only flag real missing owners.
		if err != nil && members[i].err == nil {
			s.logger.WarnContext(ctx, "tenant row without owner",
				"tenant_id", tenant.ID,
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
			issues = append(issues, models.Issue{
				TenantID: tenant.ID,
				Resource: models.ResourceMembers,
				Reason:   err.Error(),
			})
		}
		rows = append(rows, row)
	}
	return rows, issues
}

// medicalDevices flattens every tenant's records and deduplicates them once,
// across the whole scope.
func (s *Service) medicalDevices(results []result[[]models.MedicalDeviceRecord]) []models.MedicalDevice {
	var all []models.MedicalDevice
	for _, r := range results {
		for _, rec := range r.value {
			all = append(all, models.NewMedicalDevice(rec))
		}
	}
	unique := models.DedupeMedicalDevices(all)
	if s.metrics != nil {
		s.metrics.AddDeduplicated(len(all) - len(unique))
	}
	return unique
}
