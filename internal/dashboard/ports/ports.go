// Package ports defines the dashboard's outbound dependencies.
package ports

import (
	"context"

	"tenantdash/internal/dashboard/models"
	"tenantdash/internal/dashboard/view"
	id "tenantdash/pkg/domain"
)

// DataService reads tenants and their per-tenant collections from the
// platform backend. Implementations never mutate backend state on behalf of
// the dashboard. A nil slice with a nil error is an empty collection.
type DataService interface {
	ListAllTenants(ctx context.Context) ([]models.Tenant, error)
	ListTenantsForUser(ctx context.Context, userID id.UserID) ([]models.Tenant, error)

	// ListTenantMembers is the privileged variant and sees every member.
	ListTenantMembers(ctx context.Context, tenantID id.TenantID) ([]models.Member, error)
	// ListTenantMembersForCaller only returns members when callerID belongs to the tenant.
	ListTenantMembersForCaller(ctx context.Context, callerID id.UserID, tenantID id.TenantID) ([]models.Member, error)

	ListMonitoredPersons(ctx context.Context, tenantID id.TenantID) ([]models.MonitoredPerson, error)
	ListIoTDevices(ctx context.Context, tenantID id.TenantID) ([]models.IoTDevice, error)
	ListMedicalDevices(ctx context.Context, tenantID id.TenantID) ([]models.MedicalDeviceRecord, error)
}

// ViewStore keeps dashboard views between requests. Find returns
// sentinel.ErrNotFound for unknown or expired views.
type ViewStore interface {
	Save(ctx context.Context, v *view.View) error
	Find(ctx context.Context, viewID id.ViewID) (*view.View, error)
	Delete(ctx context.Context, viewID id.ViewID) error
}
