// Package models holds the dashboard's domain types: the per-tenant resources
// read from the data service and the view models assembled from them.
package models

import (
	"time"

	id "tenantdash/pkg/domain"
)

// TenantRoleOwner marks the member that owns a tenant.
const TenantRoleOwner = "owner"

// Tenant identifies a monitored account.
type Tenant struct {
	ID   id.TenantID `json:"tenant_id"`
	Slug string      `json:"slug"`
}

// Member is a user belonging to a tenant.
type Member struct {
	UserID     id.UserID   `json:"user_id"`
	TenantID   id.TenantID `json:"tenant_id"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	TenantRole string      `json:"tenant_role"`
}

// FullName joins first and last name the way the table displays owners.
func (m Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// MonitoredPerson is a person whose vitals a tenant tracks.
type MonitoredPerson struct {
	ID        string      `json:"id"`
	TenantID  id.TenantID `json:"tenant_id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
}

// IoTDevice is a gateway or sensor registered to a tenant.
type IoTDevice struct {
	ID       string      `json:"id"`
	TenantID id.TenantID `json:"tenant_id"`
	Name     string      `json:"name"`
}

// MedicalDeviceRecord is one measurement row as the data service returns it.
// The same device appears once per measurement.
type MedicalDeviceRecord struct {
	MedicalDeviceID string    `json:"medical_device_id"`
	DeviceTypeName  string    `json:"device_type_name"`
	LastMeasurement string    `json:"last_measurement"`
	MeasurementDate time.Time `json:"measurement_date"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
}
