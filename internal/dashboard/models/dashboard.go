package models

import id "tenantdash/pkg/domain"

// Resource names a per-tenant collection fetched from the data service.
type Resource string

const (
	ResourceMembers        Resource = "members"
	ResourceMonitored      Resource = "monitored_persons"
	ResourceIoTDevices     Resource = "iot_devices"
	ResourceMedicalDevices Resource = "medical_devices"
)

// Summary holds the scalar counts shown above the table.
type Summary struct {
	Accounts       int `json:"accounts"`
	Users          int `json:"users"`
	Monitored      int `json:"monitored"`
	DevicesIoT     int `json:"devices_iot"`
	MedicalDevices int `json:"medical_devices"`
}

// Issue records a degraded per-tenant result: a failed fetch or a tenant
// without an owner. The dashboard is still served.
type Issue struct {
	TenantID id.TenantID `json:"tenant_id"`
	Resource Resource    `json:"resource"`
	Reason   string      `json:"reason"`
}

// Dashboard is the aggregate produced for one session.
type Dashboard struct {
	Summary Summary     `json:"summary"`
	Rows    []TenantRow `json:"rows"`
	Issues  []Issue     `json:"issues,omitempty"`
}
