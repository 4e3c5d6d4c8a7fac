package models

import (
	"strconv"
	"strings"

	id "tenantdash/pkg/domain"
	dErrors "tenantdash/pkg/domain-errors"
)

// ErrNoOwner reports a tenant whose member list has no owner.
var ErrNoOwner = dErrors.New(dErrors.CodeInvariantViolation, "tenant has no owner member")

// TenantRow is one line of the tenants table.
type TenantRow struct {
	ID              id.TenantID `json:"id"`
	Account         string      `json:"account"`
	Owner           string      `json:"owner"`
	Users           int         `json:"users"`
	Devices         int         `json:"devices"`
	DeviceIoTStatus Status      `json:"device_iot_status"`
	Status          Status      `json:"status"`
}

// FindOwner returns the first member with the owner role.
func FindOwner(members []Member) (Member, bool) {
	for _, m := range members {
		if m.TenantRole == TenantRoleOwner {
			return m, true
		}
	}
	return Member{}, false
}

// NewTenantRow assembles a row from a tenant's members and IoT devices.
// When no owner exists the row is still returned, with an empty owner, along
// with ErrNoOwner.
func NewTenantRow(tenant Tenant, members []Member, devices []IoTDevice) (TenantRow, error) {
	row := TenantRow{
		ID:              tenant.ID,
		Account:         tenant.Slug,
		Users:           len(members),
		Devices:         len(devices),
		DeviceIoTStatus: StatusUnknown,
		Status:          StatusUnknown,
	}
	owner, ok := FindOwner(members)
	if !ok {
		return row, ErrNoOwner
	}
	row.Owner = owner.FullName()
	return row, nil
}

// filterSeparator keeps adjacent field values from matching across boundaries.
const filterSeparator = "◬"

// FilterText is the lowercased, serialized row content matched by table filters.
func (r TenantRow) FilterText() string {
	fields := []string{
		r.ID.String(),
		r.Account,
		r.Owner,
		strconv.Itoa(r.Users),
		strconv.Itoa(r.Devices),
		string(r.DeviceIoTStatus),
		string(r.Status),
	}
	return strings.ToLower(strings.Join(fields, filterSeparator) + filterSeparator)
}
