package models

import id "tenantdash/pkg/domain"

// Client routes the dashboard hands back to the UI.
const (
	TenantDetailsPathPrefix = "/admin/see-tenant-dashboard/"
	SignInPath              = "/auth/sign-in"
	CreateTenantDialogName  = "create-tenant"
)

// Navigation tells the client where to go next.
type Navigation struct {
	Navigate string `json:"navigate"`
}

// Dialog tells the client which modal to open and how to size it.
type Dialog struct {
	Dialog string `json:"dialog"`
	Width  string `json:"width"`
	Height string `json:"height"`
}

// SeeDetails navigates to the per-tenant dashboard.
func SeeDetails(tenantID id.TenantID) Navigation {
	return Navigation{Navigate: TenantDetailsPathPrefix + tenantID.String()}
}

// CreateTenantDialog describes the modal used to create a tenant.
func CreateTenantDialog() Dialog {
	return Dialog{Dialog: CreateTenantDialogName, Width: "30%", Height: "auto"}
}

// Logout sends the client back to sign-in.
func Logout() Navigation {
	return Navigation{Navigate: SignInPath}
}
