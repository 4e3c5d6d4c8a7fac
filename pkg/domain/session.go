package domain

// Role is the platform role carried by a session.
type Role string

// RoleService grants visibility across every tenant.
const RoleService Role = "service_role"

// Session identifies the caller of a dashboard operation. It is supplied by the
// auth service and never modified here.
type Session struct {
	UserID UserID
	Role   Role
}

// IsPrivileged reports whether the session may see all tenants.
func (s Session) IsPrivileged() bool {
	return s.Role == RoleService
}
