// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "tenantdash/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing UserID where TenantID is expected.
type (
	UserID   uuid.UUID
	TenantID uuid.UUID
	ViewID   uuid.UUID
)

// Parse functions - use at trust boundaries (handlers, token claims).

func ParseUserID(s string) (UserID, error) {
	id, err := parseUUID(s, "user ID")
	return UserID(id), err
}

func ParseTenantID(s string) (TenantID, error) {
	id, err := parseUUID(s, "tenant ID")
	return TenantID(id), err
}

func ParseViewID(s string) (ViewID, error) {
	id, err := parseUUID(s, "view ID")
	return ViewID(id), err
}

// NewViewID generates a random view identifier.
func NewViewID() ViewID { return ViewID(uuid.New()) }

func (id UserID) String() string   { return uuid.UUID(id).String() }
func (id TenantID) String() string { return uuid.UUID(id).String() }
func (id ViewID) String() string   { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id TenantID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ViewID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }

// Text marshaling keeps IDs readable in JSON payloads and cached views.

func (id UserID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id TenantID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id ViewID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error   { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *TenantID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ViewID) UnmarshalText(b []byte) error   { return (*uuid.UUID)(id).UnmarshalText(b) }

// parseUUID is the shared validation logic. Nil UUIDs are rejected.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	if id == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return id, nil
}
