package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "tenantdash/pkg/domain-errors"
)

func TestParseIDs(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseTenantID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseUserID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseViewID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		raw := uuid.New()
		id, err := ParseTenantID(raw.String())
		require.NoError(t, err)
		assert.Equal(t, raw.String(), id.String())
		assert.False(t, id.IsNil())
	})
}

func TestIDsMarshalAsStrings(t *testing.T) {
	tenantID := TenantID(uuid.New())

	b, err := json.Marshal(map[string]TenantID{"id": tenantID})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+tenantID.String()+`"}`, string(b))

	var decoded map[string]TenantID
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, tenantID, decoded["id"])
}

func TestSessionIsPrivileged(t *testing.T) {
	assert.True(t, Session{Role: RoleService}.IsPrivileged())
	assert.False(t, Session{Role: "authenticated"}.IsPrivileged())
	assert.False(t, Session{}.IsPrivileged())
}
