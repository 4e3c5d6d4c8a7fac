package secrets

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "tenantdash/pkg/domain-errors"
)

func TestGenerate(t *testing.T) {
	key, err := Generate(MinKeyBytes)
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(key)
	require.NoError(t, err)
	assert.Len(t, raw, MinKeyBytes)

	other, err := Generate(MinKeyBytes)
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestGenerateRejectsShortKeys(t *testing.T) {
	_, err := Generate(16)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}
