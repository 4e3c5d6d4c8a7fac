package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	dErrors "tenantdash/pkg/domain-errors"
)

// MinKeyBytes is the smallest accepted HS256 signing key (256 bits).
const MinKeyBytes = 32

// Generate returns n random bytes, base64url encoded, for use as a signing key.
func Generate(n int) (string, error) {
	if n < MinKeyBytes {
		return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("key must be at least %d bytes", MinKeyBytes))
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not generate secret")
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
