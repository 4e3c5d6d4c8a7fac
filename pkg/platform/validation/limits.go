package validation

import (
	"fmt"

	dErrors "tenantdash/pkg/domain-errors"
)

// MaxBodySize is the maximum accepted JSON request body (4 KB).
const MaxBodySize = 4 * 1024

// MaxQueryParamLength bounds paging and sort query parameters before parsing.
const MaxQueryParamLength = 32

// CheckStringLength validates that a string does not exceed the maximum length.
func CheckStringLength(fieldName, value string, max int) error {
	if len(value) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}
