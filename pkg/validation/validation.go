package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "tenantdash/pkg/domain-errors"
	s "tenantdash/pkg/string"
)

var defaultValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Validate runs struct tags on req and reports the first failure as a
// validation_failed domain error.
func Validate(req any) error {
	err := defaultValidator.Struct(req)
	if err == nil {
		return nil
	}
	return dErrors.New(dErrors.CodeValidation, ErrorMessage(err))
}

type messageFunc func(field string, fe validator.FieldError) string

func fixed(format string) messageFunc {
	return func(field string, _ validator.FieldError) string {
		return fmt.Sprintf(format, field)
	}
}

func withParam(format string) messageFunc {
	return func(field string, fe validator.FieldError) string {
		return fmt.Sprintf(format, field, fe.Param())
	}
}

func upperBound(field string, fe validator.FieldError) string {
	if fe.Kind() == reflect.String {
		return fmt.Sprintf("%s exceeds max length of %s", field, fe.Param())
	}
	return fmt.Sprintf("%s must be at most %s", field, fe.Param())
}

var messages = map[string]messageFunc{
	"required": fixed("%s is required"),
	"uuid":     fixed("%s must be a valid uuid"),
	"notblank": fixed("%s must not be blank"),
	"min":      withParam("%s must be at least %s"),
	"gte":      withParam("%s must be at least %s"),
	"oneof":    withParam("%s must be one of [%s]"),
	"max":      upperBound,
	"lte":      upperBound,
}

// ErrorMessage renders the first validator failure in err, naming the field in
// snake_case.
func ErrorMessage(err error) string {
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) || len(failures) == 0 {
		return "invalid request"
	}
	fe := failures[0]
	field := s.ToSnakeCase(fe.StructField())
	if render, ok := messages[fe.ActualTag()]; ok {
		return render(field, fe)
	}
	if field == "" {
		return "invalid request"
	}
	return field + " is invalid"
}
