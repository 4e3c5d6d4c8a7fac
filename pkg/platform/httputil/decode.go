package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	dErrors "tenantdash/pkg/domain-errors"
)

// Normalizable request types trim or canonicalize their fields before validation.
type Normalizable interface {
	Normalize()
}

// Validatable request types check their own bounds.
type Validatable interface {
	Validate() error
}

// DecodeJSON reads a single JSON document from the body into a new T.
// Oversized bodies, malformed JSON and trailing data all become bad_request.
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	target := new(T)
	if err := decodeSingle(r.Body, target); err != nil {
		logger.WarnContext(ctx, "rejected request body",
			"error", err,
			"request_id", requestID,
		)
		WriteError(w, bodyError(err))
		return nil, false
	}
	return target, true
}

func decodeSingle(body io.Reader, target any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(target); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON document")
	}
	return nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return dErrors.New(dErrors.CodeBadRequest, "request body too large")
	}
	return dErrors.New(dErrors.CodeBadRequest, "invalid request body")
}

// PrepareRequest runs Normalize and then Validate on req when it implements them.
func PrepareRequest(req any) error {
	if n, ok := req.(Normalizable); ok {
		n.Normalize()
	}
	v, ok := req.(Validatable)
	if !ok {
		return nil
	}
	return v.Validate()
}

// DecodeAndPrepare decodes the body and prepares it. Validation failures that
// are not already domain errors are reported as validation_error.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	req, ok := DecodeJSON[T](w, r, logger, ctx, requestID)
	if !ok {
		return nil, false
	}

	err := PrepareRequest(req)
	if err == nil {
		return req, true
	}
	logger.WarnContext(ctx, "request failed validation",
		"error", err,
		"request_id", requestID,
	)
	if !dErrors.IsDomain(err) {
		err = dErrors.New(dErrors.CodeValidation, err.Error())
	}
	WriteError(w, err)
	return nil, false
}
