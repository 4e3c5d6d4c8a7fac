package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	id "tenantdash/pkg/domain"
	dErrors "tenantdash/pkg/domain-errors"
	"tenantdash/pkg/requestcontext"
)

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; an encode error cannot change the status.
	_ = json.NewEncoder(w).Encode(response)
}

type httpMapping struct {
	status int
	code   string
}

var codeMappings = map[dErrors.Code]httpMapping{
	dErrors.CodeNotFound:           {http.StatusNotFound, "not_found"},
	dErrors.CodeBadRequest:         {http.StatusBadRequest, "bad_request"},
	dErrors.CodeInvalidInput:       {http.StatusBadRequest, "bad_request"},
	dErrors.CodeValidation:         {http.StatusBadRequest, "validation_error"},
	dErrors.CodeInvariantViolation: {http.StatusBadRequest, "validation_error"},
	dErrors.CodeUnauthorized:       {http.StatusUnauthorized, "unauthorized"},
	dErrors.CodeForbidden:          {http.StatusForbidden, "forbidden"},
	dErrors.CodeTimeout:            {http.StatusGatewayTimeout, "upstream_timeout"},
	dErrors.CodeUnavailable:        {http.StatusServiceUnavailable, "unavailable"},
}

var internalMapping = httpMapping{http.StatusInternalServerError, "internal_error"}

func mappingFor(code dErrors.Code) httpMapping {
	if m, ok := codeMappings[code]; ok {
		return m
	}
	return internalMapping
}

// WriteError writes err as {"error": ..., "error_description": ...}. Errors
// without a domain code become a bare 500 so internal detail never leaks.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if !errors.As(err, &domainErr) {
		WriteJSON(w, internalMapping.status, map[string]string{"error": internalMapping.code})
		return
	}
	m := mappingFor(domainErr.Code)
	body := map[string]string{"error": m.code}
	if domainErr.Message != "" {
		body["error_description"] = domainErr.Message
	}
	WriteJSON(w, m.status, body)
}

// DomainCodeToHTTPStatus returns the HTTP status for code.
func DomainCodeToHTTPStatus(code dErrors.Code) int { return mappingFor(code).status }

// DomainCodeToHTTPCode returns the JSON "error" value for code.
func DomainCodeToHTTPCode(code dErrors.Code) string { return mappingFor(code).code }

// RequireSession extracts the authenticated session from context.
// A missing session behind the auth middleware is a wiring bug, hence internal.
func RequireSession(ctx context.Context, logger *slog.Logger) (id.Session, error) {
	session, ok := requestcontext.Session(ctx)
	if !ok || session.UserID.IsNil() {
		if logger != nil {
			logger.ErrorContext(ctx, "session missing from context despite auth middleware",
				"request_id", requestcontext.RequestID(ctx))
		}
		return id.Session{}, dErrors.New(dErrors.CodeInternal, "authentication context error")
	}
	return session, nil
}
