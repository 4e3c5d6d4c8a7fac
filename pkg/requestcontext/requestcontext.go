// Package requestcontext carries request-scoped values (request ID, session,
// request time) through context.Context.
package requestcontext

import (
	"context"
	"time"

	id "tenantdash/pkg/domain"
)

type (
	requestIDKey   struct{}
	sessionKey     struct{}
	requestTimeKey struct{}
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the request ID or "" when none was set.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

func WithSession(ctx context.Context, session id.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// Session returns the authenticated session, if the auth middleware ran.
func Session(ctx context.Context) (id.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(id.Session)
	return s, ok
}

// WithTime pins the request time so every step of a request observes the same clock.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

// Now returns the pinned request time, falling back to time.Now.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}
