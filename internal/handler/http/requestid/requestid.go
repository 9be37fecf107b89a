// Package requestid assigns a UUID to every HTTP request so the access
// log, error log and response can be correlated. Clients may supply their
// own ID via the X-Request-ID header; anything that is not a well-formed
// UUID is discarded and replaced, so log fields never carry arbitrary
// client input.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader is the header the ID is read from and echoed back on.
const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

// FromContext returns the request ID stored by Middleware, or "" when the
// request did not pass through it.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}

// WithRequestID stores an ID on the context. Exposed for tests and for
// code paths that run outside an HTTP request, such as worker cycles.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// Middleware resolves the request's ID and makes it available downstream:
// on the request context for log enrichment and on the response header so
// callers can quote it when reporting problems.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := resolve(r.Header.Get(RequestIDHeader))
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}

// resolve keeps a client-supplied ID only when it parses as a UUID,
// otherwise it mints a fresh one.
func resolve(inbound string) string {
	if _, err := uuid.Parse(inbound); err == nil {
		return inbound
	}
	return uuid.New().String()
}
