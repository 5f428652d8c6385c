// Package reqid tags every request with an ID, stores it on the context and
// echoes it in the X-Request-ID response header. middleware.Logger picks it
// up so each log line of a request carries the same request_id.
package reqid

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

type ctxKey struct{}

// Header is the HTTP header name used to propagate the request ID.
const Header = "X-Request-ID"

// Upstream IDs are only reused when they look like IDs, not arbitrary text.
var acceptable = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// New returns a random UUIDv4 string.
func New() string {
	return uuid.NewString()
}

func WithValue(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromCtx returns the request ID, or "" when none is set.
func FromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}

// Middleware reuses a well-formed inbound X-Request-ID or mints a new one.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if !acceptable.MatchString(id) {
				id = New()
			}

			w.Header().Set(Header, id)
			next.ServeHTTP(w, r.WithContext(WithValue(r.Context(), id)))
		})
	}
}
