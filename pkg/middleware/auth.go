package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/orderservice/pkg/auth"
	"github.com/shashiranjanraj/orderservice/pkg/logger"
)

// IdentityResolver loads the current roles for a token subject. It returns
// ok=false when the subject no longer maps to an active user.
type IdentityResolver func(ctx context.Context, email string) (auth.Identity, bool, error)

// Authenticate reads the bearer token, checks it with the issuer and puts the
// resolved identity on the request context.
//
// A missing, malformed or expired token is not an error here: the request
// continues anonymously and rbac.HasRole turns it away.
func Authenticate(iss *auth.Issuer, resolve IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			subject, ok := iss.ExtractSubject(token)
			if !ok || !iss.Validate(token) {
				next.ServeHTTP(w, r)
				return
			}

			id, found, err := resolve(r.Context(), subject)
			if err != nil {
				logger.WithCtx(r.Context()).Error("resolve identity", "subject", subject, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !found {
				next.ServeHTTP(w, r)
				return
			}

			noteCaller(r, id.Email)
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}
