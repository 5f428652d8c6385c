// Package rbac decides who may touch which order.
//
// An Admin may act on any order. Everyone else only on orders whose
// customer is their own email.
package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/orderservice/pkg/auth"
	"github.com/shashiranjanraj/orderservice/pkg/response"
)

// CanAccess reports whether actor may read, update or delete an order owned
// by ownerEmail.
func CanAccess(actor auth.Identity, ownerEmail string) bool {
	if !actor.Authenticated() {
		return false
	}
	return actor.IsAdmin() || actor.Email == ownerEmail
}

// CanAssign reports whether actor may save an order under customerEmail.
func CanAssign(actor auth.Identity, customerEmail string) bool {
	return CanAccess(actor, customerEmail)
}

// HasRole returns middleware that allows access only to callers holding at
// least one of the given roles. Requires middleware.Authenticate upstream.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.IdentityFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w)
				return
			}
			for _, role := range roles {
				if id.HasRole(role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Forbidden(w)
		})
	}
}
