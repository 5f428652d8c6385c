package auth

import "context"

// Role names known to the access policy.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// Identity is the authenticated caller: who they are and which roles they hold.
// The zero value is the anonymous caller.
type Identity struct {
	UserID uint
	Email  string
	Roles  []string
}

func (id Identity) Authenticated() bool { return id.Email != "" }

func (id Identity) HasRole(role string) bool {
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (id Identity) IsAdmin() bool { return id.HasRole(RoleAdmin) }

type identityKey struct{}

// WithIdentity stores the caller on the request context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromCtx returns the caller stored by WithIdentity.
func IdentityFromCtx(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok && id.Authenticated()
}
