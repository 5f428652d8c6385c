package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/orderservice/pkg/auth"
)

func TestIssueAndParse(t *testing.T) {
	iss := auth.NewIssuer("test-secret", time.Hour)

	token, exp, err := iss.Issue(7, "a@x.com", []string{"User"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := iss.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Subject)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, []string{"User"}, claims.Roles)
	assert.True(t, iss.Validate(token))
}

func TestValidate_Expired(t *testing.T) {
	iss := auth.NewIssuer("test-secret", -time.Minute)

	token, _, err := iss.Issue(1, "a@x.com", nil)
	require.NoError(t, err)

	assert.False(t, iss.Validate(token))

	// The subject is still readable so the caller can look the user up.
	sub, ok := iss.ExtractSubject(token)
	assert.True(t, ok)
	assert.Equal(t, "a@x.com", sub)
}

func TestValidate_WrongKey(t *testing.T) {
	token, _, err := auth.NewIssuer("one", time.Hour).Issue(1, "a@x.com", nil)
	require.NoError(t, err)

	other := auth.NewIssuer("two", time.Hour)
	assert.False(t, other.Validate(token))

	_, ok := other.ExtractSubject(token)
	assert.False(t, ok)
}

func TestValidate_Tampered(t *testing.T) {
	iss := auth.NewIssuer("test-secret", time.Hour)
	token, _, err := iss.Issue(1, "a@x.com", []string{"User"})
	require.NoError(t, err)

	forged, _, err := iss.Issue(1, "admin@x.com", []string{"Admin"})
	require.NoError(t, err)

	// Splice the forged payload onto the original signature.
	p1 := strings.Split(token, ".")
	p2 := strings.Split(forged, ".")
	spliced := p1[0] + "." + p2[1] + "." + p1[2]

	assert.False(t, iss.Validate(spliced))
	_, ok := iss.ExtractSubject(spliced)
	assert.False(t, ok)
}

func TestValidate_Garbage(t *testing.T) {
	iss := auth.NewIssuer("test-secret", time.Hour)

	for _, tok := range []string{"", "abc", "a.b.c", "Bearer x"} {
		assert.False(t, iss.Validate(tok), tok)
		_, ok := iss.ExtractSubject(tok)
		assert.False(t, ok, tok)
	}
}

func TestValidate_RejectsOtherAlgorithms(t *testing.T) {
	iss := auth.NewIssuer("test-secret", time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   "a@x.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	assert.False(t, iss.Validate(token))
}

func TestValidate_RequiresExpiry(t *testing.T) {
	iss := auth.NewIssuer("test-secret", time.Hour)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "a@x.com"}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	assert.False(t, iss.Validate(token))
}

func TestIssue_EmptySubject(t *testing.T) {
	_, _, err := auth.NewIssuer("s", time.Hour).Issue(1, "", nil)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)
	assert.True(t, auth.CheckPassword(hash, "secret"))
	assert.False(t, auth.CheckPassword(hash, "Secret"))
}

func TestIdentity(t *testing.T) {
	admin := auth.Identity{Email: "root@x.com", Roles: []string{auth.RoleUser, auth.RoleAdmin}}
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.HasRole(auth.RoleUser))

	user := auth.Identity{Email: "a@x.com", Roles: []string{auth.RoleUser}}
	assert.False(t, user.IsAdmin())

	_, ok := auth.IdentityFromCtx(context.Background())
	assert.False(t, ok)

	got, ok := auth.IdentityFromCtx(auth.WithIdentity(context.Background(), user))
	require.True(t, ok)
	assert.Equal(t, user, got)

	_, ok = auth.IdentityFromCtx(auth.WithIdentity(context.Background(), auth.Identity{}))
	assert.False(t, ok)
}
