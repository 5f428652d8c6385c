package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Claims holds the typed JWT payload. Subject carries the user's email.
type Claims struct {
	UserID uint     `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 access tokens with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is the configured token lifetime.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue creates a signed token for the given user.
func (i *Issuer) Issue(userID uint, email string, roles []string) (string, time.Time, error) {
	if email == "" {
		return "", time.Time{}, errors.New("auth: empty subject")
	}
	issuedAt := i.now()
	expiresAt := issuedAt.Add(i.ttl)

	claims := Claims{
		UserID: userID,
		Email:  email,
		Roles:  append([]string(nil), roles...),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Parse fully validates a token: signature, algorithm and expiry.
func (i *Issuer) Parse(t string) (*Claims, error) {
	return i.parse(t,
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
}

// Validate reports whether the token is signed with our key and unexpired.
// It never returns an error; any failure is simply false.
func (i *Issuer) Validate(t string) bool {
	_, err := i.Parse(t)
	return err == nil
}

// ExtractSubject returns the subject of a token whose signature verifies,
// without checking expiry. Callers still need Validate before trusting it.
func (i *Issuer) ExtractSubject(t string) (string, bool) {
	claims, err := i.parse(t, jwt.WithoutClaimsValidation())
	if err != nil || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

func (i *Issuer) parse(t string, opts ...jwt.ParserOption) (*Claims, error) {
	if t == "" {
		return nil, jwt.ErrTokenMalformed
	}
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
