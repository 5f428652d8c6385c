package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/orderservice/app/repositories"
	"github.com/shashiranjanraj/orderservice/pkg/auth"
	"github.com/shashiranjanraj/orderservice/pkg/logger"
	"github.com/shashiranjanraj/orderservice/pkg/metrics"
)

// Token is the result of a successful login.
type Token struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
}

type AuthService struct {
	users  *repositories.UserRepository
	issuer *auth.Issuer
}

func NewAuthService(users *repositories.UserRepository, issuer *auth.Issuer) *AuthService {
	return &AuthService{users: users, issuer: issuer}
}

// Login checks the password and issues a bearer token carrying the user's
// roles. Unknown and deleted users get ErrUserNotFound, a wrong password
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Token, error) {
	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		metrics.LoginAttempts.WithLabelValues("unknown_user").Inc()
		return nil, ErrUserNotFound
	case err != nil:
		return nil, err
	case user.IsDeleted:
		metrics.LoginAttempts.WithLabelValues("unknown_user").Inc()
		return nil, ErrUserNotFound
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		metrics.LoginAttempts.WithLabelValues("bad_password").Inc()
		logger.WithCtx(ctx).Warn("login rejected", "email", email)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.issuer.Issue(user.ID, user.Email, user.RoleNames())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	metrics.LoginAttempts.WithLabelValues("ok").Inc()
	logger.WithCtx(ctx).Info("login", "user_id", user.ID)
	return &Token{Token: token, TokenType: "Bearer", ExpiresAt: expiresAt}, nil
}

// ResolveIdentity maps a token subject to the user's current roles. Roles
// come from the credential store, so revoking a role takes effect on the
// next request. Deleted users resolve to nothing.
func (s *AuthService) ResolveIdentity(ctx context.Context, email string) (auth.Identity, bool, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return auth.Identity{}, false, nil
	}
	if err != nil {
		return auth.Identity{}, false, err
	}
	if user.IsDeleted {
		return auth.Identity{}, false, nil
	}
	return auth.Identity{UserID: user.ID, Email: user.Email, Roles: user.RoleNames()}, true, nil
}
