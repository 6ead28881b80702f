package ports

import (
	"context"

	"github.com/asklynk/qa-platform/internal/core/domain"
)

// AuthResult is returned by operations that establish or mutate a session.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService defines the authentication use-cases: account creation, session
// establishment, teardown, and role switching. Resolve reconstructs the
// current user from a previously issued token (rehydration); an absent,
// expired, or malformed token yields an anonymous nil user, never an error.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string, role domain.Role) (*AuthResult, error)
	Logout(ctx context.Context, token string) error
	SwitchRole(ctx context.Context, token string, role domain.Role) (*AuthResult, error)
	Resolve(ctx context.Context, token string) (*domain.User, error)
}
