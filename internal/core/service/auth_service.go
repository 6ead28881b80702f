package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/ports"
	"github.com/asklynk/qa-platform/internal/core/session"
)

// AuthService implements registration, login, logout, role switching, and
// session resolution on top of the user repository and session manager.
type AuthService struct {
	users    ports.UserRepository
	sessions *session.Manager
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions *session.Manager, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, log: log}
}

var _ ports.AuthService = (*AuthService)(nil)

// Register creates an account with the base role only, zero reputation, and
// an established session.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*ports.AuthResult, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:         username,
		Email:            email,
		PasswordHash:     string(hash),
		Roles:            domain.NewRoleSet(),
		ReputationPoints: 0,
		IsActive:         true,
		DateJoined:       now,
		UpdatedAt:        now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.sessions.Issue(ctx, created, "")
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("username", username).Msg("user registered")
	return &ports.AuthResult{Token: token, User: created}, nil
}

// Login authenticates by email and password. When role names an elevated
// role the session is established with that role active and the user's role
// set becomes {base, role}.
func (s *AuthService) Login(ctx context.Context, email, password string, role domain.Role) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if role != "" && !role.Valid() {
		return nil, domain.ErrUnknownRole
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// An unknown email reads the same as a wrong password so login
		// failures never reveal which accounts exist.
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user.Roles = domain.NewRoleSet(role)
	token, err := s.sessions.Issue(ctx, user, role)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("user logged in")
	return &ports.AuthResult{Token: token, User: user}, nil
}

// Logout revokes the session. Calling it with an already-dead or garbage
// token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// SwitchRole updates the active-role marker and rewrites the user's role set
// to {base, role}. Single-active-role semantics: switching replaces the
// previous elevated role rather than accumulating it.
func (s *AuthService) SwitchRole(ctx context.Context, token string, role domain.Role) (*ports.AuthResult, error) {
	rec, err := s.sessions.SwitchRole(ctx, token, role)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, rec.UserID)
	if err != nil {
		return nil, err
	}
	user.Roles = domain.NewRoleSet(rec.ActiveRole)

	s.log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("active role switched")
	return &ports.AuthResult{Token: token, User: user}, nil
}

// Resolve rehydrates the current user from a previously issued token. Every
// failure mode short of an infrastructure outage maps to an anonymous nil
// user: absent token, malformed token, revoked or expired session, deleted or
// deactivated account.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, nil
	}

	rec, err := s.sessions.Resolve(ctx, token)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrMalformedSession), errors.Is(err, domain.ErrSessionNotFound):
		return nil, nil
	default:
		return nil, err
	}

	user, err := s.users.FindByID(ctx, rec.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		_ = s.sessions.Revoke(ctx, token)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, nil
	}

	user.Roles = domain.NewRoleSet(rec.ActiveRole)
	return user, nil
}
