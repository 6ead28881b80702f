package ports

import (
	"context"

	"github.com/asklynk/qa-platform/internal/core/domain"
)

// UserService defines profile and leaderboard use-cases.
type UserService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error)
	TopUsers(ctx context.Context, limit int) ([]*domain.User, error)
}
