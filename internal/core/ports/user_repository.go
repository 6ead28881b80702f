package ports

import (
	"context"

	"github.com/asklynk/qa-platform/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.User, error)
	// AdjustReputation atomically adds delta to a user's reputation points.
	AdjustReputation(ctx context.Context, id string, delta int) error
	SetActive(ctx context.Context, id string, active bool) error
	// TopByReputation returns up to limit active users ordered by reputation, descending.
	TopByReputation(ctx context.Context, limit int) ([]*domain.User, error)
	List(ctx context.Context, page, limit int) ([]*domain.User, int64, error)
}

// ProfileUpdate carries the user-editable profile fields. Nil pointers mean
// "leave unchanged".
type ProfileUpdate struct {
	Bio      *string
	Location *string
	Website  *string
}
