package ports

import (
	"context"

	"github.com/asklynk/qa-platform/internal/core/domain"
)

// ListEntitiesFilter carries query parameters for listing entities.
type ListEntitiesFilter struct {
	Category      string // optional: category slug
	VerifiedOnly  bool
	AvailableOnly bool
	Page          int
	Limit         int
}

// EntityRepository defines persistence operations for entities.
type EntityRepository interface {
	Create(ctx context.Context, e *domain.Entity) (*domain.Entity, error)
	FindByID(ctx context.Context, id string) (*domain.Entity, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Entity, error)
	List(ctx context.Context, filter ListEntitiesFilter) ([]*domain.Entity, int64, error)
	Update(ctx context.Context, e *domain.Entity) error
	// SetFlags updates the verification/availability flags. Nil means unchanged.
	SetFlags(ctx context.Context, id string, verified, available *bool) error
	// IncrementQuestionCount bumps the entity's question counter by one.
	IncrementQuestionCount(ctx context.Context, id string) error
	// Top returns the available entities with the most questions.
	Top(ctx context.Context, limit int) ([]*domain.Entity, error)
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
}
