package ports

import (
	"context"

	"github.com/asklynk/qa-platform/internal/core/domain"
)

// CreateEntityInput carries the data needed to register an entity.
type CreateEntityInput struct {
	Name        string
	Description string
	Bio         string
	Categories  []string // category slugs; each must exist
}

// UpdateEntityInput carries editor-updatable entity fields. Nil means unchanged.
type UpdateEntityInput struct {
	Description *string
	Bio         *string
	Categories  []string // nil = unchanged
}

// ListEntitiesResult is returned by ListEntities.
type ListEntitiesResult struct {
	Items      []*domain.Entity
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// EntityService defines use-case operations for entities and categories.
type EntityService interface {
	Create(ctx context.Context, input CreateEntityInput) (*domain.Entity, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Entity, error)
	ListEntities(ctx context.Context, filter ListEntitiesFilter) (*ListEntitiesResult, error)
	Update(ctx context.Context, id string, input UpdateEntityInput) (*domain.Entity, error)
	TopEntities(ctx context.Context, limit int) ([]*domain.Entity, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}
