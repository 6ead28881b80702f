package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/ports"
)

type entityService struct {
	entities   ports.EntityRepository
	categories ports.CategoryRepository
	log        zerolog.Logger
}

// NewEntityService returns an EntityService implementation.
func NewEntityService(entities ports.EntityRepository, categories ports.CategoryRepository, log zerolog.Logger) ports.EntityService {
	return &entityService{entities: entities, categories: categories, log: log}
}

// Create registers a new entity. Entities start unverified but available; an
// admin flips the flags later. Every referenced category must already exist.
func (s *entityService) Create(ctx context.Context, input ports.CreateEntityInput) (*domain.Entity, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("create entity: %w", domain.ErrInvalidEntity)
	}

	for _, slug := range input.Categories {
		if _, err := s.categories.FindBySlug(ctx, slug); err != nil {
			return nil, fmt.Errorf("create entity: category %q: %w", slug, err)
		}
	}

	now := time.Now().UTC()
	e := &domain.Entity{
		Name:        input.Name,
		Description: input.Description,
		Bio:         input.Bio,
		Slug:        slugify(input.Name),
		Categories:  input.Categories,
		IsVerified:  false,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.entities.Create(ctx, e)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("entity_id", created.ID).Str("slug", created.Slug).Msg("entity created")
	return created, nil
}

func (s *entityService) GetBySlug(ctx context.Context, slug string) (*domain.Entity, error) {
	return s.entities.FindBySlug(ctx, slug)
}

func (s *entityService) ListEntities(ctx context.Context, filter ports.ListEntitiesFilter) (*ports.ListEntitiesResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := s.entities.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListEntitiesResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *entityService) Update(ctx context.Context, id string, input ports.UpdateEntityInput) (*domain.Entity, error) {
	e, err := s.entities.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		e.Description = *input.Description
	}
	if input.Bio != nil {
		e.Bio = *input.Bio
	}
	if input.Categories != nil {
		for _, slug := range input.Categories {
			if _, err := s.categories.FindBySlug(ctx, slug); err != nil {
				return nil, fmt.Errorf("update entity: category %q: %w", slug, err)
			}
		}
		e.Categories = input.Categories
	}
	e.UpdatedAt = time.Now().UTC()

	if err := s.entities.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *entityService) TopEntities(ctx context.Context, limit int) ([]*domain.Entity, error) {
	if limit < 1 {
		limit = defaultLeaderboardSize
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return s.entities.Top(ctx, limit)
}

func (s *entityService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

// slugify lowercases the name and collapses runs of non-alphanumerics to
// single hyphens.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
