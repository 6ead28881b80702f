package ports

import (
	"context"

	"github.com/asklynk/qa-platform/internal/core/domain"
)

// ListQuestionsFilter carries all query parameters for listing questions.
type ListQuestionsFilter struct {
	EntityID string // optional: scope to one entity
	AskedBy  string // optional: scope to one author
	Status   string // optional: moderation status; empty = approved only
	Tag      string // optional: tag slug
	Page     int    // 1-based
	Limit    int    // max rows per page (capped at 100 by service)
}

// QuestionRepository defines persistence operations for questions.
type QuestionRepository interface {
	Create(ctx context.Context, q *domain.Question) (*domain.Question, error)
	FindByID(ctx context.Context, id string) (*domain.Question, error)
	// List returns a page of questions matching filter and the total count.
	List(ctx context.Context, filter ListQuestionsFilter) ([]*domain.Question, int64, error)
	// UpdateStatus applies a moderation decision.
	UpdateStatus(ctx context.Context, id string, status domain.ModerationStatus) error
	// AddVote atomically increments the up- or downvote counter.
	AddVote(ctx context.Context, id string, dir domain.VoteDirection) error
	IncrementViews(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// AnswerRepository defines persistence operations for answers.
type AnswerRepository interface {
	Create(ctx context.Context, a *domain.Answer) (*domain.Answer, error)
	FindByID(ctx context.Context, id string) (*domain.Answer, error)
	ListByQuestion(ctx context.Context, questionID string) ([]*domain.Answer, error)
	AddVote(ctx context.Context, id string, dir domain.VoteDirection) error
	Delete(ctx context.Context, id string) error
}
