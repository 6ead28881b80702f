package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// NotificationEnqueuer abstracts the asynchronous fan-out dispatcher.
type NotificationEnqueuer interface {
	Enqueue(input ports.NotificationInput)
}

type questionService struct {
	questions ports.QuestionRepository
	answers   ports.AnswerRepository
	entities  ports.EntityRepository
	users     ports.UserRepository
	notify    NotificationEnqueuer
	log       zerolog.Logger
}

// NewQuestionService returns a QuestionService implementation.
func NewQuestionService(
	questions ports.QuestionRepository,
	answers ports.AnswerRepository,
	entities ports.EntityRepository,
	users ports.UserRepository,
	notify NotificationEnqueuer,
	log zerolog.Logger,
) ports.QuestionService {
	return &questionService{
		questions: questions,
		answers:   answers,
		entities:  entities,
		users:     users,
		notify:    notify,
		log:       log,
	}
}

// Ask submits a question against an entity. New questions enter the
// moderation queue as pending; only approved questions appear in public
// listings.
func (s *questionService) Ask(ctx context.Context, input ports.AskQuestionInput) (*domain.Question, error) {
	if input.Title == "" || input.Content == "" {
		return nil, fmt.Errorf("ask question: %w", domain.ErrInvalidQuestion)
	}

	entity, err := s.entities.FindByID(ctx, input.EntityID)
	if err != nil {
		return nil, fmt.Errorf("ask question: %w", err)
	}
	if !entity.IsAvailable {
		return nil, fmt.Errorf("ask question: %w", domain.ErrForbidden)
	}

	now := time.Now().UTC()
	q := &domain.Question{
		Title:     input.Title,
		Content:   input.Content,
		EntityID:  entity.ID,
		AskedByID: input.AskedBy,
		Tags:      toTags(input.Tags),
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.questions.Create(ctx, q)
	if err != nil {
		s.log.Error().Err(err).Str("entity_id", entity.ID).Msg("failed to create question")
		return nil, err
	}

	if err := s.entities.IncrementQuestionCount(ctx, entity.ID); err != nil {
		s.log.Warn().Err(err).Str("entity_id", entity.ID).Msg("failed to bump entity question count")
	}

	s.log.Info().Str("question_id", created.ID).Str("entity_id", entity.ID).Msg("question submitted")
	return created, nil
}

// Get fetches a single question and bumps its view counter. The counter bump
// is best-effort.
func (s *questionService) Get(ctx context.Context, id string) (*domain.Question, error) {
	q, err := s.questions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.questions.IncrementViews(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("question_id", id).Msg("failed to bump view count")
	} else {
		q.ViewCount++
	}
	return q, nil
}

func (s *questionService) ListQuestions(ctx context.Context, filter ports.ListQuestionsFilter) (*ports.ListQuestionsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	// Public listings only show approved questions. Listings scoped to a
	// single author are that author's own view and include every status.
	if filter.Status == "" && filter.AskedBy == "" {
		filter.Status = string(domain.StatusApproved)
	}

	items, total, err := s.questions.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListQuestionsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// VoteQuestion records a vote and applies the reputation delta to the
// question's author. Voting on your own question is rejected.
func (s *questionService) VoteQuestion(ctx context.Context, input ports.VoteInput) error {
	q, err := s.questions.FindByID(ctx, input.TargetID)
	if err != nil {
		return err
	}
	if q.AskedByID == input.VoterID {
		return domain.ErrForbidden
	}

	if err := s.questions.AddVote(ctx, q.ID, input.Direction); err != nil {
		return fmt.Errorf("vote question: %w", err)
	}
	s.applyReputation(ctx, q.AskedByID, input.Direction, q.ID, "question")
	return nil
}

// Answer posts an answer to an approved question and fans out an "answer
// posted" notification to the asker.
func (s *questionService) Answer(ctx context.Context, input ports.AnswerInput) (*domain.Answer, error) {
	if input.Content == "" {
		return nil, fmt.Errorf("answer: %w", domain.ErrInvalidQuestion)
	}

	q, err := s.questions.FindByID(ctx, input.QuestionID)
	if err != nil {
		return nil, err
	}
	if q.Status != domain.StatusApproved {
		return nil, fmt.Errorf("answer: %w", domain.ErrForbidden)
	}

	now := time.Now().UTC()
	a := &domain.Answer{
		QuestionID:   q.ID,
		Content:      input.Content,
		AnsweredByID: input.AnsweredBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.answers.Create(ctx, a)
	if err != nil {
		return nil, err
	}

	if q.AskedByID != input.AnsweredBy {
		s.notify.Enqueue(ports.NotificationInput{
			UserID:      q.AskedByID,
			Type:        domain.NotifyAnswer,
			Content:     fmt.Sprintf("Your question %q received a new answer", q.Title),
			RelatedID:   created.ID,
			RelatedType: "answer",
		})
	}

	s.log.Info().Str("answer_id", created.ID).Str("question_id", q.ID).Msg("answer posted")
	return created, nil
}

func (s *questionService) ListAnswers(ctx context.Context, questionID string) ([]*domain.Answer, error) {
	if _, err := s.questions.FindByID(ctx, questionID); err != nil {
		return nil, err
	}
	return s.answers.ListByQuestion(ctx, questionID)
}

// VoteAnswer records a vote and applies the reputation delta to the answer's
// author. Voting on your own answer is rejected.
func (s *questionService) VoteAnswer(ctx context.Context, input ports.VoteInput) error {
	a, err := s.answers.FindByID(ctx, input.TargetID)
	if err != nil {
		return err
	}
	if a.AnsweredByID == input.VoterID {
		return domain.ErrForbidden
	}

	if err := s.answers.AddVote(ctx, a.ID, input.Direction); err != nil {
		return fmt.Errorf("vote answer: %w", err)
	}
	s.applyReputation(ctx, a.AnsweredByID, input.Direction, a.ID, "answer")
	return nil
}

// applyReputation adjusts the author's reputation and, on upvotes, fans out a
// notification. Both are non-fatal side effects of a recorded vote.
func (s *questionService) applyReputation(ctx context.Context, authorID string, dir domain.VoteDirection, relatedID, relatedType string) {
	if err := s.users.AdjustReputation(ctx, authorID, dir.Delta()); err != nil {
		s.log.Warn().Err(err).Str("user_id", authorID).Msg("failed to adjust reputation")
		return
	}
	if dir == domain.VoteUp {
		s.notify.Enqueue(ports.NotificationInput{
			UserID:      authorID,
			Type:        domain.NotifyUpvote,
			Content:     fmt.Sprintf("Your %s received an upvote", relatedType),
			RelatedID:   relatedID,
			RelatedType: relatedType,
		})
	}
}

func toTags(slugs []string) []domain.Tag {
	tags := make([]domain.Tag, 0, len(slugs))
	for _, slug := range slugs {
		if slug == "" {
			continue
		}
		tags = append(tags, domain.Tag{Name: slug, Slug: slug})
	}
	return tags
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
