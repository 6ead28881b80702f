package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/ports"
)

type moderationService struct {
	questions ports.QuestionRepository
	reports   ports.ReportRepository
	users     ports.UserRepository
	entities  ports.EntityRepository
	notify    NotificationEnqueuer
	log       zerolog.Logger
}

// NewModerationService returns a ModerationService implementation.
func NewModerationService(
	questions ports.QuestionRepository,
	reports ports.ReportRepository,
	users ports.UserRepository,
	entities ports.EntityRepository,
	notify NotificationEnqueuer,
	log zerolog.Logger,
) ports.ModerationService {
	return &moderationService{
		questions: questions,
		reports:   reports,
		users:     users,
		entities:  entities,
		notify:    notify,
		log:       log,
	}
}

func (s *moderationService) Stats(ctx context.Context) (*ports.PlatformStats, error) {
	_, userCount, err := s.users.List(ctx, 1, 1)
	if err != nil {
		return nil, fmt.Errorf("stats: users: %w", err)
	}

	_, pendingQuestions, err := s.questions.List(ctx, ports.ListQuestionsFilter{
		Status: string(domain.StatusPending), Page: 1, Limit: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("stats: questions: %w", err)
	}

	pending, err := s.reports.ListByStatus(ctx, domain.ReportPending)
	if err != nil {
		return nil, fmt.Errorf("stats: reports: %w", err)
	}

	_, entityCount, err := s.entities.List(ctx, ports.ListEntitiesFilter{Page: 1, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("stats: entities: %w", err)
	}

	return &ports.PlatformStats{
		Users:            userCount,
		PendingQuestions: pendingQuestions,
		PendingReports:   int64(len(pending)),
		Entities:         entityCount,
	}, nil
}

func (s *moderationService) PendingQuestions(ctx context.Context) ([]*domain.Question, error) {
	items, _, err := s.questions.List(ctx, ports.ListQuestionsFilter{
		Status: string(domain.StatusPending), Page: 1, Limit: maxPageLimit,
	})
	return items, err
}

// ReviewQuestion applies an approve/reject decision. Only pending questions
// can be decided; the author is notified either way.
func (s *moderationService) ReviewQuestion(ctx context.Context, id string, decision domain.ModerationStatus) error {
	q, err := s.questions.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !q.Status.CanTransitionTo(decision) {
		return fmt.Errorf("review question: %w (from %s to %s)", domain.ErrInvalidModeration, q.Status, decision)
	}

	if err := s.questions.UpdateStatus(ctx, id, decision); err != nil {
		return err
	}

	s.notify.Enqueue(ports.NotificationInput{
		UserID:      q.AskedByID,
		Type:        domain.NotifySystem,
		Content:     fmt.Sprintf("Your question %q was %s", q.Title, decision),
		RelatedID:   q.ID,
		RelatedType: "question",
	})

	s.log.Info().Str("question_id", id).Str("decision", string(decision)).Msg("question reviewed")
	return nil
}

// FileReport flags content for moderator review.
func (s *moderationService) FileReport(ctx context.Context, contentType domain.ContentType, contentID, reportedBy, reason string) (*domain.Report, error) {
	if !contentType.Valid() {
		return nil, domain.ErrUnknownContent
	}
	if reason == "" {
		return nil, domain.ErrInvalidReport
	}

	now := time.Now().UTC()
	r := &domain.Report{
		ContentType:  contentType,
		ContentID:    contentID,
		ReportedByID: reportedBy,
		Reason:       reason,
		Status:       domain.ReportPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.reports.Create(ctx, r)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("report_id", created.ID).Str("content_type", string(contentType)).Msg("report filed")
	return created, nil
}

func (s *moderationService) PendingReports(ctx context.Context) ([]*domain.Report, error) {
	return s.reports.ListByStatus(ctx, domain.ReportPending)
}

func (s *moderationService) ResolveReport(ctx context.Context, id string, decision domain.ReportStatus) error {
	r, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !r.Status.CanTransitionTo(decision) {
		return fmt.Errorf("resolve report: %w (from %s to %s)", domain.ErrInvalidReport, r.Status, decision)
	}

	if err := s.reports.UpdateStatus(ctx, id, decision); err != nil {
		return err
	}
	s.log.Info().Str("report_id", id).Str("decision", string(decision)).Msg("report decided")
	return nil
}

func (s *moderationService) ListUsers(ctx context.Context, page, limit int) ([]*domain.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return s.users.List(ctx, page, limit)
}

func (s *moderationService) SetUserActive(ctx context.Context, id string, active bool) error {
	if err := s.users.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Bool("active", active).Msg("user status changed")
	return nil
}

func (s *moderationService) SetEntityFlags(ctx context.Context, id string, verified, available *bool) error {
	if verified == nil && available == nil {
		return nil
	}
	if err := s.entities.SetFlags(ctx, id, verified, available); err != nil {
		return err
	}
	s.log.Info().Str("entity_id", id).Msg("entity flags updated")
	return nil
}
