package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/ports"
)

// NotificationService reads a user's notification feed and, as the
// dispatcher's delivery target, persists fanned-out notifications.
type NotificationService struct {
	repo ports.NotificationRepository
	log  zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, log: log}
}

var _ ports.NotificationDeliverer = (*NotificationService)(nil)

// Deliver persists a single notification. Driven by the dispatcher workers.
func (s *NotificationService) Deliver(ctx context.Context, input ports.NotificationInput) error {
	n := &domain.Notification{
		UserID:      input.UserID,
		Type:        input.Type,
		Content:     input.Content,
		RelatedID:   input.RelatedID,
		RelatedType: input.RelatedType,
		IsRead:      false,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.repo.Insert(ctx, n); err != nil {
		return fmt.Errorf("deliver notification: %w", err)
	}
	return nil
}

func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID, unreadOnly)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}
