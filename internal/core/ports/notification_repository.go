package ports

import (
	"context"

	"github.com/asklynk/qa-platform/internal/core/domain"
)

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error)
	// MarkRead flags a single notification as read, scoped to its owner.
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id, userID string) error
}

// NotificationInput is the DTO handed to the fan-out dispatcher.
type NotificationInput struct {
	UserID      string
	Type        domain.NotificationType
	Content     string
	RelatedID   string
	RelatedType string
}

// NotificationDeliverer persists a single notification; implemented by the
// notification service and driven by the dispatcher workers.
type NotificationDeliverer interface {
	Deliver(ctx context.Context, input NotificationInput) error
}
