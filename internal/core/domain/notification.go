package domain

import (
	"errors"
	"time"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationType classifies what triggered a notification.
type NotificationType string

const (
	NotifyAnswer  NotificationType = "answer"
	NotifyUpvote  NotificationType = "upvote"
	NotifyComment NotificationType = "comment"
	NotifySystem  NotificationType = "system"
)

// Notification is a message delivered to a single user.
type Notification struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	Type        NotificationType `json:"type"`
	Content     string           `json:"content"`
	RelatedID   string           `json:"related_id,omitempty"`
	RelatedType string           `json:"related_type,omitempty"`
	IsRead      bool             `json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`
}
