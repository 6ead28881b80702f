package ports

import (
	"context"

	"github.com/asklynk/qa-platform/internal/core/domain"
)

// PlatformStats is the aggregate view served on the admin dashboard.
type PlatformStats struct {
	Users            int64
	PendingQuestions int64
	PendingReports   int64
	Entities         int64
}

// ModerationService defines the admin/moderator use-cases: question review,
// report handling, user administration, and entity flag management.
type ModerationService interface {
	Stats(ctx context.Context) (*PlatformStats, error)
	PendingQuestions(ctx context.Context) ([]*domain.Question, error)
	ReviewQuestion(ctx context.Context, id string, decision domain.ModerationStatus) error
	FileReport(ctx context.Context, contentType domain.ContentType, contentID, reportedBy, reason string) (*domain.Report, error)
	PendingReports(ctx context.Context) ([]*domain.Report, error)
	ResolveReport(ctx context.Context, id string, decision domain.ReportStatus) error
	ListUsers(ctx context.Context, page, limit int) ([]*domain.User, int64, error)
	SetUserActive(ctx context.Context, id string, active bool) error
	SetEntityFlags(ctx context.Context, id string, verified, available *bool) error
}
