package ports

import (
	"context"

	"github.com/asklynk/qa-platform/internal/core/domain"
)

// ReportRepository defines persistence operations for content reports.
type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) (*domain.Report, error)
	FindByID(ctx context.Context, id string) (*domain.Report, error)
	ListByStatus(ctx context.Context, status domain.ReportStatus) ([]*domain.Report, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) error
}
