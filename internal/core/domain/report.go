package domain

import (
	"errors"
	"time"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrInvalidReport  = errors.New("invalid report state change")
	ErrUnknownContent = errors.New("unknown content type")
)

// ContentType names the kind of content a report points at.
type ContentType string

const (
	ContentQuestion ContentType = "question"
	ContentAnswer   ContentType = "answer"
)

// Valid reports whether c is a known content type.
func (c ContentType) Valid() bool {
	return c == ContentQuestion || c == ContentAnswer
}

// ReportStatus is the review state of a report. Reports follow the same
// pending → resolved/rejected shape as content moderation.
type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportResolved ReportStatus = "resolved"
	ReportRejected ReportStatus = "rejected"
)

// CanTransitionTo reports whether a report decision is valid.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	return s == ReportPending && (next == ReportResolved || next == ReportRejected)
}

// Report flags a piece of content for moderator review.
type Report struct {
	ID           string       `json:"id"`
	ContentType  ContentType  `json:"content_type"`
	ContentID    string       `json:"content_id"`
	ReportedByID string       `json:"reported_by_id"`
	Reason       string       `json:"reason"`
	Status       ReportStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
