package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/ports"
)

type stubReportRepo struct {
	reports map[string]*domain.Report
	seq     int
}

func newStubReportRepo() *stubReportRepo {
	return &stubReportRepo{reports: make(map[string]*domain.Report)}
}

func (r *stubReportRepo) Create(_ context.Context, report *domain.Report) (*domain.Report, error) {
	r.seq++
	copy := *report
	copy.ID = fmt.Sprintf("rep_%d", r.seq)
	r.reports[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubReportRepo) FindByID(_ context.Context, id string) (*domain.Report, error) {
	rep, ok := r.reports[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	copy := *rep
	return &copy, nil
}

func (r *stubReportRepo) ListByStatus(_ context.Context, status domain.ReportStatus) ([]*domain.Report, error) {
	out := make([]*domain.Report, 0)
	for _, rep := range r.reports {
		if rep.Status == status {
			copy := *rep
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *stubReportRepo) UpdateStatus(_ context.Context, id string, status domain.ReportStatus) error {
	rep, ok := r.reports[id]
	if !ok {
		return domain.ErrReportNotFound
	}
	rep.Status = status
	return nil
}

type moderationFixture struct {
	svc       ports.ModerationService
	questions *stubQuestionRepo
	reports   *stubReportRepo
	users     *stubUserRepo
	entities  *stubEntityRepo
	enqueuer  *recordingEnqueuer
}

func newModerationFixture(t *testing.T) *moderationFixture {
	t.Helper()
	f := &moderationFixture{
		questions: newStubQuestionRepo(),
		reports:   newStubReportRepo(),
		users:     newStubUserRepo(),
		entities:  newStubEntityRepo(),
		enqueuer:  &recordingEnqueuer{},
	}
	f.svc = NewModerationService(f.questions, f.reports, f.users, f.entities, f.enqueuer, zerolog.Nop())
	return f
}

func (f *moderationFixture) seedPendingQuestion(t *testing.T) *domain.Question {
	t.Helper()
	q, err := f.questions.Create(context.Background(), &domain.Question{
		Title:     "Is this allowed?",
		Content:   "Asking for a friend.",
		EntityID:  "ent_1",
		AskedByID: "asker",
		Status:    domain.StatusPending,
	})
	if err != nil {
		t.Fatalf("seed question failed: %v", err)
	}
	return q
}

func TestModerationService_ReviewQuestion_Approve(t *testing.T) {
	f := newModerationFixture(t)
	q := f.seedPendingQuestion(t)

	if err := f.svc.ReviewQuestion(context.Background(), q.ID, domain.StatusApproved); err != nil {
		t.Fatalf("ReviewQuestion returned error: %v", err)
	}

	got, err := f.questions.FindByID(context.Background(), q.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if got.Status != domain.StatusApproved {
		t.Fatalf("status = %s, want approved", got.Status)
	}
	if len(f.enqueuer.inputs) != 1 || f.enqueuer.inputs[0].UserID != "asker" {
		t.Fatalf("expected one notification to the asker, got %v", f.enqueuer.inputs)
	}
}

func TestModerationService_ReviewQuestion_DecidedTwice(t *testing.T) {
	f := newModerationFixture(t)
	q := f.seedPendingQuestion(t)

	if err := f.svc.ReviewQuestion(context.Background(), q.ID, domain.StatusRejected); err != nil {
		t.Fatalf("first decision failed: %v", err)
	}
	err := f.svc.ReviewQuestion(context.Background(), q.ID, domain.StatusApproved)
	if !errors.Is(err, domain.ErrInvalidModeration) {
		t.Fatalf("expected ErrInvalidModeration on second decision, got %v", err)
	}
}

func TestModerationService_ReviewQuestion_PendingIsNotADecision(t *testing.T) {
	f := newModerationFixture(t)
	q := f.seedPendingQuestion(t)

	err := f.svc.ReviewQuestion(context.Background(), q.ID, domain.StatusPending)
	if !errors.Is(err, domain.ErrInvalidModeration) {
		t.Fatalf("expected ErrInvalidModeration, got %v", err)
	}
}

func TestModerationService_FileReport(t *testing.T) {
	f := newModerationFixture(t)
	ctx := context.Background()

	r, err := f.svc.FileReport(ctx, domain.ContentQuestion, "q_1", "reporter", "spam")
	if err != nil {
		t.Fatalf("FileReport returned error: %v", err)
	}
	if r.Status != domain.ReportPending {
		t.Fatalf("new reports must be pending, got %s", r.Status)
	}

	if _, err := f.svc.FileReport(ctx, domain.ContentType("meme"), "q_1", "reporter", "spam"); err != domain.ErrUnknownContent {
		t.Fatalf("expected ErrUnknownContent, got %v", err)
	}
	if _, err := f.svc.FileReport(ctx, domain.ContentAnswer, "a_1", "reporter", ""); err != domain.ErrInvalidReport {
		t.Fatalf("expected ErrInvalidReport for empty reason, got %v", err)
	}
}

func TestModerationService_ResolveReport_Transitions(t *testing.T) {
	f := newModerationFixture(t)
	ctx := context.Background()

	r, err := f.svc.FileReport(ctx, domain.ContentQuestion, "q_1", "reporter", "spam")
	if err != nil {
		t.Fatalf("FileReport returned error: %v", err)
	}

	if err := f.svc.ResolveReport(ctx, r.ID, domain.ReportResolved); err != nil {
		t.Fatalf("ResolveReport returned error: %v", err)
	}
	if err := f.svc.ResolveReport(ctx, r.ID, domain.ReportRejected); !errors.Is(err, domain.ErrInvalidReport) {
		t.Fatalf("expected ErrInvalidReport on re-decision, got %v", err)
	}

	pending, err := f.svc.PendingReports(ctx)
	if err != nil {
		t.Fatalf("PendingReports returned error: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("decided reports must leave the pending queue, got %d", len(pending))
	}
}
