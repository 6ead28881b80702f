package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/asklynk/qa-platform/internal/api/middleware"
	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/ports"
)

// stubQuestionService records the last list filter and returns empty results.
type stubQuestionService struct {
	lastFilter ports.ListQuestionsFilter
}

func (s *stubQuestionService) Ask(_ context.Context, _ ports.AskQuestionInput) (*domain.Question, error) {
	return nil, domain.ErrQuestionNotFound
}

func (s *stubQuestionService) Get(_ context.Context, _ string) (*domain.Question, error) {
	return nil, domain.ErrQuestionNotFound
}

func (s *stubQuestionService) ListQuestions(_ context.Context, filter ports.ListQuestionsFilter) (*ports.ListQuestionsResult, error) {
	s.lastFilter = filter
	return &ports.ListQuestionsResult{Page: 1, Limit: 20, TotalPages: 0}, nil
}

func (s *stubQuestionService) VoteQuestion(_ context.Context, _ ports.VoteInput) error {
	return domain.ErrQuestionNotFound
}

func (s *stubQuestionService) Answer(_ context.Context, _ ports.AnswerInput) (*domain.Answer, error) {
	return nil, domain.ErrQuestionNotFound
}

func (s *stubQuestionService) ListAnswers(_ context.Context, _ string) ([]*domain.Answer, error) {
	return nil, nil
}

func (s *stubQuestionService) VoteAnswer(_ context.Context, _ ports.VoteInput) error {
	return domain.ErrAnswerNotFound
}

// stubResolver satisfies ports.AuthService for handler tests; only Resolve
// matters, mapping the single known token to a canned user.
type stubResolver struct {
	user *domain.User
}

func (s *stubResolver) Register(_ context.Context, _, _, _ string) (*ports.AuthResult, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubResolver) Login(_ context.Context, _, _ string, _ domain.Role) (*ports.AuthResult, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubResolver) Logout(_ context.Context, _ string) error { return nil }

func (s *stubResolver) SwitchRole(_ context.Context, _ string, _ domain.Role) (*ports.AuthResult, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubResolver) Resolve(_ context.Context, token string) (*domain.User, error) {
	if token == "valid-token" {
		return s.user, nil
	}
	return nil, nil
}

// runQuestionList sends GET target through the auth middleware into fn.
// A nil user makes the request anonymous.
func runQuestionList(t *testing.T, fn func(*QuestionHandler) echo.HandlerFunc, user *domain.User, target string) (*httptest.ResponseRecorder, *stubQuestionService, error) {
	t.Helper()
	svc := &stubQuestionService{}
	h := NewQuestionHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if user != nil {
		req.Header.Set("Authorization", "Bearer valid-token")
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := middleware.Auth(&stubResolver{user: user})(fn(h))(c)
	return rec, svc, err
}

func TestQuestionHandler_List_StatusFilterRequiresModerationRole(t *testing.T) {
	plain := &domain.User{ID: "u1", Roles: domain.NewRoleSet()}
	_, _, err := runQuestionList(t, func(h *QuestionHandler) echo.HandlerFunc { return h.List }, plain, "/v1/questions?status=pending")
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a plain user, got %v", err)
	}

	_, _, err = runQuestionList(t, func(h *QuestionHandler) echo.HandlerFunc { return h.List }, nil, "/v1/questions?status=pending")
	httpErr, ok = err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for anonymous, got %v", err)
	}
}

func TestQuestionHandler_List_StatusFilterAllowsModerator(t *testing.T) {
	mod := &domain.User{ID: "u1", Roles: domain.NewRoleSet(domain.RoleModerator)}
	rec, svc, err := runQuestionList(t, func(h *QuestionHandler) echo.HandlerFunc { return h.List }, mod, "/v1/questions?status=pending")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastFilter.Status != string(domain.StatusPending) {
		t.Fatalf("status filter not applied: %+v", svc.lastFilter)
	}
}

func TestQuestionHandler_List_UnknownStatusRejected(t *testing.T) {
	mod := &domain.User{ID: "u1", Roles: domain.NewRoleSet(domain.RoleModerator)}
	_, _, err := runQuestionList(t, func(h *QuestionHandler) echo.HandlerFunc { return h.List }, mod, "/v1/questions?status=weird")
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestQuestionHandler_ListMine_ScopesToCaller(t *testing.T) {
	user := &domain.User{ID: "u42", Roles: domain.NewRoleSet()}
	rec, svc, err := runQuestionList(t, func(h *QuestionHandler) echo.HandlerFunc { return h.ListMine }, user, "/v1/questions/user?status=rejected")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastFilter.AskedBy != "u42" {
		t.Fatalf("listing not scoped to caller: %+v", svc.lastFilter)
	}
	if svc.lastFilter.Status != string(domain.StatusRejected) {
		t.Fatalf("status not passed through: %+v", svc.lastFilter)
	}
}
