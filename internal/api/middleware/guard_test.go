package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/session"
)

func runGuard(t *testing.T, mw echo.MiddlewareFunc, state session.AuthState) (*httptest.ResponseRecorder, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(stateKey, state)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return rec, called, err
}

func TestRequireAuth_AllowsAuthenticated(t *testing.T) {
	user := &domain.User{ID: "u1", Roles: domain.NewRoleSet()}
	rec, called, err := runGuard(t, RequireAuth(), session.AuthenticatedState(user))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireAuth_AnonymousGetsLoginRedirect(t *testing.T) {
	rec, called, err := runGuard(t, RequireAuth(), session.AnonymousState())
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if called {
		t.Fatalf("next must not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["redirect"] != loginPath {
		t.Fatalf("expected login redirect hint, got %v", body)
	}
}

func TestRequire_MissingRoleIsForbidden(t *testing.T) {
	user := &domain.User{ID: "u1", Roles: domain.NewRoleSet(domain.RoleEditor)}
	_, called, err := runGuard(t, Require(domain.RoleAdmin), session.AuthenticatedState(user))
	if called {
		t.Fatalf("next must not be called")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", httpErr.Code)
	}
}

func TestRequire_HolderAllowed(t *testing.T) {
	user := &domain.User{ID: "u1", Roles: domain.NewRoleSet(domain.RoleAdmin)}
	rec, called, err := runGuard(t, Require(domain.RoleAdmin), session.AuthenticatedState(user))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, code %d", rec.Code)
	}
}

// The moderation group admits admins and moderators, but admin-only routes
// inside it stack a second guard. A moderator must clear the group gate and
// still be rejected by the inner one.
func TestRequire_StackedOnRequireAny(t *testing.T) {
	chain := func(next echo.HandlerFunc) echo.HandlerFunc {
		return RequireAny(domain.RoleAdmin, domain.RoleModerator)(Require(domain.RoleAdmin)(next))
	}

	mod := &domain.User{ID: "u1", Roles: domain.NewRoleSet(domain.RoleModerator)}
	_, called, err := runGuard(t, chain, session.AuthenticatedState(mod))
	if called {
		t.Fatalf("moderator must not reach an admin-only handler")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}

	admin := &domain.User{ID: "u2", Roles: domain.NewRoleSet(domain.RoleAdmin)}
	if _, called, err := runGuard(t, chain, session.AuthenticatedState(admin)); err != nil || !called {
		t.Fatalf("admin must pass both guards: called=%v err=%v", called, err)
	}
}

func TestRequireAny(t *testing.T) {
	mod := &domain.User{ID: "u1", Roles: domain.NewRoleSet(domain.RoleModerator)}

	if _, called, err := runGuard(t, RequireAny(domain.RoleAdmin, domain.RoleModerator), session.AuthenticatedState(mod)); err != nil || !called {
		t.Fatalf("moderator must be admitted: called=%v err=%v", called, err)
	}

	_, called, err := runGuard(t, RequireAny(domain.RoleAdmin, domain.RoleSupport), session.AuthenticatedState(mod))
	if called {
		t.Fatalf("next must not be called")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}
