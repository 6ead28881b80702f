package nav

import (
	"testing"

	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/session"
)

func contains(links []Link, path string) bool {
	for _, l := range links {
		if l.Path == path {
			return true
		}
	}
	return false
}

func TestVisible_Anonymous(t *testing.T) {
	m := Visible(session.AnonymousState())

	for _, path := range []string{"/", "/questions", "/entities", "/leaderboard"} {
		if !contains(m.Header, path) {
			t.Errorf("public link %s missing for anonymous caller", path)
		}
	}
	for _, path := range []string{"/ask", "/notifications", "/profile"} {
		if contains(m.Header, path) {
			t.Errorf("auth-only link %s shown to anonymous caller", path)
		}
	}
	if len(m.Sidebar) != 0 {
		t.Fatalf("anonymous caller sees dashboards: %v", m.Sidebar)
	}
	if len(m.Actions) != 2 || m.Actions[0] != "login" {
		t.Fatalf("unexpected actions: %v", m.Actions)
	}
}

func TestVisible_AuthenticatedBaseRole(t *testing.T) {
	user := &domain.User{ID: "u1", Roles: domain.NewRoleSet(), IsActive: true}
	m := Visible(session.AuthenticatedState(user))

	for _, path := range []string{"/ask", "/notifications", "/profile"} {
		if !contains(m.Header, path) {
			t.Errorf("auth-only link %s missing", path)
		}
	}
	if len(m.Sidebar) != 0 {
		t.Fatalf("base role sees dashboards: %v", m.Sidebar)
	}
	if len(m.Actions) != 2 || m.Actions[0] != "logout" {
		t.Fatalf("unexpected actions: %v", m.Actions)
	}
}

func TestVisible_DashboardPerRole(t *testing.T) {
	cases := []struct {
		role domain.Role
		path string
	}{
		{domain.RoleAdmin, "/admin"},
		{domain.RoleEditor, "/editor"},
		{domain.RoleModerator, "/moderator"},
		{domain.RoleSupport, "/support"},
	}
	for _, tc := range cases {
		user := &domain.User{ID: "u1", Roles: domain.NewRoleSet(tc.role), IsActive: true}
		m := Visible(session.AuthenticatedState(user))

		if !contains(m.Sidebar, tc.path) {
			t.Errorf("role %s: dashboard %s missing", tc.role, tc.path)
		}
		if len(m.Sidebar) != 1 {
			t.Errorf("role %s: expected exactly its own dashboard, got %v", tc.role, m.Sidebar)
		}
	}
}
