// Package nav computes which navigation links and actions are visible for a
// given authentication state. It consumes the guard's public decisions only,
// so visibility can never drift from enforcement.
package nav

import (
	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/guard"
	"github.com/asklynk/qa-platform/internal/core/session"
)

// Link is a single navigation target.
type Link struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// item pairs a link with its visibility rule. A zero requiredRole with
// authOnly=false is public; authOnly links need any authenticated user.
type item struct {
	link         Link
	authOnly     bool
	requiredRole domain.Role
}

var headerItems = []item{
	{link: Link{Label: "Home", Path: "/"}},
	{link: Link{Label: "Questions", Path: "/questions"}},
	{link: Link{Label: "Entities", Path: "/entities"}},
	{link: Link{Label: "Leaderboard", Path: "/leaderboard"}},
	{link: Link{Label: "Ask a Question", Path: "/ask"}, authOnly: true},
	{link: Link{Label: "Notifications", Path: "/notifications"}, authOnly: true},
	{link: Link{Label: "Profile", Path: "/profile"}, authOnly: true},
}

var sidebarItems = []item{
	{link: Link{Label: "Admin Dashboard", Path: "/admin"}, requiredRole: domain.RoleAdmin},
	{link: Link{Label: "Editor Dashboard", Path: "/editor"}, requiredRole: domain.RoleEditor},
	{link: Link{Label: "Moderator Dashboard", Path: "/moderator"}, requiredRole: domain.RoleModerator},
	{link: Link{Label: "Support Dashboard", Path: "/support"}, requiredRole: domain.RoleSupport},
}

// Menu is the set of surfaces rendered for one caller.
type Menu struct {
	Header  []Link `json:"header"`
	Sidebar []Link `json:"sidebar"`
	// Actions: "login"/"register" for anonymous callers,
	// "logout"/"switch_role" for authenticated ones.
	Actions []string `json:"actions"`
}

// Visible computes the menu for the given auth state.
func Visible(state session.AuthState) Menu {
	m := Menu{
		Header:  filter(headerItems, state),
		Sidebar: filter(sidebarItems, state),
	}
	if state.IsAuthenticated() {
		m.Actions = []string{"logout", "switch_role"}
	} else {
		m.Actions = []string{"login", "register"}
	}
	return m
}

func filter(items []item, state session.AuthState) []Link {
	links := make([]Link, 0, len(items))
	for _, it := range items {
		if !it.authOnly && it.requiredRole == "" {
			links = append(links, it.link)
			continue
		}
		if guard.Decide(state, it.requiredRole) == guard.Allow {
			links = append(links, it.link)
		}
	}
	return links
}
