// Package guard decides whether a navigation target is renderable for the
// caller's authentication state. Decisions are pure; acting on them (HTTP
// status codes, redirects) belongs to the transport layer.
package guard

import (
	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/session"
)

// Decision is the outcome of a guard check.
type Decision int

const (
	// Allow: render the requested content.
	Allow Decision = iota
	// RedirectToLogin: no authenticated user; send the caller to login.
	RedirectToLogin
	// Forbidden: authenticated but lacking the required role. Applied
	// uniformly at every call site; navigation additionally hides the link,
	// but hiding is presentation and this is enforcement.
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_to_login"
	case Forbidden:
		return "forbidden"
	}
	return "unknown"
}

// Decide evaluates the auth state against an optional required role. The
// zero-value role means "any authenticated user". An anonymous caller is
// redirected to login regardless of the required role; in-flight states are
// not renderable and redirect as well.
func Decide(state session.AuthState, required domain.Role) Decision {
	switch state.State {
	case session.Authenticated:
		if state.User == nil {
			// Unreachable when AuthState invariants hold; fail closed.
			return RedirectToLogin
		}
		if required == "" || state.User.HasRole(required) {
			return Allow
		}
		return Forbidden
	case session.Uninitialized, session.Loading, session.Anonymous:
		return RedirectToLogin
	}
	return RedirectToLogin
}

// DecideAny allows the request when the user holds at least one of the given
// roles. With no roles it degrades to Decide with no role requirement.
func DecideAny(state session.AuthState, roles ...domain.Role) Decision {
	if len(roles) == 0 {
		return Decide(state, "")
	}

	decision := Forbidden
	for _, r := range roles {
		switch Decide(state, r) {
		case Allow:
			return Allow
		case RedirectToLogin:
			decision = RedirectToLogin
		}
	}
	return decision
}
