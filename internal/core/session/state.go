package session

import "github.com/asklynk/qa-platform/internal/core/domain"

// State is the lifecycle state of a client's authentication context.
type State int

const (
	// Uninitialized: no rehydration attempt has been made yet.
	Uninitialized State = iota
	// Loading: a rehydration or login attempt is in flight.
	Loading
	// Anonymous: no valid session.
	Anonymous
	// Authenticated: a session resolved to a concrete user.
	Authenticated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	}
	return "unknown"
}

// AuthState is the snapshot consumed by the route guard and navigation
// surfaces. User is non-nil exactly when State is Authenticated.
type AuthState struct {
	State State
	User  *domain.User
}

// IsAuthenticated reports whether a user is present. It is derived from User,
// never stored, so the two can not disagree.
func (a AuthState) IsAuthenticated() bool {
	return a.User != nil
}

// IsLoading reports whether an operation is in flight.
func (a AuthState) IsLoading() bool {
	return a.State == Uninitialized || a.State == Loading
}

// AnonymousState returns the canonical anonymous snapshot.
func AnonymousState() AuthState {
	return AuthState{State: Anonymous}
}

// AuthenticatedState returns a snapshot for the given user. A nil user
// degrades to anonymous so the invariant above can not be violated by a
// careless caller.
func AuthenticatedState(user *domain.User) AuthState {
	if user == nil {
		return AnonymousState()
	}
	return AuthState{State: Authenticated, User: user}
}
