package domain

import (
	"errors"
	"time"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrMalformedSession   = errors.New("malformed session token")
	ErrStorageUnavailable = errors.New("session storage unavailable")
	ErrStaleSession       = errors.New("stale session write rejected")
)

// Session is the server-side record behind an issued token. The token itself
// is opaque to clients; everything needed to reconstruct the user on a later
// request lives here.
//
// Generation increments on every mutation. Writes carry the generation they
// expect to replace, so a stale in-flight update can never overwrite a newer
// one (last-write-wins is not acceptable for role switches).
type Session struct {
	Token      string    `json:"token"`
	UserID     string    `json:"user_id"`
	ActiveRole Role      `json:"active_role,omitempty"` // empty = base role only
	Generation uint64    `json:"generation"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
