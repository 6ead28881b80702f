package ports

import (
	"context"

	"github.com/asklynk/qa-platform/internal/core/domain"
)

// SessionStore defines durable persistence for issued sessions. The medium
// keeps two entries per token: the session record itself and the active-role
// marker; absence of both means "not set".
//
// Save is a compare-and-set: the record's Generation must be exactly one
// greater than the stored generation (or 1 for a new session). A mismatch
// returns domain.ErrStaleSession and leaves the stored record untouched.
type SessionStore interface {
	Save(ctx context.Context, s *domain.Session) error
	Load(ctx context.Context, token string) (*domain.Session, error)
	Clear(ctx context.Context, token string) error
}
