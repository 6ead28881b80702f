package session

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/ports"
)

// switchRetries bounds CAS retries on concurrent role switches.
const switchRetries = 3

// Manager owns the session lifecycle: issuance on login/register, resolution
// on every request (rehydration), revocation on logout, and active-role
// switching. It is an explicit, injectable instance — construct one per test,
// one per process in production.
//
// Storage degradation: when the durable store reports
// domain.ErrStorageUnavailable the manager falls back to an in-memory store
// and stays there, so an outage costs durability but never availability.
type Manager struct {
	store    ports.SessionStore
	fallback *MemoryStore
	degraded atomic.Bool
	codec    tokenCodec
	now      func() time.Time
	log      zerolog.Logger
}

func NewManager(store ports.SessionStore, secret string, ttl time.Duration, log zerolog.Logger) *Manager {
	return &Manager{
		store:    store,
		fallback: NewMemoryStore(),
		codec:    newTokenCodec(secret, ttl),
		now:      time.Now,
		log:      log,
	}
}

// Issue creates a session for the user and returns the signed token.
// activeRole marks the elevated role the user is acting as; pass the zero
// value for a base-role-only session.
func (m *Manager) Issue(ctx context.Context, user *domain.User, activeRole domain.Role) (string, error) {
	if activeRole != "" && !activeRole.Valid() {
		return "", domain.ErrUnknownRole
	}

	issuedAt := m.now().UTC()
	rec := &domain.Session{
		Token:      newSessionID(),
		UserID:     user.ID,
		ActiveRole: activeRole,
		Generation: 1,
		IssuedAt:   issuedAt,
		ExpiresAt:  issuedAt.Add(m.codec.ttl),
	}

	if err := m.save(ctx, rec); err != nil {
		return "", err
	}
	return m.codec.sign(rec.Token, user.ID, issuedAt)
}

// Resolve maps a raw token back to its stored session. Outcomes:
//   - valid token, live session: the session record.
//   - malformed or unverifiable token: domain.ErrMalformedSession.
//   - unknown, revoked, or expired session: domain.ErrSessionNotFound.
//   - corrupt stored record: treated as absent — the entry is cleared and
//     domain.ErrSessionNotFound is returned.
//
// Callers treat both error cases as anonymous; neither is fatal.
func (m *Manager) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	sid, _, err := m.codec.parse(token)
	if err != nil {
		return nil, err
	}

	rec, err := m.load(ctx, sid)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrMalformedSession):
		m.log.Warn().Str("session_id", sid).Msg("corrupt session record cleared")
		_ = m.clear(ctx, sid)
		return nil, domain.ErrSessionNotFound
	default:
		return nil, err
	}

	if rec.Expired(m.now().UTC()) {
		_ = m.clear(ctx, sid)
		return nil, domain.ErrSessionNotFound
	}
	return rec, nil
}

// Revoke destroys the session behind the token. Revoking an already-absent or
// unparseable token is a no-op: logout is idempotent.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	sid, _, err := m.codec.parse(token)
	if err != nil {
		return nil
	}
	return m.clear(ctx, sid)
}

// SwitchRole updates the active-role marker on a live session. The write is a
// compare-and-set on the session generation, so a stale concurrent switch can
// not overwrite a newer one; on contention the switch is retried against the
// fresh record.
func (m *Manager) SwitchRole(ctx context.Context, token string, role domain.Role) (*domain.Session, error) {
	if !role.Valid() {
		return nil, domain.ErrUnknownRole
	}

	for attempt := 0; attempt < switchRetries; attempt++ {
		rec, err := m.Resolve(ctx, token)
		if err != nil {
			return nil, err
		}

		rec.ActiveRole = role
		rec.Generation++
		err = m.save(ctx, rec)
		if errors.Is(err, domain.ErrStaleSession) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return rec, nil
	}
	return nil, domain.ErrStaleSession
}

func (m *Manager) save(ctx context.Context, rec *domain.Session) error {
	if m.degraded.Load() {
		return m.fallback.Save(ctx, rec)
	}
	err := m.store.Save(ctx, rec)
	if errors.Is(err, domain.ErrStorageUnavailable) {
		m.degrade(err)
		return m.fallback.Save(ctx, rec)
	}
	return err
}

func (m *Manager) load(ctx context.Context, sid string) (*domain.Session, error) {
	if m.degraded.Load() {
		return m.fallback.Load(ctx, sid)
	}
	rec, err := m.store.Load(ctx, sid)
	if errors.Is(err, domain.ErrStorageUnavailable) {
		m.degrade(err)
		return m.fallback.Load(ctx, sid)
	}
	return rec, err
}

func (m *Manager) clear(ctx context.Context, sid string) error {
	if m.degraded.Load() {
		return m.fallback.Clear(ctx, sid)
	}
	err := m.store.Clear(ctx, sid)
	if errors.Is(err, domain.ErrStorageUnavailable) {
		m.degrade(err)
		return m.fallback.Clear(ctx, sid)
	}
	return err
}

func (m *Manager) degrade(cause error) {
	if m.degraded.CompareAndSwap(false, true) {
		m.log.Warn().Err(cause).Msg("session storage unavailable, degrading to in-memory sessions")
	}
}
