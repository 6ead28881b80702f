package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/ports"
)

// SessionStore persists sessions in Redis. Each session occupies two keys:
//
//	session:<id>       JSON record (user, generation, timestamps)
//	session:<id>:role  active-role marker, absent when only the base role is held
//
// Save is a compare-and-set on the record's generation, implemented with
// WATCH so a stale concurrent write aborts instead of clobbering a newer one.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

var _ ports.SessionStore = (*SessionStore)(nil)

// sessionRecord is the persisted shape. The active role lives in its own key.
type sessionRecord struct {
	UserID     string    `json:"user_id"`
	Generation uint64    `json:"generation"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func (s *SessionStore) Save(ctx context.Context, rec *domain.Session) error {
	key := s.key(rec.Token)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		switch {
		case err == redis.Nil:
			if rec.Generation != 1 {
				return domain.ErrStaleSession
			}
		case err != nil:
			return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
		default:
			var current sessionRecord
			if jsonErr := json.Unmarshal([]byte(raw), &current); jsonErr == nil {
				if rec.Generation != current.Generation+1 {
					return domain.ErrStaleSession
				}
			}
			// A corrupt record is overwritten unconditionally.
		}

		payload, err := json.Marshal(sessionRecord{
			UserID:     rec.UserID,
			Generation: rec.Generation,
			IssuedAt:   rec.IssuedAt,
			ExpiresAt:  rec.ExpiresAt,
		})
		if err != nil {
			return err
		}

		ttl := time.Until(rec.ExpiresAt)
		if ttl <= 0 {
			ttl = time.Minute
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, ttl)
			if rec.ActiveRole != "" {
				pipe.Set(ctx, s.roleKey(rec.Token), string(rec.ActiveRole), ttl)
			} else {
				pipe.Del(ctx, s.roleKey(rec.Token))
			}
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.TxFailedErr):
		return domain.ErrStaleSession
	case errors.Is(err, domain.ErrStaleSession), errors.Is(err, domain.ErrStorageUnavailable):
		return err
	default:
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
}

func (s *SessionStore) Load(ctx context.Context, token string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, s.key(token)).Result()
	if err == redis.Nil {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	var rec sessionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, domain.ErrMalformedSession
	}

	out := &domain.Session{
		Token:      token,
		UserID:     rec.UserID,
		Generation: rec.Generation,
		IssuedAt:   rec.IssuedAt,
		ExpiresAt:  rec.ExpiresAt,
	}

	roleRaw, err := s.client.Get(ctx, s.roleKey(token)).Result()
	switch {
	case err == redis.Nil:
		// no active role
	case err != nil:
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	default:
		// An unknown role value is dropped rather than failing the session.
		if role, parseErr := domain.ParseRole(roleRaw); parseErr == nil {
			out.ActiveRole = role
		}
	}

	return out, nil
}

func (s *SessionStore) Clear(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token), s.roleKey(token)).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *SessionStore) key(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func (s *SessionStore) roleKey(token string) string {
	return fmt.Sprintf("session:%s:role", token)
}
