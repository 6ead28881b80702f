package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/asklynk/qa-platform/internal/core/domain"
)

// tokenCodec signs and parses session tokens. The token is opaque to clients;
// internally it is an HS256 JWT carrying the session ID and user ID so a
// request can be mapped back to its stored session without a table scan.
type tokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func newTokenCodec(secret string, ttl time.Duration) tokenCodec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return tokenCodec{secret: []byte(secret), ttl: ttl}
}

func (c tokenCodec) sign(sessionID, userID string, issuedAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"sub": userID,
		"iat": issuedAt.Unix(),
		"exp": issuedAt.Add(c.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// parse validates the token and extracts the session and user IDs. Any
// structural or signature problem maps to domain.ErrMalformedSession.
func (c tokenCodec) parse(token string) (sessionID, userID string, err error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", "", domain.ErrMalformedSession
	}

	sessionID, _ = claims["sid"].(string)
	userID, _ = claims["sub"].(string)
	if sessionID == "" || userID == "" {
		return "", "", domain.ErrMalformedSession
	}
	return sessionID, userID, nil
}

// newSessionID returns a random 128-bit hex identifier.
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("%016x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
