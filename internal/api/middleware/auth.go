package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/asklynk/qa-platform/internal/core/ports"
	"github.com/asklynk/qa-platform/internal/core/session"
)

const (
	stateKey = "auth_state"
	tokenKey = "auth_token"
)

// Auth resolves the bearer token into an auth state and injects it into the
// request context. Requests without a token, or with a token that no longer
// resolves, pass through anonymous; enforcement is the guard's job, not this
// middleware's.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			state := session.AnonymousState()

			if token := bearerToken(c); token != "" {
				user, err := auth.Resolve(c.Request().Context(), token)
				if err != nil {
					// Infrastructure failure, not a bad credential.
					return err
				}
				state = session.AuthenticatedState(user)
				c.Set(tokenKey, token)
			}

			c.Set(stateKey, state)
			return next(c)
		}
	}
}

// AuthState extracts the snapshot injected by Auth. Absence (a route wired
// without the middleware) reads as anonymous.
func AuthState(c echo.Context) session.AuthState {
	if state, ok := c.Get(stateKey).(session.AuthState); ok {
		return state
	}
	return session.AnonymousState()
}

// Token returns the raw bearer token for the request, or "".
func Token(c echo.Context) string {
	token, _ := c.Get(tokenKey).(string)
	return token
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
