package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/asklynk/qa-platform/internal/api/metrics"
	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/guard"
)

// loginPath is where anonymous callers are pointed when a protected route
// rejects them.
const loginPath = "/login"

// RequireAuth admits any authenticated user.
func RequireAuth() echo.MiddlewareFunc {
	return Require("")
}

// Require admits authenticated users holding the given role (zero value: any
// authenticated user). Anonymous callers get 401 with a login redirect hint;
// authenticated callers lacking the role get 403 — uniformly, on every
// guarded route.
func Require(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return enforce(c, next, guard.Decide(AuthState(c), role))
		}
	}
}

// RequireAny admits users holding at least one of the given roles.
func RequireAny(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return enforce(c, next, guard.DecideAny(AuthState(c), roles...))
		}
	}
}

func enforce(c echo.Context, next echo.HandlerFunc, decision guard.Decision) error {
	metrics.GuardDecisionsTotal.WithLabelValues(decision.String()).Inc()

	switch decision {
	case guard.Allow:
		return next(c)
	case guard.Forbidden:
		return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
	default:
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error":    "authentication required",
			"redirect": loginPath,
		})
	}
}
