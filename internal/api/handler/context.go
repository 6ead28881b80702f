package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/asklynk/qa-platform/internal/api/middleware"
	"github.com/asklynk/qa-platform/internal/core/domain"
)

// currentUser extracts the authenticated user injected by the Auth middleware.
// Handlers behind a guard can assume it succeeds; the 401 here only fires if
// a route was wired without its guard, and then it fails closed.
func currentUser(c echo.Context) (*domain.User, error) {
	state := middleware.AuthState(c)
	if state.User == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return state.User, nil
}
