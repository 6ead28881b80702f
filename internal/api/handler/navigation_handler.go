package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/asklynk/qa-platform/internal/api/middleware"
	"github.com/asklynk/qa-platform/internal/core/nav"
)

// NavigationHandler serves the header/sidebar link sets for the caller's
// authentication state, so clients render exactly what the guard would allow.
type NavigationHandler struct{}

func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{}
}

// Menu handles GET /v1/navigation.
//
// @Summary      Navigation visible to the caller
// @Tags         navigation
// @Produce      json
// @Success      200  {object}  nav.Menu
// @Router       /v1/navigation [get]
func (h *NavigationHandler) Menu(c echo.Context) error {
	return c.JSON(http.StatusOK, nav.Visible(middleware.AuthState(c)))
}
