package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/asklynk/qa-platform/internal/api/metrics"
	"github.com/asklynk/qa-platform/internal/api/middleware"
	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=40"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=User Admin Editor Moderator Support"`
}

type switchRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=User Admin Editor Moderator Support"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
}

// Register creates a new account and establishes a session.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusCreated, authResponse{Token: result.Token, User: result.User})
}

// Login authenticates a user and returns a session token. An optional role
// names the elevated role to act as for this session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	roleLabel := req.Role
	if roleLabel == "" {
		roleLabel = string(domain.RoleUser)
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure", roleLabel).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success", roleLabel).Inc()
	return c.JSON(http.StatusOK, authResponse{Token: result.Token, User: result.User})
}

// Logout revokes the caller's session. Idempotent: logging out without a live
// session still returns 204.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := middleware.Token(c); token != "" {
		if err := h.authService.Logout(c.Request().Context(), token); err != nil {
			return err
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// SwitchRole changes the caller's active role. The user's role set becomes
// {base, role}; the previous elevated role, if any, is replaced.
//
// @Summary      Switch active role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      switchRoleRequest  true  "Target role"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/switch-role [post]
func (h *AuthHandler) SwitchRole(c echo.Context) error {
	var req switchRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.SwitchRole(c.Request().Context(), middleware.Token(c), domain.Role(req.Role))
	if err != nil {
		return err
	}

	metrics.RoleSwitchesTotal.WithLabelValues(req.Role).Inc()
	return c.JSON(http.StatusOK, authResponse{Token: result.Token, User: result.User})
}

// Session reports the caller's current authentication state. Clients call it
// on boot to rehydrate; an anonymous result is a 200, not an error.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	state := middleware.AuthState(c)
	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: state.IsAuthenticated(),
		User:          state.User,
	})
}
