package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/asklynk/qa-platform/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type updateProfileRequest struct {
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=120"`
	Website  *string `json:"website,omitempty" validate:"omitempty,url"`
}

// Profile handles GET /v1/users/profile.
//
// @Summary      Current user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /v1/users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	profile, err := h.users.Profile(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PATCH /v1/users/profile.
//
// @Summary      Update current user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Router       /v1/users/profile [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.users.UpdateProfile(c.Request().Context(), user.ID, ports.ProfileUpdate{
		Bio:      req.Bio,
		Location: req.Location,
		Website:  req.Website,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Top handles GET /v1/users/top — the reputation leaderboard.
//
// @Summary      Top users by reputation
// @Tags         users
// @Produce      json
// @Param        limit  query    int  false  "Number of users (default 10)"
// @Success      200    {array}  domain.User
// @Router       /v1/users/top [get]
func (h *UserHandler) Top(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	users, err := h.users.TopUsers(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
