package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/asklynk/qa-platform/internal/api/metrics"
	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/ports"
)

// AdminHandler serves the role-gated dashboards: admin stats and user/entity
// administration, moderator question review and report handling. Which roles
// reach which endpoint is decided in the router, not here.
type AdminHandler struct {
	moderation ports.ModerationService
}

func NewAdminHandler(moderation ports.ModerationService) *AdminHandler {
	return &AdminHandler{moderation: moderation}
}

type fileReportRequest struct {
	ContentType string `json:"content_type" validate:"required,oneof=question answer"`
	ContentID   string `json:"content_id" validate:"required"`
	Reason      string `json:"reason" validate:"required,min=5,max=500"`
}

type setActiveRequest struct {
	IsActive bool `json:"is_active"`
}

type entityFlagsRequest struct {
	IsVerified  *bool `json:"is_verified,omitempty"`
	IsAvailable *bool `json:"is_available,omitempty"`
}

type listUsersResponse struct {
	Items []*domain.User `json:"items"`
	Total int64          `json:"total"`
}

// Stats handles GET /v1/admin/stats.
//
// @Summary      Platform statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.PlatformStats
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.moderation.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// PendingQuestions handles GET /v1/admin/questions/pending.
//
// @Summary      Questions awaiting review
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Question
// @Router       /v1/admin/questions/pending [get]
func (h *AdminHandler) PendingQuestions(c echo.Context) error {
	items, err := h.moderation.PendingQuestions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// ApproveQuestion handles POST /v1/admin/questions/:id/approve.
//
// @Summary      Approve a pending question
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Question ID"
// @Success      204
// @Failure      422  {object}  map[string]string
// @Router       /v1/admin/questions/{id}/approve [post]
func (h *AdminHandler) ApproveQuestion(c echo.Context) error {
	return h.reviewQuestion(c, domain.StatusApproved)
}

// RejectQuestion handles POST /v1/admin/questions/:id/reject.
//
// @Summary      Reject a pending question
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Question ID"
// @Success      204
// @Failure      422  {object}  map[string]string
// @Router       /v1/admin/questions/{id}/reject [post]
func (h *AdminHandler) RejectQuestion(c echo.Context) error {
	return h.reviewQuestion(c, domain.StatusRejected)
}

func (h *AdminHandler) reviewQuestion(c echo.Context, decision domain.ModerationStatus) error {
	if err := h.moderation.ReviewQuestion(c.Request().Context(), c.Param("id"), decision); err != nil {
		return err
	}
	metrics.ModerationDecisionsTotal.WithLabelValues(string(decision)).Inc()
	return c.NoContent(http.StatusNoContent)
}

// FileReport handles POST /v1/reports — open to any authenticated user.
//
// @Summary      Report content
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      fileReportRequest  true  "Report"
// @Success      201   {object}  domain.Report
// @Failure      400   {object}  map[string]string
// @Router       /v1/reports [post]
func (h *AdminHandler) FileReport(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req fileReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	report, err := h.moderation.FileReport(c.Request().Context(),
		domain.ContentType(req.ContentType), req.ContentID, user.ID, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, report)
}

// PendingReports handles GET /v1/admin/reports.
//
// @Summary      Reports awaiting review
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Report
// @Router       /v1/admin/reports [get]
func (h *AdminHandler) PendingReports(c echo.Context) error {
	items, err := h.moderation.PendingReports(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// ResolveReport handles POST /v1/admin/reports/:id/resolve.
//
// @Summary      Resolve a report
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Report ID"
// @Success      204
// @Router       /v1/admin/reports/{id}/resolve [post]
func (h *AdminHandler) ResolveReport(c echo.Context) error {
	return h.decideReport(c, domain.ReportResolved)
}

// RejectReport handles POST /v1/admin/reports/:id/reject.
//
// @Summary      Reject a report
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Report ID"
// @Success      204
// @Router       /v1/admin/reports/{id}/reject [post]
func (h *AdminHandler) RejectReport(c echo.Context) error {
	return h.decideReport(c, domain.ReportRejected)
}

func (h *AdminHandler) decideReport(c echo.Context, decision domain.ReportStatus) error {
	if err := h.moderation.ResolveReport(c.Request().Context(), c.Param("id"), decision); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListUsers handles GET /v1/admin/users.
//
// @Summary      List user accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  listUsersResponse
// @Router       /v1/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	users, total, err := h.moderation.ListUsers(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listUsersResponse{Items: users, Total: total})
}

// SetUserActive handles PATCH /v1/admin/users/:id.
//
// @Summary      Activate or deactivate a user
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string            true  "User ID"
// @Param        body  body  setActiveRequest  true  "Status"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/users/{id} [patch]
func (h *AdminHandler) SetUserActive(c echo.Context) error {
	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.moderation.SetUserActive(c.Request().Context(), c.Param("id"), req.IsActive); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetEntityFlags handles PATCH /v1/admin/entities/:id.
//
// @Summary      Update entity verification/availability
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string              true  "Entity ID"
// @Param        body  body  entityFlagsRequest  true  "Flags"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/entities/{id} [patch]
func (h *AdminHandler) SetEntityFlags(c echo.Context) error {
	var req entityFlagsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.moderation.SetEntityFlags(c.Request().Context(), c.Param("id"), req.IsVerified, req.IsAvailable); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
