package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/ports"
)

type EntityHandler struct {
	entities ports.EntityService
}

func NewEntityHandler(entities ports.EntityService) *EntityHandler {
	return &EntityHandler{entities: entities}
}

type createEntityRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=120"`
	Description string   `json:"description,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

type updateEntityRequest struct {
	Description *string  `json:"description,omitempty"`
	Bio         *string  `json:"bio,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

type listEntitiesResponse struct {
	Items      []*domain.Entity `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// List handles GET /v1/entities.
//
// @Summary      List entities
// @Tags         entities
// @Produce      json
// @Param        category  query     string  false  "Filter by category slug"
// @Param        verified  query     bool    false  "Verified entities only"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  listEntitiesResponse
// @Router       /v1/entities [get]
func (h *EntityHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	verified, _ := strconv.ParseBool(c.QueryParam("verified"))

	result, err := h.entities.ListEntities(c.Request().Context(), ports.ListEntitiesFilter{
		Category:     c.QueryParam("category"),
		VerifiedOnly: verified,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listEntitiesResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// GetBySlug handles GET /v1/entities/slug/:slug.
//
// @Summary      Get an entity by slug
// @Tags         entities
// @Produce      json
// @Param        slug  path      string  true  "Entity slug"
// @Success      200   {object}  domain.Entity
// @Failure      404   {object}  map[string]string
// @Router       /v1/entities/slug/{slug} [get]
func (h *EntityHandler) GetBySlug(c echo.Context) error {
	e, err := h.entities.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// Top handles GET /v1/entities/top, ranked by question volume.
//
// @Summary      Most-asked entities
// @Tags         entities
// @Produce      json
// @Param        limit  query     int  false  "Max results"
// @Success      200    {array}   domain.Entity
// @Router       /v1/entities/top [get]
func (h *EntityHandler) Top(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	entities, err := h.entities.TopEntities(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entities)
}

// Create handles POST /v1/entities. Editor only.
//
// @Summary      Create an entity
// @Tags         entities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEntityRequest  true  "Entity"
// @Success      201   {object}  domain.Entity
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/entities [post]
func (h *EntityHandler) Create(c echo.Context) error {
	var req createEntityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	e, err := h.entities.Create(c.Request().Context(), ports.CreateEntityInput{
		Name:        req.Name,
		Description: req.Description,
		Bio:         req.Bio,
		Categories:  req.Categories,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, e)
}

// Update handles PATCH /v1/entities/:id. Editor only.
//
// @Summary      Update an entity
// @Tags         entities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Entity ID"
// @Param        body  body      updateEntityRequest  true  "Fields to update"
// @Success      200   {object}  domain.Entity
// @Failure      404   {object}  map[string]string
// @Router       /v1/entities/{id} [patch]
func (h *EntityHandler) Update(c echo.Context) error {
	var req updateEntityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	e, err := h.entities.Update(c.Request().Context(), c.Param("id"), ports.UpdateEntityInput{
		Description: req.Description,
		Bio:         req.Bio,
		Categories:  req.Categories,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// ListCategories handles GET /v1/categories.
//
// @Summary      List categories
// @Tags         entities
// @Produce      json
// @Success      200  {array}  domain.Category
// @Router       /v1/categories [get]
func (h *EntityHandler) ListCategories(c echo.Context) error {
	categories, err := h.entities.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}
