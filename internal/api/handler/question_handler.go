package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/asklynk/qa-platform/internal/api/metrics"
	"github.com/asklynk/qa-platform/internal/api/middleware"
	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/ports"
)

type QuestionHandler struct {
	questions ports.QuestionService
}

func NewQuestionHandler(questions ports.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

type askQuestionRequest struct {
	Title    string   `json:"title" validate:"required,min=10,max=200"`
	Content  string   `json:"content" validate:"required,min=20"`
	EntityID string   `json:"entity_id" validate:"required"`
	Tags     []string `json:"tags,omitempty"`
}

type answerRequest struct {
	Content string `json:"content" validate:"required,min=10"`
}

type listQuestionsResponse struct {
	Items      []*domain.Question `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

// List handles GET /v1/questions — approved questions, filterable and paginated.
//
// @Summary      List questions
// @Tags         questions
// @Produce      json
// @Param        entity_id  query     string  false  "Filter by entity"
// @Param        status     query     string  false  "Moderation status (moderation roles only)"
// @Param        tag        query     string  false  "Filter by tag slug"
// @Param        page       query     int     false  "Page (1-based)"
// @Param        limit      query     int     false  "Page size"
// @Success      200        {object}  listQuestionsResponse
// @Failure      403        {object}  map[string]string
// @Router       /v1/questions [get]
func (h *QuestionHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	status, err := moderationStatusParam(c)
	if err != nil {
		return err
	}

	result, err := h.questions.ListQuestions(c.Request().Context(), ports.ListQuestionsFilter{
		EntityID: c.QueryParam("entity_id"),
		Status:   status,
		Tag:      c.QueryParam("tag"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listQuestionsResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// moderationStatusParam reads the optional status filter. Anything other
// than approved surfaces the moderation queue, so those values are limited
// to admins and moderators.
func moderationStatusParam(c echo.Context) (string, error) {
	status := c.QueryParam("status")
	if status == "" || status == string(domain.StatusApproved) {
		return status, nil
	}
	if !domain.ModerationStatus(status).Valid() {
		return "", echo.NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	state := middleware.AuthState(c)
	if state.User == nil ||
		!(state.User.Roles.Has(domain.RoleAdmin) || state.User.Roles.Has(domain.RoleModerator)) {
		return "", echo.NewHTTPError(http.StatusForbidden, "status filter requires a moderation role")
	}
	return status, nil
}

// ListMine handles GET /v1/questions/user — the caller's own questions in
// every moderation state.
//
// @Summary      List the caller's questions
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Moderation status"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listQuestionsResponse
// @Failure      401     {object}  map[string]string
// @Router       /v1/questions/user [get]
func (h *QuestionHandler) ListMine(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.questions.ListQuestions(c.Request().Context(), ports.ListQuestionsFilter{
		AskedBy: user.ID,
		Status:  c.QueryParam("status"),
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listQuestionsResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get handles GET /v1/questions/:id.
//
// @Summary      Get a question
// @Tags         questions
// @Produce      json
// @Param        id   path      string  true  "Question ID"
// @Success      200  {object}  domain.Question
// @Failure      404  {object}  map[string]string
// @Router       /v1/questions/{id} [get]
func (h *QuestionHandler) Get(c echo.Context) error {
	q, err := h.questions.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, q)
}

// Ask handles POST /v1/questions — submits a question into moderation.
//
// @Summary      Ask a question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      askQuestionRequest  true  "Question"
// @Success      201   {object}  domain.Question
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/questions [post]
func (h *QuestionHandler) Ask(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req askQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	q, err := h.questions.Ask(c.Request().Context(), ports.AskQuestionInput{
		Title:    req.Title,
		Content:  req.Content,
		EntityID: req.EntityID,
		AskedBy:  user.ID,
		Tags:     req.Tags,
	})
	if err != nil {
		return err
	}

	metrics.QuestionsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, q)
}

// Upvote handles POST /v1/questions/:id/upvote.
//
// @Summary      Upvote a question
// @Tags         questions
// @Security     BearerAuth
// @Param        id  path  string  true  "Question ID"
// @Success      204
// @Router       /v1/questions/{id}/upvote [post]
func (h *QuestionHandler) Upvote(c echo.Context) error {
	return h.voteQuestion(c, domain.VoteUp)
}

// Downvote handles POST /v1/questions/:id/downvote.
//
// @Summary      Downvote a question
// @Tags         questions
// @Security     BearerAuth
// @Param        id  path  string  true  "Question ID"
// @Success      204
// @Router       /v1/questions/{id}/downvote [post]
func (h *QuestionHandler) Downvote(c echo.Context) error {
	return h.voteQuestion(c, domain.VoteDown)
}

func (h *QuestionHandler) voteQuestion(c echo.Context, dir domain.VoteDirection) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	err = h.questions.VoteQuestion(c.Request().Context(), ports.VoteInput{
		TargetID:  c.Param("id"),
		VoterID:   user.ID,
		Direction: dir,
	})
	if err != nil {
		return err
	}

	metrics.VotesTotal.WithLabelValues("question", string(dir)).Inc()
	return c.NoContent(http.StatusNoContent)
}

// ListAnswers handles GET /v1/questions/:id/answers.
//
// @Summary      List answers for a question
// @Tags         answers
// @Produce      json
// @Param        id   path      string  true  "Question ID"
// @Success      200  {array}   domain.Answer
// @Failure      404  {object}  map[string]string
// @Router       /v1/questions/{id}/answers [get]
func (h *QuestionHandler) ListAnswers(c echo.Context) error {
	answers, err := h.questions.ListAnswers(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, answers)
}

// Answer handles POST /v1/questions/:id/answers.
//
// @Summary      Answer a question
// @Tags         answers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Question ID"
// @Param        body  body      answerRequest  true  "Answer"
// @Success      201   {object}  domain.Answer
// @Failure      400   {object}  map[string]string
// @Router       /v1/questions/{id}/answers [post]
func (h *QuestionHandler) Answer(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req answerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	a, err := h.questions.Answer(c.Request().Context(), ports.AnswerInput{
		QuestionID: c.Param("id"),
		Content:    req.Content,
		AnsweredBy: user.ID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

// UpvoteAnswer handles POST /v1/answers/:id/upvote.
//
// @Summary      Upvote an answer
// @Tags         answers
// @Security     BearerAuth
// @Param        id  path  string  true  "Answer ID"
// @Success      204
// @Router       /v1/answers/{id}/upvote [post]
func (h *QuestionHandler) UpvoteAnswer(c echo.Context) error {
	return h.voteAnswer(c, domain.VoteUp)
}

// DownvoteAnswer handles POST /v1/answers/:id/downvote.
//
// @Summary      Downvote an answer
// @Tags         answers
// @Security     BearerAuth
// @Param        id  path  string  true  "Answer ID"
// @Success      204
// @Router       /v1/answers/{id}/downvote [post]
func (h *QuestionHandler) DownvoteAnswer(c echo.Context) error {
	return h.voteAnswer(c, domain.VoteDown)
}

func (h *QuestionHandler) voteAnswer(c echo.Context, dir domain.VoteDirection) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	err = h.questions.VoteAnswer(c.Request().Context(), ports.VoteInput{
		TargetID:  c.Param("id"),
		VoterID:   user.ID,
		Direction: dir,
	})
	if err != nil {
		return err
	}

	metrics.VotesTotal.WithLabelValues("answer", string(dir)).Inc()
	return c.NoContent(http.StatusNoContent)
}
