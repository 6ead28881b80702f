package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/asklynk/qa-platform/docs"
	"github.com/asklynk/qa-platform/internal/api/handler"
	"github.com/asklynk/qa-platform/internal/api/middleware"
	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/service"
	"github.com/asklynk/qa-platform/internal/core/session"
	"github.com/asklynk/qa-platform/internal/infrastructure/config"
	mongorepo "github.com/asklynk/qa-platform/internal/infrastructure/db/mongo"
	redisstore "github.com/asklynk/qa-platform/internal/infrastructure/db/redis"
	"github.com/asklynk/qa-platform/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered. It also
// returns the notification dispatcher so the caller can start and stop its
// workers alongside the HTTP server.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("qa_platform"))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(db)
	questionRepo := mongorepo.NewQuestionRepository(db)
	answerRepo := mongorepo.NewAnswerRepository(db)
	entityRepo := mongorepo.NewEntityRepository(db)
	categoryRepo := mongorepo.NewCategoryRepository(db)
	notificationRepo := mongorepo.NewNotificationRepository(db)
	reportRepo := mongorepo.NewReportRepository(db)

	// --- Sessions & notifications ---
	sessionStore := redisstore.NewSessionStore(rdb)
	sessionManager := session.NewManager(sessionStore, cfg.JWTSecret, cfg.SessionTTL, log)

	notificationService := service.NewNotificationService(notificationRepo, log)
	dispatcher := queue.NewDispatcher(cfg.NotificationWorkers, notificationService, log)

	// --- Services ---
	authService := service.NewAuthService(userRepo, sessionManager, log)
	questionService := service.NewQuestionService(questionRepo, answerRepo, entityRepo, userRepo, dispatcher, log)
	entityService := service.NewEntityService(entityRepo, categoryRepo, log)
	userService := service.NewUserService(userRepo, log)
	moderationService := service.NewModerationService(questionRepo, reportRepo, userRepo, entityRepo, dispatcher, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	questionHandler := handler.NewQuestionHandler(questionService)
	entityHandler := handler.NewEntityHandler(entityService)
	userHandler := handler.NewUserHandler(userService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	adminHandler := handler.NewAdminHandler(moderationService)
	navigationHandler := handler.NewNavigationHandler()

	authenticate := middleware.Auth(authService)

	// --- Auth routes ---
	auth := e.Group("/auth", authenticate)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/switch-role", authHandler.SwitchRole, middleware.RequireAuth())
	auth.GET("/session", authHandler.Session)

	// --- Public & member routes ---
	v1 := e.Group("/v1", authenticate)

	v1.GET("/questions", questionHandler.List)
	v1.GET("/questions/user", questionHandler.ListMine, middleware.RequireAuth())
	v1.GET("/questions/:id", questionHandler.Get)
	v1.POST("/questions", questionHandler.Ask, middleware.RequireAuth())
	v1.POST("/questions/:id/upvote", questionHandler.Upvote, middleware.RequireAuth())
	v1.POST("/questions/:id/downvote", questionHandler.Downvote, middleware.RequireAuth())
	v1.GET("/questions/:id/answers", questionHandler.ListAnswers)
	v1.POST("/questions/:id/answers", questionHandler.Answer, middleware.RequireAuth())
	v1.POST("/answers/:id/upvote", questionHandler.UpvoteAnswer, middleware.RequireAuth())
	v1.POST("/answers/:id/downvote", questionHandler.DownvoteAnswer, middleware.RequireAuth())

	v1.GET("/entities", entityHandler.List)
	v1.GET("/entities/top", entityHandler.Top)
	v1.GET("/entities/slug/:slug", entityHandler.GetBySlug)
	v1.POST("/entities", entityHandler.Create, middleware.Require(domain.RoleEditor))
	v1.PATCH("/entities/:id", entityHandler.Update, middleware.Require(domain.RoleEditor))
	v1.GET("/categories", entityHandler.ListCategories)

	v1.GET("/users/top", userHandler.Top)
	v1.GET("/users/profile", userHandler.Profile, middleware.RequireAuth())
	v1.PATCH("/users/profile", userHandler.UpdateProfile, middleware.RequireAuth())

	notifications := v1.Group("/notifications", middleware.RequireAuth())
	notifications.GET("", notificationHandler.List)
	notifications.POST("/:id/read", notificationHandler.MarkRead)
	notifications.POST("/read-all", notificationHandler.MarkAllRead)
	notifications.DELETE("/:id", notificationHandler.Delete)

	v1.POST("/reports", adminHandler.FileReport, middleware.RequireAuth())

	v1.GET("/navigation", navigationHandler.Menu)

	// --- Moderation & administration ---
	admin := v1.Group("/admin", middleware.RequireAny(domain.RoleAdmin, domain.RoleModerator))
	admin.GET("/questions/pending", adminHandler.PendingQuestions)
	admin.POST("/questions/:id/approve", adminHandler.ApproveQuestion)
	admin.POST("/questions/:id/reject", adminHandler.RejectQuestion)
	admin.GET("/reports", adminHandler.PendingReports)
	admin.POST("/reports/:id/resolve", adminHandler.ResolveReport)
	admin.POST("/reports/:id/reject", adminHandler.RejectReport)
	admin.PATCH("/entities/:id", adminHandler.SetEntityFlags, middleware.Require(domain.RoleAdmin))
	admin.GET("/stats", adminHandler.Stats, middleware.Require(domain.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers, middleware.Require(domain.RoleAdmin))
	admin.PATCH("/users/:id", adminHandler.SetUserActive, middleware.Require(domain.RoleAdmin))

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e, dispatcher
}
