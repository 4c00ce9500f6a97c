// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"engagement-service/internal/app/service"
	"engagement-service/internal/transport/httpserver/handler"
	"engagement-service/internal/transport/httpserver/middleware"
	"engagement-service/internal/validator"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port      int
	BodyLimit int
	Debug     bool
}

// Server wraps Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	cfg ServerConfig,
	engagementSvc *service.EngagementService,
	qaSvc *service.QAService,
	feedSvc *service.FeedService,
	profileSvc *service.ProfileService,
	rdb *redis.Client,
	v *validator.Validator,
	logger *zap.Logger,
) *Server {
	// Template engine for dashboard
	engine := html.New("./web/templates", ".html")
	if cfg.Debug {
		engine.Reload(true)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "engagement-service",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler(logger),
		Views:        engine,
	})

	// Health check middleware MUST be registered BEFORE other middleware
	// for Kubernetes probes to work even during high load
	app.Use(middleware.NewHealthCheck(rdb))

	// Global middleware
	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.Logger(logger))
	app.Use(middleware.CORS())
	app.Use(compress.New())

	// Static files
	app.Static("/static", "./web/static")

	// Create handlers
	engagementHandler := handler.NewEngagementHandler(engagementSvc, v, logger)
	qaHandler := handler.NewQAHandler(qaSvc, v, logger)
	feedHandler := handler.NewFeedHandler(feedSvc, v, logger)
	profileHandler := handler.NewProfileHandler(profileSvc, v, logger)
	dashboardHandler := handler.NewDashboardHandler(feedSvc, logger)

	// Register routes
	registerRoutes(app, engagementHandler, qaHandler, feedHandler, profileHandler, dashboardHandler)

	return &Server{
		App:    app,
		Logger: logger,
	}
}

// registerRoutes sets up all API routes.
func registerRoutes(
	app *fiber.App,
	engagementHandler *handler.EngagementHandler,
	qaHandler *handler.QAHandler,
	feedHandler *handler.FeedHandler,
	profileHandler *handler.ProfileHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	// Health checks are handled by middleware (/livez, /readyz)

	// Dashboard (HTML)
	app.Get("/dashboard", dashboardHandler.Render)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard")
	})

	// API v1 routes
	v1 := app.Group("/api/v1")

	// Feed
	v1.Get("/feed", feedHandler.Load)

	// Contents and engagement
	contents := v1.Group("/contents")
	contents.Get("/:id", engagementHandler.GetContent)
	contents.Delete("/:id", engagementHandler.Delete)
	contents.Post("/:id/like", engagementHandler.ToggleLike)
	contents.Post("/:id/save", engagementHandler.ToggleSave)
	contents.Post("/:id/repost", engagementHandler.Repost)

	// Comments and Q&A
	contents.Post("/:id/comments", qaHandler.PostComment)
	contents.Post("/:id/answers", qaHandler.PostAnswer)
	contents.Post("/:id/answers/:index/vote", qaHandler.Vote)
	contents.Post("/:id/answers/:index/accept", qaHandler.Accept)

	// Profiles
	v1.Get("/profile", profileHandler.Current)
	v1.Put("/profile", profileHandler.Update)
	v1.Delete("/profile", profileHandler.Delete)
	v1.Get("/profiles/:id", profileHandler.ByID)
	v1.Get("/profiles/:id/public", profileHandler.Public)
}

// errorHandler returns a custom error handler that logs based on HTTP status code.
// 404s are logged at DEBUG level (expected client behavior), 4xx at WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		// Log based on status code - 404s are common and not server errors
		switch {
		case code == fiber.StatusNotFound:
			logger.Debug("resource not found",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		case code >= 500:
			logger.Error("server error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		case code >= 400:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			logger.Error("unhandled error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "UNHANDLED_ERROR",
		})
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	s.Logger.Info("starting HTTP server", zap.Int("port", port))

	return s.App.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.Shutdown()
}
