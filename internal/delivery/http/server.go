package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/rutea-api/internal/config"
	"github.com/rutea-api/internal/delivery/http/handler"
	"github.com/rutea-api/internal/delivery/http/middleware"
	"github.com/rutea-api/internal/pkg/utils"
)

// Handlers - every HTTP handler the server routes to
type Handlers struct {
	User     *handler.UserHandler
	Category *handler.CategoryHandler
	Point    *handler.PointHandler
	Review   *handler.ReviewHandler
	Route    *handler.RouteHandler
	Activity *handler.ActivityHandler
	Health   *handler.HealthHandler
}

// Server - Fiber HTTP server
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
	registry *prometheus.Registry
}

// NewServer builds the app with its middleware and routes. registry may be
// nil when metrics are disabled.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	handlers Handlers,
	registry *prometheus.Registry,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Rutea API",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: errorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
		registry: registry,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	if s.config.Tracing.Enabled() {
		s.app.Use(middleware.Tracing(otel.GetTracerProvider()))
	}
	s.app.Use(middleware.Logger(s.logger))
	if s.metricsEnabled() {
		s.app.Use(middleware.NewMetrics(s.registry).Handler())
	}
	s.app.Use(middleware.CORS(s.config.Server.CORSAllowOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	if s.metricsEnabled() {
		s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	}

	api := s.app.Group("/api")

	api.Get("/health", s.handlers.Health.Check)
	api.Get("/actividad", s.handlers.Activity.List)

	users := api.Group("/usuarios")
	users.Get("/", s.handlers.User.List)
	users.Post("/", s.handlers.User.Create)
	users.Get("/:id", s.handlers.User.Get)
	users.Put("/:id", s.handlers.User.Update)
	users.Patch("/:id", s.handlers.User.Patch)
	users.Delete("/:id", s.handlers.User.Delete)

	categories := api.Group("/categorias")
	categories.Get("/", s.handlers.Category.List)
	categories.Post("/", s.handlers.Category.Create)
	categories.Get("/:id", s.handlers.Category.Get)
	categories.Put("/:id", s.handlers.Category.Update)
	categories.Patch("/:id", s.handlers.Category.Patch)
	categories.Delete("/:id", s.handlers.Category.Delete)

	points := api.Group("/puntos")
	points.Get("/", s.handlers.Point.List)
	points.Post("/", s.handlers.Point.Create)
	points.Get("/:id", s.handlers.Point.Get)
	points.Put("/:id", s.handlers.Point.Update)
	points.Patch("/:id", s.handlers.Point.Patch)
	points.Delete("/:id", s.handlers.Point.Delete)

	reviews := api.Group("/resenas")
	reviews.Get("/", s.handlers.Review.List)
	reviews.Post("/", s.handlers.Review.Create)
	reviews.Get("/:id", s.handlers.Review.Get)
	reviews.Put("/:id", s.handlers.Review.Update)
	reviews.Patch("/:id", s.handlers.Review.Patch)
	reviews.Delete("/:id", s.handlers.Review.Delete)

	routes := api.Group("/rutas")
	routes.Get("/", s.handlers.Route.List)
	routes.Post("/", s.handlers.Route.Create)
	routes.Get("/:id", s.handlers.Route.Get)
	routes.Put("/:id", s.handlers.Route.Update)
	routes.Patch("/:id", s.handlers.Route.Patch)
	routes.Delete("/:id", s.handlers.Route.Delete)
}

func (s *Server) metricsEnabled() bool {
	return s.config.Metrics.Enabled && s.registry != nil
}

// App exposes the Fiber app, mainly for app.Test in handler tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// errorHandler renders errors that escaped the handlers (unknown routes,
// recovered panics, body limit) with the shared error body.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return utils.SendError(c, logger, err)
	}
}
