package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/lampara23/dise-o-web/internal/infrastructure/config"
	"github.com/lampara23/dise-o-web/internal/infrastructure/http/handler"
	"github.com/lampara23/dise-o-web/internal/infrastructure/http/middleware"
	"github.com/lampara23/dise-o-web/internal/infrastructure/telemetry"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Handlers groups the request handlers mounted under /api.
type Handlers struct {
	Products *handler.ProductHandler
	Users    *handler.UserHandler
	Health   *handler.HealthHandler
}

// Server represents the HTTP server
type Server struct {
	router    *chi.Mux
	config    *config.ServerConfig
	handlers  Handlers
	logger    *slog.Logger
	telemetry *telemetry.Telemetry
	srv       *http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.ServerConfig,
	handlers Handlers,
	telem *telemetry.Telemetry,
) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		config:    cfg,
		handlers:  handlers,
		logger:    telem.Logger,
		telemetry: telem,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.srv = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler: s.Handler(),
	}

	return s
}

// setupMiddleware configures the middleware chain
func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(middleware.RouteTag())
	// Structured JSON logging middleware (replaces chimiddleware.Logger)
	s.router.Use(middleware.StructuredLogger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	// The frontend is served from other origins; nothing is restricted.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions, http.MethodHead},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	meter := s.telemetry.MeterProvider.Meter("doggys-api")
	s.router.Use(middleware.ActiveRequestsMiddleware(meter))
	if s.config.DurationMillis {
		s.router.Use(middleware.DurationMillisecondsMiddleware(meter))
	}
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.handlers.Products.ListProducts)
			r.Post("/", s.handlers.Products.CreateProduct)
			r.Put("/{id}", s.handlers.Products.UpdateProduct)
			r.Delete("/{id}", s.handlers.Products.DeleteProduct)
		})
		r.Get("/users", s.handlers.Users.ListUsers)
		r.Get("/health", s.handlers.Health.Health)
	})

	// Prometheus metrics endpoint - exposes OpenTelemetry metrics
	s.router.Get("/metrics", promhttp.HandlerFor(s.telemetry.Registry, promhttp.HandlerOpts{}).ServeHTTP)
}

// Handler returns the router wrapped with otelhttp for automatic HTTP
// metrics and tracing (http.server.request.duration and friends).
// The route attribute and final span name are set by middleware.RouteTag.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.router, "http-server",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return r.Method
		}),
		otelhttp.WithTracerProvider(s.telemetry.TracerProvider),
		otelhttp.WithMeterProvider(s.telemetry.MeterProvider),
	)
}

// Start serves until Shutdown is called. It returns nil after a clean shutdown.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		slog.String("address", s.srv.Addr),
	)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
