// Package apiserver provides the JSON API HTTP server
package apiserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/alchemorsel/recipebox/internal/infrastructure/config"
	"github.com/alchemorsel/recipebox/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/recipebox/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/recipebox/internal/infrastructure/monitoring"
	"github.com/alchemorsel/recipebox/internal/infrastructure/security"
	"github.com/alchemorsel/recipebox/internal/ports/inbound"
	"github.com/alchemorsel/recipebox/pkg/healthcheck"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Dependencies are the collaborators the server routes to.
// Metrics may be nil when metrics are disabled.
type Dependencies struct {
	Config      *config.Config
	Logger      *zap.Logger
	Accounts    inbound.AccountService
	Recipes     inbound.RecipeService
	UserRecipes inbound.UserRecipeService
	Tokens      middleware.TokenValidator
	RBAC        *security.RBAC
	Metrics     *monitoring.MetricsCollector
	Health      *healthcheck.HealthCheck
}

// Server is the JSON API HTTP server
type Server struct {
	deps    Dependencies
	logger  *zap.Logger
	router  *chi.Mux
	server  *http.Server
	openAPI *OpenAPIHandler
}

// New creates the server and its routes
func New(deps Dependencies) *Server {
	s := &Server{
		deps:    deps,
		logger:  deps.Logger.Named("apiserver"),
		openAPI: NewOpenAPIHandler(deps.Logger),
	}
	s.router = s.setupRoutes()

	var handler http.Handler = s.router
	if deps.Config.Monitoring.EnableTracing {
		handler = otelhttp.NewHandler(handler, deps.Config.App.Name,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	}

	// Cleartext HTTP/2 alongside HTTP/1.1
	h2s := &http2.Server{IdleTimeout: deps.Config.Server.IdleTimeout}
	handler = h2c.NewHandler(handler, h2s)

	cfg := deps.Config.Server
	s.server = &http.Server{
		Addr:           deps.Config.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
		ErrorLog:       zap.NewStdLog(s.logger),
	}
	if err := http2.ConfigureServer(s.server, h2s); err != nil {
		s.logger.Warn("HTTP/2 configuration failed; serving HTTP/1.1 only", zap.Error(err))
	}

	return s
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() *chi.Mux {
	cfg := s.deps.Config
	log := s.deps.Logger

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5, "application/json", "application/x-yaml"))
	r.Use(middleware.Security())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.APIVersion(cfg.App.Version))

	if s.deps.Metrics != nil {
		r.Use(middleware.Metrics(s.deps.Metrics))
	}
	if cfg.RateLimit.Enable {
		r.Use(middleware.NewRateLimiter(cfg.RateLimit, log).Middleware())
	}

	// chi rejects middleware registered after the first route
	if s.deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.deps.Metrics.Handler())
	}

	if s.deps.Health != nil {
		r.Get("/health", s.deps.Health.Handler())
		r.Get("/health/live", s.deps.Health.LivenessHandler())
		r.Get("/health/ready", s.deps.Health.ReadinessHandler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.JSONBody(log))
		r.Get("/openapi.yaml", s.openAPI.ServeOpenAPISpec)
		r.Get("/docs", s.openAPI.ServeSwaggerUI)
		s.setupAccountRoutes(r)
		s.setupRecipeRoutes(r)
		s.setupUserRecipeRoutes(r)
	})

	return r
}

func (s *Server) setupAccountRoutes(r chi.Router) {
	h := handlers.NewAccountHandlers(s.deps.Accounts, s.deps.Metrics, s.deps.Logger)
	log := s.deps.Logger

	r.Route("/account", func(r chi.Router) {
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(s.deps.Tokens, log))
			r.With(s.require(security.ResourceAccounts, security.ActionCreate)).Post("/register", h.Register)
			r.With(s.require(security.ResourceAccounts, security.ActionRead)).Get("/all", h.ListUsers)
			r.With(s.require(security.ResourceAccounts, security.ActionDelete)).Delete("/{username}", h.DeleteUser)
		})
	})
}

func (s *Server) setupRecipeRoutes(r chi.Router) {
	h := handlers.NewRecipeHandlers(s.deps.Recipes, s.deps.Metrics, s.deps.Logger)

	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", h.ListRecipes)
		r.Post("/", h.CreateRecipe)
		r.Get("/search", h.SearchRecipes)
		r.Post("/ask-ai", h.AskAI)
		r.Get("/{id}", h.GetRecipe)
		r.Put("/{id}", h.UpdateRecipe)
		r.Delete("/{id}", h.DeleteRecipe)
		r.Patch("/{id}/status", h.PatchStatus)
	})
}

func (s *Server) setupUserRecipeRoutes(r chi.Router) {
	h := handlers.NewUserRecipeHandlers(s.deps.UserRecipes, s.deps.Metrics, s.deps.Logger)

	r.Route("/userrecipe", func(r chi.Router) {
		r.Use(middleware.Authenticate(s.deps.Tokens, s.deps.Logger))

		r.With(s.require(security.ResourceUserRecipes, security.ActionCreate)).Post("/", h.Add)
		r.With(s.require(security.ResourceUserRecipes, security.ActionUpdate)).Put("/", h.UpdateStatus)
		r.With(s.require(security.ResourceUserRecipes, security.ActionDelete)).Delete("/", h.Remove)
		r.With(s.require(security.ResourceUserRecipes, security.ActionRead)).Get("/my", h.ListMine)
		r.With(s.require(security.ResourceUserRecipes, security.ActionAsk)).Post("/ask-user-ai", h.AskUserAI)
	})
}

func (s *Server) require(resource, action string) func(http.Handler) http.Handler {
	return middleware.RequirePermission(s.deps.RBAC, resource, action, s.deps.Logger)
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Starting API server", zap.String("address", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.server.Shutdown(ctx)
}
