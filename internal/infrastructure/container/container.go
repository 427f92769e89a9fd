// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	aiapp "github.com/alchemorsel/recipebox/internal/application/ai"
	recipeapp "github.com/alchemorsel/recipebox/internal/application/recipe"
	userapp "github.com/alchemorsel/recipebox/internal/application/user"
	userrecipeapp "github.com/alchemorsel/recipebox/internal/application/userrecipe"
	"github.com/alchemorsel/recipebox/internal/infrastructure/ai/openai"
	"github.com/alchemorsel/recipebox/internal/infrastructure/config"
	"github.com/alchemorsel/recipebox/internal/infrastructure/http/apiserver"
	"github.com/alchemorsel/recipebox/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/recipebox/internal/infrastructure/monitoring"
	"github.com/alchemorsel/recipebox/internal/infrastructure/persistence"
	"github.com/alchemorsel/recipebox/internal/infrastructure/security"
	"github.com/alchemorsel/recipebox/internal/ports/inbound"
	"github.com/alchemorsel/recipebox/internal/ports/outbound"
	"github.com/alchemorsel/recipebox/pkg/healthcheck"
	"github.com/alchemorsel/recipebox/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module assembles the whole API application. configPath may be empty.
func Module(configPath string) fx.Option {
	return fx.Options(
		ConfigModule(configPath),
		LoggerModule,
		MonitoringModule,
		DatabaseModule,
		RepositoryModule,
		SecurityModule,
		ServiceModule,
		HTTPModule,
		LifecycleModule,
	)
}

// ConfigModule provides configuration
func ConfigModule(configPath string) fx.Option {
	return fx.Provide(func() (*config.Config, error) {
		return config.Load(configPath)
	})
}

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
			Service:     cfg.App.Name,
		})
	},
)

// MonitoringModule provides metrics and tracing. The collector is nil when metrics are disabled.
var MonitoringModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) *monitoring.MetricsCollector {
		if !cfg.Monitoring.EnableMetrics {
			return nil
		}
		return monitoring.NewMetricsCollector(log.Named("metrics"))
	},
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
		tp, err := monitoring.NewTracingProvider(context.Background(), monitoring.TracingConfig{
			ServiceName:    cfg.App.Name,
			ServiceVersion: cfg.App.Version,
			Environment:    cfg.App.Environment,
			OTLPEndpoint:   cfg.Monitoring.OTLPEndpoint,
			SamplingRate:   cfg.Monitoring.SamplingRate,
			Enabled:        cfg.Monitoring.EnableTracing,
		}, log.Named("tracing"))
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{OnStop: tp.Shutdown})
		return tp, nil
	},
)

// DatabaseModule opens the configured store and closes it on stop
var DatabaseModule = fx.Provide(
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*persistence.Repositories, error) {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
		defer cancel()

		repos, err := persistence.Open(ctx, cfg, log.Named("persistence"))
		if err != nil {
			return nil, fmt.Errorf("failed to open %s database: %w", cfg.Database.Driver, err)
		}

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				log.Info("Closing database connection", zap.String("driver", repos.Driver))
				return repos.Close()
			},
		})
		return repos, nil
	},
)

// RepositoryModule exposes each repository behind its port
var RepositoryModule = fx.Provide(
	func(r *persistence.Repositories) outbound.UserRepository { return r.Users },
	func(r *persistence.Repositories) outbound.RecipeRepository { return r.Recipes },
	func(r *persistence.Repositories) outbound.UserRecipeRepository { return r.UserRecipes },
)

// SecurityModule provides token handling, password hashing and RBAC
var SecurityModule = fx.Provide(
	func(cfg *config.Config) (*security.TokenService, error) {
		return security.NewTokenService(cfg.Auth)
	},
	func(cfg *config.Config) *security.PasswordHasher {
		return security.NewPasswordHasher(cfg.Auth.BCryptCost)
	},
	security.NewRBAC,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	fx.Annotate(
		func(cfg *config.Config, metrics *monitoring.MetricsCollector, log *zap.Logger) *openai.Client {
			return openai.NewClient(cfg.AI, metrics, log)
		},
		fx.As(new(outbound.ChatCompletionClient)),
	),
	fx.Annotate(
		func(client outbound.ChatCompletionClient, cfg *config.Config, log *zap.Logger) *aiapp.Service {
			return aiapp.NewService(client, cfg.AI.MaxPromptRecipes, log)
		},
		fx.As(new(inbound.RecipeAssistant)),
	),
	fx.Annotate(
		func(
			users outbound.UserRepository,
			userRecipes outbound.UserRecipeRepository,
			hasher *security.PasswordHasher,
			tokens *security.TokenService,
			cfg *config.Config,
			log *zap.Logger,
		) *userapp.Service {
			return userapp.NewService(users, userRecipes, hasher, tokens, cfg.Auth.AdminPassword, log)
		},
		fx.As(new(inbound.AccountService)),
	),
	fx.Annotate(
		recipeapp.NewService,
		fx.As(new(inbound.RecipeService)),
	),
	fx.Annotate(
		userrecipeapp.NewService,
		fx.As(new(inbound.UserRecipeService)),
	),
)

// HTTPModule provides health checks and the API server
var HTTPModule = fx.Provide(
	NewHealthCheck,
	func(
		cfg *config.Config,
		log *zap.Logger,
		accounts inbound.AccountService,
		recipes inbound.RecipeService,
		userRecipes inbound.UserRecipeService,
		tokens *security.TokenService,
		rbac *security.RBAC,
		metrics *monitoring.MetricsCollector,
		health *healthcheck.HealthCheck,
	) *apiserver.Server {
		return apiserver.New(apiserver.Dependencies{
			Config:      cfg,
			Logger:      log,
			Accounts:    accounts,
			Recipes:     recipes,
			UserRecipes: userRecipes,
			Tokens:      middleware.TokenValidator(tokens),
			RBAC:        rbac,
			Metrics:     metrics,
			Health:      health,
		})
	},
)

// NewHealthCheck registers the store and AI configuration checks
func NewHealthCheck(cfg *config.Config, repos *persistence.Repositories, log *zap.Logger) *healthcheck.HealthCheck {
	hc := healthcheck.New(cfg.App.Version, log.Named("healthcheck"))
	hc.Register("database", healthcheck.NewPingChecker("database", repos.Pinger))
	hc.Register("ai", healthcheck.NewCustomChecker("ai", func(ctx context.Context) (healthcheck.Status, string, interface{}) {
		meta := map[string]interface{}{"model": cfg.AI.Model, "base_url": cfg.AI.BaseURL}
		if cfg.AI.APIKey == "" {
			return healthcheck.StatusDegraded, "AI API key not configured", meta
		}
		return healthcheck.StatusHealthy, "", meta
	}))
	return hc
}

// LifecycleModule seeds the admin account and runs the server
var LifecycleModule = fx.Invoke(
	StartTracing,
	SeedAdmin,
	RegisterLifecycleHooks,
)

// StartTracing forces the tracing provider to be built so the global tracer is installed
func StartTracing(tp *monitoring.TracingProvider, log *zap.Logger) {
	log.Debug("Tracing configured", zap.Bool("enabled", tp.Enabled()))
}

// SeedAdmin makes sure the admin account exists before the server accepts requests
func SeedAdmin(lc fx.Lifecycle, accounts inbound.AccountService, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			created, err := accounts.EnsureAdmin(ctx)
			if err != nil {
				return fmt.Errorf("failed to seed admin account: %w", err)
			}
			if created {
				log.Info("Seeded admin account")
			}
			return nil
		},
	})
}

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg *config.Config,
	log *zap.Logger,
	server *apiserver.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting RecipeBox application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.String("database_driver", cfg.Database.Driver),
			)

			go func() {
				if err := server.Start(); err != nil {
					log.Error("HTTP server failed", zap.Error(err))
					_ = shutdowner.Shutdown()
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down RecipeBox application")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			_ = log.Sync()
			return nil
		},
	})
}
