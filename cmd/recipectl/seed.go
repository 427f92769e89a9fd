package main

import (
	"context"
	"fmt"

	userapp "github.com/alchemorsel/recipebox/internal/application/user"
	"github.com/alchemorsel/recipebox/internal/infrastructure/config"
	"github.com/alchemorsel/recipebox/internal/infrastructure/persistence"
	"github.com/alchemorsel/recipebox/internal/infrastructure/security"
	"github.com/alchemorsel/recipebox/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the admin account if it does not exist",
	Long: `Create the "admin" account with the Admin role using auth.admin_password.
Running it against a database that already has an admin changes nothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Database.ConnectTimeout)
		defer cancel()

		repos, err := persistence.Open(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := repos.Close(); err != nil {
				log.Warn("Failed to close database", zap.Error(err))
			}
		}()

		tokens, err := security.NewTokenService(cfg.Auth)
		if err != nil {
			return err
		}

		accounts := userapp.NewService(
			repos.Users,
			repos.UserRecipes,
			security.NewPasswordHasher(cfg.Auth.BCryptCost),
			tokens,
			cfg.Auth.AdminPassword,
			log,
		)

		created, err := accounts.EnsureAdmin(cmd.Context())
		if err != nil {
			return err
		}

		if created {
			fmt.Fprintln(cmd.OutOrStdout(), "admin account created")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "admin account already exists")
		}
		return nil
	},
}

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(logger.Config{
		Level:   cfg.App.LogLevel,
		Format:  "console",
		Service: "recipectl",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}
