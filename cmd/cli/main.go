package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/camp-quarters/cmd/cli/commands"
	"github.com/jakechorley/camp-quarters/internal/config"
	"github.com/jakechorley/camp-quarters/pkg/postgres"
	"github.com/jakechorley/camp-quarters/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Camp Quarters CLI - Manage camp bed allocation",
		Long:  `A CLI tool for allocating personnel to beds in dormitory camps, processing transfer requests, and viewing occupancy.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.Database != nil {
					app.Database.Close()
				}
				if app.Logger != nil {
					app.Logger.Sync()
				}
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.AllocateBedsCmd(appContext))
	rootCmd.AddCommand(commands.AllocateTransferCmd(appContext))
	rootCmd.AddCommand(commands.ViewOccupancyCmd(appContext))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appContext hands commands the initialized dependencies. PersistentPreRunE
// runs before any command body, so app is always populated by then.
func appContext() *commands.AppContext {
	return app
}

// initApp sets up logger, config, and database
func initApp() error {
	ctx := context.Background()

	// Initialize logger
	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	logger.Info("Loading configuration")
	cfg, err := config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Debug("Configuration loaded successfully")

	// Connect to the database and apply pending migrations
	logger.Info("Connecting to database")
	database, err := postgres.NewStore(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(ctx); err != nil {
		database.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("Database initialized successfully")

	app = &commands.AppContext{
		Cfg:      cfg,
		Database: database,
		Logger:   logger,
		Ctx:      ctx,
	}

	return nil
}
