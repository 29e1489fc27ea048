package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hbiaou/crop-rotation/cmd/cli/commands"
	"github.com/hbiaou/crop-rotation/internal/config"
	"github.com/hbiaou/crop-rotation/pkg/postgres"
	"github.com/hbiaou/crop-rotation/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Crop Rotation CLI - Plan multi-year crop rotations",
		Long:  `A CLI tool for planning multi-year crop rotations across gardens, beds and sub-beds.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.Logger != nil {
					app.Logger.Sync()
				}
				if app.Database != nil {
					app.Database.Close()
				}
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.SeedCmd(appRef()))
	rootCmd.AddCommand(commands.DefineSequenceCmd(appRef()))
	rootCmd.AddCommand(commands.BootstrapCmd(appRef()))
	rootCmd.AddCommand(commands.GenerateCycleCmd(appRef()))
	rootCmd.AddCommand(commands.AssignCropsCmd(appRef()))
	rootCmd.AddCommand(commands.SetDistributionCmd(appRef()))
	rootCmd.AddCommand(commands.RecordOverrideCmd(appRef()))
	rootCmd.AddCommand(commands.UndoCycleCmd(appRef()))
	rootCmd.AddCommand(commands.ViewCycleCmd(appRef()))
	rootCmd.AddCommand(commands.StatsCmd(appRef()))
	rootCmd.AddCommand(commands.SnapshotCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared application context, which initApp fills in
// before any command runs
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config and database
func initApp() error {
	ctx := appRef()
	ctx.Ctx = context.Background()

	var err error
	ctx.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx.Logger.Info("Starting application", zap.String("environment", env))

	ctx.Logger.Info("Loading configuration")
	ctx.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	ctx.Logger.Debug("Configuration loaded successfully")

	ctx.Logger.Info("Connecting to database")
	ctx.Database, err = postgres.NewDB(ctx.Ctx, ctx.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx.Logger.Info("Running migrations")
	if err := ctx.Database.RunMigrations(ctx.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	ctx.Logger.Info("Database initialized successfully")

	return nil
}
