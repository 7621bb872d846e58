package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/silverbirch/bunking/cmd/cli/commands"
	"github.com/silverbirch/bunking/internal/config"
	"github.com/silverbirch/bunking/pkg/postgres"
	"github.com/silverbirch/bunking/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bunking",
		Short: "Bunking CLI - Assign campers to bunks",
		Long:  `A CLI tool for pre-validating sessions, running the bunk assignment solver, checking boards, and maintaining bunking requests.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.PreValidateCmd(appRef()))
	rootCmd.AddCommand(commands.SolveCmd(appRef()))
	rootCmd.AddCommand(commands.ValidateCmd(appRef()))
	rootCmd.AddCommand(commands.MergeRequestsCmd(appRef()))
	rootCmd.AddCommand(commands.SplitRequestCmd(appRef()))
	rootCmd.AddCommand(commands.ResolveRequestCmd(appRef()))
	rootCmd.AddCommand(commands.CreateScenarioCmd(appRef()))
	rootCmd.AddCommand(commands.ListScenariosCmd(appRef()))
	rootCmd.AddCommand(commands.DeleteScenarioCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext, allocating it before initApp fills
// it in. Commands capture the pointer at registration time.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{Ctx: context.Background()}
	}
	return app
}

// initApp sets up logger, config, and database
func initApp() error {
	appRef()

	var err error
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Logger.Debug("Database ready")

	app.Database = database
	return nil
}
