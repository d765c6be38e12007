package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/careops/careshift/cmd/cli/commands"
	"github.com/careops/careshift/internal/config"
	"github.com/careops/careshift/pkg/core/assignment"
	"github.com/careops/careshift/pkg/inmem"
	"github.com/careops/careshift/pkg/postgres"
	"github.com/careops/careshift/pkg/utils/logging"
)

var (
	env       string
	verbose   bool
	app       *commands.AppContext
	cancelCtx context.CancelFunc
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "careshift",
		Short: "Careshift CLI - Manage care shifts and staff assignments",
		Long:  `A CLI tool for managing care shifts, staff assignments, and the weekly scheduling grid.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cancelCtx != nil {
				cancelCtx()
			}
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging on the console")
	if err := rootCmd.MarkPersistentFlagRequired("env"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to mark env flag required: %v\n", err)
		os.Exit(1)
	}

	rootCmd.AddCommand(commands.CreateShiftCmd(appRef()))
	rootCmd.AddCommand(commands.AssignCmd(appRef()))
	rootCmd.AddCommand(commands.ReplaceCmd(appRef()))
	rootCmd.AddCommand(commands.UnassignCmd(appRef()))
	rootCmd.AddCommand(commands.SetStatusCmd(appRef()))
	rootCmd.AddCommand(commands.DeleteShiftCmd(appRef()))
	rootCmd.AddCommand(commands.WeekCmd(appRef()))
	rootCmd.AddCommand(commands.VacantCmd(appRef()))
	rootCmd.AddCommand(commands.ListStaffCmd(appRef()))
	rootCmd.AddCommand(commands.ListClientsCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext; commands capture it before initApp
// runs, so it is allocated once up front and populated in place
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, store, and the assignment manager
func initApp() error {
	logger, err := logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout())
	cancelCtx = cancel

	appCtx := appRef()
	appCtx.Cfg = cfg
	appCtx.Logger = logger
	appCtx.Ctx = ctx

	if cfg.DatabaseURL != "" {
		store, err := postgres.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := store.RunMigrations(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		appCtx.Store = store
		logger.Debug("Using postgres store")
	} else {
		appCtx.Store = inmem.NewStore()
		logger.Warn("No databaseURL configured; using empty in-memory store",
			zap.String("env", env))
	}

	appCtx.Manager = assignment.NewManager(appCtx.Store, logger)
	return nil
}
