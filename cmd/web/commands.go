package main

import (
	"context"
	"fmt"

	"triveni_backend/internal/app"
	"triveni_backend/internal/config"
	"triveni_backend/internal/logger"
	"triveni_backend/internal/services"
	"triveni_backend/internal/workers"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:           "triveni",
		Short:         "Triveni corporate site backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE:  runServe,
	}
	resetAdminCmd = &cobra.Command{
		Use:   "reset-admin-password",
		Short: "Reset the first admin's password, creating the admin if none exists",
		RunE:  runResetAdminPassword,
	}
	reconcileCmd = &cobra.Command{
		Use:   "reconcile-counters",
		Short: "Recount job applications and blog comments once and exit",
		RunE:  runReconcile,
	}

	adminPassword string
)

func init() {
	resetAdminCmd.Flags().StringVarP(&adminPassword, "password", "p", "", "new password (default Admin@123)")

	rootCmd.AddCommand(serveCmd, resetAdminCmd, reconcileCmd)
}

// loadConfig - общий старт для всех команд: конфиг и логгер.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return app.Run(cfg)
}

func runResetAdminPassword(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := app.OpenDB(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	deps, cleanup, err := app.BuildDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	admin, created, err := services.NewServiceContainer(deps).AuthService.ResetAdminPassword(ctx, db.WithContext(ctx), adminPassword)
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "No admin found, created %s\n", admin.Email)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Password reset for %s\n", admin.Email)
	}
	return nil
}

func runReconcile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := app.OpenDB(cfg)
	if err != nil {
		return err
	}

	result, err := workers.NewCounterWorker(db, cfg.Workers.ReconcileSpec).Reconcile(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Reconciled %d job(s) and %d blog(s)\n", result.JobApplications, result.BlogComments)
	return nil
}
