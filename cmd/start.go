package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"project-admin/core/bootstrap"
	"project-admin/core/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "project-admin/docs/swagger"
)

// @title Project Admin API
// @version 1.0.0
// @description Authentication, user management and project administration.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 10 * time.Second

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the API server",
	Long: `Validates the environment, binds the HTTP listener and connects to the
database. The process exits with status 1 if the database cannot be reached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return err
		}

		app, err := bootstrap.New(cfg, bootstrap.Options{})
		if err != nil {
			return err
		}
		logg := app.Logger()
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if _, err := app.Start(ctx); err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}

		<-ctx.Done()
		logg.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Shutdown(shutdownCtx); err != nil {
			logg.Warn("Shutdown did not complete cleanly", zap.Error(err))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
