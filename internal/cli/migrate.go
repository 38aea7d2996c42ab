package cli

import (
	"context"
	"time"

	"hireflow/internal/app"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and seed the default admin",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		c, err := app.OpenStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		if err := c.Migrate(ctx); err != nil {
			return err
		}
		log.Info("migrations_done", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
