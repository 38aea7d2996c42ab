// Package cli is the hireflow command line: the HTTP server, the mail worker
// and a few operator tools.
package cli

import (
	"context"
	"fmt"

	"hireflow/internal/config"
	"hireflow/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const appName = "hireflow"

var (
	cfgFile string
	v       = viper.New()

	rootCmd = &cobra.Command{
		Use:           appName,
		Short:         "hireflow screens resumes and runs candidates through assessment rounds",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// ExecuteContext runs the root command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a YAML config file; environment variables override it")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = v.BindPFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = v.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("json"))
}

// loadConfig reads the config file and environment, then builds the logger.
func loadConfig() (config.Config, *zap.Logger, error) {
	cfg, err := config.LoadWith(v, cfgFile)
	if err != nil {
		return config.Config{}, nil, err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("creating a logger: %w", err)
	}
	return cfg, log, nil
}
