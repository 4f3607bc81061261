// Package main provides the CLI entrypoint for the escape room page.
// It wires subcommands (serve, check, healthcheck), loads configuration, and initializes logging.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"escaperoom/internal/config"
	"escaperoom/internal/gate"
	"escaperoom/pkg/logger"
	"escaperoom/pkg/metrics"
	"escaperoom/pkg/probe"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newEvaluator builds the level evaluator reading the process environment,
// the local filesystem and the configured downstream services.
func newEvaluator(cfg *config.Config, rec *metrics.Recorder) *gate.Evaluator {
	return gate.New(gate.Deps{
		Env:   gate.OSEnv{},
		Files: gate.OSFiles{},
		Prober: probe.New(probe.Options{
			Timeout:  cfg.Gates.ProbeTimeout,
			Recorder: rec,
		}),
		Recorder: rec,
	}, gate.NewRules(cfg))
}

// main sets up the root Cobra command, loads configuration and logging before
// any subcommand runs, and executes the CLI.
func main() {
	var (
		configPath string
		cfg        = new(config.Config)
	)

	rootCmd := &cobra.Command{
		Use:           "escaperoom",
		Short:         "Serves the escape room page",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.Println("loading config ...")
			loaded, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}
			*cfg = *loaded

			if err := logger.Setup(cfg.Environment, cfg.LogLevel); err != nil {
				return fmt.Errorf("could not setup logger: %w", err)
			}

			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yml", "Config File Path")

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		checkCommand(cfg),
		healthcheckCommand(cfg),
	)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		logger.Error(ctx, "command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
	}
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
