package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"escaperoom/internal/api"
	"escaperoom/internal/config"
	"escaperoom/internal/page"
	"escaperoom/pkg/logger"
	"escaperoom/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startServer runs server in the background and returns a function that shuts it down.
func startServer(ctx context.Context, name string, server *http.Server) func(ctx context.Context) {
	go func() {
		logger.Info(ctx, "starting "+name+"...", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal(ctx, "could not start "+name, zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping "+name+"...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop "+name, zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the escape room web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			meterProvider, err := api.NewMeterProvider(prometheus.DefaultRegisterer)
			if err != nil {
				return err
			}
			rec, err := metrics.NewRecorder(meterProvider.Meter("escaperoom"))
			if err != nil {
				return fmt.Errorf("could not create metrics recorder: %w", err)
			}

			renderer, err := page.New()
			if err != nil {
				return fmt.Errorf("could not load page templates: %w", err)
			}

			stopWebserver := startServer(ctx, "webserver", api.NewServer(api.Deps{
				Evaluator: newEvaluator(cfg, rec),
				Renderer:  renderer,
			}, api.NewOptions(cfg)))

			stopAdmin := func(context.Context) {}
			if admin := api.NewAdminServer(api.NewAdminOptions(cfg)); admin != nil {
				stopAdmin = startServer(ctx, "admin server", admin)
			}

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
			stopAdmin(shutdownCtx)
			if err := meterProvider.Shutdown(shutdownCtx); err != nil {
				logger.Warn(shutdownCtx, "could not stop meter provider", zap.Error(err))
			}

			return nil
		},
	}

	return cmd
}
