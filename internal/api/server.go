// Package api configures the public HTTP server that serves the escape room
// page and the optional admin server exposing metrics, health and profiling.
package api

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"escaperoom/internal/config"
	"escaperoom/pkg/controller"
	"escaperoom/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap/exp/zapslog"
)

// Options holds configuration for the public HTTP server.
// Zero durations fall back to the net/http defaults.
type Options struct {
	// Addr is the TCP address the server listens on, e.g. ":80".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout bounds a single page evaluation via http.TimeoutHandler.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
}

// NewOptions maps the public server settings of cfg to Options.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.Addr(),
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
	}
}

// AdminOptions holds configuration for the admin server.
type AdminOptions struct {
	// Addr is the admin listen address. The admin server is disabled when empty.
	Addr string
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// PprofEnabled mounts net/http/pprof handlers.
	PprofEnabled bool
	// Gatherer provides the metrics; nil uses prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// NewAdminOptions maps the admin settings of cfg to AdminOptions.
func NewAdminOptions(cfg *config.Config) AdminOptions {
	return AdminOptions{
		Addr:         cfg.Admin.Addr,
		MetricsPath:  cfg.Admin.MetricsPath,
		PprofEnabled: cfg.Admin.PprofEnabled,
	}
}

// Deps are the components behind the page.
type Deps struct {
	Evaluator Evaluator
	Renderer  Renderer
}

// NewMeterProvider creates an OpenTelemetry meter provider whose instruments
// are exported to reg in Prometheus format.
func NewMeterProvider(reg prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}

// NewRouter returns the handler of the public server. Only GET / is routed.
func NewRouter(deps Deps, opts Options) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", NewHandler(deps).Index)

	var handler http.Handler = mux
	if opts.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, opts.RequestTimeout, "request timed out")
	}

	return controller.WithLogger(handler)
}

// NewServer wires up the public *http.Server.
func NewServer(deps Deps, opts Options) *http.Server {
	return &http.Server{
		Addr:              opts.Addr,
		Handler:           NewRouter(deps, opts),
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
		ErrorLog:          errorLog(),
	}
}

// NewAdminRouter returns the handler of the admin server:
// metrics, /healthz and, when enabled, pprof.
func NewAdminRouter(opts AdminOptions) http.Handler {
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	metricsPath := opts.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}

	mux := http.NewServeMux()
	mux.Handle(metricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", controller.Healthz)
	if opts.PprofEnabled {
		mux.Handle(controller.PprofPrefix, controller.PprofMux())
	}

	return controller.WithLogger(mux)
}

// NewAdminServer wires up the admin *http.Server, or returns nil when
// opts.Addr is empty.
func NewAdminServer(opts AdminOptions) *http.Server {
	if opts.Addr == "" {
		return nil
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           NewAdminRouter(opts),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          errorLog(),
	}
}

// errorLog routes net/http's internal errors into zap.
func errorLog() *log.Logger {
	return slog.NewLogLogger(zapslog.NewHandler(logger.Get(context.Background()).Core()), slog.LevelError)
}
