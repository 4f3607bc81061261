package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// Every field can be set from the environment; a YAML file is optional.
type Config struct {
	// Environment specifies the current running environment (development, production)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the level implied by Environment when set (debug, info, warn, error)
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`

	// Port is the TCP port the page is served on. The server binds to all interfaces.
	Port int `env:"SERVER_PORT" env-default:"80" yaml:"port"`

	// HTTP contains the public HTTP server timeouts
	HTTP struct {
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"30s" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30s" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for rendering a single page.
		// It must exceed twice PROBE_TIMEOUT; zero disables it.
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
	} `yaml:"http"`

	// Admin configures the optional listener for metrics, health and profiling
	Admin struct {
		// Addr is the admin listener address; empty disables the admin server
		Addr string `env:"ADMIN_ADDR" yaml:"addr"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// PprofEnabled mounts net/http/pprof under /debug/pprof/
		PprofEnabled bool `env:"PPROF_ENABLED" env-default:"false" yaml:"pprofEnabled"`
	} `yaml:"admin"`

	// Gates overrides the targets of the puzzle checks
	Gates struct {
		// GoalPath is the file inspected by level 3
		GoalPath string `env:"GOAL_PATH" env-default:"/data/GOAL.txt" yaml:"goalPath"`
		// APIURL is the service probed by level 4
		APIURL string `env:"API_URL" env-default:"http://api:5000" yaml:"apiUrl"`
		// GameURL is the service probed by level 5
		GameURL string `env:"GAME_URL" env-default:"http://game" yaml:"gameUrl"`
		// ProbeTimeout bounds each downstream probe
		ProbeTimeout time.Duration `env:"PROBE_TIMEOUT" env-default:"2s" yaml:"probeTimeout"`
	} `yaml:"gates"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Addr returns the listen address of the public server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Load receives the path for yaml config file and returns a filled Config struct.
// A missing file is not an error: the configuration is then read from the environment only.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if configPath != "" {
		_, err := os.Stat(configPath)
		switch {
		case err == nil:
			if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
				return nil, fmt.Errorf("could not read config: %w", err)
			}

			return validate(&cfg)
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("could not stat config file: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("could not read config from environment: %w", err)
	}

	return validate(&cfg)
}

func validate(cfg *Config) (*Config, error) {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid server port %d", cfg.Port)
	}
	if cfg.Gates.ProbeTimeout <= 0 {
		return nil, fmt.Errorf("probe timeout must be positive, got %s", cfg.Gates.ProbeTimeout)
	}
	// a page runs at most two probes back to back; a request timeout that
	// fires first would replace the page with a 503
	if rt := cfg.HTTP.RequestTimeout; rt != 0 && rt <= 2*cfg.Gates.ProbeTimeout {
		return nil, fmt.Errorf("request timeout %s must exceed twice the probe timeout %s", rt, cfg.Gates.ProbeTimeout)
	}

	return cfg, nil
}
