// Package config loads the FIREFLY service configuration from the
// environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	HTTP        struct {
		Port            int           `env:"HTTP_PORT" envDefault:"8080"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
		IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	}
	Logging struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
		Output string `env:"LOG_OUTPUT" envDefault:"stderr"`
	}
	Optimization struct {
		// WorkerCount is the number of goroutines evaluating fireflies in
		// parallel per run. Zero means one worker per CPU.
		WorkerCount int `env:"OPT_WORKER_COUNT" envDefault:"0"`

		// Defaults applied to runs that do not specify their own values.
		SwarmSize          int `env:"OPT_SWARM_SIZE" envDefault:"150"`
		MaxIterations      int `env:"OPT_MAX_ITERATIONS" envDefault:"5000"`
		StuckRunIterations int `env:"OPT_STUCK_RUN_ITERATIONS" envDefault:"500"`
	}
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Development runs default to verbose logging unless overridden.
	if cfg.Environment == "development" && cfg.Logging.Level == "" {
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}
