package logging

import (
	"io"
	"os"
	"strings"
)

// Config holds the configuration for the logger.
type Config struct {
	// Level is the minimum level to emit (debug, info, warn, error, fatal).
	Level string
	// Format is the output format. Only json is supported.
	Format string
	// Output is the destination: stdout, stderr, or a file path.
	Output string
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "json",
		Output: "stderr",
	}
}

// NewLogger creates a logger from the given configuration. A nil config
// gets the defaults.
func NewLogger(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	out, err := writerFor(cfg.Output)
	if err != nil {
		return nil, err
	}

	return New(parseLevel(cfg.Level), out), nil
}

// parseLevel maps a config string to a known level. Unknown strings fall
// back to info rather than erroring: a typo in LOG_LEVEL should not take
// the service down.
func parseLevel(s string) LogLevel {
	level := LogLevel(strings.ToUpper(s))
	if _, ok := levelRank[level]; ok {
		return level
	}
	return InfoLevel
}

// writerFor resolves an output destination. Anything that is not a known
// stream name is treated as a file path and opened for appending.
func writerFor(output string) (io.Writer, error) {
	switch output {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	default:
		return os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	}
}
