// Package logging configures the process-wide zerolog logger.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config selects the level and output format.
type Config struct {
	Level  string // trace, debug, info, warn or error; unknown values mean info
	Format string // "pretty" for console output, anything else for JSON
	Out    io.Writer
}

// Init builds a logger from cfg, installs it as the global logger and
// returns it. Output defaults to stderr so command results on stdout stay
// machine-readable.
func Init(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format == "pretty" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

// WithContext attaches the global logger to ctx so library code can reach
// it through zerolog.Ctx.
func WithContext(ctx context.Context) context.Context {
	return log.Logger.WithContext(ctx)
}
