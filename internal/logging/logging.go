// Package logging builds the zerolog loggers used by the relay CLI and
// the SQLite backend. The relay core itself never logs.
package logging

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration, read from the log section of
// config.yaml.
type Config struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
}

// Field names shared across log lines.
const (
	FieldComponent = "component"
	FieldNodeID    = "node_id"
	FieldTag       = "tag"
	FieldDataDir   = "data_dir"
)

// New creates a logger writing to w. Pretty selects zerolog's console
// writer instead of JSON lines.
func New(cfg Config, w io.Writer) zerolog.Logger {
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level. Unknown names give
// warn, so a fresh install stays quiet.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}

type ctxKey struct{}

// WithLogger stores a logger in the context.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// Ctx retrieves the logger from the context, or a disabled logger if none
// was stored.
func Ctx(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return l
	}
	return zerolog.Nop()
}
