// Package logger builds the zerolog logger shared by every component.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const timeFormat = "2006-01-02 15:04:05"

// New constructs a logger for the given environment and level.
// Development gets a human readable console writer; everything else logs JSON.
// When writers are given they replace the default output.
func New(env, level string, writers ...io.Writer) (zerolog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	zerolog.DurationFieldUnit = time.Millisecond

	var output io.Writer
	switch {
	case len(writers) > 0:
		output = io.MultiWriter(writers...)
	case strings.EqualFold(env, "development") || strings.EqualFold(env, "dev"):
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: timeFormat}
	default:
		output = os.Stdout
	}

	return zerolog.New(output).With().Timestamp().Logger().Level(lvl), nil
}

// Component returns a child logger tagged with the component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

func parseLevel(level string) (zerolog.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(level))
}
