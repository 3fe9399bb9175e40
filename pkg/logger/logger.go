package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger keeps the printf-style Info/Warn/Error calls used across the services
// and writes them as structured zerolog events.
type Logger struct {
	zl zerolog.Logger
}

// New returns a JSON logger on stdout at info level.
func New() *Logger {
	return NewWithOptions("info", "json", os.Stdout)
}

// NewWithOptions builds a logger for the given level ("debug", "info", ...) and
// format ("json" or "console").
func NewWithOptions(level, format string, out io.Writer) *Logger {
	if format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return &Logger{
		zl: zerolog.New(out).Level(lvl).With().Timestamp().Logger(),
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}
