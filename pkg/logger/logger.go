package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the application logger. Unknown levels fall back to info.
func New(level string, pretty bool) zerolog.Logger {
	return NewWithWriter(os.Stdout, level, pretty)
}

func NewWithWriter(w io.Writer, level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// GormWriter adapts a zerolog.Logger to GORM's logger.Writer. Every line GORM
// emits is written at Level.
type GormWriter struct {
	Logger zerolog.Logger
	Level  zerolog.Level
}

func (w GormWriter) Printf(format string, args ...interface{}) {
	w.Logger.WithLevel(w.Level).Str("component", "gorm").Msgf(format, args...)
}
