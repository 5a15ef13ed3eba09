package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New creates the process logger. Development environments get human friendly console output,
// everything else gets JSON lines.
func New(serviceName, environment, level string) *zerolog.Logger {
	return newWithWriter(os.Stdout, serviceName, environment, level)
}

func newWithWriter(w io.Writer, serviceName, environment, level string) *zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := w
	if IsDevelopment(environment) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("environment", environment).
		Logger()

	return &logger
}

// IsDevelopment reports whether environment names a local development setup.
func IsDevelopment(environment string) bool {
	switch strings.ToLower(environment) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
