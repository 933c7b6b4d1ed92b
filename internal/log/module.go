package log

import (
	"os"
	"time"

	"github.com/ipfans/fxlogger"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// NewLogger creates a configured zerolog.Logger instance
func NewLogger() zerolog.Logger {
	logWriter := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	level := zerolog.InfoLevel
	if os.Getenv("DEBUG") == "true" {
		level = zerolog.DebugLevel
	}

	return zerolog.New(logWriter).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
}

// NewEventLogger routes fx lifecycle events through the application logger.
func NewEventLogger(log zerolog.Logger) fxevent.Logger {
	return fxlogger.WithZerolog(log)()
}

// Module provides the logger and installs it as the fx event logger
func Module() fx.Option {
	// fx.Options rather than fx.Module so the event logger is application-wide.
	return fx.Options(
		fx.Provide(
			NewLogger,
		),
		fx.WithLogger(NewEventLogger),
	)
}
