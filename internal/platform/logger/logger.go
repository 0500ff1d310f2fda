package logger

import (
	"log"
	"log/slog"
	"os"
)

// New returns a basic stdout logger for process lifecycle messages.
func New() *log.Logger {
	return log.New(os.Stdout, "", log.LstdFlags)
}

// NewStructured returns the slog logger services use for structured events.
func NewStructured() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
