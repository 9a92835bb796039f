package sectiondeck

import (
	"log/slog"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/internal"
)

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories.
// Call before the first log line to take effect.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// SetConsoleOutput controls whether logs are mirrored to stdout.
func SetConsoleOutput(enabled bool) {
	internal.SetConsoleOutput(enabled)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetInternalLogLevel sets the level of the logger used by the controller
// and hosts. It defaults to error.
func SetInternalLogLevel(level slog.Level) {
	internal.SetInternalLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// CloseLogger flushes and closes the log file.
func CloseLogger() {
	internal.CloseLogger()
}

// SetRawInternalLogLevel is SetRawLogLevel for the internal logger.
func SetRawInternalLogLevel(level string) {
	internal.SetInternalLogLevel(internal.ParseLevel(level))
}
