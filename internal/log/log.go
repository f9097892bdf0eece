package log

import (
	"io"
	"os"

	"github.com/paularlott/logger"
	logslog "github.com/paularlott/logger/slog"
)

var log logger.Logger = newLogger("info", "console", os.Stderr)

// Configure replaces the process logger. Level is one of trace, debug,
// info, warn, error; format is console or json.
func Configure(level, format string) {
	log = newLogger(level, format, os.Stderr)
}

func newLogger(level, format string, w io.Writer) logger.Logger {
	return logslog.New(logslog.Config{
		Level:  level,
		Format: format,
		Writer: w,
	})
}

// Debug logs a debug message with optional key/value pairs
func Debug(msg string, args ...any) {
	log.Debug(msg, args...)
}

// Info logs an info message with optional key/value pairs
func Info(msg string, args ...any) {
	log.Info(msg, args...)
}

// Warn logs a warning message with optional key/value pairs
func Warn(msg string, args ...any) {
	log.Warn(msg, args...)
}

// Error logs an error message with optional key/value pairs
func Error(msg string, args ...any) {
	log.Error(msg, args...)
}
