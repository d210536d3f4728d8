// Package logger builds the charmbracelet/log loggers the different
// surfaces (IPC server, CLI) use, so prefixes and levels stay consistent.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New returns a prefixed stderr logger at the global level with timestamps,
// the default shape for background surfaces like the IPC server.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig returns a prefixed stderr logger with explicit settings, for
// surfaces whose log output doubles as user-facing text and needs a
// different shape (the CLI drops timestamps so result lines stay clean).
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}
