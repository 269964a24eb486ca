// Package logger builds the prefixed charm loggers used by the binaries.
// Logs go to stderr since stdout carries the IPC stream.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a charm logger at the global log level.
func New(prefix string) *log.Logger {
	return NewWithConfig(os.Stderr, prefix, log.GetLevel(), log.GetLevel() == log.DebugLevel)
}

// NewWithConfig creates a charm logger writing to w.
func NewWithConfig(w io.Writer, prefix string, level log.Level, showTimestamp bool) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    false,
		ReportTimestamp: showTimestamp,
		Formatter:       log.TextFormatter,
	})
}
