// Package logging holds the global leveled logger. Diagnostics go to
// stderr so data outputs on stdout stay machine-readable.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger is the global logger instance.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Level:           log.InfoLevel,
})

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) { Logger.SetOutput(w) }

// SetVerbosity maps the --verbose/--quiet flags onto a log level.
func SetVerbosity(verbose, quiet bool) {
	switch {
	case quiet:
		Logger.SetLevel(log.ErrorLevel)
	case verbose:
		Logger.SetLevel(log.DebugLevel)
	default:
		Logger.SetLevel(log.InfoLevel)
	}
}

func Debug(msg string, keyvals ...any) { Logger.Debug(msg, keyvals...) }
func Info(msg string, keyvals ...any)  { Logger.Info(msg, keyvals...) }
func Warn(msg string, keyvals ...any)  { Logger.Warn(msg, keyvals...) }
func Error(msg string, keyvals ...any) { Logger.Error(msg, keyvals...) }
