// Package logging provides wyclef's logging infrastructure built on
// charmbracelet/log.
//
// Diagnostics go to stderr by default. While the viewer owns the terminal
// (alternate screen, raw mode) anything written to stderr would corrupt the
// frame, so the CLI either points the logger at a file (WYCLEF_LOG_FILE) or
// silences it for the lifetime of the session.
//
// Usage:
//
//	// During CLI initialization (PersistentPreRunE):
//	logging.Setup(verbose, quiet, jsonFormat)
//
//	// In each package:
//	logger := logging.New("clef")
//	logger.Debug("loaded log", "path", path, "events", n)
//
// Setup must be called before New. charmbracelet/log copies the default
// logger's state into a child at creation time; later changes to the default
// logger do not reach existing children.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Level aliases for charmbracelet/log levels.
const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
)

// Setup configures the default logger. Call once during CLI initialization.
//
// verbose lowers the level to Debug, quiet raises it to Error; quiet wins
// when both are set. jsonFormat switches to NDJSON output.
func Setup(verbose, quiet, jsonFormat bool) {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	if quiet {
		level = log.ErrorLevel
	}

	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	if jsonFormat {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
}

// New creates a logger with the given component prefix. An empty component
// produces a logger without a prefix.
func New(component string) *log.Logger {
	return log.WithPrefix(component)
}

// SetOutput overrides the output writer for the default logger.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// Silence discards all output from the default logger until the next
// SetOutput or Setup call.
func Silence() {
	log.SetOutput(io.Discard)
}

// OpenFile opens path for appending and makes it the default logger's
// output. The caller closes the returned file when the session ends.
func OpenFile(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	log.SetOutput(f)
	return f, nil
}
