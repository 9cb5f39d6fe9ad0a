// Package logger provides verbose logging for the lakesearch CLI.
// When verbose mode is enabled via the --verbose flag, pipeline
// messages are printed to stderr so stdout stays clean for command
// output and the MCP stdio transport.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// emit writes one prefixed line when verbose mode is enabled. All
// level helpers route through here so the gate and the line format
// stay in one place.
func emit(prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	emit("[DEBUG] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	emit("[INFO] ", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	emit("[WARN] ", format, args...)
}

// Error prints an error message if verbose mode is enabled. Failures
// are still reported to the caller through return values; this only
// adds pipeline context for --verbose runs.
func Error(format string, args ...any) {
	emit("[ERROR] ", format, args...)
}

// Timing prints the elapsed time since start if verbose mode is
// enabled. Intended to be deferred at the top of a timed operation:
//
//	defer logger.Timing("document search", time.Now())
func Timing(name string, start time.Time) {
	emit("[TIME] ", "%s: %dms", name, time.Since(start).Milliseconds())
}
