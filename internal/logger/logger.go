// Package logger provides verbose logging for figprep.
// When verbose mode is enabled via the --verbose flag, stage progress and
// record counts are printed to stderr so operators can follow a run.
// Warnings are printed regardless of verbosity.
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

	// now is swapped in tests.
	now = time.Now
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

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	printf(true, "[DEBUG] "+format+"\n", args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	printf(true, "[INFO] "+format+"\n", args...)
}

// Warn prints a warning message. Warnings are never suppressed.
func Warn(format string, args ...any) {
	printf(false, "[WARN] "+format+"\n", args...)
}

// Stage prints a stage header if verbose mode is enabled and returns a
// function that logs the stage duration when called.
//
//	done := logger.Stage("load")
//	defer done()
func Stage(name string) func() {
	printf(true, "\n=== %s ===\n", name)
	start := now()
	return func() {
		printf(true, "[DEBUG] %s finished in %s\n", name, now().Sub(start).Round(time.Millisecond))
	}
}

// printf holds the write lock so concurrent writers never interleave.
func printf(onlyVerbose bool, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if onlyVerbose && !verbose {
		return
	}
	fmt.Fprintf(output, format, args...)
}
