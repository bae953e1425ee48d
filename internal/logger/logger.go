// Package logger provides progress logging for the Histora pipeline.
// The collector is a long-running batch job, so informational messages
// are printed by default; debug messages require the --verbose flag.
// All output goes to stderr so stdout stays clean for command results.
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

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "[%s] [DEBUG] "+format+"\n", prepend(args)...)
	}
}

// Section prints a banner separating pipeline phases.
func Section(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(output, "\n============================================================\n"+format+"\n============================================================\n", args...)
}

// Info prints an informational message with a timestamp.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(output, "[%s] "+format+"\n", prepend(args)...)
}

// Warn prints a warning message with a timestamp.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(output, "[%s] [WARN] "+format+"\n", prepend(args)...)
}

// Error prints an error message with a timestamp.
func Error(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(output, "[%s] [ERROR] "+format+"\n", prepend(args)...)
}

// prepend adds the timestamp as the first format argument.
func prepend(args []any) []any {
	ts := time.Now().Format("2006-01-02 15:04:05")
	out := make([]any, 0, len(args)+1)
	out = append(out, ts)
	return append(out, args...)
}
