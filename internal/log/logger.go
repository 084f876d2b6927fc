// Package log is the process-wide leveled logger. Verbosity is selected with
// repeated -v flags; warnings and errors are always written.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Verbosity levels
const (
	LevelQuiet = iota // warnings and errors only
	LevelInfo         // -v: stage transitions, counts, progress line
	LevelDebug        // -vv: column resolution, per-username outcomes
	LevelTrace        // -vvv: every HTTP request and rate limit header
)

const slogLevelTrace = slog.Level(-8)

// state is guarded by mu because enrichment workers log concurrently.
var (
	mu         sync.Mutex
	verbosity  int
	logger     *slog.Logger
	output     io.Writer
	inProgress bool
)

func levelFor(v int) slog.Level {
	switch {
	case v >= LevelTrace:
		return slogLevelTrace
	case v >= LevelDebug:
		return slog.LevelDebug
	case v >= LevelInfo:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// Initialize sets the verbosity and the writer for all log output. Pass
// io.Discard to silence logging while the progress display owns the terminal.
func Initialize(level int, w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	verbosity = level
	output = w
	inProgress = false
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: levelFor(level),
	}))
}

func emit(min int, level slog.Level, msg string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if verbosity < min {
		return
	}
	breakProgressLine()
	logger.Log(context.Background(), level, msg, args...)
}

// Info logs at info level (-v).
func Info(msg string, args ...any) { emit(LevelInfo, slog.LevelInfo, msg, args...) }

// Debug logs at debug level (-vv).
func Debug(msg string, args ...any) { emit(LevelDebug, slog.LevelDebug, msg, args...) }

// Trace logs at trace level (-vvv).
func Trace(msg string, args ...any) { emit(LevelTrace, slogLevelTrace, msg, args...) }

// Warn always logs.
func Warn(msg string, args ...any) { emit(LevelQuiet, slog.LevelWarn, msg, args...) }

// Error always logs.
func Error(msg string, args ...any) { emit(LevelQuiet, slog.LevelError, msg, args...) }

// Progress rewrites the current line with a status message. It is shown at
// info level and above.
func Progress(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if verbosity < LevelInfo {
		return
	}
	inProgress = true
	_, _ = fmt.Fprintf(output, "\r"+format, args...)
}

// ProgressDone finishes the progress line.
func ProgressDone() {
	mu.Lock()
	defer mu.Unlock()
	if verbosity >= LevelInfo && inProgress {
		_, _ = fmt.Fprintln(output, " done")
		inProgress = false
	}
}

// ProgressClear erases the progress line.
func ProgressClear() {
	mu.Lock()
	defer mu.Unlock()
	if inProgress {
		_, _ = fmt.Fprint(output, "\r\033[K")
		inProgress = false
	}
}

// breakProgressLine moves past an unfinished progress line. Callers hold mu.
func breakProgressLine() {
	if inProgress {
		_, _ = fmt.Fprintln(output)
		inProgress = false
	}
}

// IsInfo reports whether info-level logging is enabled.
func IsInfo() bool { return Verbosity() >= LevelInfo }

// IsDebug reports whether debug-level logging is enabled.
func IsDebug() bool { return Verbosity() >= LevelDebug }

// IsTrace reports whether trace-level logging is enabled.
func IsTrace() bool { return Verbosity() >= LevelTrace }

// Verbosity returns the current verbosity level.
func Verbosity() int {
	mu.Lock()
	defer mu.Unlock()
	return verbosity
}

func init() {
	Initialize(LevelQuiet, os.Stderr)
}
