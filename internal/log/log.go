// Package log provides context-aware logging for sugg.
// All log output goes to stderr so stdout stays clean for piping
// (e.g., WORD=$(sugg pick) must capture only the picked word).
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

type ctxKey struct{}

// Logger writes diagnostics and verbose request traces.
type Logger struct {
	out     io.Writer
	verbose bool
	quiet   bool
}

// New creates a new logger. When quiet is set, all output is suppressed,
// including verbose output.
func New(out io.Writer, verbose, quiet bool) *Logger {
	return &Logger{out: out, verbose: verbose, quiet: quiet}
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a discard logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{out: io.Discard}
}

// Printf writes formatted output.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output.
func (l *Logger) Println(args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, args...)
}

// Debug writes a message with key=value pairs.
// Only prints when verbose mode is enabled. Odd trailing keys are dropped.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if !l.IsVerbose() {
		return
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keyvals[i], keyvals[i+1])
	}
	fmt.Fprintln(l.out, b.String())
}

// Request logs an outgoing HTTP request and returns a func that logs the
// elapsed time when called. Only prints when verbose mode is enabled.
//
//	done := l.Request("GET", url)
//	resp, err := client.Do(req)
//	done(time.Since(start))
func (l *Logger) Request(method, url string) func(time.Duration) {
	if !l.IsVerbose() {
		return func(time.Duration) {}
	}
	fmt.Fprintf(l.out, "> %s %s\n", method, url)
	return func(d time.Duration) {
		fmt.Fprintf(l.out, "< %s %s (%s)\n", method, url, d.Round(time.Millisecond))
	}
}

// IsVerbose returns true if verbose mode is enabled and quiet is not.
func (l *Logger) IsVerbose() bool {
	return l.verbose && !l.quiet
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}
