// Package logging defines the structured logger used across cakeinvoice and
// its slog and zerolog backends.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
)

// Logger is a context-aware, structured logger. Variadic args are
// key/value pairs:
//
//	log.Info(ctx, "invoice saved", "tier", 2, "path", p)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always carries the given pairs.
	With(args ...any) Logger
}

// Options select and tune a backend.
type Options struct {
	Backend string // "slog" (default) or "zerolog"
	Format  string // "text" (default) or "json"
	Level   string // debug, info, warn, error
	Output  io.Writer
}

// New builds a Logger from opts.
func New(opts Options) Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if strings.EqualFold(opts.Backend, "zerolog") {
		return NewZerologLogger(opts)
	}
	return NewSlogLoggerFromOptions(opts)
}

// Nop discards everything.
func Nop() Logger {
	return NewSlogLoggerFromOptions(Options{Output: io.Discard})
}
