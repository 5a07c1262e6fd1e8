package logging

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts zerolog to Logger. Key/value args become fields;
// an odd trailing value is logged under "!BADKEY", like slog does.
type ZerologLogger struct {
	l zerolog.Logger
}

func NewZerologLogger(opts Options) *ZerologLogger {
	out := opts.Output
	if !strings.EqualFold(opts.Format, "json") {
		out = zerolog.ConsoleWriter{Out: opts.Output, TimeFormat: "15:04:05", NoColor: true}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return &ZerologLogger{l: zerolog.New(out).With().Timestamp().Logger().Level(lvl)}
}

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Debug(), msg, args)
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Info(), msg, args)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Warn(), msg, args)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Error(), msg, args)
}

func (z *ZerologLogger) With(args ...any) Logger {
	c := z.l.With()
	forPairs(args, func(k string, v any) { c = c.Interface(k, v) })
	return &ZerologLogger{l: c.Logger()}
}

func (z *ZerologLogger) emit(e *zerolog.Event, msg string, args []any) {
	forPairs(args, func(k string, v any) {
		if err, ok := v.(error); ok {
			e = e.AnErr(k, err)
			return
		}
		e = e.Interface(k, v)
	})
	e.Msg(msg)
}

func forPairs(args []any, fn func(k string, v any)) {
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			fn("!BADKEY", args[i])
			return
		}
		fn(fmt.Sprint(args[i]), args[i+1])
	}
}
