package observability

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/cargo-binutils/internal/logfields"
)

// LogContext holds structured logging context information.
type LogContext struct {
	InvocationID string
	Tool         string
	Stage        string
}

type logContextKeyType string

const logContextKey logContextKeyType = "log-context"

// WithInvocationID adds the per-run invocation ID to the context.
func WithInvocationID(ctx context.Context, id string) context.Context {
	lc := extractLogContext(ctx)
	lc.InvocationID = id
	return context.WithValue(ctx, logContextKey, lc)
}

// WithTool adds the tool name to the context.
func WithTool(ctx context.Context, tool string) context.Context {
	lc := extractLogContext(ctx)
	lc.Tool = tool
	return context.WithValue(ctx, logContextKey, lc)
}

// WithStage adds a stage name to the context.
func WithStage(ctx context.Context, stage string) context.Context {
	lc := extractLogContext(ctx)
	lc.Stage = stage
	return context.WithValue(ctx, logContextKey, lc)
}

func extractLogContext(ctx context.Context) LogContext {
	if lc, ok := ctx.Value(logContextKey).(LogContext); ok {
		return lc
	}
	return LogContext{}
}

// Attrs returns the slog attributes carried by ctx.
func Attrs(ctx context.Context) []slog.Attr {
	lc := extractLogContext(ctx)
	attrs := []slog.Attr{}

	if lc.InvocationID != "" {
		attrs = append(attrs, logfields.InvocationID(lc.InvocationID))
	}
	if lc.Tool != "" {
		attrs = append(attrs, logfields.Tool(lc.Tool))
	}
	if lc.Stage != "" {
		attrs = append(attrs, logfields.Stage(lc.Stage))
	}
	return attrs
}

// Logger returns base (or the default logger) annotated with the attributes in ctx.
func Logger(ctx context.Context, base *slog.Logger) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}
	attrs := Attrs(ctx)
	if len(attrs) == 0 {
		return base
	}
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return base.With(args...)
}

// DebugContext logs a debug message with context information.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelDebug, msg, append(Attrs(ctx), attrs...)...)
}
