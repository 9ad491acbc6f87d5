package observability

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/cargo-binutils/internal/logfields"
)

// Stage times one phase of an invocation (resolve, build, invoke) and logs
// its duration at debug level when ended.
type Stage struct {
	ctx    context.Context
	logger *slog.Logger
	name   string
	start  time.Time
}

// StartStage marks the beginning of a phase; the returned context carries the stage name.
func StartStage(ctx context.Context, logger *slog.Logger, name string) (context.Context, *Stage) {
	ctx = WithStage(ctx, name)
	l := Logger(ctx, logger)
	l.Debug("Stage started")
	return ctx, &Stage{ctx: ctx, logger: l, name: name, start: time.Now()}
}

// End logs the stage duration, and err when non-nil.
func (s *Stage) End(err error) time.Duration {
	if s == nil {
		return 0
	}
	d := time.Since(s.start)
	attrs := []slog.Attr{logfields.DurationMS(float64(d.Microseconds()) / 1000)}
	if err != nil {
		attrs = append(attrs, logfields.Error(err))
	}
	s.logger.LogAttrs(s.ctx, slog.LevelDebug, "Stage ended", attrs...)
	return d
}
