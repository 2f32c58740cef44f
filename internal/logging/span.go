package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Span marks a unit of work inside a request. Ending the span logs its name
// and elapsed time through the context logger.
type Span struct {
	logger *slog.Logger
	start  time.Time
}

// StartSpan derives a child span from ctx. The returned context carries a
// logger enriched with trace and span identifiers; pass it to everything the
// span covers and call End when the work finishes.
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	if ctx == nil {
		ctx = context.Background()
	}

	info := traceFromContext(ctx)
	logger := FromContext(ctx)

	if info.traceID == "" {
		info.traceID = uuid.NewString()
		logger = logger.With(slog.String("trace_id", info.traceID))
	}

	spanID := uuid.NewString()
	logger = logger.With(
		slog.String("span_id", spanID),
		slog.String("span_name", name),
	)
	if info.spanID != "" {
		logger = logger.With(slog.String("parent_span_id", info.spanID))
	}

	ctx = withTrace(ctx, info.traceID, spanID)
	ctx = WithLogger(ctx, logger)

	return ctx, &Span{logger: logger, start: time.Now()}
}

// End emits the span completion entry. Safe on a nil span.
func (s *Span) End() {
	if s == nil {
		return
	}
	s.logger.Info("span completed", slog.Duration("duration", time.Since(s.start)))
}
