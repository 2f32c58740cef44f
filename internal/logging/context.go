package logging

import (
	"context"
	"log/slog"
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	traceKey
)

// traceInfo carries the identifiers a request accumulates as it flows through
// middleware and spans. Stored as one value so deriving contexts stays cheap.
type traceInfo struct {
	requestID string
	traceID   string
	spanID    string
}

// WithLogger stores a request-scoped logger on the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the request-scoped logger, falling back to slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}

func traceFromContext(ctx context.Context) traceInfo {
	if ctx == nil {
		return traceInfo{}
	}
	info, _ := ctx.Value(traceKey).(traceInfo)
	return info
}

// WithRequestID records the request identifier assigned by the HTTP layer.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	info := traceFromContext(ctx)
	info.requestID = requestID
	return context.WithValue(ctx, traceKey, info)
}

// RequestIDFromContext returns the request identifier, or "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	return traceFromContext(ctx).requestID
}

func withTrace(ctx context.Context, traceID, spanID string) context.Context {
	info := traceFromContext(ctx)
	if traceID != "" {
		info.traceID = traceID
	}
	if spanID != "" {
		info.spanID = spanID
	}
	return context.WithValue(ctx, traceKey, info)
}
