// Package audit emits security-relevant events to the shared logger.
// Denials carry the maximum diagnostic detail here; response bodies only
// ever carry the minimum the caller needs.
package audit

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"fieldops.dev/internal/obs"
)

type ctxKey string

const requestIDKey ctxKey = "audit_request_id"

// WithRequestID attaches the request identifier to the context so audit
// events can be correlated with request logs.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the audit request id, "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// Security records a security event at error severity. Used for
// cross-tenant access attempts and membership store failures.
func Security(ctx context.Context, event string, fields ...zap.Field) {
	obs.Logger().Error(event, enrich(ctx, fields)...)
}

// Warn records an audit event at warning severity. Used for role
// authorization denials.
func Warn(ctx context.Context, event string, fields ...zap.Field) {
	obs.Logger().Warn(event, enrich(ctx, fields)...)
}

func enrich(ctx context.Context, fields []zap.Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+2)
	out = append(out, zap.String("type", "audit"))
	if rid := RequestIDFromContext(ctx); rid != "" {
		out = append(out, zap.String("request_id", rid))
	}
	return append(out, fields...)
}
