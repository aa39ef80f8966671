package logger

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// AddFields adds fields to the logger in context and returns new context
func AddFields(ctx context.Context, fields ...zap.Field) context.Context {
	return ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(fields...))
}

// WithAction names the flow being served, e.g. the HTTP handler
func WithAction(ctx context.Context, action string) context.Context {
	return AddFields(ctx, zap.String("action", action))
}

// WithDiagnostic tags every following log line with the diagnostic id
func WithDiagnostic(ctx context.Context, diagnosticID string) context.Context {
	return AddFields(ctx, zap.String("diagnostic_id", diagnosticID))
}
