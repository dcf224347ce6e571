package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestIDKey carries the X-Request-ID of the outbound call being logged.
type RequestIDKey struct{}

// ZapLogger adapts a zap.SugaredLogger to Logger. When the context carries a
// request id it is attached as the "request_id" field.
type ZapLogger struct {
	l *zap.SugaredLogger
}

func NewZapLogger(l *zap.Logger) *ZapLogger {
	return &ZapLogger{l: l.Sugar()}
}

// NewZap builds a zap logger for the given environment: JSON production
// config for "production", colored development config otherwise.
func NewZap(env string) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	if env != "production" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	// the terminal belongs to the REPL
	cfg.OutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return NewZapLogger(l), nil
}

func (z *ZapLogger) withCtx(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return z.l
	}
	if id, ok := ctx.Value(RequestIDKey{}).(string); ok && id != "" {
		return z.l.With("request_id", id)
	}
	return z.l
}

func (z *ZapLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.withCtx(ctx).Debugw(msg, args...)
}

func (z *ZapLogger) Info(ctx context.Context, msg string, args ...any) {
	z.withCtx(ctx).Infow(msg, args...)
}

func (z *ZapLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.withCtx(ctx).Warnw(msg, args...)
}

func (z *ZapLogger) Error(ctx context.Context, msg string, args ...any) {
	z.withCtx(ctx).Errorw(msg, args...)
}

func (z *ZapLogger) With(args ...any) Logger {
	return &ZapLogger{l: z.l.With(args...)}
}

// Sync flushes buffered entries.
func (z *ZapLogger) Sync() error {
	return z.l.Sync()
}
