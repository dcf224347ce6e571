package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newSlogBuffer(level slog.Level) (*SlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		call  func(Logger, context.Context)
		level string
	}{
		{"debug", func(l Logger, ctx context.Context) { l.Debug(ctx, "period list loaded", "count", 3) }, "DEBUG"},
		{"info", func(l Logger, ctx context.Context) { l.Info(ctx, "period list loaded", "count", 3) }, "INFO"},
		{"warn", func(l Logger, ctx context.Context) { l.Warn(ctx, "period list loaded", "count", 3) }, "WARN"},
		{"error", func(l Logger, ctx context.Context) { l.Error(ctx, "period list loaded", "count", 3) }, "ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log, buf := newSlogBuffer(slog.LevelDebug)
			tc.call(log, context.Background())

			out := buf.String()
			require.Contains(t, out, "level="+tc.level)
			require.Contains(t, out, `msg="period list loaded"`)
			require.Contains(t, out, "count=3")
			require.NotContains(t, out, "request_id")
		})
	}
}

func TestSlogLogger_RespectsHandlerLevel(t *testing.T) {
	log, buf := newSlogBuffer(slog.LevelWarn)
	log.Info(context.Background(), "mounted")
	require.Empty(t, buf.String())
}

func TestSlogLogger_WithAndRequestID(t *testing.T) {
	log, buf := newSlogBuffer(slog.LevelDebug)

	child := log.With("component", "router")
	ctx := context.WithValue(context.Background(), RequestIDKey{}, "req-7")
	child.Warn(ctx, "navigated", "path", "/dashboard")

	out := buf.String()
	for _, s := range []string{"level=WARN", "component=router", "request_id=req-7", "path=/dashboard"} {
		require.Contains(t, out, s)
	}
}

func TestSlogLogger_NilContext(t *testing.T) {
	log, buf := newSlogBuffer(slog.LevelDebug)
	//nolint:staticcheck
	log.Info(nil, "ok")
	require.Contains(t, buf.String(), "msg=ok")
}
