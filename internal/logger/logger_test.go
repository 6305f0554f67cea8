package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw      string
		fallback slog.Level
		want     slog.Level
	}{
		{"", slog.LevelInfo, slog.LevelInfo},
		{"debug", slog.LevelInfo, slog.LevelDebug},
		{"WARN", slog.LevelDebug, slog.LevelWarn},
		{" error ", slog.LevelDebug, slog.LevelError},
		{"verbose", slog.LevelWarn, slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.raw, tt.fallback))
		})
	}
}

func TestFromContext(t *testing.T) {
	assert.Same(t, Default(), FromContext(context.Background()))

	scoped := With("request_id", "abc")
	ctx := WithContext(context.Background(), scoped)

	assert.Same(t, scoped, FromContext(ctx))
}
