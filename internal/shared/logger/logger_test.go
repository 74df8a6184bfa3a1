package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceHandler(t *testing.T) {
	tests := []struct {
		name       string
		minLevel   slog.Level
		logLevel   slog.Level
		wantSource bool
	}{
		{name: "info below warn threshold", minLevel: slog.LevelWarn, logLevel: slog.LevelInfo, wantSource: false},
		{name: "warn at threshold", minLevel: slog.LevelWarn, logLevel: slog.LevelWarn, wantSource: true},
		{name: "error above threshold", minLevel: slog.LevelWarn, logLevel: slog.LevelError, wantSource: true},
		{name: "debug mode shows everything", minLevel: slog.LevelDebug, logLevel: slog.LevelDebug, wantSource: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			l := slog.New(newSourceHandler(base, tt.minLevel))

			l.Log(t.Context(), tt.logLevel, "hello", "k", "v")

			var record map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
			_, hasSource := record[slog.SourceKey]
			assert.Equal(t, tt.wantSource, hasSource)
			assert.Equal(t, "v", record["k"])
		})
	}
}

func TestSourceHandler_PreservesAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, nil)
	l := slog.New(newSourceHandler(base, slog.LevelError)).With("component", "test").WithGroup("req")

	l.Info("msg", "id", 7)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "test", record["component"])
	assert.Equal(t, map[string]any{"id": float64(7)}, record["req"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}
