package ctxlog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(slog.LevelInfo, "text", &buf)

	ctx := WithLogger(context.Background(), logger)
	require.Same(t, logger, FromContext(ctx))
	require.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestNew_Formats(t *testing.T) {
	var buf bytes.Buffer
	New(slog.LevelInfo, "json", &buf).Info("compiled", "states", 4)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, "compiled", record["msg"])
	require.EqualValues(t, 4, record["states"])

	buf.Reset()
	New(slog.LevelInfo, "text", &buf).Info("compiled", "states", 4)
	require.True(t, strings.Contains(buf.String(), "msg=compiled states=4"), buf.String())
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := New(slog.LevelWarn, "text", &buf)
	logger.Info("hidden")
	require.Empty(t, buf.String())
	logger.Warn("shown")
	require.Contains(t, buf.String(), "shown")
}
