package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, true, slog.LevelInfo)
	log.Info("hello", "key", "value")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "value", rec["key"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, false, slog.LevelWarn)
	log.Info("dropped")
	assert.Zero(t, buf.Len())
	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestAppendCtx_AttrsFlowThroughContext(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, true, slog.LevelInfo)

	ctx := AppendCtx(context.Background(),
		slog.Group("app", slog.String("name", "norctl")))
	ctx = AppendCtx(ctx, slog.String("request", "r1"))

	log.InfoContext(ctx, "work")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	app, ok := rec["app"].(map[string]any)
	require.True(t, ok, "grouped attrs survive the context")
	assert.Equal(t, "norctl", app["name"])
	assert.Equal(t, "r1", rec["request"])
}

func TestAppendCtx_DoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, true, slog.LevelInfo)

	parent := AppendCtx(context.Background(), slog.String("scope", "parent"))
	_ = AppendCtx(parent, slog.String("extra", "child"))

	log.InfoContext(parent, "from parent")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "parent", rec["scope"])
	_, hasExtra := rec["extra"]
	assert.False(t, hasExtra)
}
