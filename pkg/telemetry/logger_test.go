package telemetry

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONRedacts(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, slog.LevelInfo, "json")
	l.Info("Opening report store", "url", "s3://bucket/reports", "secret", "hunter2")
	l.Debug("dropped")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "Opening report store", rec["msg"])
	assert.Equal(t, "s3://bucket/reports", rec["url"])
	assert.Equal(t, "[REDACTED]", rec["secret"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, slog.LevelDebug, "TEXT").Debug("hello", "nodes", 4)
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "nodes=4")
}
