package logging

import (
	"bytes"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, zapcore.InfoLevel, "json")
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("validated", zap.String("file", "a.json"))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, gojson.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "validated", entry["msg"])
	assert.Equal(t, "a.json", entry["file"])
	assert.Contains(t, entry, "ts")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, zapcore.WarnLevel, "console")
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("careful")
	assert.Equal(t, "warn\tcareful\n", buf.String())
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := New(&bytes.Buffer{}, zapcore.InfoLevel, "xml")
	assert.Error(t, err)
}
