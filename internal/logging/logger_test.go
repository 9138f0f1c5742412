package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDiscard(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		Configure(LevelInfo, io.Discard)
	})
}

func TestConfigureFiltersByLevel(t *testing.T) {
	restoreDiscard(t)

	var buf bytes.Buffer
	Configure(LevelWarn, &buf)

	Debug("too quiet")
	Info("still too quiet")
	Warn("loud enough", "key", "value")
	Error("definitely", "code", 7)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "WARN", first["level"])
	assert.Equal(t, "loud enough", first["msg"])
	assert.Equal(t, "value", first["key"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "ERROR", second["level"])
	assert.Equal(t, "definitely", second["msg"])
}

func TestWithCarriesAttributes(t *testing.T) {
	restoreDiscard(t)

	var buf bytes.Buffer
	Configure(LevelInfo, &buf)

	log := With("component", "uploader")
	log.Info("item uploaded", "item_id", "a")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "uploader", entry["component"])
	assert.Equal(t, "a", entry["item_id"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("anything else"))
}
