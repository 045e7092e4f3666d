package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FileIsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizbox.log")
	log, shutdown, err := New(Options{Level: "info", File: path, MaxSizeMB: 1})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("test added")
	require.NoError(t, shutdown())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "test added", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestNew_ConsoleOnlyWarnings(t *testing.T) {
	var buf bytes.Buffer
	log, shutdown, err := New(Options{Level: "debug", Console: &buf})
	require.NoError(t, err)

	log.Info("quiet")
	log.Warn("loud")
	require.NoError(t, shutdown())

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestNew_NoSinksIsNop(t *testing.T) {
	log, shutdown, err := New(Options{Level: "info"})
	require.NoError(t, err)
	log.Info("nowhere")
	assert.NoError(t, shutdown())
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New(Options{Level: "chatty"})
	assert.Error(t, err)
}
