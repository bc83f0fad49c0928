package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	assert.Equal(t, Production, ParseEnv("production"))
	assert.Equal(t, Development, ParseEnv(""))
	assert.Equal(t, Development, ParseEnv("staging"))
}

func TestNew_ConsoleLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(Production, WithConsole(&buf))

	log.Debug("hidden")
	log.Info("visible", "recipe_id", 7)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "recipe_id=7")
}

func TestNew_WritesFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "app.log")
	log := New(Development, WithConsole(&buf), WithLogToFile(true), WithLogFile(path))

	log.With("component", "store").Warn("save failed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"save failed"`)
	assert.Contains(t, string(data), `"component":"store"`)
	assert.Contains(t, buf.String(), "save failed")
}
