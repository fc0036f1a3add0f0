package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONWithComponent(t *testing.T) {
	var buf bytes.Buffer

	l, err := New("production", "debug", &buf)
	require.NoError(t, err)

	cl := Component(l, "gateway")
	cl.Info().Str("op", "balance").Msg("called")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "gateway", line["component"])
	assert.Equal(t, "balance", line["op"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "called", line["message"])
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer

	l, err := New("production", "warn", &buf)
	require.NoError(t, err)

	l.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("production", "loud")
	assert.Error(t, err)
}
