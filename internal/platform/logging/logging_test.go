package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "solver", "debug")

	l.Debug().Int("routes", 2).Msg("solved")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "solver", line["component"])
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "solved", line["message"])
	assert.EqualValues(t, 2, line["routes"])
}

func TestNewWithWriterUnknownLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "api", "loud")

	l.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())

	l.Info().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewDevConsole(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := New("test", "info")
	l.Info().Msg("console")
}
