package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ParsesLevel(t *testing.T) {
	cases := []struct {
		input string
		level zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		logger := New(tc.input, &bytes.Buffer{})
		assert.Equal(t, tc.level, logger.GetLevel(), "level %q", tc.input)
	}
}

func TestNew_WritesServiceField(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", &buf)
	logger.Info().Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "usagewidget", line["service"])
	assert.Equal(t, "hello", line["message"])
}

func TestWailsLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	wl := NewWailsLogger(New("warn", &buf))

	wl.Info("dropped")
	assert.Empty(t, buf.String())

	wl.Warning("kept")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "wails", line["component"])
	assert.Equal(t, "warn", line["level"])
}
