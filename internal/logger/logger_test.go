package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{FatalLevel, "FATAL"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.String())
		})
	}
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, WarnLevel)

	l.Debug("debug message")
	assert.Empty(t, buf.String())

	l.Info("info message")
	assert.Empty(t, buf.String())

	l.Warn("warn message")
	assert.NotEmpty(t, buf.String())
}

func TestStructuredFieldsAreEncoded(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, InfoLevel)

	l.Info("traversal recorded",
		String("src", "cell-a"),
		String("dst", "cell-b"),
		Int("seq", 1),
		Bool("ok", true),
		Error(errors.New("boom")),
	)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "cell-a", entry["src"])
	assert.Equal(t, "cell-b", entry["dst"])
	assert.Equal(t, float64(1), entry["seq"])
	assert.Equal(t, true, entry["ok"])
	assert.Equal(t, "boom", entry["error"])
}

func TestWithFieldsAccumulates(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(&buf, InfoLevel)
	scoped := base.WithFields(String("component", "vault"))

	scoped.Info("seal")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "vault", entry["component"])
}

func TestSetLevelGetLevel(t *testing.T) {
	l := NewLogger(&bytes.Buffer{}, InfoLevel)
	assert.Equal(t, InfoLevel, l.GetLevel())
	l.SetLevel(ErrorLevel)
	assert.Equal(t, ErrorLevel, l.GetLevel())
}

func TestNoopLoggerDiscardsEverything(t *testing.T) {
	var n Logger = NoopLogger{}
	n.Info("anything")
	n.WithFields(String("a", "b")).Error("anything")
	assert.Equal(t, FatalLevel, n.GetLevel())
}
