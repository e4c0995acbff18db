package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", false)

	log.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	log.Warn().Str("k", "v").Msg("shown")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "v", entry["k"])
	assert.Contains(t, entry, "time")
}

func TestNewWithWriterUnknownLevel(t *testing.T) {
	log := NewWithWriter(&bytes.Buffer{}, "loud", false)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestGormWriter(t *testing.T) {
	var buf bytes.Buffer
	w := GormWriter{Logger: NewWithWriter(&buf, "info", false), Level: zerolog.WarnLevel}
	w.Printf("%s took %d", "select", 3)
	assert.Contains(t, buf.String(), `"component":"gorm"`)
	assert.Contains(t, buf.String(), "select took 3")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}
