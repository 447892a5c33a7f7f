package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("warn", "json", &buf)
		require.NoError(t, err)
		assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

		logger.Info().Msg("dropped")
		logger.Warn().Str("vehicle_id", "bus-1").Msg("kept")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "warn", entry["level"])
		assert.Equal(t, "kept", entry["message"])
		assert.Equal(t, "bus-1", entry["vehicle_id"])
		assert.Contains(t, entry, "time")
	})

	t.Run("installs global logger", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := New("info", "json", &buf)
		require.NoError(t, err)

		log.Info().Msg("global")
		assert.Contains(t, buf.String(), `"message":"global"`)
	})

	t.Run("console", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("DEBUG", "console", &buf)
		require.NoError(t, err)

		logger.Debug().Msg("hello")
		assert.Contains(t, buf.String(), "hello")
		assert.False(t, json.Valid(buf.Bytes()))
	})

	t.Run("empty level defaults to info", func(t *testing.T) {
		logger, err := New("", "", &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := New("loud", "json", &bytes.Buffer{})
		assert.Error(t, err)

		_, err = New("info", "xml", &bytes.Buffer{})
		assert.Error(t, err)
	})
}
