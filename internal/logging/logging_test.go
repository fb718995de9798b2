package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_DefaultsToInfo(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New("", buf)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

	logger.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Info().Str("key", "workouts").Msg("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "workouts")
}

func TestNew_ParsesLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, New("DEBUG", &bytes.Buffer{}).GetLevel())
	assert.Equal(t, zerolog.WarnLevel, New(" warn ", &bytes.Buffer{}).GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New("loud", &bytes.Buffer{}).GetLevel())
}
