package log

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevel(t *testing.T) {
	t.Setenv("DEBUG", "")
	assert.Equal(t, zerolog.InfoLevel, NewLogger().GetLevel())

	t.Setenv("DEBUG", "true")
	assert.Equal(t, zerolog.DebugLevel, NewLogger().GetLevel())
}

func TestNewEventLogger(t *testing.T) {
	assert.NotNil(t, NewEventLogger(zerolog.Nop()))
}
