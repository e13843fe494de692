package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/holdem"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, zerolog.InfoLevel, c.LogLevel)
	assert.Equal(t, 10000, c.EquityIterations)
	assert.Equal(t, time.Second, c.BotThinkTime)
	assert.Equal(t, holdem.NewEngineOptions(), c.EngineOptions())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("HOLDEM_HTTP_ADDR", ":9999")
	t.Setenv("HOLDEM_LOG_LEVEL", "debug")
	t.Setenv("HOLDEM_ACTION_TIMEOUT", "15s")
	t.Setenv("HOLDEM_EQUITY_ITERATIONS", "2500")

	c, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, ":9999", c.HTTPAddr)
	assert.Equal(t, zerolog.DebugLevel, c.LogLevel)
	assert.Equal(t, 15*time.Second, c.ActionTimeout)
	assert.Equal(t, 15*time.Second, c.EngineOptions().ActionTimeout)
	assert.Equal(t, 2500, c.EquityIterations)

	t.Setenv("HOLDEM_PERSIST_TIMEOUT", "250ms")
	c, err = Load(New())
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, c.EngineOptions().PersistTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	v := New()
	v.Set("log_level", "loud")
	_, err := Load(v)
	assert.Error(t, err)

	v = New()
	v.Set("street_delay", "-1s")
	_, err = Load(v)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	v = New()
	v.Set("equity_iterations", 0)
	_, err = Load(v)
	assert.ErrorIs(t, err, ErrInvalidIterations)
}
