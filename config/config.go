package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/weedbox/holdem"
)

const EnvPrefix = "HOLDEM"

var (
	ErrInvalidDuration   = errors.New("config: durations must not be negative")
	ErrInvalidIterations = errors.New("config: equity_iterations must be positive")
)

type Config struct {
	HTTPAddr         string
	DatabaseURL      string
	LogLevel         zerolog.Level
	ActionTimeout    time.Duration
	StreetDelay      time.Duration
	RunoutDelay      time.Duration
	ShowdownDelay    time.Duration
	NextHandDelay    time.Duration
	ReconnectTimeout time.Duration
	PersistTimeout   time.Duration
	EquityIterations int
	PreflopTablePath string
	BotThinkTime     time.Duration
}

// New returns a viper instance reading HOLDEM_* variables with defaults
// applied. A .env file in the working directory is loaded when present.
func New() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	defaults := holdem.NewEngineOptions()
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("database_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("action_timeout", defaults.ActionTimeout)
	v.SetDefault("street_delay", defaults.StreetDelay)
	v.SetDefault("runout_delay", defaults.RunoutDelay)
	v.SetDefault("showdown_delay", defaults.ShowdownDelay)
	v.SetDefault("next_hand_delay", defaults.NextHandDelay)
	v.SetDefault("reconnect_timeout", defaults.ReconnectTimeout)
	v.SetDefault("persist_timeout", defaults.PersistTimeout)
	v.SetDefault("equity_iterations", 10000)
	v.SetDefault("preflop_table_path", "")
	v.SetDefault("bot_think_time", time.Second)

	return v
}

func Load(v *viper.Viper) (*Config, error) {
	level, err := zerolog.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return nil, fmt.Errorf("config: log_level: %w", err)
	}

	c := &Config{
		HTTPAddr:         v.GetString("http_addr"),
		DatabaseURL:      v.GetString("database_url"),
		LogLevel:         level,
		ActionTimeout:    v.GetDuration("action_timeout"),
		StreetDelay:      v.GetDuration("street_delay"),
		RunoutDelay:      v.GetDuration("runout_delay"),
		ShowdownDelay:    v.GetDuration("showdown_delay"),
		NextHandDelay:    v.GetDuration("next_hand_delay"),
		ReconnectTimeout: v.GetDuration("reconnect_timeout"),
		PersistTimeout:   v.GetDuration("persist_timeout"),
		EquityIterations: v.GetInt("equity_iterations"),
		PreflopTablePath: v.GetString("preflop_table_path"),
		BotThinkTime:     v.GetDuration("bot_think_time"),
	}

	for _, d := range []time.Duration{
		c.ActionTimeout, c.StreetDelay, c.RunoutDelay, c.ShowdownDelay,
		c.NextHandDelay, c.ReconnectTimeout, c.PersistTimeout, c.BotThinkTime,
	} {
		if d < 0 {
			return nil, ErrInvalidDuration
		}
	}

	if c.EquityIterations <= 0 {
		return nil, ErrInvalidIterations
	}

	return c, nil
}

func (c *Config) EngineOptions() *holdem.EngineOptions {
	return &holdem.EngineOptions{
		ActionTimeout:    c.ActionTimeout,
		StreetDelay:      c.StreetDelay,
		RunoutDelay:      c.RunoutDelay,
		ShowdownDelay:    c.ShowdownDelay,
		NextHandDelay:    c.NextHandDelay,
		ReconnectTimeout: c.ReconnectTimeout,
		PersistTimeout:   c.PersistTimeout,
	}
}
