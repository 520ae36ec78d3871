// Package config loads runtime settings for the oracle client. Every value
// has a default; a config file is optional.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Base URL of the opening-explorer service.
	OracleURL string `mapstructure:"oracle_url"`
	// User-Agent sent on every explorer request.
	UserAgent string `mapstructure:"user_agent"`
	// Minimum wall-clock spacing between explorer calls.
	CallInterval time.Duration `mapstructure:"call_interval"`
	// Per-request HTTP timeout.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Load reads the config file at path, or returns pure defaults when path is
// empty. Environment variables prefixed GAPFINDER_ override both.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("oracle_url", "https://explorer.lichess.ovh")
	v.SetDefault("user_agent", "gapfinder")
	v.SetDefault("call_interval", 500*time.Millisecond)
	v.SetDefault("request_timeout", 15*time.Second)
	v.SetEnvPrefix("GAPFINDER")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return &cfg, nil
}
