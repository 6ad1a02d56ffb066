// Package config loads client settings from an optional yaml file with
// environment overrides layered on top.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the client configuration.
type Config struct {
	// ServerURL is the http(s) origin of the room server. Invite links are
	// derived from it and the websocket endpoint is reached through it.
	ServerURL string `yaml:"server_url"`

	// PlayerName pre-fills the name prompt.
	PlayerName string `yaml:"player_name"`

	Connection ConnectionConfig `yaml:"connection"`

	// Debug enables debug-level logging.
	Debug bool `yaml:"debug"`
}

// ConnectionConfig tunes the persistent connection.
type ConnectionConfig struct {
	KeepaliveSeconds     int `yaml:"keepalive_seconds"`
	ReconnectMaxAttempts int `yaml:"reconnect_max_attempts"`
	ReconnectBaseDelayMs int `yaml:"reconnect_base_delay_ms"`
}

// KeepaliveInterval returns the application-level ping cadence.
func (c *ConnectionConfig) KeepaliveInterval() time.Duration {
	return time.Duration(c.KeepaliveSeconds) * time.Second
}

// ReconnectBaseDelay returns the first reconnect backoff step.
func (c *ConnectionConfig) ReconnectBaseDelay() time.Duration {
	return time.Duration(c.ReconnectBaseDelayMs) * time.Millisecond
}

// Load reads the yaml file at path when it exists, then applies environment
// overrides and defaults. A missing file is not an error; a missing path
// yields pure defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	// .env is a convenience for development; absence is fine.
	_ = godotenv.Load()

	if v := os.Getenv("ZOBBO_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("ZOBBO_PLAYER_NAME"); v != "" {
		cfg.PlayerName = v
	}
	if v := os.Getenv("ZOBBO_DEBUG"); v != "" {
		cfg.Debug, _ = strconv.ParseBool(v)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Default returns the default configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.ServerURL == "" {
		c.ServerURL = "http://localhost:8080"
	}
	if c.Connection.KeepaliveSeconds == 0 {
		c.Connection.KeepaliveSeconds = 15
	}
	if c.Connection.ReconnectMaxAttempts == 0 {
		c.Connection.ReconnectMaxAttempts = 5
	}
	if c.Connection.ReconnectBaseDelayMs == 0 {
		c.Connection.ReconnectBaseDelayMs = 500
	}
}
