// Package config loads service configuration from the environment and an
// optional .env file, unmarshaled through viper into typed sections.
package config

import (
	"fmt"
	"time"

	"github.com/skillsenselab/authsvc/internal/logger"
	"github.com/skillsenselab/authsvc/internal/server"
	"github.com/skillsenselab/authsvc/internal/store"
	"github.com/skillsenselab/authsvc/internal/taskpool"
)

// Config is the full service configuration.
type Config struct {
	Server   server.Config   `mapstructure:"server"`
	Database store.Config    `mapstructure:"database"`
	JWT      JWTConfig       `mapstructure:"jwt"`
	Pool     taskpool.Config `mapstructure:"pool"`
	Log      logger.Config   `mapstructure:"log"`
}

// JWTConfig configures token signing.
type JWTConfig struct {
	// Secret is the HMAC signing key. Required.
	Secret string `mapstructure:"secret"`

	// TTL is the token validity window as a duration string (default: "168h").
	TTL string `mapstructure:"ttl"`
}

// TokenTTL parses the configured validity window.
func (c *JWTConfig) TokenTTL() (time.Duration, error) {
	if c.TTL == "" {
		return 7 * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0, fmt.Errorf("config: jwt.ttl: %w", err)
	}
	return d, nil
}

// ApplyDefaults applies defaults to every section.
func (c *Config) ApplyDefaults() {
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Pool.ApplyDefaults()
	c.Log.ApplyDefaults()
}

// Validate checks every section. A missing database DSN or JWT secret is a
// fatal startup fault.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: jwt.secret is required")
	}
	if _, err := c.JWT.TokenTTL(); err != nil {
		return err
	}
	return c.Log.Validate()
}
