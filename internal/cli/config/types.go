// Package config provides configuration management for the bstree CLI.
//
// This package extends the shared configuration types from internal/config
// with CLI-specific fields and the layered koanf loader.
package config

import (
	sharedcfg "github.com/leapstack-labs/bstree/internal/config"
)

// ServerConfig is an alias for the shared server configuration.
type ServerConfig = sharedcfg.ServerConfig

// PostgresConfig is an alias for the shared postgres configuration.
type PostgresConfig = sharedcfg.PostgresConfig

// Config holds all CLI configuration options.
type Config struct {
	StatePath    string          `koanf:"state_path"`
	Driver       string          `koanf:"driver"`
	DSN          string          `koanf:"dsn"`
	Verbose      bool            `koanf:"verbose"`
	OutputFormat string          `koanf:"output"`
	LogLevel     string          `koanf:"log_level"`
	Server       *ServerConfig   `koanf:"server"`
	Postgres     *PostgresConfig `koanf:"postgres"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultStateFile = sharedcfg.DefaultStateFile
	DefaultDriver    = sharedcfg.DefaultDriver
	DefaultOutput    = sharedcfg.DefaultOutput
	DefaultLogLevel  = sharedcfg.DefaultLogLevel
)

// GetServerConfig returns the server config with defaults applied.
func (c *Config) GetServerConfig() *ServerConfig {
	if c.Server == nil {
		c.Server = &ServerConfig{}
	}
	sharedcfg.ApplyServerDefaults(c.Server)
	return c.Server
}

// StoreDSN returns the connection string for the configured driver.
// For postgres an explicit dsn wins over the postgres.* fields.
func (c *Config) StoreDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	if c.Postgres != nil {
		return c.Postgres.DSN()
	}
	return ""
}
