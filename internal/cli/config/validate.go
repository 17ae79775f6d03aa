package config

import (
	"fmt"
	"log/slog"
	"strings"

	sharedcfg "github.com/leapstack-labs/bstree/internal/config"
)

var validOutputs = []string{"auto", "text", "json", "yaml", "markdown"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := sharedcfg.ValidateDriver(c.Driver); err != nil {
		return err
	}

	switch strings.ToLower(c.Driver) {
	case sharedcfg.DriverSQLite:
		if c.StatePath == "" {
			return fmt.Errorf("state_path is required for the sqlite driver")
		}
	case sharedcfg.DriverPostgres:
		if c.DSN == "" {
			if c.Postgres == nil {
				return fmt.Errorf("postgres driver needs dsn or a postgres section")
			}
			if err := c.Postgres.Validate(); err != nil {
				return err
			}
		}
	}

	if c.Server != nil && (c.Server.Port < 0 || c.Server.Port > 65535) {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}

	valid := false
	for _, o := range validOutputs {
		if c.OutputFormat == o {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid output format %q (want one of %s)", c.OutputFormat, strings.Join(validOutputs, ", "))
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLogLevel maps a config string to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return level, nil
}
