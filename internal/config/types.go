// Package config provides shared configuration types for bstree.
// This package is decoupled from CLI concerns so the server and stores can
// be configured without importing cobra or koanf.
package config

import (
	"fmt"
	"strings"
)

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Port          int    `koanf:"port"`
	Watch         bool   `koanf:"watch"`      // reload browsers when static_dir changes
	StaticDir     string `koanf:"static_dir"` // serve assets from disk instead of the embedded copy
	SessionSecret string `koanf:"session_secret"`
}

// PostgresConfig holds the connection fields used when no DSN is given.
type PostgresConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	SSLMode  string `koanf:"sslmode"`
}

// DSN builds a key=value connection string.
func (p *PostgresConfig) DSN() string {
	host := p.Host
	if host == "" {
		host = DefaultPostgresHost
	}

	port := p.Port
	if port == 0 {
		port = DefaultPostgresPort
	}

	sslmode := p.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s", host, port, p.Database, sslmode)
	if p.User != "" {
		dsn += fmt.Sprintf(" user=%s", p.User)
	}
	if p.Password != "" {
		dsn += fmt.Sprintf(" password=%s", p.Password)
	}
	return dsn
}

// Validate checks that the connection fields are usable.
func (p *PostgresConfig) Validate() error {
	if p.Database == "" {
		return fmt.Errorf("postgres.database is required when no dsn is set")
	}
	if p.Port < 0 || p.Port > 65535 {
		return fmt.Errorf("postgres.port %d is out of range", p.Port)
	}
	return nil
}

// ValidateDriver checks that driver names a supported store.
func ValidateDriver(driver string) error {
	switch strings.ToLower(driver) {
	case DriverSQLite, DriverPostgres:
		return nil
	case "":
		return fmt.Errorf("driver is required")
	default:
		return fmt.Errorf("unknown driver %q\nAvailable drivers: [%s %s]\nHint: Check driver in bstree.yaml", driver, DriverSQLite, DriverPostgres)
	}
}
