package config

// Default configuration values.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	DefaultDriver       = DriverSQLite
	DefaultStateFile    = ".bstree/history.db"
	DefaultPort         = 8080
	DefaultPostgresHost = "localhost"
	DefaultPostgresPort = 5432
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel     = "info"

	// DevSessionSecret is used when no session secret is configured.
	DevSessionSecret = "bstree-dev-secret-change-in-production" //nolint:gosec
)

// ApplyServerDefaults applies default values to a ServerConfig.
func ApplyServerDefaults(c *ServerConfig) {
	if c == nil {
		return
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.SessionSecret == "" {
		c.SessionSecret = DevSessionSecret
	}
}

// ApplyPostgresDefaults applies default values to a PostgresConfig.
func ApplyPostgresDefaults(c *PostgresConfig) {
	if c == nil {
		return
	}
	if c.Host == "" {
		c.Host = DefaultPostgresHost
	}
	if c.Port == 0 {
		c.Port = DefaultPostgresPort
	}
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
}
