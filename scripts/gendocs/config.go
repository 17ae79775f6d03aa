package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strconv"

	clicfg "github.com/leapstack-labs/bstree/internal/cli/config"
	sharedcfg "github.com/leapstack-labs/bstree/internal/config"
)

// ConfigField represents one configuration key.
type ConfigField struct {
	Key         string
	Type        string
	Default     string
	Description string
}

var configDescriptions = map[string]string{
	"state_path":            "SQLite history database, relative to the project root",
	"driver":                "History store driver: sqlite or postgres",
	"dsn":                   "Postgres connection string; overrides the postgres section",
	"verbose":               "Enable debug logging",
	"output":                "Output format: auto, text, json, yaml or markdown",
	"log_level":             "Log level: debug, info, warn or error",
	"server.port":           "HTTP port for serve",
	"server.watch":          "Reload browsers when static_dir changes",
	"server.static_dir":     "Serve pages and assets from this directory instead of the embedded copy",
	"server.session_secret": "Key for the session cookie that remembers the last input",
	"postgres.host":         "Postgres host",
	"postgres.port":         "Postgres port",
	"postgres.database":     "Postgres database name",
	"postgres.user":         "Postgres user",
	"postgres.password":     "Postgres password; supports ${VAR} expansion",
	"postgres.sslmode":      "Postgres sslmode",
}

var configDefaults = map[string]string{
	"state_path":       clicfg.DefaultStateFile,
	"driver":           clicfg.DefaultDriver,
	"verbose":          "false",
	"output":           clicfg.DefaultOutput,
	"log_level":        clicfg.DefaultLogLevel,
	"server.port":      strconv.Itoa(sharedcfg.DefaultPort),
	"server.watch":     "false",
	"postgres.host":    sharedcfg.DefaultPostgresHost,
	"postgres.port":    strconv.Itoa(sharedcfg.DefaultPostgresPort),
	"postgres.sslmode": "disable",
}

// getConfigSchema walks the koanf tags of the CLI config.
func getConfigSchema() []ConfigField {
	var fields []ConfigField
	collectFields(reflect.TypeOf(clicfg.Config{}), "", &fields)
	return fields
}

func collectFields(t reflect.Type, prefix string, out *[]ConfigField) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("koanf")
		if tag == "" || tag == "-" {
			continue
		}
		key := prefix + tag

		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct {
			collectFields(ft, key+".", out)
			continue
		}

		desc, ok := configDescriptions[key]
		if !ok {
			log.Printf("  WARNING: no description for config key %s", key)
		}
		*out = append(*out, ConfigField{
			Key:         key,
			Type:        ft.Kind().String(),
			Default:     configDefaults[key],
			Description: desc,
		})
	}
}

// generateConfigDocs generates the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "bstree configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("bstree reads `%s` (or `%s`) from the current directory or the nearest parent. "+
		"Values are layered: defaults, then the file, then `%s` environment variables, then command-line flags.",
		sharedcfg.ConfigFileName, sharedcfg.ConfigFileNameAlt, clicfg.EnvPrefix))

	w.Header(2, "Keys")
	headers := []string{"Key", "Type", "Default", "Description"}
	var rows [][]string
	for _, f := range getConfigSchema() {
		defVal := "-"
		if f.Default != "" {
			defVal = InlineCode(f.Default)
		}
		rows = append(rows, []string{InlineCode(f.Key), f.Type, defVal, cleanDescription(f.Description)})
	}
	w.Table(headers, rows)

	w.Header(2, "SQLite Example")
	w.CodeBlock("yaml", `# bstree.yaml
state_path: .bstree/history.db
output: auto

server:
  port: 8080`)

	w.Header(2, "PostgreSQL Example")
	w.CodeBlock("yaml", `driver: postgres

postgres:
  host: localhost
  port: 5432
  database: trees
  user: app
  password: ${POSTGRES_PASSWORD}`)

	w.Header(2, "Environment Variables")
	w.Paragraph("Use `${VAR_NAME}` in `dsn` and the postgres section to read secrets from the environment. " +
		"Nested keys map to variables with a double underscore, for example `BSTREE_SERVER__PORT`.")

	filename := filepath.Join(outDir, "configuration.md")
	if err := os.WriteFile(filename, w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated configuration.md")
	return nil
}
