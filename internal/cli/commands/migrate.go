package commands

import (
	"fmt"

	"github.com/leapstack-labs/bstree/internal/cli/output"
	"github.com/spf13/cobra"
)

// MigrateOptions holds options for the migrate command.
type MigrateOptions struct {
	Status bool
}

// MigrateOutput reports the schema version of the history store.
type MigrateOutput struct {
	Driver  string `json:"driver" yaml:"driver"`
	Version int64  `json:"version" yaml:"version"`
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand() *cobra.Command {
	opts := &MigrateOptions{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply history database migrations",
		Long: withOutputHelp(`Apply pending schema migrations to the history database and print the
resulting schema version. Every command that opens the store migrates it
automatically; this command is useful for provisioning a new postgres
database ahead of time.`, "migrate"),
		Example: `  # Migrate the default SQLite history
  bstree migrate

  # Migrate a postgres database
  bstree migrate --driver postgres --dsn "postgres://localhost/bstree"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Status, "status", false, "Only print the current schema version")

	return cmd
}

func runMigrate(cmd *cobra.Command, opts *MigrateOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	// NewCommandContext already migrated; Migrate is idempotent.
	if !opts.Status {
		if err := cmdCtx.Store.Migrate(); err != nil {
			return err
		}
	}

	version, err := cmdCtx.Store.MigrationVersion()
	if err != nil {
		return err
	}

	out := MigrateOutput{Driver: cmdCtx.Cfg.Driver, Version: version}
	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeYAML:
		return r.YAML(out)
	case output.ModeMarkdown:
		r.Println(output.FormatKeyValue("Driver", out.Driver))
		r.Println(output.FormatKeyValue("Schema Version", fmt.Sprintf("%d", out.Version)))
	default:
		r.Success(fmt.Sprintf("%s history schema at version %d", out.Driver, out.Version))
	}
	return nil
}
