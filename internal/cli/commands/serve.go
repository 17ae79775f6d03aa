package commands

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/bstree/internal/ui"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	Watch     bool
	StaticDir string
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and web UI",
		Long: `Start a web server exposing the tree builder and its history.

The server provides:
- POST /process-numbers and /process-numbers-json to build and record trees
- GET /api/previous for the history, newest first
- GET /api/previous/events for live history updates (SSE)
- The "Enter numbers" and "Previous trees" pages`,
		Example: `  # Start on the default port
  bstree serve

  # Start on a custom port with a Postgres history
  bstree serve --port 3000 --driver postgres --dsn "postgres://localhost/bstree"

  # Develop the pages with live reload
  bstree serve --static-dir internal/ui/resources/static --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8080)")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Reload pages when static files change")
	cmd.Flags().StringVar(&opts.StaticDir, "static-dir", "", "Serve pages and assets from this directory")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	// Get server config with defaults
	serverCfg := cmdCtx.Cfg.GetServerConfig()

	// CLI flags override config file
	port := serverCfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	watch := serverCfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	staticDir := serverCfg.StaticDir
	if opts.StaticDir != "" {
		staticDir = opts.StaticDir
	}

	server := ui.NewServer(ui.Config{
		Store:         cmdCtx.Store,
		Port:          port,
		Watch:         watch,
		StaticDir:     staticDir,
		SessionSecret: serverCfg.SessionSecret,
		Logger:        cmdCtx.Logger,
	})

	r := cmdCtx.Renderer
	r.Printf("Serving on http://localhost:%d\n", port)
	r.Muted(fmt.Sprintf("History: %s", describeStore(cmdCtx)))
	r.Muted("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
}

func describeStore(cmdCtx *CommandContext) string {
	if cmdCtx.Cfg.Driver == "postgres" {
		return "postgres"
	}
	return cmdCtx.Cfg.StatePath
}
