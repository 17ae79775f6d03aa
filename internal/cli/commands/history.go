package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/leapstack-labs/bstree/internal/cli/output"
	"github.com/leapstack-labs/bstree/internal/service"
	"github.com/leapstack-labs/bstree/pkg/core"
	"github.com/leapstack-labs/bstree/pkg/tree"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"ls"},
		Short:   "List previously built trees, newest first",
		Long: withOutputHelp(`List history entries, most recent first.

Use --output json or --output yaml for the full entries including the
serialized trees.`, "history"),
		Example: `  # Show all entries
  bstree history

  # Show the ten most recent entries as JSON
  bstree history --limit 10 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Maximum number of entries (0 for all)")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	if opts.Limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := cmdCtx.Service.ListRecent(cmd.Context(), opts.Limit)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(entries)
	case output.ModeYAML:
		return r.YAML(entries)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("History (%d entries)", len(entries))))
		r.Println("")
		historyTable(r, entries)
	default:
		r.Header(1, fmt.Sprintf("History (%d entries)", len(entries)))
		if len(entries) == 0 {
			r.Muted("No trees recorded yet")
			return nil
		}
		historyTable(r, entries)
	}
	return nil
}

func historyTable(r *output.Renderer, entries []*core.HistoryEntry) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID,
			e.CreatedAt.Local().Format(time.DateTime),
			e.InputText,
			entryMode(e),
			entryNodes(e),
		})
	}
	r.Table([]string{"ID", "Created", "Input", "Mode", "Nodes"}, rows)
}

// entryMode names the build strategy of an entry.
func entryMode(e *core.HistoryEntry) string {
	mode := "insertion order"
	if e.Balanced {
		mode = "balanced"
	}
	return cases.Title(language.English).String(mode)
}

// entryNodes returns the node count of a stored tree, or "?" when the
// snapshot cannot be decoded.
func entryNodes(e *core.HistoryEntry) string {
	node, err := service.DecodeEntry(e)
	if err != nil {
		return "?"
	}
	return strconv.Itoa(tree.Size(tree.FromSerializable(node)))
}
