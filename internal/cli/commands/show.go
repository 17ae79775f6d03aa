package commands

import (
	"context"

	"github.com/leapstack-labs/bstree/internal/service"
	"github.com/leapstack-labs/bstree/pkg/tree"
	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored tree",
		Long: withOutputHelp(`Show one history entry and the tree it recorded.

The entry ID is printed by 'bstree build --save' and listed by
'bstree history'.`, "show"),
		Example: `  # Draw a stored tree
  bstree show 0193a4c2-8f1e-7d3b-9a51-2f6c1e0d4b7a

  # Print it as JSON
  bstree show 0193a4c2-8f1e-7d3b-9a51-2f6c1e0d4b7a -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0])
		},
	}

	return cmd
}

func runShow(cmd *cobra.Command, id string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	return showEntry(cmd.Context(), cmdCtx, id)
}

// showEntry loads one entry and renders its tree.
func showEntry(ctx context.Context, cmdCtx *CommandContext, id string) error {
	entry, err := cmdCtx.Service.GetEntry(ctx, id)
	if err != nil {
		return err
	}

	node, err := service.DecodeEntry(entry)
	if err != nil {
		return err
	}

	root := tree.FromSerializable(node)
	out := &BuildOutput{
		ID:       entry.ID,
		Input:    entry.InputText,
		Balanced: entry.Balanced,
		Nodes:    tree.Size(root),
		Height:   tree.Height(root),
		Tree:     node,
	}
	return renderTree(cmdCtx.Renderer, "Entry "+entry.ID, out, root)
}
