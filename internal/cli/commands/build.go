package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/leapstack-labs/bstree/internal/cli/output"
	"github.com/leapstack-labs/bstree/internal/service"
	"github.com/leapstack-labs/bstree/pkg/core"
	"github.com/leapstack-labs/bstree/pkg/tree"
	"github.com/spf13/cobra"
)

// BuildOptions holds options for the build command.
type BuildOptions struct {
	Balanced bool
	Save     bool
}

// BuildOutput is the machine-readable result of the build command.
type BuildOutput struct {
	ID       string     `json:"id,omitempty" yaml:"id,omitempty"`
	Input    string     `json:"input" yaml:"input"`
	Balanced bool       `json:"balanced" yaml:"balanced"`
	Nodes    int        `json:"nodes" yaml:"nodes"`
	Height   int        `json:"height" yaml:"height"`
	Levels   [][]int    `json:"levels" yaml:"levels"`
	Tree     *core.Node `json:"tree" yaml:"tree"`
}

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	opts := &BuildOptions{}

	cmd := &cobra.Command{
		Use:   "build [numbers...]",
		Short: "Build a binary search tree from a list of integers",
		Long: withOutputHelp(`Build a binary search tree from integers separated by commas, semicolons
or whitespace. Without arguments the numbers are read from stdin.

By default values are inserted in input order and duplicates go left.
With --balanced the distinct values are sorted and the tree is built
around the lower middle element.`, "build"),
		Example: `  # Build and print a tree
  bstree build 5,3,8,1,4

  # Build a balanced tree and record it in history
  bstree build --balanced --save "7 3 9 1"

  # Read numbers from a file
  bstree build -o json < numbers.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Balanced, "balanced", "b", false, "Build a balanced tree from the distinct sorted values")
	cmd.Flags().BoolVarP(&opts.Save, "save", "s", false, "Record the tree in history")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string, opts *BuildOptions) error {
	raw, err := buildInput(cmd, args)
	if err != nil {
		return err
	}

	out := &BuildOutput{Input: raw, Balanced: opts.Balanced}
	var r *output.Renderer

	if opts.Save {
		cmdCtx, cleanup, err := NewCommandContext(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		entry, node, err := cmdCtx.Service.BuildAndRecord(cmd.Context(), raw, opts.Balanced)
		if err != nil {
			return err
		}
		out.ID = entry.ID
		out.Tree = node
		r = cmdCtx.Renderer
	} else {
		cmdCtx := NewCommandContextWithoutStore(cmd)
		node, err := service.New(nil, cmdCtx.Logger).Build(raw, opts.Balanced)
		if err != nil {
			return err
		}
		out.Tree = node
		r = cmdCtx.Renderer
	}

	root := tree.FromSerializable(out.Tree)
	out.Nodes = tree.Size(root)
	out.Height = tree.Height(root)

	return renderTree(r, "Tree", out, root)
}

// buildInput joins the arguments, or reads stdin when there are none.
func buildInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// renderTree writes a tree result in the renderer's mode. It fills out.Levels
// from root.
func renderTree(r *output.Renderer, title string, out *BuildOutput, root *tree.Node) error {
	out.Levels = tree.Levels(root)
	if out.Levels == nil {
		out.Levels = [][]int{}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeYAML:
		return r.YAML(out)
	case output.ModeMarkdown:
		encoded, err := tree.Encode(out.Tree)
		if err != nil {
			return err
		}
		r.Println(output.FormatHeader(1, title))
		r.Println("")
		if out.ID != "" {
			r.Println(output.FormatKeyValue("ID", out.ID))
		}
		r.Println(output.FormatKeyValue("Input", out.Input))
		r.Println(output.FormatKeyValue("Balanced", fmt.Sprintf("%t", out.Balanced)))
		r.Println(output.FormatKeyValue("Nodes", fmt.Sprintf("%d", out.Nodes)))
		r.Println(output.FormatKeyValue("Height", fmt.Sprintf("%d", out.Height)))
		r.Println("")
		if len(out.Levels) > 0 {
			r.Println(output.FormatHeader(2, "Levels"))
			r.Println("")
			for depth, level := range out.Levels {
				r.Println(output.FormatKeyValue(fmt.Sprintf("Depth %d", depth), joinInts(level)))
			}
			r.Println("")
		}
		r.Println(output.FormatCodeBlock("json", encoded))
	default:
		styles := r.Styles()
		r.Printf("%s", tree.Draw(root))
		r.Println("")
		r.Println(styles.Muted.Render(fmt.Sprintf("%d nodes, height %d", out.Nodes, out.Height)))
		if out.ID != "" {
			r.Success("Saved as " + styles.ID.Render(out.ID))
		}
	}
	return nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
