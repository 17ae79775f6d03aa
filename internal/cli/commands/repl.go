package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/bstree/pkg/tree"
	"github.com/spf13/cobra"
)

const (
	replPrompt         = "bstree> "
	replBalancedPrompt = "bstree[balanced]> "
)

// DotCommand is a REPL command line starting with a dot.
type DotCommand struct {
	Name        string
	Args        string
	Description string
}

// DotCommands lists the REPL dot-commands in help order.
func DotCommands() []DotCommand {
	return []DotCommand{
		{Name: ".balanced", Description: "Toggle balanced mode"},
		{Name: ".history", Description: "List the ten most recent entries"},
		{Name: ".show", Args: "<id>", Description: "Draw a stored tree"},
		{Name: ".help", Description: "Show this help"},
		{Name: ".quit", Description: "Exit (also .exit or Ctrl-D)"},
	}
}

// replHelp formats DotCommands for the .help command.
func replHelp() string {
	var b strings.Builder
	b.WriteString("Dot-commands:\n")
	for _, dc := range DotCommands() {
		usage := strings.TrimSpace(dc.Name + " " + dc.Args)
		fmt.Fprintf(&b, "  %-12s %s\n", usage, dc.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Build trees interactively",
		Long: withOutputHelp(`Start an interactive prompt. Each line of numbers is built into a tree,
drawn and recorded in history.

`+replHelp(), "repl"),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}

	return cmd
}

func runREPL(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	// Setup history file (next to the SQLite history)
	historyFile := ""
	if cmdCtx.Cfg.Driver != "postgres" && cmdCtx.Cfg.StatePath != ":memory:" {
		historyFile = filepath.Join(filepath.Dir(cmdCtx.Cfg.StatePath), "repl_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    readline.NewPrefixCompleter(replCompletions()...),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	session := &replSession{cmd: cmd, cmdCtx: cmdCtx}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "bstree REPL. Type .help for commands, .quit to exit")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := session.dotCommand(line); quit {
				break
			}
			if session.balanced {
				rl.SetPrompt(replBalancedPrompt)
			} else {
				rl.SetPrompt(replPrompt)
			}
			continue
		}

		if err := session.build(line); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}

	return nil
}

func replCompletions() []readline.PrefixCompleterInterface {
	dots := DotCommands()
	items := make([]readline.PrefixCompleterInterface, 0, len(dots))
	for _, dc := range dots {
		items = append(items, readline.PcItem(dc.Name))
	}
	return items
}

// replSession carries REPL state between lines.
type replSession struct {
	cmd      *cobra.Command
	cmdCtx   *CommandContext
	balanced bool
}

func (s *replSession) build(line string) error {
	entry, node, err := s.cmdCtx.Service.BuildAndRecord(s.cmd.Context(), line, s.balanced)
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
	return renderTree(s.cmdCtx.Renderer, "Tree", out, root)
}

// dotCommand runs a dot-command and reports whether the REPL should exit.
func (s *replSession) dotCommand(line string) bool {
	out := s.cmd.OutOrStdout()
	errOut := s.cmd.ErrOrStderr()
	parts := strings.Fields(line)

	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		_, _ = fmt.Fprintln(out, replHelp())

	case ".balanced":
		s.balanced = !s.balanced
		_, _ = fmt.Fprintf(out, "balanced mode %s\n", onOff(s.balanced))

	case ".history":
		entries, err := s.cmdCtx.Service.ListRecent(s.cmd.Context(), 10)
		if err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
			return false
		}
		historyTable(s.cmdCtx.Renderer, entries)

	case ".show":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(errOut, "Usage: .show <id>")
			return false
		}
		if err := showEntry(s.cmd.Context(), s.cmdCtx, parts[1]); err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		}

	default:
		_, _ = fmt.Fprintf(errOut, "Unknown command: %s (try .help)\n", parts[0])
	}
	return false
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
