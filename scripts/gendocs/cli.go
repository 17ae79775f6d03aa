package main

import (
	"fmt"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/leapstack-labs/bstree/internal/cli"
	"github.com/leapstack-labs/bstree/internal/cli/commands"
	clicfg "github.com/leapstack-labs/bstree/internal/cli/config"
	"github.com/leapstack-labs/bstree/internal/cli/output"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var modeDescriptions = map[string]string{
	"auto":     "`text` on a terminal, `markdown` when piped",
	"text":     "Styled output for people: drawn trees, tables and status lines",
	"json":     "The command's result struct as indented JSON",
	"yaml":     "The command's result struct as YAML",
	"markdown": "Headings, bullets and tables for agents and scripts",
}

// Sections of Long that get their own page section instead of the intro.
var longSectionMarkers = []string{"\n\nDot-commands:", "\n\nOutput (--output"}

const quickStart = `# Build a tree and record it
bstree build --save 5,3,8,1,4

# List what was recorded, newest first
bstree history --limit 5

# Draw a recorded tree again, as JSON this time
bstree show <id> -o json

# Keep building at an interactive prompt
bstree repl`

// commandDoc is everything one command page needs.
type commandDoc struct {
	cmd     *cobra.Command
	outputs []commands.ModeOutput
	related []string
}

// generateCLIDocs writes index.md and one page per visible command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	docs := collectCommands(root)

	pages := map[string][]byte{"index.md": renderCLIIndex(root, docs)}
	for _, d := range docs {
		pages[d.cmd.Name()+".md"] = renderCommandPage(d)
	}

	for _, name := range slices.Sorted(maps.Keys(pages)) {
		if err := os.WriteFile(filepath.Join(outDir, name), pages[name], 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

func collectCommands(root *cobra.Command) []commandDoc {
	var visible []*cobra.Command
	var names []string
	for _, c := range root.Commands() {
		if !c.IsAvailableCommand() || c.Name() == "help" {
			continue
		}
		visible = append(visible, c)
		names = append(names, c.Name())
	}

	docs := make([]commandDoc, 0, len(visible))
	for _, c := range visible {
		docs = append(docs, commandDoc{
			cmd:     c,
			outputs: commands.Outputs(c.Name()),
			related: relatedCommands(c, names),
		})
	}
	return docs
}

// relatedCommands returns the other commands that cmd's help text invokes.
func relatedCommands(cmd *cobra.Command, names []string) []string {
	text := cmd.Long + "\n" + cmd.Example
	var out []string
	for _, name := range names {
		if name != cmd.Name() && strings.Contains(text, "bstree "+name) {
			out = append(out, name)
		}
	}
	return out
}

func renderCLIIndex(root *cobra.Command, docs []commandDoc) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for bstree")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph(root.Long)
	w.CodeBlock("bash", "go install github.com/leapstack-labs/bstree/cmd/bstree@latest")

	w.Header(2, "Quick Start")
	w.CodeBlock("bash", quickStart)

	w.Header(2, "Commands")
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		modes := "-"
		if len(d.outputs) > 0 {
			var names []string
			for _, o := range d.outputs {
				names = append(names, InlineCode(string(o.Mode)))
			}
			modes = strings.Join(names, " ")
		}
		rows = append(rows, []string{commandLink(d.cmd.Name()), cleanDescription(d.cmd.Short), modes})
	}
	w.Table([]string{"Command", "Description", "Output modes"}, rows)

	w.Header(2, "Output Modes")
	w.Paragraph("Commands that print results honour `--output` (`-o`). The default is `auto`.")
	var modeRows [][]string
	for _, m := range output.Modes() {
		desc, ok := modeDescriptions[m]
		if !ok {
			log.Printf("  WARNING: no description for output mode %s", m)
		}
		modeRows = append(modeRows, []string{InlineCode(m), desc})
	}
	w.Table([]string{"Mode", "Description"}, modeRows)

	w.Header(2, "Global Options")
	w.Table(flagHeaders, flagRows(root.PersistentFlags()))

	w.Header(2, "Environment Variables")
	w.Paragraph(fmt.Sprintf("Every configuration key can be set with a `%s` variable; nested keys join with a double underscore. "+
		"Flags override variables, and variables override the config file.", clicfg.EnvPrefix))
	var envRows [][]string
	for _, f := range getConfigSchema() {
		envRows = append(envRows, []string{InlineCode(envVarName(f.Key)), InlineCode(f.Key), cleanDescription(f.Description)})
	}
	w.Table([]string{"Variable", "Key", "Description"}, envRows)

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Any failure, including malformed numbers; details go to stderr"},
	})

	return w.Bytes()
}

func renderCommandPage(d commandDoc) []byte {
	cmd := d.cmd
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	intro := longIntro(cmd.Long)
	if intro == "" {
		intro = cmd.Short
	}
	w.Paragraph(intro)

	w.Header(2, "Usage")
	use := cmd.UseLine()
	if cmd.HasAvailableSubCommands() {
		use = cmd.CommandPath() + " <subcommand> [flags]"
	}
	w.CodeBlock("bash", use)

	if len(cmd.Aliases) > 0 {
		aliases := make([]string, len(cmd.Aliases))
		for i, a := range cmd.Aliases {
			aliases[i] = InlineCode(a)
		}
		w.Paragraph("Aliases: " + strings.Join(aliases, ", "))
	}

	if cmd.HasAvailableSubCommands() {
		w.Header(2, "Subcommands")
		var rows [][]string
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() {
				rows = append(rows, []string{InlineCode(sub.Name()), cleanDescription(sub.Short)})
			}
		}
		w.Table([]string{"Subcommand", "Description"}, rows)
	}

	if cmd.HasAvailableLocalFlags() {
		w.Header(2, "Options")
		w.Table(flagHeaders, flagRows(cmd.LocalFlags()))
	}
	if cmd.HasAvailableInheritedFlags() {
		w.Header(2, "Global Options")
		w.Table(flagHeaders, flagRows(cmd.InheritedFlags()))
	}

	if len(d.outputs) > 0 {
		w.Header(2, "Output")
		w.Paragraph("Select with `--output`; `auto` is `text` on a terminal and `markdown` otherwise.")
		rows := make([][]string, 0, len(d.outputs))
		for _, o := range d.outputs {
			rows = append(rows, []string{InlineCode(string(o.Mode)), o.Description})
		}
		w.Table([]string{"Mode", "Prints"}, rows)
	}

	if cmd.Name() == "repl" {
		w.Header(2, "Dot-commands")
		w.Paragraph("Lines starting with a dot control the session; every other line is built into a tree.")
		var rows [][]string
		for _, dc := range commands.DotCommands() {
			rows = append(rows, []string{InlineCode(strings.TrimSpace(dc.Name + " " + dc.Args)), dc.Description})
		}
		w.Table([]string{"Command", "Description"}, rows)
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", dedent(cmd.Example))
	}

	if len(d.related) > 0 {
		w.Header(2, "See Also")
		links := make([]string, len(d.related))
		for i, name := range d.related {
			links[i] = commandLink(name)
		}
		w.BulletList(links)
	}

	return w.Bytes()
}

var flagHeaders = []string{"Flag", "Type", "Default", "Description"}

func flagRows(flags *pflag.FlagSet) [][]string {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := "--" + f.Name
		if f.Shorthand != "" {
			name = "-" + f.Shorthand + ", " + name
		}
		def := "-"
		if f.DefValue != "" {
			def = InlineCode(f.DefValue)
		}
		rows = append(rows, []string{InlineCode(name), f.Value.Type(), def, cleanDescription(f.Usage)})
	})
	return rows
}

func commandLink(name string) string {
	return fmt.Sprintf("[%s](/cli/%s)", InlineCode("bstree "+name), name)
}

// envVarName maps a config key to its environment variable.
func envVarName(key string) string {
	return clicfg.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "__"))
}

// longIntro returns the part of a command's long help before the sections
// that are rendered as tables.
func longIntro(long string) string {
	for _, marker := range longSectionMarkers {
		if i := strings.Index(long, marker); i >= 0 {
			long = long[:i]
		}
	}
	return strings.TrimSpace(long)
}

// dedent strips the indentation shared by every non-blank line.
func dedent(s string) string {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")

	var prefix string
	seen := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !seen {
			prefix, seen = indent, true
			continue
		}
		for !strings.HasPrefix(indent, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}
