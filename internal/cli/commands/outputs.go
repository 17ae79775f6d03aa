package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/bstree/internal/cli/output"
)

// ModeOutput describes what a command prints in one output mode.
type ModeOutput struct {
	Mode        output.Mode
	Description string
}

var treeOutputs = []ModeOutput{
	{output.ModeText, "Drawn tree with node count and height"},
	{output.ModeMarkdown, "Summary bullets, values by depth and the JSON tree in a code block"},
	{output.ModeJSON, "Object with id, input, balanced, nodes, height, levels and tree"},
	{output.ModeYAML, "Same fields as json"},
}

var commandOutputs = map[string][]ModeOutput{
	"build": treeOutputs,
	"show":  treeOutputs,
	"repl":  treeOutputs,
	"history": {
		{output.ModeText, "Styled table of ID, created time, input, mode and node count"},
		{output.ModeMarkdown, "The same table in markdown"},
		{output.ModeJSON, "Array of entries with id, inputText, serializedTree, balanced and createdAt"},
		{output.ModeYAML, "Same fields as json"},
	},
	"migrate": {
		{output.ModeText, "One line naming the driver and schema version"},
		{output.ModeMarkdown, "Driver and schema version bullets"},
		{output.ModeJSON, "Object with driver and version"},
		{output.ModeYAML, "Same fields as json"},
	},
}

// Outputs returns what the named command prints per --output mode, or nil for
// commands that ignore the flag.
func Outputs(name string) []ModeOutput {
	return commandOutputs[name]
}

// withOutputHelp appends the command's output modes to its long help.
func withOutputHelp(long, name string) string {
	outputs := Outputs(name)
	if len(outputs) == 0 {
		return long
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(long, "\n"))
	b.WriteString("\n\nOutput (--output; auto is text on a terminal and markdown otherwise):\n")
	for _, o := range outputs {
		fmt.Fprintf(&b, "  - %s: %s\n", o.Mode, o.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}
