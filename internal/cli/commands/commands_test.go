package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leapstack-labs/bstree/internal/cli/config"
	"github.com/leapstack-labs/bstree/internal/cli/output"
	"github.com/leapstack-labs/bstree/pkg/core"
	"github.com/leapstack-labs/bstree/pkg/tree"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuildCommand(t *testing.T) {
	cmd := NewBuildCommand()

	assert.Equal(t, "build [numbers...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"balanced", "save"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, "b", cmd.Flags().Lookup("balanced").Shorthand)
}

func TestNewHistoryCommand(t *testing.T) {
	cmd := NewHistoryCommand()

	assert.Equal(t, "history", cmd.Use)
	assert.Contains(t, cmd.Aliases, "ls")
	assert.NotNil(t, cmd.Flags().Lookup("limit"))
}

func TestNewShowCommand(t *testing.T) {
	cmd := NewShowCommand()

	assert.Equal(t, "show <id>", cmd.Use)
	assert.Error(t, cmd.Args(cmd, nil), "show requires an id")
	assert.NoError(t, cmd.Args(cmd, []string{"abc"}))
}

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve", cmd.Use)
	for _, flag := range []string{"port", "watch", "static-dir"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewMigrateCommand(t *testing.T) {
	cmd := NewMigrateCommand()

	assert.Equal(t, "migrate", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("status"))
}

func TestBuildInput(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("  4 5 6\n"))

	got, err := buildInput(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, "4 5 6", got)

	got, err = buildInput(cmd, []string{"1,2", "3"})
	require.NoError(t, err)
	assert.Equal(t, "1,2 3", got)
}

func TestEntryMode(t *testing.T) {
	assert.Equal(t, "Balanced", entryMode(&core.HistoryEntry{Balanced: true}))
	assert.Equal(t, "Insertion Order", entryMode(&core.HistoryEntry{}))
}

func TestEntryNodes(t *testing.T) {
	e := &core.HistoryEntry{SerializedTree: `{"value":2,"left":{"value":1,"left":null,"right":null},"right":null}`}
	assert.Equal(t, "2", entryNodes(e))

	assert.Equal(t, "0", entryNodes(&core.HistoryEntry{SerializedTree: "null"}))
	assert.Equal(t, "?", entryNodes(&core.HistoryEntry{SerializedTree: "{"}))
}

func TestRenderTree_Text(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, &buf, output.ModeText)
	node := &core.Node{Value: 5, Left: &core.Node{Value: 3}}
	out := &BuildOutput{ID: "abc", Input: "5 3", Nodes: 2, Height: 2, Tree: node}

	require.NoError(t, renderTree(r, "Tree", out, tree.FromSerializable(node)))
	assert.Contains(t, buf.String(), "5")
	assert.Contains(t, buf.String(), "2 nodes, height 2")
	assert.Contains(t, buf.String(), "Saved as abc")
}

func TestRenderTree_Markdown(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, &buf, output.ModeMarkdown)
	node := &core.Node{Value: 1}
	out := &BuildOutput{Input: "1", Nodes: 1, Height: 1, Tree: node}

	require.NoError(t, renderTree(r, "Tree", out, tree.FromSerializable(node)))
	assert.Contains(t, buf.String(), "# Tree")
	assert.Contains(t, buf.String(), "```json")
	assert.Contains(t, buf.String(), `{"value":1,"left":null,"right":null}`)
	assert.NotContains(t, buf.String(), "**ID**")
	assert.Contains(t, buf.String(), "## Levels")
	assert.Contains(t, buf.String(), "- **Depth 0**: 1")
}

func TestRenderTree_LevelsForDegenerateChain(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, &buf, output.ModeJSON)

	values := make([]int, 64)
	for i := range values {
		values[i] = i
	}
	root := tree.BuildInsertionOrder(values).Root
	out := &BuildOutput{Input: "0..63", Nodes: tree.Size(root), Height: tree.Height(root), Tree: tree.ToSerializable(root)}

	require.NoError(t, renderTree(r, "Tree", out, root))
	require.Len(t, out.Levels, 64)
	assert.Equal(t, []int{63}, out.Levels[63])
	assert.Contains(t, buf.String(), `"levels"`)
}

func TestRenderTree_EmptyTreeHasNoLevels(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, &buf, output.ModeMarkdown)
	out := &BuildOutput{Input: ""}

	require.NoError(t, renderTree(r, "Tree", out, nil))
	assert.Empty(t, out.Levels)
	assert.NotContains(t, buf.String(), "## Levels")
	assert.Contains(t, buf.String(), "null")
}

func TestGetConfig_FallsBackToDefaults(t *testing.T) {
	config.ResetConfig()
	t.Setenv("BSTREE_STATE_PATH", "")
	t.Setenv("BSTREE_DRIVER", "")

	cfg := getConfig()
	assert.Equal(t, config.DefaultStateFile, cfg.StatePath)
	assert.Equal(t, config.DefaultDriver, cfg.Driver)
}

func TestOnOff(t *testing.T) {
	assert.Equal(t, "on", onOff(true))
	assert.Equal(t, "off", onOff(false))
}

func TestDotCommands(t *testing.T) {
	help := replHelp()
	for _, dc := range DotCommands() {
		assert.Contains(t, help, dc.Name)
		assert.NotEmpty(t, dc.Description, "%s has no description", dc.Name)
	}
	assert.Contains(t, help, ".show <id>")
	assert.Len(t, replCompletions(), len(DotCommands()))
	assert.Contains(t, NewREPLCommand().Long, ".balanced")
}

func TestREPLSession_DotCommands(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	s := &replSession{cmd: cmd}

	assert.False(t, s.dotCommand(".help"))
	assert.Contains(t, out.String(), "Dot-commands:")

	assert.False(t, s.dotCommand(".balanced"))
	assert.True(t, s.balanced)
	assert.Contains(t, out.String(), "balanced mode on")

	assert.False(t, s.dotCommand(".show"))
	assert.Contains(t, errOut.String(), "Usage: .show <id>")

	assert.False(t, s.dotCommand(".nope"))
	assert.Contains(t, errOut.String(), "Unknown command: .nope")

	assert.True(t, s.dotCommand(".exit"))
}

func TestOutputs(t *testing.T) {
	valid := map[string]bool{}
	for _, m := range output.Modes() {
		valid[m] = true
	}

	for _, name := range []string{"build", "show", "repl", "history", "migrate"} {
		outputs := Outputs(name)
		require.NotEmpty(t, outputs, "%s should document its output", name)
		for _, o := range outputs {
			assert.True(t, valid[string(o.Mode)], "%s: unknown mode %q", name, o.Mode)
			assert.NotEqual(t, output.ModeAuto, o.Mode)
		}
	}
	assert.Nil(t, Outputs("serve"))

	long := NewBuildCommand().Long
	assert.Contains(t, long, "Output (--output")
	assert.Contains(t, long, "  - json: Object with id, input, balanced, nodes, height, levels and tree")
	assert.Equal(t, "plain", withOutputHelp("plain", "serve"))
}
