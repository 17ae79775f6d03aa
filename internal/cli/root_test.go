package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/bstree/internal/cli/commands"
	"github.com/leapstack-labs/bstree/internal/cli/config"
	"github.com/leapstack-labs/bstree/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command with args against a fresh config.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func statePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "history.db")
}

func TestRoot_BuildWithoutSave(t *testing.T) {
	out, _, err := runCLI(t, "", "build", "--state", statePath(t), "-o", "json", "5,3,8")
	require.NoError(t, err)

	var got commands.BuildOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Empty(t, got.ID)
	assert.Equal(t, 3, got.Nodes)
	assert.Equal(t, 2, got.Height)
	require.NotNil(t, got.Tree)
	assert.Equal(t, 5, got.Tree.Value)
	assert.Equal(t, 3, got.Tree.Left.Value)
	assert.Equal(t, 8, got.Tree.Right.Value)
	assert.Equal(t, [][]int{{5}, {3, 8}}, got.Levels)
}

func TestRoot_BuildReadsStdin(t *testing.T) {
	out, _, err := runCLI(t, "1 2 3 4 5\n", "build", "--balanced", "--state", statePath(t), "-o", "json")
	require.NoError(t, err)

	var got commands.BuildOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "1 2 3 4 5", got.Input)
	assert.True(t, got.Balanced)
	assert.Equal(t, 3, got.Tree.Value)
	assert.Equal(t, 3, got.Height)
}

func TestRoot_BuildRejectsBadInput(t *testing.T) {
	_, _, err := runCLI(t, "", "build", "--state", statePath(t), "1,x,3")
	require.Error(t, err)
}

func TestRoot_SaveHistoryShow(t *testing.T) {
	state := statePath(t)

	out, _, err := runCLI(t, "", "build", "--save", "--state", state, "-o", "json", "7", "3", "9")
	require.NoError(t, err)
	var first commands.BuildOutput
	require.NoError(t, json.Unmarshal([]byte(out), &first))
	require.NotEmpty(t, first.ID)

	_, _, err = runCLI(t, "", "build", "--save", "--balanced", "--state", state, "-o", "json", "1,2,3")
	require.NoError(t, err)

	out, _, err = runCLI(t, "", "history", "--state", state, "-o", "json")
	require.NoError(t, err)
	var entries []*core.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "1,2,3 [balanced]", entries[0].InputText)
	assert.True(t, entries[0].Balanced)
	assert.Equal(t, first.ID, entries[1].ID)
	assert.JSONEq(t,
		`{"value":7,"left":{"value":3,"left":null,"right":null},"right":{"value":9,"left":null,"right":null}}`,
		entries[1].SerializedTree)

	out, _, err = runCLI(t, "", "history", "--limit", "1", "--state", state, "-o", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Len(t, entries, 1)

	out, _, err = runCLI(t, "", "show", first.ID, "--state", state, "-o", "json")
	require.NoError(t, err)
	var shown commands.BuildOutput
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, first.ID, shown.ID)
	assert.Equal(t, "7 3 9", shown.Input)
	assert.Equal(t, 3, shown.Nodes)
}

func TestRoot_HistoryMarkdown(t *testing.T) {
	state := statePath(t)
	_, _, err := runCLI(t, "", "build", "--save", "--state", state, "-o", "json", "4,2")
	require.NoError(t, err)

	out, _, err := runCLI(t, "", "history", "--state", state, "-o", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# History (1 entries)")
	assert.Contains(t, out, "| ID")
	assert.Contains(t, out, "Insertion Order")
	assert.Contains(t, out, "4,2")
}

func TestRoot_HistoryRejectsNegativeLimit(t *testing.T) {
	_, _, err := runCLI(t, "", "history", "--limit", "-1", "--state", statePath(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--limit")
}

func TestRoot_ShowUnknownID(t *testing.T) {
	_, _, err := runCLI(t, "", "show", "does-not-exist", "--state", statePath(t))
	require.Error(t, err)
}

func TestRoot_Migrate(t *testing.T) {
	out, _, err := runCLI(t, "", "migrate", "--state", statePath(t), "-o", "json")
	require.NoError(t, err)

	var got commands.MigrateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "sqlite", got.Driver)
	assert.Positive(t, got.Version)
}

func TestRoot_InvalidOutputFormat(t *testing.T) {
	_, _, err := runCLI(t, "", "history", "--state", statePath(t), "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRoot_Completion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, _, err := runCLI(t, "", "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "bstree")
		})
	}
}

func TestRoot_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	names := make(map[string]bool)
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"version", "build", "history", "show", "serve", "migrate", "repl", "completion"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestGetConfig_Defaults(t *testing.T) {
	cfg := GetConfig(context.Background())
	assert.Equal(t, config.DefaultDriver, cfg.Driver)
	assert.Equal(t, config.DefaultStateFile, cfg.StatePath)
}
