package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode Mode
		want Mode
	}{
		{ModeAuto, ModeMarkdown},
		{"", ModeMarkdown},
		{ModeText, ModeText},
		{ModeJSON, ModeJSON},
		{ModeYAML, ModeYAML},
		{ModeMarkdown, ModeMarkdown},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, tt.mode)
			assert.False(t, r.IsTTY())
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestRenderer_PlainTextWhenNotTTY(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeText)

	r.Header(1, "Trees")
	r.Success("stored")
	r.Muted("quiet")
	r.Error("broken")

	assert.NotContains(t, out.String(), "\x1b[", "no ANSI escapes expected")
	assert.Contains(t, out.String(), "Trees\n")
	assert.Contains(t, out.String(), "✓ stored")
	assert.Contains(t, out.String(), "quiet")
	assert.Contains(t, errOut.String(), "✗ broken")
}

func TestRenderer_JSONAndYAML(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &out, ModeJSON)
	require.NoError(t, r.JSON(map[string]int{"value": 5}))
	assert.Equal(t, "{\n  \"value\": 5\n}\n", out.String())

	out.Reset()
	require.NoError(t, r.YAML(map[string]int{"value": 5}))
	assert.Equal(t, "value: 5\n", out.String())
}

func TestRenderer_Table(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &out, ModeText)
	r.Table([]string{"ID", "Input"}, [][]string{{"a", "1,2"}})
	assert.Contains(t, out.String(), "┌")
	assert.Contains(t, out.String(), "1,2")

	out.Reset()
	md := NewRenderer(&out, &out, ModeMarkdown)
	md.Table([]string{"ID", "Input"}, [][]string{{"a", "1,2"}})
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "| ID | Input |", lines[0])
	assert.Equal(t, "| a | 1,2 |", lines[2])
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "## Entry", FormatHeader(2, "Entry"))
	assert.Equal(t, "# Entry", FormatHeader(0, "Entry"))
	assert.Equal(t, "- **Nodes**: 3", FormatKeyValue("Nodes", "3"))
	assert.Equal(t, "```json\n{}\n```", FormatCodeBlock("json", "{}\n"))
}
