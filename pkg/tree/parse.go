package tree

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/bstree/pkg/core"
)

// isSeparator reports whether r delimits numbers: a comma, a semicolon or ASCII
// whitespace. Unicode spaces such as U+00A0 are not separators.
func isSeparator(r rune) bool {
	switch r {
	case ',', ';', ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Parse turns a delimited string into integers in order of appearance.
// Blank input yields an empty slice. A token that is not an integer fails the
// whole call with a *core.ParseError.
func Parse(raw string) ([]int, error) {
	tokens := strings.FieldsFunc(raw, isSeparator)
	out := make([]int, 0, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, &core.ParseError{Token: tok, Position: i + 1, Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}
