package core

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	_, cause := strconv.Atoi("two")
	err := fmt.Errorf("parse input: %w", &ParseError{Token: "two", Position: 2, Err: cause})

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "two", perr.Token)
	assert.Equal(t, 2, perr.Position)
	assert.Contains(t, err.Error(), `malformed number "two" at position 2`)
	assert.True(t, errors.Is(err, strconv.ErrSyntax))
}

func TestInputTooLongError(t *testing.T) {
	err := fmt.Errorf("build: %w", &InputTooLongError{Length: 2001, Limit: MaxInputLength})

	var lerr *InputTooLongError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, 2001, lerr.Length)
	assert.Equal(t, "build: input is 2001 characters, limit is 2000", err.Error())
}

func TestStorageError(t *testing.T) {
	cause := errors.New("disk full")
	err := &StorageError{Op: "create entry", Err: cause}

	assert.Equal(t, "storage: create entry: disk full", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestSerializationError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &SerializationError{Op: "decode", Err: cause}

	assert.Equal(t, "serialization: decode: unexpected end of JSON input", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestNode_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b *Node
		want bool
	}{
		{name: "both nil", want: true},
		{name: "nil vs node", b: &Node{Value: 1}, want: false},
		{name: "same leaf", a: &Node{Value: 1}, b: &Node{Value: 1}, want: true},
		{name: "different value", a: &Node{Value: 1}, b: &Node{Value: 2}, want: false},
		{
			name: "same shape",
			a:    &Node{Value: 2, Left: &Node{Value: 1}, Right: &Node{Value: 3}},
			b:    &Node{Value: 2, Left: &Node{Value: 1}, Right: &Node{Value: 3}},
			want: true,
		},
		{
			name: "mirrored shape",
			a:    &Node{Value: 2, Left: &Node{Value: 1}},
			b:    &Node{Value: 2, Right: &Node{Value: 1}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}
