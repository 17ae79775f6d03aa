package tree

import (
	"encoding/json"

	"github.com/leapstack-labs/bstree/pkg/core"
)

// ToSerializable mirrors n node for node. A nil node maps to nil.
func ToSerializable(n *Node) *core.Node {
	if n == nil {
		return nil
	}
	return &core.Node{
		Value: n.Value,
		Left:  ToSerializable(n.Left),
		Right: ToSerializable(n.Right),
	}
}

// FromSerializable is the inverse of ToSerializable.
func FromSerializable(n *core.Node) *Node {
	if n == nil {
		return nil
	}
	return &Node{
		Value: n.Value,
		Left:  FromSerializable(n.Left),
		Right: FromSerializable(n.Right),
	}
}

// Encode renders a serialized tree as JSON text. The empty tree is "null".
func Encode(n *core.Node) (string, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return "", &core.SerializationError{Op: "encode", Err: err}
	}
	return string(b), nil
}

// Decode parses text produced by Encode.
func Decode(text string) (*core.Node, error) {
	var n *core.Node
	if err := json.Unmarshal([]byte(text), &n); err != nil {
		return nil, &core.SerializationError{Op: "decode", Err: err}
	}
	return n, nil
}
