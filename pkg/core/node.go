package core

// Node is the externally visible form of a tree node. It is used for API
// responses and for the stored snapshot. Left and Right are always emitted
// in JSON and are null when absent.
type Node struct {
	Value int   `json:"value" yaml:"value"`
	Left  *Node `json:"left" yaml:"left"`
	Right *Node `json:"right" yaml:"right"`
}

// Equal reports whether n and other describe the same tree shape and values.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == nil && other == nil
	}
	return n.Value == other.Value && n.Left.Equal(other.Left) && n.Right.Equal(other.Right)
}
