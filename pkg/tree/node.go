package tree

// Node is a binary tree node. Each node owns its children exclusively.
type Node struct {
	Value int
	Left  *Node
	Right *Node
}

// Tree holds an optional root. A nil Root is the empty tree.
type Tree struct {
	Root *Node
}

// Size returns the number of nodes under n.
func Size(n *Node) int {
	if n == nil {
		return 0
	}
	return 1 + Size(n.Left) + Size(n.Right)
}

// Height returns the number of levels under n; the empty tree has height 0.
func Height(n *Node) int {
	if n == nil {
		return 0
	}
	return 1 + max(Height(n.Left), Height(n.Right))
}
