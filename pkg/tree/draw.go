package tree

import (
	"strconv"
	"strings"
)

// Draw renders the tree as indented text with box-drawing connectors.
// The left child is listed before the right child and absent children of a
// node with one child are shown as "L: -" or "R: -".
func Draw(root *Node) string {
	if root == nil {
		return "(empty)\n"
	}

	var b strings.Builder
	b.WriteString(strconv.Itoa(root.Value))
	b.WriteByte('\n')
	drawChildren(&b, root, "")
	return b.String()
}

func drawChildren(b *strings.Builder, n *Node, prefix string) {
	if n.Left == nil && n.Right == nil {
		return
	}
	drawBranch(b, n.Left, "L", prefix, false)
	drawBranch(b, n.Right, "R", prefix, true)
}

func drawBranch(b *strings.Builder, n *Node, side, prefix string, last bool) {
	connector, indent := "├── ", "│   "
	if last {
		connector, indent = "└── ", "    "
	}

	b.WriteString(prefix)
	b.WriteString(connector)
	b.WriteString(side)
	b.WriteString(": ")
	if n == nil {
		b.WriteString("-\n")
		return
	}
	b.WriteString(strconv.Itoa(n.Value))
	b.WriteByte('\n')
	drawChildren(b, n, prefix+indent)
}
