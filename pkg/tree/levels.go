package tree

// Levels returns the tree's values grouped by depth, breadth first and left to
// right within a depth. Only present nodes are listed, so the result holds
// exactly Size(root) values across Height(root) levels. The empty tree has no
// levels.
func Levels(root *Node) [][]int {
	if root == nil {
		return nil
	}

	var out [][]int
	queue := []*Node{root}
	for len(queue) > 0 {
		row := make([]int, 0, len(queue))
		var next []*Node
		for _, n := range queue {
			row = append(row, n.Value)
			if n.Left != nil {
				next = append(next, n.Left)
			}
			if n.Right != nil {
				next = append(next, n.Right)
			}
		}
		out = append(out, row)
		queue = next
	}
	return out
}
