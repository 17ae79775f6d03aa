package tree

import "slices"

// BuildInsertionOrder inserts values into an empty tree in input order.
// A value less than or equal to a node's value goes to its left subtree, so
// runs of equal values form a left chain. No rebalancing is performed.
func BuildInsertionOrder(values []int) *Tree {
	t := &Tree{}
	for _, v := range values {
		t.Root = insert(t.Root, v)
	}
	return t
}

func insert(n *Node, value int) *Node {
	if n == nil {
		return &Node{Value: value}
	}
	if value <= n.Value {
		n.Left = insert(n.Left, value)
	} else {
		n.Right = insert(n.Right, value)
	}
	return n
}

// BuildBalanced builds a minimal-height tree from distinct ascending values.
// Each subtree root is sorted[(lo+hi)/2], the lower middle for even ranges.
// Use DistinctSorted to prepare arbitrary input.
func BuildBalanced(sorted []int) *Tree {
	return &Tree{Root: buildRange(sorted, 0, len(sorted)-1)}
}

func buildRange(a []int, lo, hi int) *Node {
	if lo > hi {
		return nil
	}
	mid := (lo + hi) / 2
	return &Node{
		Value: a[mid],
		Left:  buildRange(a, lo, mid-1),
		Right: buildRange(a, mid+1, hi),
	}
}

// DistinctSorted returns the distinct values in ascending order.
// The input slice is not modified.
func DistinctSorted(values []int) []int {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}
