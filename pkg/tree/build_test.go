package tree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inorder collects values left-node-right.
func inorder(n *Node, out []int) []int {
	if n == nil {
		return out
	}
	out = inorder(n.Left, out)
	out = append(out, n.Value)
	return inorder(n.Right, out)
}

// checkInsertionOrder verifies left <= node < right for every node.
func checkInsertionOrder(t *testing.T, n *Node, lo, hi *int) {
	t.Helper()
	if n == nil {
		return
	}
	if lo != nil {
		assert.Greater(t, n.Value, *lo)
	}
	if hi != nil {
		assert.LessOrEqual(t, n.Value, *hi)
	}
	v := n.Value
	checkInsertionOrder(t, n.Left, lo, &v)
	checkInsertionOrder(t, n.Right, &v, hi)
}

func TestBuildInsertionOrder_Empty(t *testing.T) {
	assert.Nil(t, BuildInsertionOrder(nil).Root)
	assert.Nil(t, BuildInsertionOrder([]int{}).Root)
}

func TestBuildInsertionOrder_DuplicatesGoLeft(t *testing.T) {
	root := BuildInsertionOrder([]int{5, 5, 5}).Root

	require.NotNil(t, root)
	assert.Equal(t, 5, root.Value)
	require.NotNil(t, root.Left)
	assert.Equal(t, 5, root.Left.Value)
	require.NotNil(t, root.Left.Left)
	assert.Equal(t, 5, root.Left.Left.Value)

	assert.Nil(t, root.Right)
	assert.Nil(t, root.Left.Right)
	assert.Nil(t, root.Left.Left.Left)
	assert.Nil(t, root.Left.Left.Right)
	assert.Equal(t, 3, Height(root))
}

func TestBuildInsertionOrder_Shape(t *testing.T) {
	// 9 <- 4 <- (1, 7 -> 8)
	root := BuildInsertionOrder([]int{9, 4, 7, 1, 8}).Root

	require.NotNil(t, root)
	assert.Equal(t, 9, root.Value)
	assert.Nil(t, root.Right)
	require.NotNil(t, root.Left)
	assert.Equal(t, 4, root.Left.Value)
	assert.Equal(t, 1, root.Left.Left.Value)
	assert.Equal(t, 7, root.Left.Right.Value)
	assert.Equal(t, 8, root.Left.Right.Right.Value)
}

func TestBuildInsertionOrder_SortedInputDegenerates(t *testing.T) {
	root := BuildInsertionOrder([]int{1, 2, 3, 4, 5, 6}).Root
	assert.Equal(t, 6, Height(root))
	for n := root; n != nil; n = n.Right {
		assert.Nil(t, n.Left)
	}
}

func TestBuildInsertionOrder_Invariant(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	values := make([]int, 200)
	for i := range values {
		values[i] = r.Intn(50) - 25
	}

	root := BuildInsertionOrder(values).Root
	checkInsertionOrder(t, root, nil, nil)
	assert.Equal(t, len(values), Size(root))

	got := inorder(root, nil)
	assert.IsNonDecreasing(t, got)
}

func TestDistinctSorted(t *testing.T) {
	in := []int{5, 1, 3, 3, 5, -2, 1}
	got := DistinctSorted(in)

	assert.Equal(t, []int{-2, 1, 3, 5}, got)
	assert.Equal(t, []int{5, 1, 3, 3, 5, -2, 1}, in, "input must not be modified")
	assert.Empty(t, DistinctSorted(nil))
}

func TestBuildBalanced_CentersRoot(t *testing.T) {
	root := BuildBalanced(DistinctSorted([]int{1, 2, 3, 3, 4, 5, 5})).Root

	require.NotNil(t, root)
	assert.Equal(t, 3, root.Value)
	require.NotNil(t, root.Left)
	assert.Equal(t, 1, root.Left.Value)
	assert.Nil(t, root.Left.Left)
	require.NotNil(t, root.Left.Right)
	assert.Equal(t, 2, root.Left.Right.Value)
	require.NotNil(t, root.Right)
	assert.Equal(t, 4, root.Right.Value)
	assert.Nil(t, root.Right.Left)
	require.NotNil(t, root.Right.Right)
	assert.Equal(t, 5, root.Right.Right.Value)
}

func TestBuildBalanced_LowerMiddle(t *testing.T) {
	tests := []struct {
		name     string
		sorted   []int
		wantRoot int
	}{
		{name: "two values", sorted: []int{10, 20}, wantRoot: 10},
		{name: "four values", sorted: []int{1, 2, 3, 4}, wantRoot: 2},
		{name: "six values", sorted: []int{1, 2, 3, 4, 5, 6}, wantRoot: 3},
		{name: "single value", sorted: []int{7}, wantRoot: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := BuildBalanced(tt.sorted).Root
			require.NotNil(t, root)
			assert.Equal(t, tt.wantRoot, root.Value)
		})
	}
}

func TestBuildBalanced_Empty(t *testing.T) {
	assert.Nil(t, BuildBalanced(nil).Root)
}

func TestBuildBalanced_MinimalHeight(t *testing.T) {
	for n := 1; n <= 64; n++ {
		sorted := make([]int, n)
		for i := range sorted {
			sorted[i] = i * 3
		}
		root := BuildBalanced(sorted).Root

		// ceil(log2(n+1))
		want := 0
		for (1 << want) < n+1 {
			want++
		}
		assert.Equal(t, want, Height(root), "n=%d", n)
		assert.Equal(t, sorted, inorder(root, nil), "n=%d", n)
	}
}
