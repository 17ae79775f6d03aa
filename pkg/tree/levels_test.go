package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevels(t *testing.T) {
	assert.Nil(t, Levels(nil))

	levels := Levels(BuildInsertionOrder([]int{9, 4, 7, 1, 8}).Root)
	assert.Equal(t, [][]int{{9}, {4}, {1, 7}, {8}}, levels)
}

func TestLevels_Balanced(t *testing.T) {
	levels := Levels(BuildBalanced([]int{1, 2, 3, 4, 5, 6, 7}).Root)
	assert.Equal(t, [][]int{{4}, {2, 6}, {1, 3, 5, 7}}, levels)
}

func TestLevels_DegenerateChainIsLinear(t *testing.T) {
	sorted := make([]int, 64)
	for i := range sorted {
		sorted[i] = i
	}
	root := BuildInsertionOrder(sorted).Root

	levels := Levels(root)
	require.Len(t, levels, Height(root))

	total := 0
	for depth, level := range levels {
		require.Len(t, level, 1)
		assert.Equal(t, depth, level[0])
		total += len(level)
	}
	assert.Equal(t, Size(root), total)
}

func TestSizeAndHeight(t *testing.T) {
	root := BuildInsertionOrder([]int{5, 3, 8, 1}).Root
	assert.Equal(t, 4, Size(root))
	assert.Equal(t, 3, Height(root))
	assert.Equal(t, 0, Size(nil))
	assert.Equal(t, 0, Height(nil))
}
