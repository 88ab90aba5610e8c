package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBinaryTree_Unbalanced(t *testing.T) {
	tree := NewBinaryTree[int]()
	for i := 1; i <= 64; i++ {
		tree.Insert(i)
	}
	require.Equal(t, 64, tree.Height())
	require.Equal(t, 1, tree.Root().Val())
	require.NoError(t, Validate(tree))
	require.ErrorIs(t, BalanceViolationValidate(tree), ErrBalanceViolation)
}

func TestBinaryTree_RemoveRoot(t *testing.T) {
	tree := NewBinaryTree[int]()
	for _, v := range []int{2, 1, 3} {
		tree.Insert(v)
	}

	// two children, the successor value moves up
	require.True(t, tree.Remove(2))
	root := tree.Root()
	require.Equal(t, 3, root.Val())
	require.Equal(t, 1, root.Left().Val())
	require.Nil(t, root.Right())
	require.NoError(t, Validate(tree))

	// single child, the child becomes the root
	require.True(t, tree.Remove(3))
	root = tree.Root()
	require.Equal(t, 1, root.Val())
	require.Nil(t, root.Parent())
	require.NoError(t, Validate(tree))

	require.True(t, tree.Remove(1))
	require.Nil(t, tree.Root())
	require.True(t, tree.Empty())
}

func TestBinaryTree_Duplicates(t *testing.T) {
	tree := NewBinaryTree[int]()
	for _, v := range []int{5, 3, 5, 7, 5} {
		tree.Insert(v)
	}
	root := tree.Root()
	require.Equal(t, 5, root.Val())
	require.Equal(t, 5, root.Right().Val())
	require.Nil(t, root.Right().Left())
	require.Equal(t, 7, root.Right().Right().Val())
	require.Equal(t, 5, root.Right().Right().Left().Val())
	require.Equal(t, []int{3, 5, 5, 5, 7}, tree.InOrder())
	require.NoError(t, Validate(tree))

	require.True(t, tree.Remove(5))
	require.Equal(t, []int{3, 5, 5, 7}, tree.InOrder())
	require.NoError(t, Validate(tree))
	require.True(t, tree.Remove(5))
	require.True(t, tree.Remove(5))
	require.False(t, tree.Remove(5))
	require.Equal(t, []int{3, 7}, tree.InOrder())
	require.NoError(t, Validate(tree))
}

func TestBinaryTree_Strings(t *testing.T) {
	tree := NewBinaryTree[string]()
	for _, v := range []string{"m", "c", "x", "a", "e"} {
		tree.Insert(v)
	}
	require.Equal(t, []string{"a", "c", "e", "m", "x"}, tree.InOrder())
	require.Equal(t, []string{"m", "c", "a", "e", "x"}, tree.PreOrder())
	require.Equal(t, []string{"a", "e", "c", "x", "m"}, tree.PostOrder())
	require.True(t, tree.Contains("e"))
	require.False(t, tree.Contains("f"))
}
