package tree

import (
	"bytes"
	"sort"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var treeConstructors = []struct {
	name    string
	newTree func(opts ...TreeOption[int]) Tree[int]
}{
	{
		name:    "binary",
		newTree: NewBinaryTree[int],
	},
	{
		name:    "avl",
		newTree: NewAVLTree[int],
	},
	{
		name:    "rbtree",
		newTree: NewRBTree[int],
	},
}

func runForEachKind(t *testing.T, fn func(tt *testing.T, create func(opts ...TreeOption[int]) Tree[int])) {
	for _, c := range treeConstructors {
		t.Run(c.name, func(tt *testing.T) {
			fn(tt, c.newTree)
		})
	}
}

func TestTree_Kind(t *testing.T) {
	assert.Equal(t, Unbalanced, NewBinaryTree[int]().Kind())
	assert.Equal(t, AVL, NewAVLTree[int]().Kind())
	assert.Equal(t, RedBlack, NewRBTree[int]().Kind())
	assert.Equal(t, "RedBlack", RedBlack.String())
	assert.Equal(t, "Left", Left.String())
	assert.Equal(t, "Red", Red.String())
}

func TestTree_Empty(t *testing.T) {
	runForEachKind(t, func(tt *testing.T, create func(opts ...TreeOption[int]) Tree[int]) {
		tree := create()
		require.True(tt, tree.Empty())
		require.Equal(tt, int64(0), tree.Len())
		require.Nil(tt, tree.Root())
		require.Equal(tt, 0, tree.Height())
		require.Empty(tt, tree.InOrder())
		require.Empty(tt, tree.PreOrder())
		require.Empty(tt, tree.PostOrder())
		require.False(tt, tree.Contains(1))
		require.False(tt, tree.Remove(1))

		_, ok := tree.Min()
		require.False(tt, ok)
		_, ok = tree.Max()
		require.False(tt, ok)
		_, ok = tree.RemoveMin()
		require.False(tt, ok)

		tree.Clear()
		require.NoError(tt, Validate(tree))
	})
}

func TestTree_InsertRemoveRoundTrip(t *testing.T) {
	runForEachKind(t, func(tt *testing.T, create func(opts ...TreeOption[int]) Tree[int]) {
		tree := create()
		for _, v := range []int{40, 20, 60, 10, 30} {
			tree.Insert(v)
		}
		for _, v := range []int{50, 5, 35} {
			require.False(tt, tree.Contains(v))
			tree.Insert(v)
			require.True(tt, tree.Contains(v))
			require.True(tt, tree.Remove(v))
			require.False(tt, tree.Contains(v))
			require.Equal(tt, int64(5), tree.Len())
			require.NoError(tt, Validate(tree))
		}
	})
}

func TestTree_RemoveIdempotence(t *testing.T) {
	runForEachKind(t, func(tt *testing.T, create func(opts ...TreeOption[int]) Tree[int]) {
		tree := create()
		for i := 0; i < 32; i++ {
			tree.Insert(i)
		}
		require.True(tt, tree.Remove(17))
		require.False(tt, tree.Remove(17))
		require.Equal(tt, int64(31), tree.Len())
		require.NoError(tt, Validate(tree))
	})
}

func TestTree_RootRemoval(t *testing.T) {
	runForEachKind(t, func(tt *testing.T, create func(opts ...TreeOption[int]) Tree[int]) {
		tree := create()
		for _, v := range []int{2, 1, 3} {
			tree.Insert(v)
		}
		require.Equal(tt, []int{2, 1, 3}, tree.PreOrder())
		require.Equal(tt, []int{1, 2, 3}, tree.InOrder())
		require.Equal(tt, []int{1, 3, 2}, tree.PostOrder())

		require.True(tt, tree.Remove(2))
		require.Equal(tt, 3, tree.Root().Val())
		require.Equal(tt, []int{1, 3}, tree.InOrder())
		require.NoError(tt, Validate(tree))
	})
}

func TestTree_OrderPreservation(t *testing.T) {
	values := make([]int, 0, 2048)
	for i := 0; i < 2048; i++ {
		values = append(values, i%500)
	}
	values = lo.Shuffle(values)
	expected := append([]int(nil), values...)
	sort.Ints(expected)

	trees := make([]Tree[int], 0, len(treeConstructors))
	for _, c := range treeConstructors {
		tree := c.newTree()
		for _, v := range values {
			tree.Insert(v)
		}
		require.Equal(t, expected, tree.InOrder(), c.name)
		require.NoError(t, Validate(tree), c.name)
		trees = append(trees, tree)
	}

	removed := lo.Shuffle(lo.Range(500))[:200]
	for _, v := range removed {
		for _, tree := range trees {
			require.True(t, tree.Remove(v))
		}
	}
	for i := 1; i < len(trees); i++ {
		require.Equal(t, trees[0].InOrder(), trees[i].InOrder())
		require.Equal(t, trees[0].Len(), trees[i].Len())
		require.NoError(t, Validate(trees[i]))
	}
	require.Equal(t, int64(2048-200), trees[0].Len())
}

func TestTree_MinMax(t *testing.T) {
	runForEachKind(t, func(tt *testing.T, create func(opts ...TreeOption[int]) Tree[int]) {
		tree := create()
		for _, v := range []int{7, -3, 12, 0, 12, -3} {
			tree.Insert(v)
		}
		minVal, ok := tree.Min()
		require.True(tt, ok)
		require.Equal(tt, -3, minVal)
		maxVal, ok := tree.Max()
		require.True(tt, ok)
		require.Equal(tt, 12, maxVal)

		drained := make([]int, 0, tree.Len())
		for !tree.Empty() {
			v, ok := tree.RemoveMin()
			require.True(tt, ok)
			drained = append(drained, v)
			require.NoError(tt, Validate(tree))
		}
		require.Equal(tt, []int{-3, -3, 0, 7, 12, 12}, drained)
	})
}

func TestTree_Desc(t *testing.T) {
	runForEachKind(t, func(tt *testing.T, create func(opts ...TreeOption[int]) Tree[int]) {
		tree := create(WithTreeDesc[int]())
		for _, v := range lo.Shuffle(lo.Range(100)) {
			tree.Insert(v)
		}
		require.Equal(tt, lo.Reverse(lo.Range(100)), tree.InOrder())
		require.NoError(tt, Validate(tree))

		minVal, _ := tree.Min()
		require.Equal(tt, 99, minVal)
		v, _ := tree.RemoveMin()
		require.Equal(tt, 99, v)
	})
}

func TestTree_Foreach(t *testing.T) {
	runForEachKind(t, func(tt *testing.T, create func(opts ...TreeOption[int]) Tree[int]) {
		tree := create()
		for _, v := range lo.Shuffle(lo.Range(64)) {
			tree.Insert(v)
		}
		visited := make([]int, 0, 10)
		tree.Foreach(func(idx int64, val int) bool {
			require.Equal(tt, int(idx), val)
			visited = append(visited, val)
			return idx < 9
		})
		require.Equal(tt, lo.Range(10), visited)
	})
}

func TestTree_Duplicates(t *testing.T) {
	runForEachKind(t, func(tt *testing.T, create func(opts ...TreeOption[int]) Tree[int]) {
		tree := create()
		for i := 0; i < 3; i++ {
			tree.Insert(5)
		}
		require.Equal(tt, int64(3), tree.Len())
		require.Equal(tt, []int{5, 5, 5}, tree.InOrder())
		for i := 0; i < 3; i++ {
			require.True(tt, tree.Remove(5))
			require.NoError(tt, Validate(tree))
		}
		require.False(tt, tree.Remove(5))
		require.True(tt, tree.Empty())
	})
}

func TestTree_ClearAndRelease(t *testing.T) {
	runForEachKind(t, func(tt *testing.T, create func(opts ...TreeOption[int]) Tree[int]) {
		tree := create()
		for _, v := range lo.Shuffle(lo.Range(200)) {
			tree.Insert(v)
		}
		tree.Clear()
		require.True(tt, tree.Empty())
		require.Nil(tt, tree.Root())
		require.NoError(tt, Validate(tree))

		for _, v := range lo.Range(50) {
			tree.Insert(v)
		}
		require.Equal(tt, lo.Range(50), tree.InOrder())
		require.NoError(tt, Validate(tree))

		tree.Release()
		require.True(tt, tree.Empty())
		require.Nil(tt, tree.Root())
		require.NoError(tt, Validate(tree))

		tree.Insert(1)
		require.Equal(tt, []int{1}, tree.InOrder())
		require.NoError(tt, Validate(tree))
	})
}

func TestTree_NodeView(t *testing.T) {
	runForEachKind(t, func(tt *testing.T, create func(opts ...TreeOption[int]) Tree[int]) {
		tree := create()
		for _, v := range []int{2, 1, 3} {
			tree.Insert(v)
		}
		root := tree.Root()
		require.Nil(tt, root.Parent())
		require.Equal(tt, 2, root.Val())
		require.Equal(tt, 1, root.Left().Val())
		require.Equal(tt, 3, root.Right().Val())
		require.Equal(tt, root, root.Left().Parent())
		require.Equal(tt, root, root.Right().Parent())
		require.Nil(tt, root.Left().Left())
		require.Nil(tt, root.Left().Right())
	})
}

func TestTree_Print(t *testing.T) {
	footer := strings.Repeat("-", 80) + "\n"
	testcases := []struct {
		name     string
		newTree  func(opts ...TreeOption[int]) Tree[int]
		values   []int
		expected string
	}{
		{
			name:     "empty",
			newTree:  NewRBTree[int],
			expected: "Tree size = 0\n",
		},
		{
			name:     "binary",
			newTree:  NewBinaryTree[int],
			values:   []int{1, 2, 3},
			expected: "Tree size = 3\n\n        3\n    2\n1\n" + footer,
		},
		{
			name:     "avl",
			newTree:  NewAVLTree[int],
			values:   []int{1, 2, 3},
			expected: "Tree size = 3, height = 2\n\n    3\n2\n    1\n" + footer,
		},
		{
			name:     "rbtree",
			newTree:  NewRBTree[int],
			values:   []int{1, 2, 3},
			expected: "Tree size = 3\n\n    R 3\nB 2\n    R 1\n" + footer,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := tc.newTree()
			for _, v := range tc.values {
				tree.Insert(v)
			}
			buf := &bytes.Buffer{}
			require.NoError(tt, tree.Print(buf))
			require.Equal(tt, tc.expected, buf.String())
		})
	}
}

func TestTree_Logger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tree := NewAVLTree[int](WithTreeLogger[int](zap.New(core)))

	for _, v := range []int{1, 2, 3} {
		tree.Insert(v)
	}
	require.Equal(t, 1, logs.FilterMessage("root rotated").Len())
	entry := logs.FilterMessage("root rotated").All()[0]
	require.Equal(t, "AVL", entry.ContextMap()["kind"])
	require.Equal(t, "Left", entry.ContextMap()["rotation"])

	require.False(t, tree.Remove(42))
	require.Equal(t, 1, logs.FilterMessage("value not found").Len())

	tree.Clear()
	require.Equal(t, 1, logs.FilterMessage("tree cleared").Len())

	tree.Insert(7)
	tree.Release()
	released := logs.FilterMessage("tree released").All()
	require.Len(t, released, 1)
	require.Equal(t, int64(1), released[0].ContextMap()["released"])
}
