package tree

import (
	"io"

	"github.com/benz9527/xtree/lib/infra"
)

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

//go:generate stringer -type=Direction
type Direction int8

const (
	Left Direction = -1 + iota
	Root
	Right
)

func (dir Direction) opposite() Direction {
	return -dir
}

//go:generate stringer -type=TreeKind
type TreeKind uint8

const (
	Unbalanced TreeKind = iota
	AVL
	RedBlack
)

// Node is a read-only view of a tree node.
// Color is only maintained by red-black trees and Height only by AVL trees.
type Node[T infra.OrderedKey] interface {
	Val() T
	Left() Node[T]
	Right() Node[T]
	Parent() Node[T]
	Color() RBColor
	Height() uint32
}

// Tree is an ordered multiset. Duplicates are allowed and sorted after
// the equal values already present.
// It is not thread safe.
type Tree[T infra.OrderedKey] interface {
	Kind() TreeKind
	Len() int64
	Empty() bool
	Root() Node[T]
	// Height returns the number of levels, 0 for an empty tree.
	Height() int
	Insert(val T)
	// Remove removes one occurrence of val and reports whether it was present.
	Remove(val T) bool
	RemoveMin() (T, bool)
	Contains(val T) bool
	Min() (T, bool)
	Max() (T, bool)
	// Clear removes the root value until the tree is empty.
	Clear()
	PreOrder() []T
	InOrder() []T
	PostOrder() []T
	// Foreach walks the values in order until action returns false.
	Foreach(action func(idx int64, val T) bool)
	// Print writes the tree sideways, right subtree on top.
	Print(w io.Writer) error
	// Release drops all nodes at once.
	Release()
}
