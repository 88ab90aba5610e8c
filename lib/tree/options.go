package tree

import (
	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
)

type TreeOption[T infra.OrderedKey] func(*tree[T])

// WithTreeDesc sorts the values in descending order.
func WithTreeDesc[T infra.OrderedKey]() TreeOption[T] {
	return func(t *tree[T]) {
		t.isDesc = true
	}
}

func WithTreeLogger[T infra.OrderedKey](logger *zap.Logger) TreeOption[T] {
	return func(t *tree[T]) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithTreeCapacity preallocates the node arena.
func WithTreeCapacity[T infra.OrderedKey](capacity uint32) TreeOption[T] {
	return func(t *tree[T]) {
		t.capacity = capacity
	}
}

// WithTreeStats records the tree metrics under the meter named
// TreeStatsName/name of the global otel meter provider.
func WithTreeStats[T infra.OrderedKey](name string) TreeOption[T] {
	return func(t *tree[T]) {
		t.isStatsEnabled = true
		t.statsName = name
	}
}

func NewBinaryTree[T infra.OrderedKey](opts ...TreeOption[T]) Tree[T] {
	return newTree[T](Unbalanced, unbalanced[T]{}, opts...)
}

func NewAVLTree[T infra.OrderedKey](opts ...TreeOption[T]) Tree[T] {
	return newTree[T](AVL, avlBalancer[T]{}, opts...)
}

func NewRBTree[T infra.OrderedKey](opts ...TreeOption[T]) Tree[T] {
	return newTree[T](RedBlack, rbBalancer[T]{}, opts...)
}
