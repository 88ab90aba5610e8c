package tree

import "github.com/benz9527/xtree/lib/infra"

// unbalanced keeps the plain binary search tree shape.
type unbalanced[T infra.OrderedKey] struct{}

func (unbalanced[T]) onAfterInsert(*tree[T], nodeID) {}

func (unbalanced[T]) onAfterRemove(*tree[T], splice) {}
