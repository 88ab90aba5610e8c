package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

var _ Node[int] = nodeRef[int]{}

// nodeRef exposes an arena slot through the Node interface.
// It is only valid until the next mutation of the tree.
type nodeRef[T infra.OrderedKey] struct {
	tree *tree[T]
	id   nodeID
}

func (ref nodeRef[T]) Val() T {
	return ref.tree.node(ref.id).val
}

func (ref nodeRef[T]) Left() Node[T] {
	return ref.tree.ref(ref.tree.node(ref.id).left)
}

func (ref nodeRef[T]) Right() Node[T] {
	return ref.tree.ref(ref.tree.node(ref.id).right)
}

func (ref nodeRef[T]) Parent() Node[T] {
	return ref.tree.ref(ref.tree.node(ref.id).parent)
}

func (ref nodeRef[T]) Color() RBColor {
	return ref.tree.node(ref.id).color
}

func (ref nodeRef[T]) Height() uint32 {
	return ref.tree.node(ref.id).height
}

// ref returns an untyped nil for the nil node so callers can compare against nil.
func (t *tree[T]) ref(id nodeID) Node[T] {
	if id == nilNode {
		return nil
	}
	return nodeRef[T]{tree: t, id: id}
}

func (t *tree[T]) node(id nodeID) *node[T] {
	return t.arena.get(id)
}

func (t *tree[T]) parentOf(id nodeID) nodeID {
	if id == nilNode {
		return nilNode
	}
	return t.node(id).parent
}

func (t *tree[T]) direction(id nodeID) Direction {
	if id == nilNode {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] nil node without direction")
	}
	p := t.node(id).parent
	if p == nilNode {
		return Root
	}
	if t.node(p).left == id {
		return Left
	}
	return Right
}

func (t *tree[T]) childOf(id nodeID, dir Direction) nodeID {
	if id == nilNode {
		return nilNode
	}
	switch dir {
	case Left:
		return t.node(id).left
	case Right:
		return t.node(id).right
	default:
	}
	// impossible run to here
	panic( /* debug assertion */ "[xtree] child lookup without side")
}

// setChild links c into the dir slot of p, or into the root slot when dir is Root.
func (t *tree[T]) setChild(p nodeID, dir Direction, c nodeID) {
	switch dir {
	case Root:
		t.root = c
		p = nilNode
	case Left:
		t.node(p).left = c
	case Right:
		t.node(p).right = c
	default:
		// impossible run to here
		panic( /* debug assertion */ "[xtree] unknown node direction to link")
	}
	if c != nilNode {
		t.node(c).parent = p
	}
}

func (t *tree[T]) sibling(id nodeID) nodeID {
	switch dir := t.direction(id); dir {
	case Left, Right:
		return t.childOf(t.node(id).parent, dir.opposite())
	default:
	}
	return nilNode
}

func (t *tree[T]) minimum(id nodeID) nodeID {
	aux := id
	for ; aux != nilNode && t.node(aux).left != nilNode; aux = t.node(aux).left {
	}
	return aux
}

func (t *tree[T]) maximum(id nodeID) nodeID {
	aux := id
	for ; aux != nilNode && t.node(aux).right != nilNode; aux = t.node(aux).right {
	}
	return aux
}

// successor is the minimum of the right subtree, only used for
// the two children removal.
func (t *tree[T]) successor(id nodeID) nodeID {
	return t.minimum(t.node(id).right)
}

func (t *tree[T]) isRed(id nodeID) bool {
	return id != nilNode && t.node(id).color == Red
}

func (t *tree[T]) isBlack(id nodeID) bool {
	return !t.isRed(id)
}

func (t *tree[T]) heightOf(id nodeID) uint32 {
	if id == nilNode {
		return 0
	}
	return t.node(id).height
}
