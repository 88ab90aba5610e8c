package tree

import "github.com/benz9527/xtree/lib/infra"

// References:
// https://en.wikipedia.org/wiki/AVL_tree#Rebalancing
// avl properties:
// p1. height(leaf) = 1, height(nil) = 0,
//   height(x) = 1 + max(height(x.left), height(x.right)).
// p2. The balance factor bf(x) = height(x.right) - height(x.left)
//   of every node is in {-1, 0, 1}.
// After an insertion or removal only the nodes on the path from the
// changed node to the root may violate p2. One retrace along that path
// restores it.
type avlBalancer[T infra.OrderedKey] struct{}

func (b avlBalancer[T]) onAfterInsert(t *tree[T], x nodeID) {
	b.retrace(t, t.parentOf(x))
}

func (b avlBalancer[T]) onAfterRemove(t *tree[T], sp splice) {
	b.retrace(t, sp.parent)
}

func (avlBalancer[T]) updateHeight(t *tree[T], x nodeID) {
	n := t.node(x)
	n.height = 1 + max(t.heightOf(n.left), t.heightOf(n.right))
}

func (avlBalancer[T]) balanceFactor(t *tree[T], x nodeID) int {
	n := t.node(x)
	return int(t.heightOf(n.right)) - int(t.heightOf(n.left))
}

/*
a1: bf(X) < -1, left heavy and L is not right heavy.

	    X                L
	   / \              / \
	  L   R   r(X)    Ll   X
	 / \     =====>       / \
	Ll  Lr               Lr  R

a2: bf(X) < -1, left heavy and L is right heavy (bf(L) > 0).
Left rotate L first, then enter a1.

	   X              X                Lr
	  / \    l(L)    / \     r(X)     /  \
	 L   R  =====>  Lr  R   =====>   L    X
	  \            /                     \
	  Lr          L                       R

a3, a4: bf(X) > 1, the mirror cases.
*/
func (b avlBalancer[T]) retrace(t *tree[T], x nodeID) {
	for x != nilNode {
		b.updateHeight(t, x)
		if bf := b.balanceFactor(t, x); /* left heavy */ bf < -1 {
			if l := t.node(x).left; /* a2 */ b.balanceFactor(t, l) > 0 {
				b.rotate(t, l, Left)
			}
			/* a1 */
			x = b.rotate(t, x, Right)
		} else if /* right heavy */ bf > 1 {
			if r := t.node(x).right; /* a4 */ b.balanceFactor(t, r) < 0 {
				b.rotate(t, r, Right)
			}
			/* a3 */
			x = b.rotate(t, x, Left)
		}
		x = t.node(x).parent
	}
}

// rotate turns x down toward dir and returns the node promoted into its place.
// Heights are fixed child first.
func (b avlBalancer[T]) rotate(t *tree[T], x nodeID, dir Direction) nodeID {
	y := t.rotate(x, dir)
	b.updateHeight(t, x)
	b.updateHeight(t, y)
	return y
}
