package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
)

// balancer is the rebalancing policy a tree runs after each
// structural change of the shared scaffold.
type balancer[T infra.OrderedKey] interface {
	// x is the freshly linked node, the root included.
	onAfterInsert(t *tree[T], x nodeID)
	onAfterRemove(t *tree[T], sp splice)
}

// splice describes a node physically unlinked by removeNode.
// The child took the removed node's place under parent on the dir side.
type splice struct {
	parent nodeID
	child  nodeID
	dir    Direction
	color  RBColor
}

var _ Tree[int] = (*tree[int])(nil)

type tree[T infra.OrderedKey] struct {
	arena          *nodeArena[T]
	balancer       balancer[T]
	cmp            infra.OrderedKeyComparator[T]
	logger         *zap.Logger
	stats          *treeStats
	statsName      string
	root           nodeID
	count          int64
	capacity       uint32
	kind           TreeKind
	isDesc         bool
	isStatsEnabled bool
}

func newTree[T infra.OrderedKey](kind TreeKind, b balancer[T], opts ...TreeOption[T]) *tree[T] {
	t := &tree[T]{
		balancer: b,
		kind:     kind,
		logger:   zap.NewNop(),
		capacity: 16,
	}
	for _, o := range opts {
		o(t)
	}

	t.arena = newNodeArena[T](t.capacity)
	t.cmp = infra.Compare[T]
	if t.isDesc {
		t.cmp = infra.Reverse(t.cmp)
	}
	if t.isStatsEnabled {
		t.stats = newTreeStats(t)
	}
	return t
}

func (t *tree[T]) Kind() TreeKind {
	return t.kind
}

func (t *tree[T]) Len() int64 {
	return t.count
}

func (t *tree[T]) Empty() bool {
	return t.count == 0
}

func (t *tree[T]) Root() Node[T] {
	return t.ref(t.root)
}

func (t *tree[T]) Height() int {
	if t.root == nilNode {
		return 0
	}
	level := make([]nodeID, 0, 8)
	level = append(level, t.root)
	height := 0
	for len(level) > 0 {
		height++
		next := make([]nodeID, 0, len(level)<<1)
		for _, x := range level {
			if l := t.node(x).left; l != nilNode {
				next = append(next, l)
			}
			if r := t.node(x).right; r != nilNode {
				next = append(next, r)
			}
		}
		level = next
	}
	return height
}

func (t *tree[T]) Insert(val T) {
	x := t.insertLeaf(val)
	t.count++
	t.balancer.onAfterInsert(t, x)
	t.stats.recordInsert()
}

// insertLeaf descends by comparison, ties go right, and links a new
// leaf into the first empty slot. An empty tree gets a new root.
func (t *tree[T]) insertLeaf(val T) nodeID {
	if t.root == nilNode {
		t.root = t.arena.allocate(val, nilNode)
		return t.root
	}

	var (
		p   nodeID
		dir Direction
	)
	for x := t.root; x != nilNode; {
		p = x
		if /* less */ t.cmp(val, t.node(x).val) < 0 {
			dir, x = Left, t.node(x).left
		} else /* greater or equal */ {
			dir, x = Right, t.node(x).right
		}
	}
	z := t.arena.allocate(val, p)
	t.setChild(p, dir, z)
	return z
}

// search returns the first node on the descent path holding val.
func (t *tree[T]) search(val T) nodeID {
	for x := t.root; x != nilNode; {
		res := t.cmp(val, t.node(x).val)
		if res == 0 {
			return x
		} else if res < 0 {
			x = t.node(x).left
		} else {
			x = t.node(x).right
		}
	}
	return nilNode
}

func (t *tree[T]) Contains(val T) bool {
	return t.search(val) != nilNode
}

func (t *tree[T]) Remove(val T) bool {
	z := t.search(val)
	if z == nilNode {
		t.logger.Debug("value not found",
			zap.Stringer("kind", t.kind),
			zap.Int64("len", t.count),
		)
		return false
	}
	t.remove(z)
	return true
}

func (t *tree[T]) RemoveMin() (T, bool) {
	if t.root == nilNode {
		return *new(T), false
	}
	return t.remove(t.minimum(t.root)), true
}

func (t *tree[T]) remove(z nodeID) T {
	val := t.node(z).val
	sp := t.removeNode(z)
	t.count--
	t.balancer.onAfterRemove(t, sp)
	t.stats.recordRemove()
	return val
}

/*
removeNode unlinks z from the tree.

r1: z has two children. Copy the successor's value into z and unlink the
successor instead, it has no left child.

	  |                    |
	  Z                    S
	 / \                  / \
	L   R   copy(S, Z)   L   R
	   /    =========>      /
	  S                    Sr
	   \
	   Sr

r2: z has at most one child. Link the child into z's slot. When z is the
root, the child becomes the new root without a parent.
*/
func (t *tree[T]) removeNode(z nodeID) splice {
	y := z
	if /* r1 */ t.node(z).left != nilNode && t.node(z).right != nilNode {
		y = t.successor(z)
		t.node(z).val = t.node(y).val
	}

	/* r2 */
	yn := t.node(y)
	child := yn.left
	if child == nilNode {
		child = yn.right
	}
	sp := splice{
		parent: yn.parent,
		child:  child,
		dir:    t.direction(y),
		color:  yn.color,
	}
	t.setChild(sp.parent, sp.dir, child)
	t.arena.recycle(y)
	return sp
}

/*
		 |                         |
		 X                         Y
		/ \     rotateLeft(X)     / \
	   L   Y    ============>    X   Yr
		  / \                   / \
		Yl   Yr                L   Yl
*/
func (t *tree[T]) rotateLeft(x nodeID) nodeID {
	if x == nilNode || t.node(x).right == nilNode {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] left rotate node x is nil or x.right is nil")
	}

	p, y, dir := t.node(x).parent, t.node(x).right, t.direction(x)
	t.setChild(x, Right, t.node(y).left)
	t.setChild(y, Left, x)
	t.setChild(p, dir, y)
	t.onRotate(Left, dir)
	return y
}

/*
		 |                         |
		 X                         Y
		/ \     rotateRight(X)    / \
	   Y   R    ============>    Yl  X
	  / \                           / \
	Yl   Yr                       Yr   R
*/
func (t *tree[T]) rotateRight(x nodeID) nodeID {
	if x == nilNode || t.node(x).left == nilNode {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] right rotate node x is nil or x.left is nil")
	}

	p, y, dir := t.node(x).parent, t.node(x).left, t.direction(x)
	t.setChild(x, Left, t.node(y).right)
	t.setChild(y, Right, x)
	t.setChild(p, dir, y)
	t.onRotate(Right, dir)
	return y
}

// rotate turns x down toward dir.
func (t *tree[T]) rotate(x nodeID, dir Direction) nodeID {
	switch dir {
	case Left:
		return t.rotateLeft(x)
	case Right:
		return t.rotateRight(x)
	default:
	}
	// impossible run to here
	panic( /* debug assertion */ "[xtree] rotate without direction")
}

func (t *tree[T]) onRotate(rotation, pivot Direction) {
	t.stats.recordRotation(rotation)
	if pivot == Root {
		t.logger.Debug("root rotated",
			zap.Stringer("kind", t.kind),
			zap.Stringer("rotation", rotation),
		)
	}
}

func (t *tree[T]) Min() (T, bool) {
	if t.root == nilNode {
		return *new(T), false
	}
	return t.node(t.minimum(t.root)).val, true
}

func (t *tree[T]) Max() (T, bool) {
	if t.root == nilNode {
		return *new(T), false
	}
	return t.node(t.maximum(t.root)).val, true
}

func (t *tree[T]) Clear() {
	removed := t.count
	for t.count > 0 {
		t.Remove(t.node(t.root).val)
	}
	t.logger.Debug("tree cleared",
		zap.Stringer("kind", t.kind),
		zap.Int64("removed", removed),
	)
}

func (t *tree[T]) Release() {
	released := t.count
	t.stats.recordRelease(released)
	t.arena.reset()
	t.root = nilNode
	t.count = 0
	t.logger.Debug("tree released",
		zap.Stringer("kind", t.kind),
		zap.Int64("released", released),
	)
}

func (t *tree[T]) PreOrder() []T {
	out := make([]T, 0, t.count)
	if t.root == nilNode {
		return out
	}

	stack := make([]nodeID, 0, 32)
	stack = append(stack, t.root)
	for size := len(stack); size > 0; size = len(stack) {
		x := stack[size-1]
		stack = stack[:size-1]
		out = append(out, t.node(x).val)
		if r := t.node(x).right; r != nilNode {
			stack = append(stack, r)
		}
		if l := t.node(x).left; l != nilNode {
			stack = append(stack, l)
		}
	}
	return out
}

func (t *tree[T]) InOrder() []T {
	out := make([]T, 0, t.count)
	t.Foreach(func(_ int64, val T) bool {
		out = append(out, val)
		return true
	})
	return out
}

// PostOrder is the reverse of the root, right, left walk.
func (t *tree[T]) PostOrder() []T {
	out := make([]T, 0, t.count)
	if t.root == nilNode {
		return out
	}

	stack := make([]nodeID, 0, 32)
	stack = append(stack, t.root)
	for size := len(stack); size > 0; size = len(stack) {
		x := stack[size-1]
		stack = stack[:size-1]
		out = append(out, t.node(x).val)
		if l := t.node(x).left; l != nilNode {
			stack = append(stack, l)
		}
		if r := t.node(x).right; r != nilNode {
			stack = append(stack, r)
		}
	}
	return lo.Reverse(out)
}

// Inorder traversal to implement the DFS.
func (t *tree[T]) Foreach(action func(idx int64, val T) bool) {
	if t.root == nilNode {
		return
	}

	stack := make([]nodeID, 0, 32)
	for aux := t.root; aux != nilNode; aux = t.node(aux).left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		if !action(idx, t.node(aux).val) {
			return
		}
		idx++
		stack = stack[:size-1]
		for aux = t.node(aux).right; aux != nilNode; aux = t.node(aux).left {
			stack = append(stack, aux)
		}
	}
}

func (t *tree[T]) Print(w io.Writer) error {
	var err error
	printf := func(format string, args ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, args...)
	}

	printf("Tree size = %d", t.count)
	if t.root != nilNode {
		if t.kind == AVL {
			printf(", height = %d", t.node(t.root).height)
		}
		printf("\n\n")

		type frame struct {
			id    nodeID
			depth int
		}
		stack := make([]frame, 0, 32)
		aux, depth := t.root, 0
		for aux != nilNode || len(stack) > 0 {
			for ; aux != nilNode; aux, depth = t.node(aux).right, depth+1 {
				stack = append(stack, frame{id: aux, depth: depth})
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			prefix := ""
			if t.kind == RedBlack {
				prefix = lo.Ternary(t.node(f.id).color == Red, "R ", "B ")
			}
			printf("%s%s%v\n", strings.Repeat("    ", f.depth), prefix, t.node(f.id).val)
			aux, depth = t.node(f.id).left, f.depth+1
		}
		printf("%s", strings.Repeat("-", 80))
	}
	printf("\n")
	return err
}
