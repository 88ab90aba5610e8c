package tree

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/benz9527/xtree/lib/infra"
)

// tree rule validation utilities.

var (
	ErrOrderViolation   = errors.New("xtree order violation")
	ErrSizeViolation    = errors.New("xtree size violation")
	ErrBalanceViolation = errors.New("xtree avl balance violation")
	ErrRedViolation     = errors.New("rbtree red violation")
	ErrBlackViolation   = errors.New("rbtree black violation")
)

func comparatorOf[T infra.OrderedKey](t Tree[T]) infra.OrderedKeyComparator[T] {
	if impl, ok := t.(*tree[T]); ok {
		return impl.cmp
	}
	return infra.Compare[T]
}

// Validate runs all the validations that apply to the kind of the tree
// and combines their errors.
func Validate[T infra.OrderedKey](t Tree[T]) error {
	err := multierr.Combine(
		OrderViolationValidate(t),
		SizeViolationValidate(t),
	)
	switch t.Kind() {
	case AVL:
		err = multierr.Append(err, BalanceViolationValidate(t))
	case RedBlack:
		err = multierr.Append(err, RedViolationValidate(t))
		err = multierr.Append(err, BlackViolationValidate(t))
	default:
	}
	return err
}

// OrderViolationValidate checks the in-order values are non-decreasing.
// The unbalanced tree never rotates, so it also keeps the strict
// left < x <= right rule, ties go right.
func OrderViolationValidate[T infra.OrderedKey](t Tree[T]) error {
	cmp := comparatorOf(t)
	var (
		prev    T
		hasPrev bool
		err     error
	)
	t.Foreach(func(idx int64, val T) bool {
		if hasPrev && cmp(prev, val) > 0 {
			err = fmt.Errorf("%w: %v at %d is after %v", ErrOrderViolation, val, idx, prev)
			return false
		}
		prev, hasPrev = val, true
		return true
	})
	if err != nil || t.Kind() != Unbalanced {
		return err
	}

	return preorderWalk(t.Root(), func(n Node[T]) error {
		if l := n.Left(); l != nil {
			for ; l.Right() != nil; l = l.Right() {
			}
			if cmp(l.Val(), n.Val()) >= 0 {
				return fmt.Errorf("%w: left %v is not less than %v", ErrOrderViolation, l.Val(), n.Val())
			}
		}
		return nil
	})
}

// SizeViolationValidate checks the size equals the number of reachable nodes
// and that every child links back to its parent.
func SizeViolationValidate[T infra.OrderedKey](t Tree[T]) error {
	root := t.Root()
	if (t.Len() == 0) != (root == nil) || t.Empty() != (root == nil) {
		return fmt.Errorf("%w: len %d with root %v", ErrSizeViolation, t.Len(), root != nil)
	}
	if root != nil && root.Parent() != nil {
		return fmt.Errorf("%w: root %v has a parent", ErrSizeViolation, root.Val())
	}

	count := int64(0)
	err := preorderWalk(root, func(n Node[T]) error {
		count++
		for _, child := range [2]Node[T]{n.Left(), n.Right()} {
			if child != nil && child.Parent() != n {
				return fmt.Errorf("%w: %v does not link back to %v", ErrSizeViolation, child.Val(), n.Val())
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if count != t.Len() {
		return fmt.Errorf("%w: len %d but %d nodes reachable", ErrSizeViolation, t.Len(), count)
	}
	if impl, ok := t.(*tree[T]); ok && int64(impl.arena.live()) != count {
		return fmt.Errorf("%w: %d arena nodes but %d nodes reachable", ErrSizeViolation, impl.arena.live(), count)
	}
	return nil
}

// BalanceViolationValidate recomputes the height of every node and checks
// the balance factor. AVL trees also have their stored heights checked.
func BalanceViolationValidate[T infra.OrderedKey](t Tree[T]) error {
	_, err := balancedHeight(t.Root(), t.Kind() == AVL)
	return err
}

func balancedHeight[T infra.OrderedKey](n Node[T], checkStored bool) (uint32, error) {
	if n == nil {
		return 0, nil
	}
	lh, err := balancedHeight(n.Left(), checkStored)
	if err != nil {
		return 0, err
	}
	rh, err := balancedHeight(n.Right(), checkStored)
	if err != nil {
		return 0, err
	}
	if bf := int(rh) - int(lh); bf < -1 || bf > 1 {
		return 0, fmt.Errorf("%w: %v balance factor %d", ErrBalanceViolation, n.Val(), bf)
	}
	h := 1 + max(lh, rh)
	if checkStored && n.Height() != h {
		return 0, fmt.Errorf("%w: %v stored height %d, real %d", ErrBalanceViolation, n.Val(), n.Height(), h)
	}
	return h, nil
}

func preorderWalk[T infra.OrderedKey](root Node[T], fn func(n Node[T]) error) error {
	if root == nil {
		return nil
	}
	stack := make([]Node[T], 0, 32)
	stack = append(stack, root)
	for size := len(stack); size > 0; size = len(stack) {
		n := stack[size-1]
		stack = stack[:size-1]
		if err := fn(n); err != nil {
			return err
		}
		if r := n.Right(); r != nil {
			stack = append(stack, r)
		}
		if l := n.Left(); l != nil {
			stack = append(stack, l)
		}
	}
	return nil
}

func isRedNode[T infra.OrderedKey](n Node[T]) bool {
	return n != nil && n.Color() == Red
}

func blackDepthTo[T infra.OrderedKey](target, to Node[T]) int {
	depth := 0
	for aux := target; aux != to; aux = aux.Parent() {
		if !isRedNode(aux) {
			depth++
		}
	}
	return depth
}

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

// RedViolationValidate checks the root is black and no red node has a red child.
func RedViolationValidate[T infra.OrderedKey](t Tree[T]) error {
	root := t.Root()
	if isRedNode(root) {
		return fmt.Errorf("%w: red root %v", ErrRedViolation, root.Val())
	}
	return preorderWalk(root, func(n Node[T]) error {
		if isRedNode(n) && (isRedNode(n.Left()) || isRedNode(n.Right())) {
			return fmt.Errorf("%w: red %v has a red child", ErrRedViolation, n.Val())
		}
		return nil
	})
}

// BFS traversal to load all leaves.
func bfsLeaves[T infra.OrderedKey](t Tree[T]) []Node[T] {
	root := t.Root()
	if root == nil {
		return nil
	}

	leaves := make([]Node[T], 0, t.Len()>>1+1)
	queue := make([]Node[T], 0, t.Len()>>1+1)
	queue = append(queue, root)
	for len(queue) > 0 {
		aux := queue[0]
		l, r := aux.Left(), aux.Right()
		if /* nil leaves, keep one */ l == nil || r == nil {
			leaves = append(leaves, aux)
		}
		if l != nil {
			queue = append(queue, l)
		}
		if r != nil {
			queue = append(queue, r)
		}
		queue = queue[1:]
	}
	return leaves
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [13]
			/  \
		 <8>    [15]
		 / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            [16]

2-3-4 tree like:

	       <8> --- [13] --- <15>
		  /  \             /    \
		 /    \           /      \
	  <1>-[6][11]      [14] <16>-[17]

Each leaf node to root node black depth are equal.
*/
func BlackViolationValidate[T infra.OrderedKey](t Tree[T]) error {
	leaves := bfsLeaves(t)
	if leaves == nil {
		return nil
	}

	root := t.Root()
	blackDepth := blackDepthTo(leaves[0], root)
	for i := 1; i < len(leaves); i++ {
		if depth := blackDepthTo(leaves[i], root); depth != blackDepth {
			return fmt.Errorf("%w: leaf %v black depth %d, expected %d",
				ErrBlackViolation, leaves[i].Val(), depth, blackDepth)
		}
	}
	return nil
}
