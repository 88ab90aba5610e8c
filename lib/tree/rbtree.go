package tree

import "github.com/benz9527/xtree/lib/infra"

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// rbtree properties:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.
// (Conclusion) If a node X has exactly one child, it must be a red child,
//   because if it were black, its NIL descendants would sit at a different
//   black depth than X's NIL child, violating p4.
// So the shortest path nodes are black nodes. Otherwise,
// the path must contain red node.
// The longest path nodes' number is 2 * shortest path nodes' number.
type rbBalancer[T infra.OrderedKey] struct{}

/*
New node X is painted red.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

im1: X is the root, repaint X into black.

im2: X's parent P is black, hold p3 and p4.

im3: Both the parent P and the uncle U are red, grandpa G is black.
(red-violation)
After repainted G into red may be still red-violation.
Loop to fix grandpa.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im4: The parent P is red but the uncle U is black. (red-violation)
X is opposite direction to P. Rotate P to opposite direction.
After rotation may be still red-violation. Here must enter im5 to fix.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im5: Handle im4 scenario, current node is the same direction as parent.
Rotate G toward U, then swap the colors of G and P.

	    [G]                 <P>               [P]
	    / \    rotate(G)    / \    repaint    / \
	  <P> [U]  ========>  <X> [G]  ======>  <X> <G>
	  /                         \                 \
	<X>                         [U]               [U]
*/
func (rbBalancer[T]) onAfterInsert(t *tree[T], x nodeID) {
	t.node(x).color = Red
	for {
		p := t.node(x).parent
		if /* im1 */ p == nilNode {
			t.node(x).color = Black
			return
		}
		if /* im2 */ t.isBlack(p) {
			return
		}

		g := t.node(p).parent
		if g == nilNode {
			// A red root only exists while im3 is moving up.
			t.node(p).color = Black
			return
		}

		if u := t.sibling(p); /* im3 */ t.isRed(u) {
			t.node(p).color = Black
			t.node(u).color = Black
			t.node(g).color = Red
			x = g
			continue
		}

		if dir, pdir := t.direction(x), t.direction(p); /* im4 */ dir != pdir {
			t.rotate(p, pdir)
			x, p = p, x
		}

		/* im5 */
		t.rotate(g, t.direction(x).opposite())
		t.node(p).color = Black
		t.node(g).color = Red
		return
	}
}

/*
The removed node Y was unlinked by removeNode and its child X took its place.

r1: Y is red, hold p3 and p4.

r2: X is red, repaint X into black to refill the black Y took away.

Otherwise X (maybe NIL) is double black. Here the loop walks X upward.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

Sc is the same direction to X and it X's sibling's child node.
Sd is the opposite direction to X and it X's sibling's child node.

rm0: X has no sibling, move the deficiency to the parent P.

rm1: Current node X's sibling S is red, so the parent P, nephew node Sc and Sd
must be black. (Otherwise, red-violation)
(1) X is left node of P, left rotate P
(2) X is right node of P, right rotate P.
(3) repaint S into black, P into red.
Continue with the new sibling Sc, it is black.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[X] <S>  ==========>  [P] [Sd]  ======>  <P> [Sd]
	    / \               / \               / \
	 [Sc] [Sd]          [X] [Sc]          [X] [Sc]

rm2: Current node X's parent P is red, the sibling S, nephew node Sc and Sd
is black.
Repaint S into red and P into black.

	  <P>             [P]
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm3: All of current node X's parent P, the sibling S, nephew node Sc and Sd
are black.
Unable to satisfy p3 and p4. We have to paint the S into red to satisfy
p4 locally. Then loop to handle P.

	  [P]             [P]
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm4: Current node X's sibling S is black, nephew node Sc is red and Sd
is black. Ignore X's parent P's color (red or black is okay)
Unable to satisfy p3 and p4.
(1) If X is left node of P, right rotate S.
(2) If X is right node of P, left rotate S.
(3) Repaint S into red, Sc into black
Enter into rm5 to fix.

	                        {P}                {P}
	  {P}                   / \                / \
	  / \    r-rotate(S)  [X] <Sc>   repaint  [X] [Sc]
	[X] [S]  ==========>        \    ======>       \
	    / \                     [S]                <S>
	  <Sc> [Sd]                   \                  \
	                              [Sd]               [Sd]

rm5: Current node X's sibling S is black and Sd is red.
Ignore X's parent P's color (red or black is okay)
(1) If X is left node of P, left rotate P.
(2) If X is right node of P, right rotate P.
(3) S takes P's color, P turns into black.
(4) Repaint Sd into black.

	  {P}                   [S]                {S}
	  / \    l-rotate(P)    / \     repaint    / \
	[X] [S]  ==========>  {P} <Sd>  ======>  [P] [Sd]
	    / \               / \                / \
	 [Sc] <Sd>          [X] [Sc]           [X] [Sc]

The deficiency reaching the root is discharged. The root is always
repainted into black at last.
*/
func (rbBalancer[T]) onAfterRemove(t *tree[T], sp splice) {
	defer func() {
		if t.root != nilNode {
			t.node(t.root).color = Black
		}
	}()

	if /* r1 */ sp.color == Red {
		return
	}
	if /* r2 */ t.isRed(sp.child) {
		t.node(sp.child).color = Black
		return
	}

	x, p, dir := sp.child, sp.parent, sp.dir
	for p != nilNode {
		s := t.childOf(p, dir.opposite())
		if /* rm0 */ s == nilNode {
			x, p = p, t.node(p).parent
			dir = t.direction(x)
			continue
		}

		if /* rm1 */ t.isRed(s) {
			t.rotate(p, dir)
			t.node(s).color = Black
			t.node(p).color = Red
			if s = t.childOf(p, dir.opposite()); s == nilNode {
				// impossible run to here
				panic( /* debug assertion */ "[xtree] rbtree remove violate (rm1)")
			}
		}

		sc, sd := t.childOf(s, dir), t.childOf(s, dir.opposite())
		if t.isBlack(sc) && t.isBlack(sd) {
			t.node(s).color = Red
			if /* rm2 */ t.isRed(p) {
				t.node(p).color = Black
				return
			}
			/* rm3 */
			x, p = p, t.node(p).parent
			if p != nilNode {
				dir = t.direction(x)
			}
			continue
		}

		if /* rm4 */ t.isBlack(sd) {
			t.rotate(s, dir.opposite())
			t.node(sc).color = Black
			t.node(s).color = Red
			s = t.childOf(p, dir.opposite())
			sd = t.childOf(s, dir.opposite())
		}

		/* rm5 */
		t.rotate(p, dir)
		t.node(s).color = t.node(p).color
		t.node(p).color = Black
		t.node(sd).color = Black
		return
	}
}
