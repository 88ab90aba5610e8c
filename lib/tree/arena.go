package tree

import (
	"math"

	"github.com/benz9527/xtree/lib/infra"
)

// nodeID is a handle into the node arena. Zero is the nil node.
type nodeID uint32

const nilNode nodeID = 0

type node[T infra.OrderedKey] struct {
	val    T
	parent nodeID // back link, never owns
	left   nodeID
	right  nodeID
	height uint32
	color  RBColor
}

// nodeArena stores all nodes of a tree in one slice.
// Slot 0 is reserved so a zero nodeID always reads as nil.
type nodeArena[T infra.OrderedKey] struct {
	nodes    []node[T]
	recycled []nodeID
}

func newNodeArena[T infra.OrderedKey](capacity uint32) *nodeArena[T] {
	nodes := make([]node[T], 1, capacity+1)
	return &nodeArena[T]{
		nodes:    nodes,
		recycled: make([]nodeID, 0, 8),
	}
}

// allocate may grow the slice, so *node pointers taken before it are stale.
func (arena *nodeArena[T]) allocate(val T, parent nodeID) nodeID {
	n := node[T]{
		val:    val,
		parent: parent,
		height: 1,
	}
	if l := len(arena.recycled); l > 0 {
		id := arena.recycled[l-1]
		arena.recycled = arena.recycled[:l-1]
		arena.nodes[id] = n
		return id
	}
	if uint64(len(arena.nodes)) >= math.MaxUint32 {
		panic( /* debug assertion */ "[xtree] node arena exhausted")
	}
	arena.nodes = append(arena.nodes, n)
	return nodeID(len(arena.nodes) - 1)
}

func (arena *nodeArena[T]) recycle(id nodeID) {
	if id == nilNode {
		panic( /* debug assertion */ "[xtree] recycle the nil node")
	}
	var zero node[T]
	arena.nodes[id] = zero
	arena.recycled = append(arena.recycled, id)
}

func (arena *nodeArena[T]) get(id nodeID) *node[T] {
	return &arena.nodes[id]
}

// live returns the number of allocated but not recycled nodes.
func (arena *nodeArena[T]) live() int {
	return len(arena.nodes) - 1 - len(arena.recycled)
}

func (arena *nodeArena[T]) reset() {
	clear(arena.nodes)
	arena.nodes = arena.nodes[:1]
	arena.recycled = arena.recycled[:0]
}
