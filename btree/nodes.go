package btree

import "slices"

// NodeID identifies a node within its tree. IDs are handed out in creation
// order and never reused by a tree.
type NodeID uint64

// node is a single B-tree node.
//
// It must at all times maintain the invariant that either
//   - len(children) == 0 (leaf), or
//   - len(children) == len(keys) + 1 (internal node).
type node[K any] struct {
	id       NodeID
	keys     []K
	children []*node[K]
}

func (n *node[K]) isLeaf() bool {
	return len(n.children) == 0
}

// newNode creates an empty node with a fresh ID. Slices are pre-sized for a
// full node so that splits and merges do not re-allocate.
func (t *Tree[K]) newNode(leaf bool) *node[K] {
	t.lastID++
	n := &node[K]{
		id:   t.lastID,
		keys: make([]K, 0, t.maxKeys()),
	}
	if !leaf {
		n.children = make([]*node[K], 0, t.maxKeys()+1)
	}
	return n
}

func (t *Tree[K]) maxKeys() int {
	return 2*t.cfg.Degree - 1
}

func (t *Tree[K]) minKeys() int {
	return t.cfg.Degree - 1
}

// find returns the index of key within n.keys if present. Otherwise it
// returns the position where key would be inserted, which is also the index
// of the child whose subtree covers key.
func (t *Tree[K]) find(n *node[K], key K) (int, bool) {
	return slices.BinarySearchFunc(n.keys, key, t.cfg.Compare)
}

// removeAt removes the element at index i, pulling all subsequent elements
// back.
func removeAt[T any](s *[]T, i int) T {
	assert(i >= 0 && i < len(*s), "removeAt index out of range")
	v := (*s)[i]
	*s = slices.Delete(*s, i, i+1)
	return v
}

// pop removes and returns the last element.
func pop[T any](s *[]T) T {
	return removeAt(s, len(*s)-1)
}

// minKey returns the leftmost key of the subtree rooted at n.
func minKey[K any](n *node[K]) K {
	for !n.isLeaf() {
		n = n.children[0]
	}
	return n.keys[0]
}

// maxKey returns the rightmost key of the subtree rooted at n.
func maxKey[K any](n *node[K]) K {
	for !n.isLeaf() {
		n = n.children[len(n.children)-1]
	}
	return n.keys[len(n.keys)-1]
}
