package btree

import (
	"cmp"
)

// Tree is an in-memory B-tree holding unique keys of type K.
//
// The zero value is not usable; create trees with New or NewWithConfig.
type Tree[K any] struct {
	cfg    Config[K]
	root   *node[K] // never nil; an empty tree has an empty leaf root
	length int
	lastID NodeID
}

// New creates an empty tree of minimum degree degree for naturally ordered
// keys. New(2), for example, creates a 2-3-4 tree, where each node holds 1 to
// 3 keys and internal nodes have 2 to 4 children.
//
// A degree less than 2 is rejected with an error wrapping ErrInvalidConfig.
func New[K cmp.Ordered](degree int) (*Tree[K], error) {
	return NewWithConfig(OrderedConfig[K](degree))
}

// NewWithConfig creates an empty tree with a validated configuration.
func NewWithConfig[K any](cfg Config[K]) (*Tree[K], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	t := &Tree[K]{cfg: cfg}
	t.root = t.newNode(true)
	return t, nil
}

// Config returns a copy of the tree configuration.
func (t *Tree[K]) Config() Config[K] {
	return t.cfg
}

// Degree returns the minimum degree t of the tree.
func (t *Tree[K]) Degree() int {
	return t.cfg.Degree
}

// Len returns the number of keys in the tree.
func (t *Tree[K]) Len() int {
	if t == nil {
		return 0
	}
	return t.length
}

// IsEmpty reports whether the tree holds no keys.
func (t *Tree[K]) IsEmpty() bool {
	return t.Len() == 0
}

// Height returns the number of levels of the tree, where 0 means empty and 1
// means a leaf root.
func (t *Tree[K]) Height() int {
	if t == nil || len(t.root.keys) == 0 {
		return 0
	}
	h := 1
	for n := t.root; !n.isLeaf(); n = n.children[0] {
		h++
	}
	return h
}

// Clear removes all keys from the tree. Node IDs are not reset.
func (t *Tree[K]) Clear() {
	old := t.root
	t.root = t.newNode(true)
	t.length = 0
	if len(old.keys) > 0 {
		t.emit(RootShrunk, nil, nil, old.id, t.root.id)
	}
}
