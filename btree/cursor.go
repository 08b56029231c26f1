package btree

import "fmt"

// Cursor tracks a position in the ascending sequence of keys of a tree.
//
// A cursor is invalidated by any modification of the tree; it has to be
// re-positioned with Seek or First afterwards.
type Cursor[K any] struct {
	tree  *Tree[K]
	stack []position[K] // root first; top addresses the current key
	valid bool
}

// position addresses key index within node. For an inner node it is the
// key to visit after the subtree of children[index] is exhausted.
type position[K any] struct {
	node  *node[K]
	index int
}

// NewCursor creates an unpositioned cursor for a tree.
func NewCursor[K any](tree *Tree[K]) (*Cursor[K], error) {
	if tree == nil {
		return nil, fmt.Errorf("%w: tree is nil", ErrInvalidConfig)
	}
	return &Cursor[K]{
		tree:  tree,
		stack: make([]position[K], 0, 8),
	}, nil
}

// Seek positions the cursor at the smallest key not less than target.
// It returns false if there is no such key.
func (c *Cursor[K]) Seek(target K) bool {
	c.stack = c.stack[:0]
	n := c.tree.root
	for {
		i, found := c.tree.find(n, target)
		c.stack = append(c.stack, position[K]{node: n, index: i})
		if found || n.isLeaf() {
			break
		}
		n = n.children[i]
	}
	c.valid = c.settle()
	return c.valid
}

// First positions the cursor at the smallest key of the tree. It returns
// false if the tree is empty.
func (c *Cursor[K]) First() bool {
	c.stack = c.stack[:0]
	c.descendLeftmost(c.tree.root)
	c.valid = c.settle()
	return c.valid
}

// Next advances the cursor to the following key. It returns false if the
// cursor has moved past the largest key.
func (c *Cursor[K]) Next() bool {
	if !c.valid {
		return false
	}
	top := &c.stack[len(c.stack)-1]
	top.index++
	if n := top.node; !n.isLeaf() {
		c.descendLeftmost(n.children[top.index])
	}
	c.valid = c.settle()
	return c.valid
}

// Valid reports whether the cursor is positioned at a key.
func (c *Cursor[K]) Valid() bool {
	return c.valid
}

// Key returns the key at the cursor position. It must not be called on an
// invalid cursor.
func (c *Cursor[K]) Key() K {
	assert(c.valid, "cursor Key called on invalid cursor")
	top := c.stack[len(c.stack)-1]
	return top.node.keys[top.index]
}

func (c *Cursor[K]) descendLeftmost(n *node[K]) {
	for {
		c.stack = append(c.stack, position[K]{node: n})
		if n.isLeaf() {
			return
		}
		n = n.children[0]
	}
}

// settle pops exhausted positions until the top of the stack addresses a
// key.
func (c *Cursor[K]) settle() bool {
	for len(c.stack) > 0 {
		top := c.stack[len(c.stack)-1]
		if top.index < len(top.node.keys) {
			return true
		}
		c.stack = c.stack[:len(c.stack)-1]
	}
	return false
}
