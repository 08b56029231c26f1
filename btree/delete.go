package btree

import "slices"

// stepResult is the outcome of one step of a deletion, taken at a single
// node.
type stepResult int8

const (
	stepAbsent    stepResult = iota // key is not in the subtree; nothing changed
	stepRemoved                     // key has been removed from a leaf
	stepDescend                     // continue at a child, possibly with a substitute key
	stepCollapsed                   // a merge emptied the node; continue at the merged child, which replaces it
)

// deletion is the cursor of a running delete operation.
type deletion[K any] struct {
	node *node[K]
	key  K     // key to remove from the subtree at node
	path []int // child indices from the root to node
}

func (d *deletion[K]) enter(child *node[K], i int) {
	d.node = child
	d.path = append(d.path, i)
}

// Delete removes key from the tree. It returns false, and leaves the tree
// untouched, if key is not present.
//
// Delete works top-down: every child is filled up to at least t keys before
// being entered, so removing a key from a leaf never leaves the leaf
// deficient and no fix ever travels back up. If a merge empties the root,
// the merged child becomes the new root; this is the only way the tree
// shrinks in height.
func (t *Tree[K]) Delete(key K) bool {
	if !t.Search(key) {
		return false
	}
	d := &deletion[K]{node: t.root, key: key, path: make([]int, 0, 8)}
	for {
		switch t.deleteStep(d) {
		case stepAbsent:
			assert(false, "located key vanished during delete")
			return false
		case stepRemoved:
			t.length--
			return true
		case stepCollapsed:
			assert(len(d.path) == 0, "non-root node emptied during delete")
			t.shrinkRoot(d.node)
		}
	}
}

// deleteStep performs the work for d at d.node and moves d on where
// necessary.
func (t *Tree[K]) deleteStep(d *deletion[K]) stepResult {
	n := d.node
	i, found := t.find(n, d.key)
	switch {
	case n.isLeaf() && found: // case 1
		removeAt(&n.keys, i)
		t.emit(KeyRemoved, d.path, []K{d.key}, n.id)
		return stepRemoved
	case n.isLeaf(): // case 3
		return stepAbsent
	case found: // case 2
		return t.deleteFromInner(d, i)
	}
	// case 4: key lives below child i
	if len(n.children[i].keys) < t.cfg.Degree {
		i = t.fill(n, i, d.path)
		if len(n.keys) == 0 {
			d.node = n.children[0]
			return stepCollapsed
		}
	}
	d.enter(n.children[i], i)
	return stepDescend
}

// deleteFromInner handles d.key found at index i of internal node d.node.
func (t *Tree[K]) deleteFromInner(d *deletion[K], i int) stepResult {
	n := d.node
	left, right := n.children[i], n.children[i+1]
	switch {
	case len(left.keys) >= t.cfg.Degree: // 2a
		pred := maxKey(left)
		n.keys[i] = pred
		t.emit(KeyReplaced, d.path, []K{d.key, pred}, n.id)
		d.key = pred
		d.enter(left, i)
	case len(right.keys) >= t.cfg.Degree: // 2b
		succ := minKey(right)
		n.keys[i] = succ
		t.emit(KeyReplaced, d.path, []K{d.key, succ}, n.id)
		d.key = succ
		d.enter(right, i+1)
	default: // 2c
		merged := t.merge(n, i, d.path)
		if len(n.keys) == 0 {
			d.node = merged
			return stepCollapsed
		}
		d.enter(merged, i)
	}
	return stepDescend
}

// fill makes sure child i of parent holds at least t keys, borrowing from a
// sibling with spare keys if possible and merging with a sibling otherwise.
// It returns the index of the child covering the original child's key range
// afterwards.
func (t *Tree[K]) fill(parent *node[K], i int, path []int) int {
	d := t.cfg.Degree
	switch {
	case i < len(parent.keys) && len(parent.children[i+1].keys) >= d: // 3a
		t.rotateLeft(parent, i, path)
	case i > 0 && len(parent.children[i-1].keys) >= d: // 3a'
		t.rotateRight(parent, i, path)
	case i < len(parent.keys): // 3b, merge with right sibling
		t.merge(parent, i, path)
	default: // 3b, rightmost child merges into its left sibling
		i--
		t.merge(parent, i, path)
	}
	return i
}

// rotateLeft moves the separator parent.keys[i] down to the end of child i
// and the first key of child i+1 up into its place. An internal donor hands
// over its leftmost child as well.
func (t *Tree[K]) rotateLeft(parent *node[K], i int, path []int) {
	child, donor := parent.children[i], parent.children[i+1]
	down := parent.keys[i]
	child.keys = append(child.keys, down)
	up := removeAt(&donor.keys, 0)
	parent.keys[i] = up
	if !donor.isLeaf() {
		child.children = append(child.children, removeAt(&donor.children, 0))
	}
	t.emit(RotatedLeft, path, []K{up, down}, parent.id, donor.id, child.id)
}

// rotateRight moves the separator parent.keys[i-1] down to the front of
// child i and the last key of child i-1 up into its place. An internal donor
// hands over its rightmost child as well.
func (t *Tree[K]) rotateRight(parent *node[K], i int, path []int) {
	donor, child := parent.children[i-1], parent.children[i]
	down := parent.keys[i-1]
	child.keys = slices.Insert(child.keys, 0, down)
	up := pop(&donor.keys)
	parent.keys[i-1] = up
	if !donor.isLeaf() {
		child.children = slices.Insert(child.children, 0, pop(&donor.children))
	}
	t.emit(RotatedRight, path, []K{up, down}, parent.id, donor.id, child.id)
}

// merge joins child i of parent, the separator parent.keys[i] and child i+1
// into child i, which it returns. Child i+1 is dropped.
func (t *Tree[K]) merge(parent *node[K], i int, path []int) *node[K] {
	left, right := parent.children[i], parent.children[i+1]
	assert(len(left.keys)+len(right.keys)+1 <= t.maxKeys(), "merge would overflow node")
	sep := removeAt(&parent.keys, i)
	removeAt(&parent.children, i+1)
	left.keys = append(left.keys, sep)
	left.keys = append(left.keys, right.keys...)
	left.children = append(left.children, right.children...)
	t.emit(NodesMerged, path, []K{sep}, parent.id, left.id, right.id)
	return left
}

// shrinkRoot replaces an emptied root by its merged only child.
func (t *Tree[K]) shrinkRoot(child *node[K]) {
	old := t.root
	assert(len(old.keys) == 0 && len(old.children) == 1, "shrinkRoot called for non-empty root")
	t.root = child
	t.emit(RootShrunk, nil, nil, old.id, child.id)
	tracer().Debugf("btree: root %d collapsed into %d, height now %d", old.id, child.id, t.Height())
}
