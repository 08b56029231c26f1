package btree

import "slices"

// Insert adds key to the tree. It returns false, and leaves the tree
// untouched, if an equal key is already present.
//
// Insert splits every full node on the path to the target leaf before
// entering it. A full root is split under a new root; this is the only way
// the tree grows in height.
func (t *Tree[K]) Insert(key K) bool {
	if t.Search(key) {
		return false
	}
	if len(t.root.keys) == t.maxKeys() {
		t.growRoot()
	}
	t.insertNonFull(t.root, key, make([]int, 0, 8))
	t.length++
	return true
}

// growRoot puts a new root on top of a full root and splits the old one.
func (t *Tree[K]) growRoot() {
	old := t.root
	t.root = t.newNode(false)
	t.root.children = append(t.root.children, old)
	t.emit(RootGrown, nil, nil, t.root.id, old.id)
	t.splitChild(t.root, 0, nil)
	tracer().Debugf("btree: root %d split, height now %d", old.id, t.Height())
}

// splitChild splits the full child at index i of parent. Keys (and
// children) right of the median move to a new right sibling, the median moves
// up into parent at index i, and the new sibling becomes child i+1.
// Afterwards both halves hold t-1 keys.
func (t *Tree[K]) splitChild(parent *node[K], i int, path []int) {
	left := parent.children[i]
	assert(len(left.keys) == t.maxKeys(), "splitChild called for non-full child")
	d := t.cfg.Degree
	right := t.newNode(left.isLeaf())
	median := left.keys[d-1]
	right.keys = append(right.keys, left.keys[d:]...)
	clear(left.keys[d-1:]) // allow GC of moved keys
	left.keys = left.keys[:d-1]
	if !left.isLeaf() {
		right.children = append(right.children, left.children[d:]...)
		clear(left.children[d:])
		left.children = left.children[:d]
	}
	parent.keys = slices.Insert(parent.keys, i, median)
	parent.children = slices.Insert(parent.children, i+1, right)
	t.emit(NodeSplit, path, []K{median}, parent.id, left.id, right.id)
}

// insertNonFull inserts key into the subtree rooted at n, which must not be
// full.
func (t *Tree[K]) insertNonFull(n *node[K], key K, path []int) {
	assert(len(n.keys) < t.maxKeys(), "insertNonFull called for full node")
	i, found := t.find(n, key)
	assert(!found, "insertNonFull called for present key")
	if n.isLeaf() {
		n.keys = slices.Insert(n.keys, i, key)
		t.emit(KeyInserted, path, []K{key}, n.id)
		return
	}
	if len(n.children[i].keys) == t.maxKeys() {
		t.splitChild(n, i, path)
		// the promoted median decides which half we continue in
		if t.cfg.Compare(key, n.keys[i]) > 0 {
			i++
		}
	}
	t.insertNonFull(n.children[i], key, append(path, i))
}
