package btree

// Location describes where a key resides in a tree.
type Location struct {
	Path  []int  // child indices from the root to the node holding the key
	Node  NodeID // the node holding the key
	Index int    // position of the key within the node
}

// Search reports whether key is present in the tree.
func (t *Tree[K]) Search(key K) bool {
	for n := t.root; ; {
		i, found := t.find(n, key)
		if found {
			return true
		}
		if n.isLeaf() {
			return false
		}
		n = n.children[i]
	}
}

// Locate finds key and reports its location. The location is valid until the
// next modification of the tree.
func (t *Tree[K]) Locate(key K) (Location, bool) {
	path := []int{}
	for n := t.root; ; {
		i, found := t.find(n, key)
		if found {
			return Location{Path: path, Node: n.id, Index: i}, true
		}
		if n.isLeaf() {
			return Location{}, false
		}
		path = append(path, i)
		n = n.children[i]
	}
}

// Min returns the smallest key of the tree. The second return value is false
// for an empty tree.
func (t *Tree[K]) Min() (K, bool) {
	if t.IsEmpty() {
		var zero K
		return zero, false
	}
	return minKey(t.root), true
}

// Max returns the largest key of the tree. The second return value is false
// for an empty tree.
func (t *Tree[K]) Max() (K, bool) {
	if t.IsEmpty() {
		var zero K
		return zero, false
	}
	return maxKey(t.root), true
}
