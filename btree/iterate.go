package btree

// Ascend calls fn for every key in ascending order.
//
// Iteration stops early if fn returns false.
func (t *Tree[K]) Ascend(fn func(key K) bool) {
	if t == nil || fn == nil {
		return
	}
	t.ascendNode(t.root, fn)
}

func (t *Tree[K]) ascendNode(n *node[K], fn func(key K) bool) bool {
	assert(n != nil, "ascendNode called with nil node")
	for i, key := range n.keys {
		if !n.isLeaf() && !t.ascendNode(n.children[i], fn) {
			return false
		}
		if !fn(key) {
			return false
		}
	}
	if !n.isLeaf() {
		return t.ascendNode(n.children[len(n.children)-1], fn)
	}
	return true
}

// Keys returns all keys in ascending order.
func (t *Tree[K]) Keys() []K {
	keys := make([]K, 0, t.Len())
	t.Ascend(func(key K) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// NodeInfo describes a single node, as handed out by Walk.
type NodeInfo[K any] struct {
	ID       NodeID
	Path     []int // child indices from the root; len(Path) is the depth
	Keys     []K
	Children []NodeID // empty for leaves
}

// IsLeaf reports whether the node has no children.
func (ni NodeInfo[K]) IsLeaf() bool {
	return len(ni.Children) == 0
}

// Walk visits every node in pre-order. Path and Keys of a NodeInfo are copies
// and may be retained by fn. Walking stops early if fn returns false.
func (t *Tree[K]) Walk(fn func(NodeInfo[K]) bool) {
	if t == nil || fn == nil {
		return
	}
	t.walk(t.root, make([]int, 0, 8), func(n *node[K], path []int) bool {
		info := NodeInfo[K]{
			ID:   n.id,
			Path: append([]int{}, path...),
			Keys: append([]K{}, n.keys...),
		}
		for _, child := range n.children {
			info.Children = append(info.Children, child.id)
		}
		return fn(info)
	})
}

// walk visits the subtree at n in pre-order. path is only valid during a call
// of fn.
func (t *Tree[K]) walk(n *node[K], path []int, fn func(n *node[K], path []int) bool) bool {
	if !fn(n, path) {
		return false
	}
	for i, child := range n.children {
		if !t.walk(child, append(path, i), fn) {
			return false
		}
	}
	return true
}
