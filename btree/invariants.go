package btree

import "fmt"

// Check validates the structural invariants of the tree:
//
//   - every node holds at most 2t-1 keys, every node but the root at least t-1;
//   - keys are strictly ascending within nodes and across subtrees;
//   - internal nodes have exactly one child more than keys;
//   - all leaves are at the same depth;
//   - the key count matches Len.
//
// Check is meant for tests and debugging. It returns an error wrapping
// ErrInvariant for the first violation found.
func (t *Tree[K]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if t.root == nil {
		return fmt.Errorf("%w: tree has no root", ErrInvariant)
	}
	if !t.root.isLeaf() && len(t.root.keys) == 0 {
		return fmt.Errorf("%w: empty internal root %d", ErrInvariant, t.root.id)
	}
	count, _, err := t.checkNode(t.root, true, nil, nil)
	if err != nil {
		tracer().Errorf("btree: %v", err)
		return err
	}
	if count != t.length {
		return fmt.Errorf("%w: tree holds %d keys, length is %d", ErrInvariant, count, t.length)
	}
	return nil
}

// checkNode validates the subtree at n, whose keys have to lie strictly
// between lo and hi (nil means unbounded). It returns the number of keys and
// the height of the subtree.
func (t *Tree[K]) checkNode(n *node[K], isRoot bool, lo, hi *K) (keys int, height int, err error) {
	if n == nil {
		return 0, 0, fmt.Errorf("%w: nil node", ErrInvariant)
	}
	if len(n.keys) > t.maxKeys() {
		return 0, 0, fmt.Errorf("%w: node %d holds %d keys, maximum is %d",
			ErrInvariant, n.id, len(n.keys), t.maxKeys())
	}
	if !isRoot && len(n.keys) < t.minKeys() {
		return 0, 0, fmt.Errorf("%w: node %d holds %d keys, minimum is %d",
			ErrInvariant, n.id, len(n.keys), t.minKeys())
	}
	for i, k := range n.keys {
		if i > 0 && t.cfg.Compare(n.keys[i-1], k) >= 0 {
			return 0, 0, fmt.Errorf("%w: keys of node %d not ascending at index %d", ErrInvariant, n.id, i)
		}
		if lo != nil && t.cfg.Compare(*lo, k) >= 0 || hi != nil && t.cfg.Compare(k, *hi) >= 0 {
			return 0, 0, fmt.Errorf("%w: key %v of node %d out of subtree range", ErrInvariant, k, n.id)
		}
	}
	if n.isLeaf() {
		return len(n.keys), 1, nil
	}
	if len(n.children) != len(n.keys)+1 {
		return 0, 0, fmt.Errorf("%w: node %d has %d keys and %d children",
			ErrInvariant, n.id, len(n.keys), len(n.children))
	}
	keys = len(n.keys)
	for i, child := range n.children {
		clo, chi := lo, hi
		if i > 0 {
			clo = &n.keys[i-1]
		}
		if i < len(n.keys) {
			chi = &n.keys[i]
		}
		cKeys, cHeight, cErr := t.checkNode(child, false, clo, chi)
		if cErr != nil {
			return 0, 0, cErr
		}
		keys += cKeys
		if i == 0 {
			height = cHeight
		} else if cHeight != height {
			return 0, 0, fmt.Errorf("%w: leaves below node %d at different depths", ErrInvariant, n.id)
		}
	}
	return keys, height + 1, nil
}
