package btree

import (
	"fmt"
	"io"
	"strings"
)

// String renders the tree in a compact bracket notation, listing children
// between the keys separating them, e.g. "[[1] 2 [3 4]]". The empty tree
// renders as "[]".
func (t *Tree[K]) String() string {
	var b strings.Builder
	writeNode(&b, t.root)
	return b.String()
}

func writeNode[K any](b *strings.Builder, n *node[K]) {
	b.WriteByte('[')
	for i, key := range n.keys {
		if !n.isLeaf() {
			writeNode(b, n.children[i])
		}
		if i > 0 || !n.isLeaf() {
			b.WriteByte(' ')
		}
		fmt.Fprint(b, key)
		if !n.isLeaf() {
			b.WriteByte(' ')
		}
	}
	if !n.isLeaf() {
		writeNode(b, n.children[len(n.children)-1])
	}
	b.WriteByte(']')
}

// Print writes an indented outline of the tree to w, one node per line.
// It is used for testing and debugging.
func (t *Tree[K]) Print(w io.Writer) {
	t.walk(t.root, nil, func(n *node[K], path []int) bool {
		fmt.Fprintf(w, "%sNODE %d:%v\n", strings.Repeat("  ", len(path)), n.id, n.keys)
		return true
	})
}
