package btree

import (
	"fmt"
	"io"
	"strings"
)

// WriteDot outputs the internal structure of a tree in Graphviz DOT format
// (for debugging purposes). Nodes are drawn as records with one field per
// key; every edge leaves the field boundary between the keys its subtree
// lies between.
func (t *Tree[K]) WriteDot(w io.Writer) error {
	var nodelist, edgelist strings.Builder
	t.walk(t.root, nil, func(n *node[K], path []int) bool {
		fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\"%s];\n", n.id, recordLabel(n), nodeDotStyles(n.isLeaf(), len(path)))
		for i, child := range n.children {
			fmt.Fprintf(&edgelist, "\"%d\":c%d -> \"%d\";\n", n.id, i, child.id)
		}
		return true
	})
	var err error
	write := func(s string) {
		if err == nil {
			_, err = io.WriteString(w, s)
		}
	}
	write("strict digraph {\n")
	write("\tnode [fontname=Arial,fontsize=12,shape=record];\n")
	write(nodelist.String())
	write(edgelist.String())
	write("}\n")
	return err
}

// recordLabel builds a record label "<c0>|k0|<c1>|k1|<c2>" for internal
// nodes and "k0|k1" for leaves.
func recordLabel[K any](n *node[K]) string {
	var b strings.Builder
	for i, key := range n.keys {
		if !n.isLeaf() {
			fmt.Fprintf(&b, "<c%d>|", i)
		} else if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(escapeDot(fmt.Sprint(key)))
		if !n.isLeaf() {
			b.WriteByte('|')
		}
	}
	if !n.isLeaf() {
		fmt.Fprintf(&b, "<c%d>", len(n.keys))
	}
	return b.String()
}

func escapeDot(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `|`, `\|`, `{`, `\{`, `}`, `\}`, `<`, `\<`, `>`, `\>`)
	return r.Replace(s)
}

func nodeDotStyles(isleaf bool, depth int) string {
	s := ",style=filled"
	if isleaf {
		s += ",fillcolor=\"white\""
	} else {
		s += fmt.Sprintf(",fillcolor=\"%s\"", hexcolors[depth%len(hexcolors)])
	}
	return s
}

var hexcolors = [...]string{"#CCDDFF", "#AACCFF", "#88BBFF", "#66AAFF",
	"#4499FF", "#2288FF", "#0077FF", "#0066FF"}
