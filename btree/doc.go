/*
Package btree implements an in-memory B-tree of minimum degree t.

Every node holds between t-1 and 2t-1 keys (the root may hold fewer, down to
zero for the empty tree), internal nodes hold one more child than keys, and
all leaves sit at the same depth. The tree is maintained strictly top-down:

  - Insert splits every full node it is about to enter, so a leaf always has
    room for the new key and no split ever has to travel back up.
  - Delete fills every minimal node it is about to enter, either by rotating
    a key through the parent from a sibling with spare keys or by merging the
    node with a sibling and the separating key. A key found in an internal
    node is replaced by its in-order predecessor or successor, or pulled down
    by a merge when both neighbouring children are minimal.

Height grows only when Insert splits a full root, and shrinks only when a
merge empties the root, in which case the merged child becomes the new root.

Structural changes (key placement, split, merge, rotation, key removal,
root growth and shrinkage) are reported to an optional Observer as Event
records. Observers are notified synchronously and cannot influence the
operation in progress. Package observe provides recorders and an
asynchronous broadcaster.

Keys are visited in order with Ascend, or from any position with a Cursor.

A Tree is not safe for concurrent use. Clients sharing a tree between
goroutines have to guard every operation, reads included, by a lock.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package btree

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'btree'
func tracer() tracing.Trace {
	return tracing.Select("btree")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
