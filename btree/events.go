package btree

import "fmt"

// EventKind classifies a structural change of a tree.
type EventKind int8

const (
	// KeyInserted: a key has been placed into a leaf. Nodes = [leaf].
	KeyInserted EventKind = iota
	// NodeSplit: a full child has been split and its median promoted into the
	// parent. Nodes = [parent, left, right], Keys = [median].
	NodeSplit
	// NodesMerged: a child has absorbed its right sibling together with the
	// separating key of the parent. Nodes = [parent, survivor, absorbed],
	// Keys = [separator].
	NodesMerged
	// RotatedLeft: a deficient child has borrowed from its right sibling.
	// Nodes = [parent, donor, recipient], Keys = [moved up, moved down].
	RotatedLeft
	// RotatedRight: a deficient child has borrowed from its left sibling.
	// Nodes = [parent, donor, recipient], Keys = [moved up, moved down].
	RotatedRight
	// KeyReplaced: a key of an internal node has been overwritten by its
	// in-order predecessor or successor. Nodes = [node], Keys = [old, new].
	KeyReplaced
	// KeyRemoved: a key has been removed from a leaf. Nodes = [leaf].
	KeyRemoved
	// RootGrown: a new root has been put on top of the old one.
	// Nodes = [new root, old root].
	RootGrown
	// RootShrunk: the root has been replaced by its only child, or the tree has
	// been cleared. Nodes = [old root, new root].
	RootShrunk
)

var eventKindNames = [...]string{
	KeyInserted:  "key-inserted",
	NodeSplit:    "node-split",
	NodesMerged:  "nodes-merged",
	RotatedLeft:  "rotated-left",
	RotatedRight: "rotated-right",
	KeyReplaced:  "key-replaced",
	KeyRemoved:   "key-removed",
	RootGrown:    "root-grown",
	RootShrunk:   "root-shrunk",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventKindNames[k]
}

// EventKinds lists all event kinds in declaration order.
func EventKinds() []EventKind {
	kinds := make([]EventKind, len(eventKindNames))
	for i := range kinds {
		kinds[i] = EventKind(i)
	}
	return kinds
}

// Event records a single structural change.
//
// Path holds the child indices leading from the root to the node where the
// change took place; for splits, merges and rotations this is the parent.
// Path is empty for changes at the root. Paths are valid for the tree shape
// at the time the event is emitted.
type Event[K any] struct {
	Kind  EventKind
	Path  []int
	Keys  []K
	Nodes []NodeID
}

func (e Event[K]) String() string {
	return fmt.Sprintf("%s path=%v keys=%v nodes=%v", e.Kind, e.Path, e.Keys, e.Nodes)
}

// Observer receives structural change events of a tree.
//
// Notify is called synchronously while the tree is being modified. It must
// not call back into the tree, and it should return quickly. The tree ignores
// whatever the observer does with an event.
type Observer[K any] interface {
	Notify(Event[K])
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc[K any] func(Event[K])

// Notify calls f(e).
func (f ObserverFunc[K]) Notify(e Event[K]) {
	f(e)
}

// emit notifies the observer, if any. path is copied, as callers keep
// extending their path slices.
func (t *Tree[K]) emit(kind EventKind, path []int, keys []K, nodes ...NodeID) {
	if t.cfg.Observer == nil {
		return
	}
	t.cfg.Observer.Notify(Event[K]{
		Kind:  kind,
		Path:  append([]int{}, path...),
		Keys:  keys,
		Nodes: nodes,
	})
}
