package btree

import (
	"slices"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// recordingTree creates a tree of degree 2 with keys inserted in order, then
// starts recording events.
func recordingTree(t *testing.T, keys ...int) (*Tree[int], *[]Event[int]) {
	t.Helper()
	events := &[]Event[int]{}
	cfg := OrderedConfig[int](2)
	recording := false
	cfg.Observer = ObserverFunc[int](func(e Event[int]) {
		if recording {
			*events = append(*events, e)
		}
	})
	tree, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig failed: %v", err)
	}
	for _, k := range keys {
		tree.Insert(k)
	}
	recording = true
	return tree, events
}

func kinds(events []Event[int]) []EventKind {
	var out []EventKind
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

func TestDeleteCases(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "btree")
	defer teardown()
	//
	scenario := []int{10, 20, 5, 6, 12, 30, 7, 17} // [[5 6 7] 10 [12 17] 20 [30]]
	ascending := seq(1, 14)                        // [[[1] 2 [3]] 4 [[5] 6 [7]] 8 [[9] 10 [11] 12 [13 14]]]
	descending := slices.Clone(ascending)
	slices.Reverse(descending) // [[[1 2] 3 [4] 5 [6]] 7 [[8] 9 [10]] 11 [[12] 13 [14]]]
	cases := []struct {
		name   string
		build  []int
		before []int // deleted before recording starts
		key    int
		want   string
		events []EventKind
	}{
		{
			name:   "1: remove from leaf",
			build:  scenario,
			key:    6,
			want:   "[[5 7] 10 [12 17] 20 [30]]",
			events: []EventKind{KeyRemoved},
		},
		{
			name:   "2a: replace by predecessor",
			build:  scenario,
			key:    10,
			want:   "[[5 6] 7 [12 17] 20 [30]]",
			events: []EventKind{KeyReplaced, KeyRemoved},
		},
		{
			name:   "2b: replace by successor",
			build:  scenario,
			before: []int{6, 7},
			key:    10,
			want:   "[[5] 12 [17] 20 [30]]",
			events: []EventKind{KeyReplaced, KeyRemoved},
		},
		{
			name:   "2c: merge around key",
			build:  ascending,
			key:    4,
			want:   "[[[1] 2 [3 5] 6 [7]] 8 [[9] 10 [11] 12 [13 14]]]",
			events: []EventKind{NodesMerged, NodesMerged, KeyRemoved},
		},
		{
			name:   "3a: borrow from right sibling",
			build:  scenario,
			before: []int{6, 7},
			key:    5,
			want:   "[[10] 12 [17] 20 [30]]",
			events: []EventKind{RotatedLeft, KeyRemoved},
		},
		{
			name:   "3a': borrow from left sibling",
			build:  scenario,
			before: []int{6, 7},
			key:    30,
			want:   "[[5] 10 [12] 17 [20]]",
			events: []EventKind{RotatedRight, KeyRemoved},
		},
		{
			name:   "3a: internal borrow from right sibling",
			build:  ascending,
			key:    7,
			want:   "[[[1] 2 [3]] 4 [[5] 6 [8 9]] 10 [[11] 12 [13 14]]]",
			events: []EventKind{RotatedLeft, NodesMerged, KeyRemoved},
		},
		{
			name:   "3a': internal borrow from left sibling",
			build:  descending,
			key:    8,
			want:   "[[[1 2] 3 [4]] 5 [[6] 7 [9 10]] 11 [[12] 13 [14]]]",
			events: []EventKind{RotatedRight, NodesMerged, KeyRemoved},
		},
		{
			name:   "3b: merge with right sibling",
			build:  scenario,
			before: []int{6, 7, 30},
			key:    5,
			want:   "[[10 12] 17 [20]]",
			events: []EventKind{NodesMerged, KeyRemoved},
		},
		{
			name:   "3b: merge cascading to leaf level",
			build:  ascending,
			key:    1,
			want:   "[[[2 3] 4 [5] 6 [7]] 8 [[9] 10 [11] 12 [13 14]]]",
			events: []EventKind{NodesMerged, NodesMerged, KeyRemoved},
		},
		{
			name:   "3b: collapse of root",
			build:  []int{1, 2, 3, 4},
			before: []int{1},
			key:    2,
			want:   "[3 4]",
			events: []EventKind{NodesMerged, RootShrunk, KeyRemoved},
		},
		{
			name:   "2c: collapse of root",
			build:  []int{1, 2, 3, 4},
			before: []int{4},
			key:    2,
			want:   "[1 3]",
			events: []EventKind{NodesMerged, RootShrunk, KeyRemoved},
		},
		{
			name:   "absent key",
			build:  scenario,
			key:    13,
			want:   "[[5 6 7] 10 [12 17] 20 [30]]",
			events: nil,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tree, events := recordingTree(t, c.build...)
			for _, k := range c.before {
				if !tree.Delete(k) {
					t.Fatalf("setup: Delete(%d) failed", k)
				}
			}
			*events = nil
			present := tree.Search(c.key)
			if got := tree.Delete(c.key); got != present {
				t.Fatalf("Delete(%d) = %v, want %v", c.key, got, present)
			}
			if got := tree.String(); got != c.want {
				t.Errorf("unexpected shape:\n got=%s\nwant=%s", got, c.want)
			}
			if got := kinds(*events); !slices.Equal(got, c.events) {
				t.Errorf("unexpected events: got=%v want=%v", got, c.events)
			}
			mustCheck(t, tree)
		})
	}
}

func TestDeleteEventPayloads(t *testing.T) {
	tree, events := recordingTree(t, seq(1, 14)...)
	rootID := tree.root.id
	leftID, midID, rightID := tree.root.children[0].id, tree.root.children[1].id, tree.root.children[2].id
	tree.Delete(7)
	ev := *events
	if len(ev) != 3 {
		t.Fatalf("expected 3 events, got %v", ev)
	}
	rot := ev[0]
	if rot.Kind != RotatedLeft || len(rot.Path) != 0 || !slices.Equal(rot.Keys, []int{10, 8}) {
		t.Errorf("unexpected rotation event %v", rot)
	}
	if !slices.Equal(rot.Nodes, []NodeID{rootID, rightID, midID}) {
		t.Errorf("rotation nodes = %v, want [%d %d %d]", rot.Nodes, rootID, rightID, midID)
	}
	merge := ev[1]
	if merge.Kind != NodesMerged || !slices.Equal(merge.Path, []int{1}) || !slices.Equal(merge.Keys, []int{8}) {
		t.Errorf("unexpected merge event %v", merge)
	}
	if merge.Nodes[0] != midID {
		t.Errorf("merge parent = %d, want %d", merge.Nodes[0], midID)
	}
	rm := ev[2]
	if rm.Kind != KeyRemoved || !slices.Equal(rm.Path, []int{1, 1}) || !slices.Equal(rm.Keys, []int{7}) {
		t.Errorf("unexpected removal event %v", rm)
	}
	if rm.Nodes[0] != merge.Nodes[1] {
		t.Errorf("key removed from %d, expected merge survivor %d", rm.Nodes[0], merge.Nodes[1])
	}
	if tree.root.children[0].id != leftID {
		t.Errorf("left subtree root changed")
	}
}

func TestDeleteRootCollapseEvents(t *testing.T) {
	tree, events := recordingTree(t, 1, 2, 3, 4)
	tree.Delete(4)
	oldRoot := tree.root.id
	survivor := tree.root.children[0].id
	*events = nil
	tree.Delete(2)
	shrink := (*events)[1]
	if shrink.Kind != RootShrunk || !slices.Equal(shrink.Nodes, []NodeID{oldRoot, survivor}) {
		t.Fatalf("unexpected shrink event %v", shrink)
	}
	if tree.root.id != survivor || tree.Height() != 1 {
		t.Fatalf("root not replaced by merged child")
	}
	rm := (*events)[2]
	if len(rm.Path) != 0 || rm.Nodes[0] != survivor {
		t.Fatalf("removal should happen at the new root: %v", rm)
	}
}
