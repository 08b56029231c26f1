package instrument

import (
	"strings"
	"testing"

	"github.com/npillmayer/btreekit/btree"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTrackedTree(t *testing.T) (*btree.Tree[int], *Collector[int]) {
	t.Helper()
	c := NewCollector[int]("test", nil)
	cfg := btree.OrderedConfig[int](2)
	cfg.Observer = c
	tree, err := btree.NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig failed: %v", err)
	}
	c.Track(tree)
	return tree, c
}

func TestCollectorCountsEvents(t *testing.T) {
	tree, c := newTrackedTree(t)
	for k := 1; k <= 4; k++ {
		tree.Insert(k)
	}
	tree.Delete(4)
	tree.Delete(2) // merge and root collapse
	cases := map[btree.EventKind]float64{
		btree.KeyInserted: 4,
		btree.NodeSplit:   1,
		btree.RootGrown:   1,
		btree.NodesMerged: 1,
		btree.RootShrunk:  1,
		btree.KeyRemoved:  2,
		btree.RotatedLeft: 0,
	}
	for kind, want := range cases {
		got := testutil.ToFloat64(c.events.WithLabelValues(kind.String()))
		if got != want {
			t.Errorf("%s: got=%v want=%v", kind, got, want)
		}
	}
}

func TestCollectorGauges(t *testing.T) {
	tree, c := newTrackedTree(t)
	for k := 1; k <= 14; k++ {
		tree.Insert(k)
	}
	reg := prometheus.NewPedanticRegistry()
	reg.MustRegister(c)
	expected := `
# HELP test_btree_height Number of levels of the tree.
# TYPE test_btree_height gauge
test_btree_height 3
# HELP test_btree_keys Number of keys in the tree.
# TYPE test_btree_keys gauge
test_btree_keys 14
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "test_btree_height", "test_btree_keys")
	if err != nil {
		t.Fatal(err)
	}
	c.Track(nil)
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, mf := range mfs {
		if mf.GetName() == "test_btree_keys" {
			t.Errorf("untracked collector still reports gauges")
		}
	}
}
