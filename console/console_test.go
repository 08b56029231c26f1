package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/btreekit/btree"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func newPrinter(t *testing.T) (*Printer, *bytes.Buffer) {
	t.Helper()
	gtrace.CoreTracer = gotestingadapter.New(t)
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	buf := &bytes.Buffer{}
	p := New(buf, nil)
	p.DisableColor()
	return p, buf
}

func TestPrintEvents(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	p, buf := newPrinter(t)
	cfg := btree.OrderedConfig[int](2)
	cfg.Observer = Observer[int](p)
	tree, err := btree.NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for k := 1; k <= 4; k++ {
		tree.Insert(k)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 event lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[3], "root-grown ") {
		t.Errorf("expected 4th event to be root-grown, is %q", lines[3])
	}
	if lines[4] != "node-split    path=[] keys=[2] nodes=[2 1 3]" {
		t.Errorf("unexpected split line %q", lines[4])
	}
	if lines[5] != "key-inserted  path=[1] keys=[4] nodes=[3]" {
		t.Errorf("unexpected insert line %q", lines[5])
	}
}

func TestPrintTree(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	p, buf := newPrinter(t)
	tree, _ := btree.New[int](2)
	for k := 1; k <= 4; k++ {
		tree.Insert(k)
	}
	p.Width = 0
	if err := PrintTree(p, tree); err != nil {
		t.Fatal(err)
	}
	want := "NODE 2:[2]\n  NODE 1:[1]\n  NODE 3:[3 4]\n"
	if buf.String() != want {
		t.Errorf("got\n%s\nwant\n%s", buf.String(), want)
	}
	buf.Reset()
	p.Width = 8
	PrintTree(p, tree)
	if !strings.Contains(buf.String(), "  NODE …\n") {
		t.Errorf("expected clipped lines, got\n%s", buf.String())
	}
}

func TestStatus(t *testing.T) {
	p, buf := newPrinter(t)
	p.Status(true, "+%d", 7)
	p.Status(false, "-%d", 8)
	if buf.String() != "+7\n-8\n" {
		t.Errorf("unexpected status output %q", buf.String())
	}
}

func TestClip(t *testing.T) {
	cases := []struct {
		s     string
		width int
		want  string
	}{
		{"abc", 0, "abc"},
		{"abc", 3, "abc"},
		{"abcd", 3, "ab…"},
		{"äöüß", 2, "ä…"},
		{"abc", 1, "…"},
	}
	for _, c := range cases {
		if got := clip(c.s, c.width); got != c.want {
			t.Errorf("clip(%q, %d) = %q, want %q", c.s, c.width, got, c.want)
		}
	}
}
