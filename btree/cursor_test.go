package btree

import (
	"errors"
	"testing"
)

func collect(c *Cursor[int], ok bool) []int {
	var keys []int
	for ; ok; ok = c.Next() {
		keys = append(keys, c.Key())
	}
	return keys
}

func TestCursorFirst(t *testing.T) {
	for _, degree := range []int{2, 3, 5} {
		tree := newIntTree(t, degree, seq(1, 60)...)
		c, err := NewCursor(tree)
		if err != nil {
			t.Fatalf("new cursor failed: %v", err)
		}
		if got := collect(c, c.First()); !equalInts(got, seq(1, 60)) {
			t.Fatalf("degree %d: cursor yields %v", degree, got)
		}
		if c.Valid() || c.Next() {
			t.Fatalf("degree %d: exhausted cursor still valid", degree)
		}
	}
}

func TestCursorSeek(t *testing.T) {
	tree := newIntTree(t, 2)
	for k := 2; k <= 40; k += 2 {
		tree.Insert(k)
	}
	c, _ := NewCursor(tree)
	cases := []struct {
		target int
		first  int
		count  int
	}{
		{target: -5, first: 2, count: 20},
		{target: 2, first: 2, count: 20},
		{target: 3, first: 4, count: 19},
		{target: 17, first: 18, count: 12},
		{target: 24, first: 24, count: 9},
		{target: 40, first: 40, count: 1},
	}
	for _, tc := range cases {
		keys := collect(c, c.Seek(tc.target))
		if len(keys) != tc.count || keys[0] != tc.first {
			t.Fatalf("seek(%d): got %v, want %d keys from %d", tc.target, keys, tc.count, tc.first)
		}
	}
	if c.Seek(41) {
		t.Fatalf("seek beyond the largest key must fail, got %d", c.Key())
	}
}

func TestCursorEmptyTree(t *testing.T) {
	tree := newIntTree(t, 3)
	c, _ := NewCursor(tree)
	if c.First() || c.Seek(1) || c.Next() {
		t.Fatalf("cursor on empty tree must be invalid")
	}
	if _, err := NewCursor[int](nil); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for nil tree, got %v", err)
	}
}
