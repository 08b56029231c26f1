package btree

import (
	"math/rand"
	"testing"
)

func benchKeys(n int) []int {
	rnd := rand.New(rand.NewSource(17))
	return rnd.Perm(n)
}

func BenchmarkInsert(b *testing.B) {
	keys := benchKeys(10000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree, _ := New[int](DefaultDegree)
		for _, k := range keys {
			tree.Insert(k)
		}
	}
}

func BenchmarkSearch(b *testing.B) {
	keys := benchKeys(10000)
	tree, _ := New[int](DefaultDegree)
	for _, k := range keys {
		tree.Insert(k)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Search(keys[i%len(keys)])
	}
}

func BenchmarkDelete(b *testing.B) {
	keys := benchKeys(10000)
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		tree, _ := New[int](DefaultDegree)
		for _, k := range keys {
			tree.Insert(k)
		}
		b.StartTimer()
		for _, k := range keys {
			tree.Delete(k)
		}
	}
}
