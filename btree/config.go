package btree

import (
	"cmp"
	"fmt"
)

const (
	// MinDegree is the smallest legal minimum degree. A tree of degree 2 is a
	// 2-3-4 tree.
	MinDegree = 2
	// DefaultDegree is a reasonable degree for in-memory use with small keys.
	DefaultDegree = 16
)

// Config configures a B-tree.
type Config[K any] struct {
	// Degree is the minimum degree t. Nodes hold at most 2t-1 keys and, except
	// for the root, at least t-1 keys.
	Degree int
	// Compare defines the key order. It returns a negative number if a < b,
	// zero if a == b and a positive number if a > b.
	Compare func(a, b K) int
	// Observer, if set, receives an Event for every structural change.
	Observer Observer[K]
}

// OrderedConfig returns a configuration for naturally ordered keys.
func OrderedConfig[K cmp.Ordered](degree int) Config[K] {
	return Config[K]{
		Degree:  degree,
		Compare: cmp.Compare[K],
	}
}

func (cfg Config[K]) validate() error {
	if cfg.Degree < MinDegree {
		return fmt.Errorf("%w: degree %d is less than %d", ErrInvalidConfig, cfg.Degree, MinDegree)
	}
	if cfg.Compare == nil {
		return fmt.Errorf("%w: compare function is required", ErrInvalidConfig)
	}
	return nil
}
