package views

import (
	"sort"

	"github.com/vk/causalfaker/internal/dag"
)

// Sparse is a dictionary-of-keys n×n matrix holding only the declared edges.
// A zero-weight edge is stored explicitly.
type Sparse struct {
	n       int
	entries map[dag.Edge]float64
}

// Shape returns the matrix dimensions.
func (s *Sparse) Shape() (rows, cols int) { return s.n, s.n }

// At returns the entry at [parent][child], 0 when absent.
func (s *Sparse) At(parent, child dag.Node) float64 {
	return s.entries[dag.Edge{Parent: parent, Child: child}]
}

// Has reports whether the entry is stored.
func (s *Sparse) Has(parent, child dag.Node) bool {
	_, ok := s.entries[dag.Edge{Parent: parent, Child: child}]
	return ok
}

// NonZero returns the stored positions ordered by parent, then child.
func (s *Sparse) NonZero() []dag.Edge {
	keys := make([]dag.Edge, 0, len(s.entries))
	for e := range s.entries {
		keys = append(keys, e)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Parent != keys[j].Parent {
			return keys[i].Parent < keys[j].Parent
		}
		return keys[i].Child < keys[j].Child
	})
	return keys
}

// Len is the number of stored entries.
func (s *Sparse) Len() int { return len(s.entries) }
