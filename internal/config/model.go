package config

import (
	"fmt"
	"math"

	"github.com/vk/causalfaker/internal/dag"
)

// MaxNodeID is the largest node id a model may use. The graph allocates
// per-node storage for every id up to the maximum, so a stray huge id would
// otherwise exhaust memory before anything else is checked.
const MaxNodeID = 1<<20 - 1

// Model is the unified, format-agnostic representation of a causal model
// definition.
type Model struct {
	Name        string
	Description string
	// Sources lists the files the model was read from, if any.
	Sources []string
	Edges   []*Edge
}

// Edge is one weighted parent -> child link as written by the user.
type Edge struct {
	From   int
	To     int
	Weight float64
}

// Weights converts the model into the edge list consumed by dag.New. When a
// pair is listed more than once the last occurrence wins.
func (m *Model) Weights() (dag.Weights, error) {
	if m == nil || len(m.Edges) == 0 {
		return nil, fmt.Errorf("model %q declares no edges", m.name())
	}

	w := make(dag.Weights, len(m.Edges))
	for i, e := range m.Edges {
		if e.From < 0 || e.To < 0 {
			return nil, fmt.Errorf("edge %d (%d -> %d): node ids must not be negative", i, e.From, e.To)
		}
		if e.From > MaxNodeID || e.To > MaxNodeID {
			return nil, fmt.Errorf("edge %d (%d -> %d): node ids must not exceed %d", i, e.From, e.To, MaxNodeID)
		}
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return nil, fmt.Errorf("edge %d (%d -> %d): weight must be finite, got %v", i, e.From, e.To, e.Weight)
		}
		w[dag.Edge{Parent: dag.Node(e.From), Child: dag.Node(e.To)}] = e.Weight
	}
	return w, nil
}

// Merge appends the edges of other to m and fills in missing metadata.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	if m.Name == "" {
		m.Name = other.Name
	}
	if m.Description == "" {
		m.Description = other.Description
	}
	m.Sources = append(m.Sources, other.Sources...)
	m.Edges = append(m.Edges, other.Edges...)
}

func (m *Model) name() string {
	if m == nil || m.Name == "" {
		return "unnamed"
	}
	return m.Name
}
