// Package catalog holds small built-in causal models, usable with -example in
// place of a model file.
package catalog

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/vk/causalfaker/internal/config"
)

// Stream is the PCG stream reserved for example weights. The top bit is set,
// which no sampler chunk stream can carry.
const Stream uint64 = 1<<63 | 0x6361_7461_6c6f_67

// NewSource returns the weight source for seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, Stream))
}

// Source supplies uniform weights in [0, 1).
type Source interface {
	Float64() float64
}

type example struct {
	description string
	edges       [][2]int
}

var examples = map[string]example{
	"chain": {
		description: "0 -> 1 -> 2",
		edges:       [][2]int{{0, 1}, {1, 2}},
	},
	"diamond": {
		description: "0 feeds 3 through 1 and 2",
		edges:       [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}},
	},
	"confounder": {
		description: "5 is a common cause of 3 and 4",
		edges:       [][2]int{{0, 3}, {1, 5}, {2, 4}, {3, 4}, {5, 3}, {5, 4}},
	},
	"collider": {
		description: "5 is a common effect of 1, 3 and 4",
		edges:       [][2]int{{0, 3}, {1, 5}, {2, 4}, {3, 4}, {3, 5}, {4, 5}},
	},
	"demo": {
		description: "six-node demo graph",
		edges:       [][2]int{{0, 1}, {1, 4}, {1, 5}, {2, 3}, {3, 1}, {3, 4}, {4, 5}},
	},
}

// Names returns the available example names, sorted.
func Names() []string {
	names := make([]string, 0, len(examples))
	for name := range examples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the one-line description of an example.
func Describe(name string) string {
	return examples[name].description
}

// Get builds the named example with every weight drawn from rng, in edge
// order.
func Get(name string, rng Source) (*config.Model, error) {
	ex, ok := examples[name]
	if !ok {
		return nil, fmt.Errorf("unknown example %q (available: %v)", name, Names())
	}

	m := &config.Model{Name: name, Description: ex.description}
	for _, e := range ex.edges {
		m.Edges = append(m.Edges, &config.Edge{From: e[0], To: e[1], Weight: rng.Float64()})
	}
	return m, nil
}
