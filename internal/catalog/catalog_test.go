package catalog

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/causalfaker/internal/dag"
	"github.com/vk/causalfaker/internal/sampler"
)

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"chain", "collider", "confounder", "demo", "diamond"}, Names())
}

func TestGet_AllExamplesAreDAGs(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			m, err := Get(name, rng)
			require.NoError(t, err)
			assert.Equal(t, name, m.Name)
			assert.NotEmpty(t, Describe(name))

			for _, e := range m.Edges {
				assert.GreaterOrEqual(t, e.Weight, 0.0)
				assert.Less(t, e.Weight, 1.0)
			}

			w, err := m.Weights()
			require.NoError(t, err)
			_, err = dag.New(w)
			require.NoError(t, err)
		})
	}
}

func TestGet_Structure(t *testing.T) {
	testCases := []struct {
		name   string
		nodes  int
		levels dag.Levels
	}{
		{name: "chain", nodes: 3, levels: dag.Levels{{0}, {1}, {2}}},
		{name: "confounder", nodes: 6, levels: dag.Levels{{0, 1, 2}, {5}, {3}, {4}}},
		{name: "collider", nodes: 6, levels: dag.Levels{{0, 1, 2}, {3}, {4}, {5}}},
		{name: "demo", nodes: 6, levels: dag.Levels{{0, 2}, {3}, {1}, {4}, {5}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Get(tc.name, constSource(0.5))
			require.NoError(t, err)
			w, err := m.Weights()
			require.NoError(t, err)
			g, err := dag.New(w)
			require.NoError(t, err)

			assert.Equal(t, tc.nodes, g.N())
			assert.Equal(t, tc.levels, g.Levels())
		})
	}
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("tree", constSource(0))
	assert.ErrorContains(t, err, `unknown example "tree"`)
}

func TestNewSource_IndependentOfSampleStreams(t *testing.T) {
	for _, seed := range []uint64{0, 1, 42, 1 << 40} {
		m, err := Get("chain", NewSource(seed))
		require.NoError(t, err)

		first := sampler.ChunkSource(seed, 0, 0).Float64()
		for _, e := range m.Edges {
			assert.NotEqual(t, first, e.Weight, "seed %d", seed)
		}

		again, err := Get("chain", NewSource(seed))
		require.NoError(t, err)
		assert.Equal(t, m.Edges, again.Edges)
	}
}
