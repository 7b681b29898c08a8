package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/causalfaker/internal/app"
	"github.com/vk/causalfaker/internal/testutil"
)

// Test for: weights computed from locals and functions flow into the samples.
func TestHCLFeatures_LocalsDriveWeights(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"model.hcl": `
model {
  name = "scaled chain"
}

locals {
  gain = 3
}

edge {
  from   = 0
  to     = 1
  weight = local.gain
}

edge {
  from   = 1
  to     = 2
  weight = max(-1, -2) * abs(local.gain)
}
`,
	}

	result := testutil.RunIntegrationTest(t, files, app.Config{Samples: 25, Seed: 4})
	require.NoError(t, result.Err)

	header, rows := testutil.ParseCSV(t, result.Output)
	assert.Equal(t, []string{"x_0", "x_1", "x_2"}, header)
	require.Len(t, rows, 25)
	for _, r := range rows {
		assert.InDelta(t, 3*r[0], r[1], 1e-9)
		assert.InDelta(t, -3*r[1], r[2], 1e-9)
	}
	assert.Contains(t, result.LogOutput, `model="scaled chain"`)
}

// Test for: a model split over several files is merged before the graph is built.
func TestHCLFeatures_UnifiedLoading(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"roots.hcl": `
edge {
  from   = 0
  to     = 2
  weight = 1
}
`,
		"nested/more.hcl": `
edge {
  from   = 1
  to     = 2
  weight = 1
}
`,
		"extra.yaml": "edges:\n  - {from: 2, to: 3, weight: 0.5}\n",
	}

	result := testutil.RunIntegrationTest(t, files, app.Config{Samples: 10, Seed: 8})
	require.NoError(t, result.Err)

	header, rows := testutil.ParseCSV(t, result.Output)
	assert.Equal(t, []string{"x_0", "x_1", "x_2", "x_3"}, header)
	for _, r := range rows {
		assert.InDelta(t, r[0]+r[1], r[2], 1e-9)
		assert.InDelta(t, 0.5*r[2], r[3], 1e-9)
	}
}

// Test for: random weight functions are reproducible under a fixed seed.
func TestHCLFeatures_SeededRandomWeights(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"model.hcl": `
edge {
  from   = 0
  to     = 1
  weight = uniform(-1, 1)
}

edge {
  from   = 1
  to     = 2
  weight = normal(0, 1)
}
`,
	}

	cfg := app.Config{Samples: 5, Seed: 2024, PrintEquations: true}
	first := testutil.RunIntegrationTest(t, files, cfg)
	second := testutil.RunIntegrationTest(t, files, cfg)
	require.NoError(t, first.Err)
	require.NoError(t, second.Err)

	assert.Equal(t, first.Output, second.Output)
	assert.Contains(t, first.LogOutput, "x_1 = ")
}
