package yaml_adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/causalfaker/internal/config"
)

func TestParse(t *testing.T) {
	m, err := Parse([]byte(`
name: diamond
description: two paths
edges:
  - {from: 0, to: 1, weight: 0.5}
  - {from: 0, to: 2, weight: -1}
  - from: 1
    to: 3
    weight: 2
  - {from: 2, to: 3, weight: 0}
`))
	require.NoError(t, err)

	assert.Equal(t, "diamond", m.Name)
	assert.Equal(t, "two paths", m.Description)
	assert.Equal(t, []*config.Edge{
		{From: 0, To: 1, Weight: 0.5},
		{From: 0, To: 2, Weight: -1},
		{From: 1, To: 3, Weight: 2},
		{From: 2, To: 3, Weight: 0},
	}, m.Edges)
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
		msg  string
	}{
		{name: "malformed", doc: "edges: [", msg: "unmarshaling YAML"},
		{name: "unknown field", doc: "nodes: 3\n", msg: "unmarshaling YAML"},
		{name: "missing from", doc: "edges:\n  - {to: 1, weight: 1}\n", msg: "has no 'from'"},
		{name: "missing to", doc: "edges:\n  - {from: 1, weight: 1}\n", msg: "has no 'to'"},
		{name: "missing weight", doc: "edges:\n  - {from: 0, to: 1}\n", msg: "(0 -> 1) has no 'weight'"},
		{name: "string weight", doc: "edges:\n  - {from: 0, to: 1, weight: heavy}\n", msg: "unmarshaling YAML"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	m, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, m.Edges)

	_, err = m.Weights()
	assert.ErrorContains(t, err, "declares no edges")
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("name: split\nedges:\n  - {from: 0, to: 1, weight: 1}\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("edges:\n  - {from: 1, to: 2, weight: 3}\n"), 0o600))

	m, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "split", m.Name)
	assert.Equal(t, []string{filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yml")}, m.Sources)
	assert.Len(t, m.Edges, 2)
}

func TestLoader_Load_ErrorNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("edges:\n  - {from: 0}\n"), 0o600))

	_, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}
