package cli

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, exit, err := Parse([]string{"model.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, "model.hcl", cfg.ModelPath)
	assert.Equal(t, 1000, cfg.Samples)
	assert.Equal(t, 1, cfg.Batches)
	assert.Equal(t, "csv", cfg.Format)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Zero(t, cfg.Seed)
}

func TestParse_AllFlags(t *testing.T) {
	cfg, exit, err := Parse([]string{
		"-m", "models/",
		"-n", "50",
		"-batches", "0",
		"-interval", "250ms",
		"-seed", "12",
		"-workers", "3",
		"-format", "JSONL",
		"-out", "data.jsonl",
		"-print-equations",
		"-print-levels",
		"-print-matrix",
		"-dot", "g.dot",
		"-emit-url", "http://localhost:3000",
		"-emit-namespace", "/data",
		"-emit-event", "rows",
		"-emit-insecure",
		"-healthcheck-port", "9090",
		"-log-format", "JSON",
		"-log-level", "DEBUG",
	}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, "models/", cfg.ModelPath)
	assert.Equal(t, 50, cfg.Samples)
	assert.Equal(t, 0, cfg.Batches)
	assert.Equal(t, 250*time.Millisecond, cfg.Interval)
	assert.Equal(t, uint64(12), cfg.Seed)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "jsonl", cfg.Format)
	assert.Equal(t, "data.jsonl", cfg.OutPath)
	assert.True(t, cfg.PrintEquations)
	assert.True(t, cfg.PrintLevels)
	assert.True(t, cfg.PrintMatrix)
	assert.Equal(t, "g.dot", cfg.DOTPath)
	assert.Equal(t, "http://localhost:3000", cfg.EmitURL)
	assert.Equal(t, "/data", cfg.EmitNamespace)
	assert.Equal(t, "rows", cfg.EmitEvent)
	assert.True(t, cfg.EmitInsecure)
	assert.Equal(t, 9090, cfg.HealthcheckPort)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_ModelFlagWins(t *testing.T) {
	cfg, _, err := Parse([]string{"-model", "a.hcl", "-m", "b.hcl", "c.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "a.hcl", cfg.ModelPath)
}

func TestParse_Example(t *testing.T) {
	cfg, exit, err := Parse([]string{"-example", "demo"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)
	assert.Equal(t, "demo", cfg.Example)
	assert.Empty(t, cfg.ModelPath)
}

func TestParse_ListExamples(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, exit, err := Parse([]string{"-list-examples"}, out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "confounder")
	assert.Contains(t, out.String(), "collider")
}

func TestParse_UsageWhenNoModel(t *testing.T) {
	for _, args := range [][]string{nil, {"-h"}} {
		out := &bytes.Buffer{}
		cfg, exit, err := Parse(args, out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		msg  string
	}{
		{name: "unknown flag", args: []string{"-nope"}, msg: "flag provided but not defined: -nope"},
		{name: "bad log format", args: []string{"-log-format", "xml", "m.hcl"}, msg: "invalid log-format"},
		{name: "bad log level", args: []string{"-log-level", "trace", "m.hcl"}, msg: "invalid log-level"},
		{name: "model and example", args: []string{"-example", "chain", "m.hcl"}, msg: "cannot be used together"},
		{name: "unknown example", args: []string{"-example", "tree"}, msg: `unknown example "tree"`},
		{name: "negative samples", args: []string{"-n", "-1", "m.hcl"}, msg: "samples must not be negative"},
		{name: "streaming without interval", args: []string{"-batches", "0", "m.hcl"}, msg: "requires a positive interval"},
		{name: "zero workers", args: []string{"-workers", "0", "m.hcl"}, msg: "workers must be at least 1"},
		{name: "bad format", args: []string{"-format", "xlsx", "m.hcl"}, msg: "unsupported output format"},
		{name: "event without url", args: []string{"-emit-event", "rows", "m.hcl"}, msg: "require an emit URL"},
		{name: "insecure without url", args: []string{"-emit-insecure", "m.hcl"}, msg: "require an emit URL"},
		{name: "port out of range", args: []string{"-healthcheck-port", "70000", "m.hcl"}, msg: "out of range"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, exit, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)
			assert.False(t, exit)

			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr))
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.msg)
		})
	}
}
