// Package testutil provides an end-to-end harness for integration tests: it
// writes model files to a temporary directory, runs a full App over them and
// returns the produced data and logs.
package testutil

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/causalfaker/internal/app"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
	Dir       string
}

// RunIntegrationTest runs the app with a background context.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, cfg)
}

// RunIntegrationTestWithContext writes files (relative paths to contents)
// into a fresh directory and runs the app over it. When cfg names neither a
// model path nor an example, the directory itself is the model path.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	if cfg.ModelPath == "" && cfg.Example == "" {
		cfg.ModelPath = tmpDir
	} else if cfg.ModelPath != "" && !filepath.IsAbs(cfg.ModelPath) {
		cfg.ModelPath = filepath.Join(tmpDir, cfg.ModelPath)
	}
	if cfg.Workers == 0 {
		cfg.Workers = 4
	}
	if cfg.Batches == 0 && cfg.Interval == 0 {
		cfg.Batches = 1
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	cfg.LogFormat = "text"

	validated, err := app.NewConfig(cfg)
	if err != nil {
		return &HarnessResult{Err: err, Dir: tmpDir}
	}

	out := &app.SafeBuffer{}
	logs := &app.SafeBuffer{}
	testApp := app.NewApp(out, logs, validated)
	runErr := testApp.Run(ctx)

	if os.Getenv("CAUSALFAKER_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       runErr,
		App:       testApp,
		Dir:       tmpDir,
	}
}

// ParseCSV splits CSV output into its header and numeric rows.
func ParseCSV(t *testing.T, data string) ([]string, [][]float64) {
	t.Helper()

	records, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records, "csv output has no header")

	rows := make([][]float64, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]float64, len(rec))
		for i, cell := range rec {
			row[i], err = strconv.ParseFloat(cell, 64)
			require.NoError(t, err)
		}
		rows = append(rows, row)
	}
	return records[0], rows
}
