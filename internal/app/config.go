package app

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/vk/causalfaker/internal/catalog"
	"github.com/vk/causalfaker/internal/export"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Exactly one of ModelPath and Example selects the model.
	ModelPath string // .hcl/.yaml file or directory
	Example   string // built-in catalog name

	Samples  int           // samples per batch
	Batches  int           // 0 streams until cancelled
	Interval time.Duration // pause between batches
	Seed     uint64        // 0 picks a random seed
	Workers  int

	Format  string // csv | jsonl
	OutPath string // empty writes to the app's output writer

	PrintEquations bool
	PrintLevels    bool
	PrintMatrix    bool
	DOTPath        string

	EmitURL       string
	EmitNamespace string
	EmitEvent     string
	EmitInsecure  bool

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	switch {
	case cfg.ModelPath == "" && cfg.Example == "":
		return nil, errors.New("a model path or an example name is required")
	case cfg.ModelPath != "" && cfg.Example != "":
		return nil, errors.New("a model path and an example name cannot be used together")
	}
	if cfg.Example != "" && !slices.Contains(catalog.Names(), cfg.Example) {
		return nil, fmt.Errorf("unknown example %q (available: %v)", cfg.Example, catalog.Names())
	}

	if cfg.Samples < 0 {
		return nil, fmt.Errorf("samples must not be negative, got %d", cfg.Samples)
	}
	if cfg.Batches < 0 {
		return nil, fmt.Errorf("batches must not be negative, got %d", cfg.Batches)
	}
	if cfg.Interval < 0 {
		return nil, fmt.Errorf("interval must not be negative, got %v", cfg.Interval)
	}
	if cfg.Batches == 0 && cfg.Interval == 0 {
		return nil, errors.New("streaming mode (batches = 0) requires a positive interval")
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}

	if cfg.Format == "" {
		cfg.Format = export.FormatCSV
	}
	if !slices.Contains(export.Formats, cfg.Format) {
		return nil, fmt.Errorf("unsupported output format %q (want one of %v)", cfg.Format, export.Formats)
	}

	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("healthcheck port out of range: %d", cfg.HealthcheckPort)
	}
	if cfg.EmitURL == "" && (cfg.EmitNamespace != "" || cfg.EmitEvent != "" || cfg.EmitInsecure) {
		return nil, errors.New("emit namespace, event and insecure options require an emit URL")
	}

	return &cfg, nil
}
