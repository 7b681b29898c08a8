// Package yaml_adapter reads causal models written as YAML documents:
//
//	name: chain
//	description: 0 -> 1 -> 2
//	edges:
//	  - {from: 0, to: 1, weight: 2}
//	  - {from: 1, to: 2, weight: -0.5}
package yaml_adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/causalfaker/internal/config"
	"github.com/vk/causalfaker/internal/ctxlog"
	"github.com/vk/causalfaker/internal/fsutil"
	"gopkg.in/yaml.v3"
)

type modelYAML struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Edges       []edgeYAML `yaml:"edges"`
}

type edgeYAML struct {
	From   *int     `yaml:"from"`
	To     *int     `yaml:"to"`
	Weight *float64 `yaml:"weight"`
}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML model loader.
func NewLoader() *Loader { return &Loader{} }

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string { return []string{".yaml", ".yml"} }

// Load reads every YAML file under paths and merges them in sorted path order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.ResolvePaths(paths, l.Extensions()...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .yaml files found in %v", paths)
	}

	model := &config.Model{}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading file: %w", err)
		}
		fileModel, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("in %s: %w", file, err)
		}
		fileModel.Sources = []string{file}
		logger.Debug("Loaded YAML model file.", "file", file, "edges", len(fileModel.Edges))
		model.Merge(fileModel)
	}
	return model, nil
}

// Parse decodes a single YAML document. Unknown fields are rejected.
func Parse(data []byte) (*config.Model, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc modelYAML
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unmarshaling YAML: %w", err)
	}

	model := &config.Model{Name: doc.Name, Description: doc.Description}
	for i, e := range doc.Edges {
		switch {
		case e.From == nil:
			return nil, fmt.Errorf("edge at index %d has no 'from'", i)
		case e.To == nil:
			return nil, fmt.Errorf("edge at index %d has no 'to'", i)
		case e.Weight == nil:
			return nil, fmt.Errorf("edge at index %d (%d -> %d) has no 'weight'", i, *e.From, *e.To)
		}
		model.Edges = append(model.Edges, &config.Edge{From: *e.From, To: *e.To, Weight: *e.Weight})
	}
	return model, nil
}
