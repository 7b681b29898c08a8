package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vk/causalfaker/internal/catalog"
	"github.com/vk/causalfaker/internal/config"
	"github.com/vk/causalfaker/internal/ctxlog"
	"github.com/vk/causalfaker/internal/fsutil"
)

// loadModel resolves the configured model from the catalog or from disk.
func (a *App) loadModel(ctx context.Context) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	if a.config.Example != "" {
		logger.Debug("Using built-in example.", "example", a.config.Example)
		return catalog.Get(a.config.Example, catalog.NewSource(a.seed))
	}

	path := a.config.ModelPath
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing model path %s: %w", path, err)
	}

	if !info.IsDir() {
		ext := strings.ToLower(filepath.Ext(path))
		for _, l := range a.loaders {
			if slices.Contains(l.Extensions(), ext) {
				logger.Debug("Loading model file.", "path", path, "extension", ext)
				return l.Load(ctx, path)
			}
		}
		return nil, fmt.Errorf("no loader for %s files (%s)", ext, path)
	}

	// A directory may mix formats; every loader with matching files
	// contributes, in loader order.
	model := &config.Model{}
	found := false
	for _, l := range a.loaders {
		files, err := fsutil.FindFilesByExtension(path, l.Extensions()...)
		if err != nil {
			return nil, fmt.Errorf("error scanning %s: %w", path, err)
		}
		if len(files) == 0 {
			continue
		}
		found = true
		m, err := l.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		model.Merge(m)
	}
	if !found {
		return nil, fmt.Errorf("no model files found in %s", path)
	}
	logger.Debug("Model directory loaded.", "path", path, "files", len(model.Sources))
	return model, nil
}
