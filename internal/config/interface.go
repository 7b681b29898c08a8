package config

import (
	"context"
)

// Loader is the interface for a format-specific model loader.
type Loader interface {
	// Load reads one or more model files (or directories of them) and merges
	// them into a single Model. Edges keep their file order.
	Load(ctx context.Context, paths ...string) (*Model, error)

	// Extensions lists the file extensions the loader understands, with the
	// leading dot.
	Extensions() []string
}
