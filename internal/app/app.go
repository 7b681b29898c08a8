package app

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"

	"github.com/google/uuid"
	"github.com/vk/causalfaker/internal/config"
	"github.com/vk/causalfaker/internal/emit"
	"github.com/vk/causalfaker/internal/hcl_adapter"
	"github.com/vk/causalfaker/internal/metrics"
	"github.com/vk/causalfaker/internal/yaml_adapter"
)

// Emitter publishes finished batches to an external collector.
type Emitter interface {
	Emit(ctx context.Context, p *emit.Payload) error
	Close() error
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	diagW   io.Writer
	logger  *slog.Logger
	config  *Config
	runID   string
	seed    uint64
	metrics *metrics.Metrics
	loaders []config.Loader
	emitter Emitter

	httpServer *http.Server
}

// Option customises an App at construction time.
type Option func(*App)

// WithEmitter replaces the socket.io emitter that would be dialed from
// Config.EmitURL.
func WithEmitter(e Emitter) Option {
	return func(a *App) { a.emitter = e }
}

// WithLoaders replaces the default model file loaders.
func WithLoaders(loaders ...config.Loader) Option {
	return func(a *App) { a.loaders = loaders }
}

// NewApp is the constructor for the main application. Sample data goes to
// outW; logs and diagnostics go to logW.
func NewApp(outW, logW io.Writer, cfg *Config, opts ...Option) *App {
	runID := uuid.NewString()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW).With("run_id", runID)
	logger.Debug("Logger configured successfully.")

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
		logger.Info("No seed given, picked a random one.", "seed", seed)
	}

	a := &App{
		outW:    outW,
		diagW:   logW,
		logger:  logger,
		config:  cfg,
		runID:   runID,
		seed:    seed,
		metrics: metrics.New(),
		loaders: []config.Loader{
			hcl_adapter.NewLoader(seed),
			yaml_adapter.NewLoader(),
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RunID returns the unique id of this run.
func (a *App) RunID() string { return a.runID }

// Seed returns the effective seed of this run.
func (a *App) Seed() uint64 { return a.seed }

// Metrics returns the run's metrics. This is primarily for testing.
func (a *App) Metrics() *metrics.Metrics { return a.metrics }
