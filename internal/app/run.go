package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vk/causalfaker/internal/ctxlog"
	"github.com/vk/causalfaker/internal/dag"
	"github.com/vk/causalfaker/internal/emit"
	"github.com/vk/causalfaker/internal/export"
	"github.com/vk/causalfaker/internal/sampler"
	"github.com/vk/causalfaker/internal/views"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "seed", a.seed)

	model, err := a.loadModel(ctx)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}
	weights, err := model.Weights()
	if err != nil {
		return fmt.Errorf("invalid model: %w", err)
	}

	graph, err := dag.New(weights)
	if err != nil {
		return fmt.Errorf("failed to build causal graph: %w", err)
	}
	a.metrics.ObserveGraph(graph.N(), len(weights), graph.Depth())
	a.logger.Info("Causal graph built.", "model", model.Name, "nodes", graph.N(), "edges", len(weights), "depth", graph.Depth())

	if err := a.writeDiagnostics(views.New(graph)); err != nil {
		return err
	}

	if err := a.startHealthcheckServer(); err != nil {
		return err
	}
	defer a.closeHealthCheckServer()

	if err := a.connectEmitter(ctx); err != nil {
		return err
	}
	if a.emitter != nil {
		defer a.emitter.Close()
	}

	out := a.outW
	if a.config.OutPath != "" {
		f, ferr := os.Create(a.config.OutPath)
		if ferr != nil {
			return fmt.Errorf("failed to open output file: %w", ferr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", cerr)
			}
		}()
		out = f
	}

	writer, err := export.New(a.config.Format, out, graph.Nodes())
	if err != nil {
		return err
	}

	return a.generate(ctx, sampler.New(graph), writer, export.Columns(graph.Nodes()))
}

// generate runs the batch loop. In streaming mode (Batches == 0) cancellation
// ends the run cleanly; otherwise it is an error.
func (a *App) generate(ctx context.Context, s *sampler.Sampler, w export.Writer, columns []string) error {
	cfg := a.config
	streaming := cfg.Batches == 0

	a.logger.Info("🚀 Starting generation...", "samples_per_batch", cfg.Samples, "batches", cfg.Batches, "workers", cfg.Workers)
	total := 0
	batch := 0
	for ; streaming || batch < cfg.Batches; batch++ {
		if batch > 0 && cfg.Interval > 0 {
			select {
			case <-ctx.Done():
				return a.stopped(ctx, streaming, batch, total)
			case <-time.After(cfg.Interval):
			}
		}

		bctx := ctxlog.With(ctx, "batch", batch)
		start := time.Now()
		data, err := s.DrawParallel(bctx, a.seed, uint64(batch), cfg.Samples, cfg.Workers)
		if err == nil {
			err = w.WriteBatch(data)
		}
		a.metrics.ObserveBatch(len(data), time.Since(start), err)
		if err != nil {
			if ctx.Err() != nil {
				return a.stopped(ctx, streaming, batch, total)
			}
			return fmt.Errorf("batch %d failed: %w", batch, err)
		}
		total += len(data)
		a.logger.Debug("Batch written.", "batch", batch, "samples", len(data), "took", time.Since(start))

		a.emitBatch(bctx, batch, columns, data)
	}

	a.logger.Info("🏁 Generation finished.", "batches", batch, "samples", total)
	return nil
}

func (a *App) stopped(ctx context.Context, streaming bool, batches, total int) error {
	if streaming {
		a.logger.Info("🏁 Generation stopped.", "batches", batches, "samples", total)
		return nil
	}
	return fmt.Errorf("generation interrupted after %d batches: %w", batches, ctx.Err())
}

// connectEmitter dials the configured collector unless an emitter was
// injected.
func (a *App) connectEmitter(ctx context.Context) error {
	if a.emitter != nil || a.config.EmitURL == "" {
		return nil
	}
	e, err := emit.DialSocketIO(ctx, emit.Options{
		URL:       a.config.EmitURL,
		Namespace: a.config.EmitNamespace,
		Event:     a.config.EmitEvent,

		InsecureSkipVerify: a.config.EmitInsecure,
	})
	if err != nil {
		return fmt.Errorf("failed to connect emitter: %w", err)
	}
	a.emitter = e
	return nil
}

// emitBatch publishes a batch. Failures are counted and logged but do not
// stop generation.
func (a *App) emitBatch(ctx context.Context, batch int, columns []string, data sampler.Batch) {
	if a.emitter == nil {
		return
	}
	rows := make([][]float64, len(data))
	for i, s := range data {
		rows[i] = s
	}
	p := &emit.Payload{RunID: a.runID, Batch: batch, Columns: columns, Rows: rows}
	if err := a.emitter.Emit(ctx, p); err != nil {
		a.metrics.EmitErrorsTotal.Inc()
		a.logger.Warn("Failed to emit batch.", "batch", batch, "error", err)
	}
}

// writeDiagnostics prints the requested views of the graph.
func (a *App) writeDiagnostics(v *views.View) error {
	cfg := a.config
	if cfg.PrintEquations {
		if err := writeLines(a.diagW, v.Equations()); err != nil {
			return err
		}
	}
	if cfg.PrintLevels {
		if err := writeLines(a.diagW, v.LevelTable()); err != nil {
			return err
		}
	}
	if cfg.PrintMatrix {
		if err := views.WriteMatrix(a.diagW, v.Dense()); err != nil {
			return err
		}
	}
	if cfg.DOTPath != "" {
		if err := os.WriteFile(cfg.DOTPath, []byte(v.DOT()), 0o644); err != nil {
			return fmt.Errorf("failed to write DOT file: %w", err)
		}
		a.logger.Info("Graph written.", "path", cfg.DOTPath)
	}
	return nil
}

func writeLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := io.WriteString(w, l+"\n"); err != nil {
			return fmt.Errorf("failed to write diagnostics: %w", err)
		}
	}
	return nil
}
