// Package sampler draws observations from a linear causal model. Roots are
// standard normal; every other node is the weighted sum of its parents.
package sampler

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/vk/causalfaker/internal/ctxlog"
	"github.com/vk/causalfaker/internal/dag"
	"golang.org/x/sync/errgroup"
)

// ChunkSize is the number of samples drawn from one random stream by
// DrawParallel.
const ChunkSize = 256

var ErrInvalidCount = errors.New("sample count must not be negative")

// ErrStreamRange is returned when a stream or chunk index does not fit the
// bits ChunkSource packs it into.
var ErrStreamRange = errors.New("stream index out of range")

// MaxStream is one past the largest stream DrawParallel accepts. Streams use
// bits 32..62 of the PCG stream word and bit 63 stays free for sources
// outside the sampler.
const MaxStream = 1 << 31

// MaxChunks is one past the largest chunk index within one stream.
const MaxChunks = 1 << 32

// Source produces standard normal variates. *rand.Rand satisfies it. A Source
// is not shared between goroutines by this package.
type Source interface {
	NormFloat64() float64
}

// Sample holds one value per node, indexed by node id.
type Sample []float64

// Value returns the value of node v.
func (s Sample) Value(v dag.Node) float64 { return s[v] }

// Batch is a sequence of independent samples in draw order.
type Batch []Sample

// Sampler draws samples from a fixed graph. It holds no mutable state and is
// safe for concurrent use as long as each caller brings its own Source.
type Sampler struct {
	graph *dag.Graph
}

// New returns a Sampler for g.
func New(g *dag.Graph) *Sampler {
	return &Sampler{graph: g}
}

// Graph returns the graph being sampled.
func (s *Sampler) Graph() *dag.Graph { return s.graph }

// DrawOne produces a full assignment of every node.
func (s *Sampler) DrawOne(src Source) Sample {
	g := s.graph
	values := make(Sample, g.N())
	levels := g.Levels()

	for _, v := range levels[0] {
		values[v] = src.NormFloat64()
	}
	for _, level := range levels[1:] {
		for _, v := range level {
			ws := g.ParentWeights(v)
			var sum float64
			for i, p := range g.Parents(v) {
				sum += ws[i] * values[p]
			}
			values[v] = sum
		}
	}
	return values
}

// DrawMany calls DrawOne count times on the same source.
func (s *Sampler) DrawMany(src Source, count int) (Batch, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	batch := make(Batch, count)
	for i := range batch {
		batch[i] = s.DrawOne(src)
	}
	return batch, nil
}

// DrawParallel draws count samples on up to workers goroutines. The batch is
// cut into chunks of ChunkSize samples and every chunk gets its own PCG
// stream derived from seed, stream and the chunk index, so the result is the
// same for any worker count.
func (s *Sampler) DrawParallel(ctx context.Context, seed, stream uint64, count, workers int) (Batch, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if workers < 1 {
		workers = 1
	}
	if stream >= MaxStream {
		return nil, fmt.Errorf("%w: stream %d", ErrStreamRange, stream)
	}

	logger := ctxlog.FromContext(ctx)
	chunks := (count + ChunkSize - 1) / ChunkSize
	if uint64(chunks) >= MaxChunks {
		return nil, fmt.Errorf("%w: %d samples need %d chunks", ErrStreamRange, count, chunks)
	}
	logger.Debug("Drawing batch.", "count", count, "chunks", chunks, "workers", workers, "stream", stream)

	batch := make(Batch, count)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for c := 0; c < chunks; c++ {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			src := ChunkSource(seed, stream, c)
			start := c * ChunkSize
			end := min(start+ChunkSize, count)
			for i := start; i < end; i++ {
				batch[i] = s.DrawOne(src)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch generation interrupted: %w", err)
	}
	return batch, nil
}

// ChunkSource returns the random source used for one chunk of a stream. The
// PCG stream word is stream<<32 | chunk, which is unique only while stream is
// below MaxStream and chunk below MaxChunks.
func ChunkSource(seed, stream uint64, chunk int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream<<32|uint64(chunk)))
}
