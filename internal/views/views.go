// Package views derives read-only presentations of a dag.Graph: adjacency
// matrices, a Graphviz rendering, the structural equations and a level table.
// Each view is computed on first use and cached for the lifetime of the View.
package views

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/vk/causalfaker/internal/dag"
)

// View caches the derived presentations of one graph. It is safe for
// concurrent use.
type View struct {
	g *dag.Graph

	denseOnce sync.Once
	dense     [][]float64

	sparseOnce sync.Once
	sparse     *Sparse

	dotOnce sync.Once
	dot     string

	equationsOnce sync.Once
	equations     []string
}

// New returns a View over g.
func New(g *dag.Graph) *View {
	return &View{g: g}
}

// Dense returns the n×n weighted adjacency matrix, indexed [parent][child].
// The matrix is shared and must not be modified.
func (v *View) Dense() [][]float64 {
	v.denseOnce.Do(func() {
		n := v.g.N()
		m := make([][]float64, n)
		for i := range m {
			m[i] = make([]float64, n)
		}
		for _, e := range v.g.Edges() {
			w, _ := v.g.Weight(e.Parent, e.Child)
			m[e.Parent][e.Child] = w
		}
		v.dense = m
	})
	return v.dense
}

// Sparse returns the weighted adjacency matrix in dictionary-of-keys form.
func (v *View) Sparse() *Sparse {
	v.sparseOnce.Do(func() {
		s := &Sparse{n: v.g.N(), entries: make(map[dag.Edge]float64)}
		for _, e := range v.g.Edges() {
			w, _ := v.g.Weight(e.Parent, e.Child)
			s.entries[e] = w
		}
		v.sparse = s
	})
	return v.sparse
}

// DOT renders the graph as a Graphviz digraph with the weights as edge labels.
func (v *View) DOT() string {
	v.dotOnce.Do(func() {
		var b strings.Builder
		b.WriteString("digraph causal {\n")
		b.WriteString("  rankdir=LR;\n")
		for _, n := range v.g.Nodes() {
			fmt.Fprintf(&b, "  x_%d;\n", n)
		}
		for _, e := range v.g.Edges() {
			w, _ := v.g.Weight(e.Parent, e.Child)
			fmt.Fprintf(&b, "  x_%d -> x_%d [label=%q];\n", e.Parent, e.Child, strconv.FormatFloat(w, 'f', 3, 64))
		}
		b.WriteString("}\n")
		v.dot = b.String()
	})
	return v.dot
}

// Equations returns one structural equation per node that takes part in at
// least one edge, in ascending node order:
//
//	x_0 = N(0, 1)
//	x_2 = 0.500*x_0 - 1.250*x_1
func (v *View) Equations() []string {
	v.equationsOnce.Do(func() {
		var out []string
		for _, n := range v.g.Nodes() {
			if v.g.IsIsolated(n) {
				continue
			}
			out = append(out, fmt.Sprintf("x_%d = %s", n, rightSide(v.g.Parents(n), v.g.ParentWeights(n))))
		}
		v.equations = out
	})
	return v.equations
}

func rightSide(parents []dag.Node, weights []float64) string {
	if len(parents) == 0 {
		return "N(0, 1)"
	}
	var b strings.Builder
	for i, p := range parents {
		w := weights[i]
		switch {
		case i == 0:
			fmt.Fprintf(&b, "%.3f*x_%d", w, p)
		case w < 0:
			fmt.Fprintf(&b, " - %.3f*x_%d", -w, p)
		default:
			fmt.Fprintf(&b, " + %.3f*x_%d", w, p)
		}
	}
	return b.String()
}

// LevelTable lists the level partition, one line per level.
func (v *View) LevelTable() []string {
	levels := v.g.Levels()
	out := make([]string, len(levels))
	for i, level := range levels {
		names := make([]string, len(level))
		for j, n := range level {
			names[j] = "x_" + strconv.Itoa(int(n))
		}
		out[i] = fmt.Sprintf("level %d: %s", i, strings.Join(names, " "))
	}
	return out
}

// WriteMatrix writes m as tab separated rows.
func WriteMatrix(w io.Writer, m [][]float64) error {
	for _, row := range m {
		cells := make([]string, len(row))
		for i, x := range row {
			cells[i] = strconv.FormatFloat(x, 'f', 3, 64)
		}
		if _, err := io.WriteString(w, strings.Join(cells, "\t")+"\n"); err != nil {
			return err
		}
	}
	return nil
}
