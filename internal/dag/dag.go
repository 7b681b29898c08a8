package dag

import (
	"sort"
)

// New builds a Graph from a weighted edge list. Node ids range over
// 0..max(endpoint); ids that never appear in an edge are isolated roots.
// A cycle, including a self-loop, makes New fail with a *CycleError.
func New(weights Weights) (*Graph, error) {
	if len(weights) == 0 {
		return nil, invalidf("edge list is empty")
	}

	maxID := Node(-1)
	for e := range weights {
		if e.Parent < 0 || e.Child < 0 {
			return nil, invalidf("negative node id in edge %d -> %d", e.Parent, e.Child)
		}
		maxID = max(maxID, e.Parent, e.Child)
	}
	n := int(maxID) + 1

	g := &Graph{
		n:             n,
		weights:       make(Weights, len(weights)),
		parents:       make([][]Node, n),
		parentWeights: make([][]float64, n),
		children:      make([][]Node, n),
	}

	for e, w := range weights {
		g.weights[e] = w
		g.children[e.Parent] = append(g.children[e.Parent], e.Child)
		g.parents[e.Child] = append(g.parents[e.Child], e.Parent)
	}

	for v := 0; v < n; v++ {
		if g.children[v] == nil {
			g.children[v] = []Node{}
		}
		if g.parents[v] == nil {
			g.parents[v] = []Node{}
		}
		sortNodes(g.children[v])
		sortNodes(g.parents[v])
		ws := make([]float64, len(g.parents[v]))
		for i, p := range g.parents[v] {
			ws[i] = g.weights[Edge{Parent: p, Child: Node(v)}]
		}
		g.parentWeights[v] = ws
	}

	levels, err := Partition(n, g.parents)
	if err != nil {
		return nil, err
	}
	g.levels = levels

	return g, nil
}

// N returns the number of nodes.
func (g *Graph) N() int { return g.n }

// Nodes returns every node id in ascending order.
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, g.n)
	for i := range nodes {
		nodes[i] = Node(i)
	}
	return nodes
}

// Parents returns the sorted parents of v. The slice is shared and must not be
// modified.
func (g *Graph) Parents(v Node) []Node {
	if !g.valid(v) {
		return nil
	}
	return g.parents[v]
}

// ParentWeights returns the weights of v's incoming edges, aligned with
// Parents(v). The slice is shared and must not be modified.
func (g *Graph) ParentWeights(v Node) []float64 {
	if !g.valid(v) {
		return nil
	}
	return g.parentWeights[v]
}

// Children returns the sorted children of v. The slice is shared and must not
// be modified.
func (g *Graph) Children(v Node) []Node {
	if !g.valid(v) {
		return nil
	}
	return g.children[v]
}

// IsRoot reports whether v has no parents.
func (g *Graph) IsRoot(v Node) bool {
	return g.valid(v) && len(g.parents[v]) == 0
}

// IsIsolated reports whether v has neither parents nor children.
func (g *Graph) IsIsolated(v Node) bool {
	return g.valid(v) && len(g.parents[v]) == 0 && len(g.children[v]) == 0
}

// Weight returns the coefficient of the parent -> child edge.
func (g *Graph) Weight(parent, child Node) (float64, error) {
	w, ok := g.weights[Edge{Parent: parent, Child: child}]
	if !ok {
		return 0, &MissingEdgeError{Edge: Edge{Parent: parent, Child: child}}
	}
	return w, nil
}

// Edges returns every edge ordered by parent, then child.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.weights))
	for v := 0; v < g.n; v++ {
		for _, c := range g.children[v] {
			edges = append(edges, Edge{Parent: Node(v), Child: c})
		}
	}
	return edges
}

// Levels returns the cached level partition. The same value is returned on
// every call and must not be modified.
func (g *Graph) Levels() Levels { return g.levels }

// Depth is the number of levels.
func (g *Graph) Depth() int { return len(g.levels) }

func (g *Graph) valid(v Node) bool {
	return v >= 0 && int(v) < g.n
}

func sortNodes(nodes []Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
}
