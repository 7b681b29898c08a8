package dag

// Node identifies a random variable in the model. Valid ids are 0..N()-1.
type Node int

// Edge is a directed parent -> child link.
type Edge struct {
	Parent Node
	Child  Node
}

// Weights maps every edge of the model to its linear coefficient. Inserting
// the same pair twice keeps the last weight.
type Weights map[Edge]float64

// Level is a set of nodes whose parents all sit in earlier levels, sorted by id.
type Level []Node

// Levels is the ordered topological partition of a graph. Levels[0] holds
// exactly the parentless nodes.
type Levels []Level

// Graph is a weighted DAG with precomputed adjacency and level partition.
type Graph struct {
	// n is the number of nodes, max(endpoint)+1.
	n int
	// weights is a private copy of the input edge list.
	weights Weights
	// parents is the inverse adjacency, indexed by node and sorted.
	parents [][]Node
	// parentWeights is aligned with parents: parentWeights[v][i] is the weight
	// of the edge parents[v][i] -> v.
	parentWeights [][]float64
	// children is the forward adjacency, indexed by node and sorted.
	children [][]Node
	// levels is the cached partition.
	levels Levels
}
