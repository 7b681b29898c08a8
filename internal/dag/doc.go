// Package dag is the structural layer of the application. It takes a weighted
// edge list describing a linear causal model, derives the forward and inverse
// adjacency of every node and partitions the nodes into topological levels.
//
// A Graph is immutable once New returns. The level partition is computed
// exactly once, during construction, so a graph that exists is always a valid
// DAG. Graphs are safe to share between goroutines.
package dag
