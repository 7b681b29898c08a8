// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the generation lifecycle: resolve a model,
// build the causal graph, then draw, write and emit sample batches. It is
// decoupled from any specific entrypoint like a CLI or server.
package app
