package dag

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidGraph = errors.New("invalid graph")
	ErrCycle        = errors.New("cycle detected")
	ErrMissingEdge  = errors.New("missing edge")
)

// CycleError reports the nodes that could not be placed in any level. Every
// node of a cycle is included, as well as the nodes downstream of it.
type CycleError struct {
	Unresolved []Node
}

func (e *CycleError) Error() string {
	if e == nil || len(e.Unresolved) == 0 {
		return ErrCycle.Error()
	}
	ids := make([]string, len(e.Unresolved))
	for i, v := range e.Unresolved {
		ids[i] = fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("%s: graph is not a DAG, unresolved nodes [%s]", ErrCycle, strings.Join(ids, " "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// MissingEdgeError is returned when a weight is requested for a pair that is
// not an edge of the graph.
type MissingEdgeError struct {
	Edge Edge
}

func (e *MissingEdgeError) Error() string {
	return fmt.Sprintf("%s: %d -> %d", ErrMissingEdge, e.Edge.Parent, e.Edge.Child)
}

func (e *MissingEdgeError) Unwrap() error { return ErrMissingEdge }

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidGraph, fmt.Sprintf(format, args...))
}
