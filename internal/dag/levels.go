package dag

// Partition splits nodes 0..n-1 into topological levels given the inverse
// adjacency (parents[v] lists the parents of v). Level 0 holds the parentless
// nodes; every later level holds the nodes whose parents have all been placed
// in earlier levels.
//
// The scan keeps a count of unresolved parents per node instead of
// re-checking every parent set each round. When a round places no node while
// some remain unplaced, the remaining nodes are on or behind a cycle.
func Partition(n int, parents [][]Node) (Levels, error) {
	if len(parents) != n {
		return nil, invalidf("inverse adjacency has %d entries, want %d", len(parents), n)
	}

	pending := make([]int, n)
	children := make([][]Node, n)
	var current Level
	for v := 0; v < n; v++ {
		pending[v] = len(parents[v])
		for _, p := range parents[v] {
			if p < 0 || int(p) >= n {
				return nil, invalidf("parent %d of node %d is out of range", p, v)
			}
			children[p] = append(children[p], Node(v))
		}
		if pending[v] == 0 {
			current = append(current, Node(v))
		}
	}

	levels := make(Levels, 0)
	resolved := 0
	for len(current) > 0 {
		levels = append(levels, current)
		resolved += len(current)

		var next Level
		for _, v := range current {
			for _, c := range children[v] {
				pending[c]--
				if pending[c] == 0 {
					next = append(next, c)
				}
			}
		}
		sortNodes(next)
		current = next
	}

	if resolved < n {
		unresolved := make([]Node, 0, n-resolved)
		for v := 0; v < n; v++ {
			if pending[v] > 0 {
				unresolved = append(unresolved, Node(v))
			}
		}
		return nil, &CycleError{Unresolved: unresolved}
	}

	return levels, nil
}
