package dag

import "slices"

// TopologicalSort orders every node after all of its dependencies. Among
// the nodes that are ready at the same time, the one for which cmp sorts
// first is emitted first, so the result is fully determined by the graph
// and cmp. A graph with a cycle yields the DetectCycles error.
func (g *Graph) TopologicalSort(cmp func(a, b string) int) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	if err := g.detectCycles(); err != nil {
		return nil, err
	}

	pending := make(map[string]int, len(g.nodes))
	var ready []string
	for id, n := range g.nodes {
		pending[id] = len(n.deps)
		if len(n.deps) == 0 {
			ready = append(ready, id)
		}
	}

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		slices.SortFunc(ready, cmp)
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		for id := range g.nodes[next].dependents {
			pending[id]--
			if pending[id] == 0 {
				ready = append(ready, id)
			}
		}
	}
	return order, nil
}
