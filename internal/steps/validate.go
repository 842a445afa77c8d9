package steps

import (
	"container/heap"
	"sort"
)

type idMinHeap []StepID

func (h idMinHeap) Len() int           { return len(h) }
func (h idMinHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h idMinHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *idMinHeap) Push(x any)        { *h = append(*h, x.(StepID)) }
func (h *idMinHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

func sortIDs(ids []StepID) []StepID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// TopologicalOrder returns the lexicographically smallest topological order
// of the steps still in the pool. The graph is not mutated.
func (g *Graph) TopologicalOrder() ([]StepID, error) {
	order := g.topoOrder()
	if len(order) != len(g.steps) {
		return nil, &CycleError{Path: g.findCycle()}
	}
	return order, nil
}

// Validate proves the graph is acyclic
func (g *Graph) Validate() error {
	_, err := g.TopologicalOrder()
	return err
}

// CriticalPath is the longest chain of dependent steps, weighting each step
// by baseDelay plus its letter duration
func (g *Graph) CriticalPath(baseDelay int) (int, error) {
	order, err := g.TopologicalOrder()
	if err != nil {
		return 0, err
	}

	finish := make(map[StepID]int, len(order))
	longest := 0
	for _, id := range order {
		start := 0
		for dep := range g.steps[id].dependencies {
			if finish[dep] > start {
				start = finish[dep]
			}
		}
		finish[id] = start + baseDelay + id.Duration()
		if finish[id] > longest {
			longest = finish[id]
		}
	}
	return longest, nil
}

// topoOrder runs Kahn's algorithm with a min-heap ready queue
func (g *Graph) topoOrder() []StepID {
	indeg := make(map[StepID]int, len(g.steps))
	ready := &idMinHeap{}
	heap.Init(ready)
	for id, s := range g.steps {
		indeg[id] = len(s.dependencies)
		if indeg[id] == 0 {
			heap.Push(ready, id)
		}
	}

	out := make([]StepID, 0, len(g.steps))
	for ready.Len() > 0 {
		id := heap.Pop(ready).(StepID)
		out = append(out, id)
		for ref := range g.steps[id].referencers {
			if _, ok := indeg[ref]; !ok {
				continue
			}
			indeg[ref]--
			if indeg[ref] == 0 {
				heap.Push(ready, ref)
			}
		}
	}
	return out
}

// findCycle walks referencer edges depth-first in id order and returns the
// first back-edge cycle it meets, e.g. [A B C A]
func (g *Graph) findCycle() []StepID {
	const (
		white = iota
		gray
		black
	)

	color := make(map[StepID]int, len(g.steps))
	var stack []StepID
	var cycle []StepID

	var dfs func(id StepID) bool
	dfs = func(id StepID) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, next := range g.steps[id].Referencers() {
			if _, ok := g.steps[next]; !ok {
				continue
			}
			switch color[next] {
			case white:
				if dfs(next) {
					return true
				}
			case gray:
				for i, onStack := range stack {
					if onStack == next {
						cycle = append(append(cycle, stack[i:]...), next)
						return true
					}
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, id := range g.IDs() {
		if color[id] == white && dfs(id) {
			break
		}
	}
	return cycle
}
