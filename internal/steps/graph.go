package steps

import (
	"strings"
)

// Graph is the pool of not-yet-completed steps, keyed by identity.
// A simulation consumes it destructively, so every run works on its own Clone.
type Graph struct {
	steps map[StepID]*Step
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		steps: make(map[StepID]*Step),
	}
}

// getOrCreate returns the step with the given id, creating it on first sight
func (g *Graph) getOrCreate(id StepID) *Step {
	s, ok := g.steps[id]
	if !ok {
		s = newStep(id)
		g.steps[id] = s
	}
	return s
}

// AddEdge records that before must be finished before after can begin.
// Adding the same edge twice is a no-op.
func (g *Graph) AddEdge(before, after StepID) error {
	for _, id := range []StepID{before, after} {
		if !id.Valid() {
			return ErrUnsupportedStep
		}
	}

	dependency := g.getOrCreate(before)
	referencer := g.getOrCreate(after)
	referencer.dependencies[before] = struct{}{}
	dependency.referencers[after] = struct{}{}
	return nil
}

// Step looks up a step still in the pool
func (g *Graph) Step(id StepID) (*Step, bool) {
	s, ok := g.steps[id]
	return s, ok
}

// Len is the number of steps not yet completed
func (g *Graph) Len() int {
	return len(g.steps)
}

// IDs returns every step id in the pool in ascending order
func (g *Graph) IDs() []StepID {
	ids := make([]StepID, 0, len(g.steps))
	for id := range g.steps {
		ids = append(ids, id)
	}
	return sortIDs(ids)
}

// Startable returns, in ascending id order, the steps with no unresolved
// dependency and no assigned worker
func (g *Graph) Startable() []StepID {
	ids := make([]StepID, 0)
	for id, s := range g.steps {
		if _, busy := s.Worker(); busy || !s.Ready() {
			continue
		}
		ids = append(ids, id)
	}
	return sortIDs(ids)
}

// Complete removes a finished step from the pool and drops it from the
// dependencies of every step referencing it
func (g *Graph) Complete(id StepID) error {
	s, ok := g.steps[id]
	if !ok {
		return ErrStepNotFound
	}

	for ref := range s.referencers {
		if r, ok := g.steps[ref]; ok {
			delete(r.dependencies, id)
		}
	}
	delete(g.steps, id)
	return nil
}

// Clone returns a deep copy that shares no state with g
func (g *Graph) Clone() *Graph {
	c := &Graph{
		steps: make(map[StepID]*Step, len(g.steps)),
	}
	for id, s := range g.steps {
		c.steps[id] = s.clone()
	}
	return c
}

// String renders one "X: [deps]" line per step in id order
func (g *Graph) String() string {
	lines := make([]string, 0, len(g.steps))
	for _, id := range g.IDs() {
		lines = append(lines, g.steps[id].String())
	}
	return strings.Join(lines, "\n")
}
