package steps

import (
	"sort"
	"strings"
)

// StepID identifies a step by its single uppercase letter
type StepID byte

// String renders the step letter
func (id StepID) String() string {
	return string(rune(id))
}

// Valid reports whether id is one of A-Z
func (id StepID) Valid() bool {
	return id >= 'A' && id <= 'Z'
}

// Duration is the letter-dependent work of a step: 'A'=1 ... 'Z'=26
func (id StepID) Duration() int {
	return int(id-'A') + 1
}

// Step is one node of the dependency graph.
// Links to other steps and to the executing worker are identity-keyed, the
// Graph owning the step is the single authority for resolving them.
type Step struct {
	ID StepID

	dependencies map[StepID]struct{} // must finish before this step can begin
	referencers  map[StepID]struct{} // cannot begin before this step finishes

	worker   int  // index of the executing worker
	assigned bool // worker is meaningful only when set
}

func newStep(id StepID) *Step {
	return &Step{
		ID:           id,
		dependencies: make(map[StepID]struct{}),
		referencers:  make(map[StepID]struct{}),
	}
}

// Duration returns the letter-dependent work of the step
func (s *Step) Duration() int {
	return s.ID.Duration()
}

// Dependencies returns the unresolved dependencies in id order
func (s *Step) Dependencies() []StepID {
	return sortedIDs(s.dependencies)
}

// Referencers returns the dependent steps in id order
func (s *Step) Referencers() []StepID {
	return sortedIDs(s.referencers)
}

// Ready reports whether every dependency has been resolved
func (s *Step) Ready() bool {
	return len(s.dependencies) == 0
}

// Worker returns the index of the executing worker, if any
func (s *Step) Worker() (int, bool) {
	return s.worker, s.assigned
}

// Claim records the worker now executing the step
func (s *Step) Claim(worker int) error {
	if s.assigned {
		return ErrStepClaimed
	}
	s.worker = worker
	s.assigned = true
	return nil
}

// Release clears the worker back-reference
func (s *Step) Release() {
	s.worker = 0
	s.assigned = false
}

func (s *Step) String() string {
	var b strings.Builder
	b.WriteString(s.ID.String())
	b.WriteString(": [")
	for _, id := range s.Dependencies() {
		b.WriteString(id.String())
	}
	b.WriteString("]")
	return b.String()
}

func (s *Step) clone() *Step {
	c := newStep(s.ID)
	for id := range s.dependencies {
		c.dependencies[id] = struct{}{}
	}
	for id := range s.referencers {
		c.referencers[id] = struct{}{}
	}
	c.worker = s.worker
	c.assigned = s.assigned
	return c
}

func sortedIDs(set map[StepID]struct{}) []StepID {
	ids := make([]StepID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
