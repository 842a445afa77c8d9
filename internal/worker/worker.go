// ============================================================================
// AoC Worker - Simulated Execution Slot
// ============================================================================
//
// Package: internal/worker
// File: worker.go
// Function: One unit of parallel capacity in the day-7 time-stepped simulation
//
// How it works:
//   A Worker holds at most one step and counts down the time left on it.
//   The scheduler drives it one time unit at a time:
//   1. Assign(step, baseDelay) - remaining time = baseDelay + step duration
//   2. Tick() - remaining time - 1, floored at 0
//   3. IsComplete() - assigned and remaining time is exactly 0
//   4. Unassign(graph) - release the step and hand its id back
//
// Lifecycle:
//   Workers are created once per simulation run by NewPool and reused for
//   every step of that run. Nothing runs in a goroutine: "parallel" is a
//   simulated abstraction advanced by the scheduler loop.
//
// Error Handling:
//   Calling Assign on a busy worker, or Unassign/Tick on an idle one, is a
//   programming error reported as ErrAlreadyAssigned / ErrNotAssigned. The
//   scheduler aborts the run on either.
//
// ============================================================================

package worker

import (
	"errors"
	"fmt"

	"github.com/ChuLiYu/aoc2018/internal/steps"
)

var (
	// ErrAlreadyAssigned is returned by Assign on a busy worker
	ErrAlreadyAssigned = errors.New("worker: already assigned a step")
	// ErrNotAssigned is returned by Unassign and Tick on an idle worker
	ErrNotAssigned = errors.New("worker: no step assigned")
)

// Worker represents one simulated execution slot
type Worker struct {
	id             int          // Index in the pool, also the step's back-reference
	step           steps.StepID // Step being executed, meaningful only when assigned
	assigned       bool         // Whether the worker currently holds a step
	timeToComplete int          // Remaining time units on the step
}

// newWorker creates an idle Worker
func newWorker(id int) *Worker {
	return &Worker{id: id}
}

// ID returns the worker's index in its pool
func (w *Worker) ID() int {
	return w.id
}

// IsAssigned reports whether the worker holds a step
func (w *Worker) IsAssigned() bool {
	return w.assigned
}

// Step returns the held step id, if any
func (w *Worker) Step() (steps.StepID, bool) {
	return w.step, w.assigned
}

// TimeToComplete returns the remaining time units on the held step
func (w *Worker) TimeToComplete() int {
	return w.timeToComplete
}

// Assign starts the worker on a step, claiming the step for this worker.
// Remaining time becomes baseDelay plus the step's letter duration.
func (w *Worker) Assign(step *steps.Step, baseDelay int) error {
	if w.assigned {
		return fmt.Errorf("%w: worker %d holds %s", ErrAlreadyAssigned, w.id, w.step)
	}
	if err := step.Claim(w.id); err != nil {
		return fmt.Errorf("worker %d: %w", w.id, err)
	}

	w.step = step.ID
	w.assigned = true
	w.timeToComplete = baseDelay + step.Duration()
	return nil
}

// Unassign releases the held step and returns its id.
// The step's back-reference is cleared through g if the step is still in it.
func (w *Worker) Unassign(g *steps.Graph) (steps.StepID, error) {
	if !w.assigned {
		return 0, fmt.Errorf("%w: worker %d", ErrNotAssigned, w.id)
	}

	id := w.step
	if s, ok := g.Step(id); ok {
		s.Release()
	}
	w.step = 0
	w.assigned = false
	w.timeToComplete = 0
	return id, nil
}

// IsComplete reports whether the held step has just finished
func (w *Worker) IsComplete() bool {
	return w.assigned && w.timeToComplete == 0
}

// Tick advances the held step by one time unit
func (w *Worker) Tick() error {
	if !w.assigned {
		return fmt.Errorf("%w: worker %d", ErrNotAssigned, w.id)
	}
	if w.timeToComplete > 0 {
		w.timeToComplete--
	}
	return nil
}

func (w *Worker) String() string {
	if !w.assigned {
		return "--"
	}
	return fmt.Sprintf("%s (%ds)", w.step, w.timeToComplete)
}
