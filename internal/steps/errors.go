package steps

// ============================================================================
// Step Graph Error Definitions
// ============================================================================

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedLine indicates an input line does not match the edge pattern
	ErrMalformedLine = errors.New("steps: malformed line")

	// ErrUnsupportedStep indicates a step id outside A-Z (duration is undefined)
	ErrUnsupportedStep = errors.New("steps: unsupported step id")

	// ErrCycle indicates the dependency graph is not acyclic
	ErrCycle = errors.New("steps: dependency cycle")

	// ErrStepNotFound indicates a lookup for a step not in the pool
	ErrStepNotFound = errors.New("steps: step not found")

	// ErrStepClaimed indicates a step already has a worker
	ErrStepClaimed = errors.New("steps: step already claimed by a worker")
)

// ParseError reports which input line failed to parse
type ParseError struct {
	Line  int    // 1-based line number
	Text  string // Offending line
	Cause error  // ErrMalformedLine or ErrUnsupportedStep
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v at line %d: %q", e.Cause, e.Line, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// CycleError carries one deterministic cycle witness, first id repeated at the end
type CycleError struct {
	Path []StepID
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Path))
	for i, id := range e.Path {
		parts[i] = id.String()
	}
	return fmt.Sprintf("%v: %s", ErrCycle, strings.Join(parts, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrCycle
}
