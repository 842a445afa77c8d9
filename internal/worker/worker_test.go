package worker

// ============================================================================
// Worker Test File
// Purpose: Verify assignment preconditions, countdown, pool occupancy
// ============================================================================

import (
	"testing"

	"github.com/ChuLiYu/aoc2018/internal/steps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGraph builds C -> A, C -> F
func newTestGraph(t *testing.T) *steps.Graph {
	t.Helper()
	g := steps.NewGraph()
	require.NoError(t, g.AddEdge('C', 'A'))
	require.NoError(t, g.AddEdge('C', 'F'))
	return g
}

func mustStep(t *testing.T, g *steps.Graph, id steps.StepID) *steps.Step {
	t.Helper()
	s, ok := g.Step(id)
	require.True(t, ok, "step %s should exist", id)
	return s
}

// ============================================================================
// Worker Tests
// ============================================================================

func TestNewWorkerIsIdle(t *testing.T) {
	w := newWorker(3)
	assert.Equal(t, 3, w.ID())
	assert.False(t, w.IsAssigned())
	assert.False(t, w.IsComplete())
	assert.Equal(t, "--", w.String())
}

func TestAssign(t *testing.T) {
	g := newTestGraph(t)
	c := mustStep(t, g, 'C')
	w := newWorker(1)

	require.NoError(t, w.Assign(c, 60))
	assert.True(t, w.IsAssigned())
	assert.Equal(t, 63, w.TimeToComplete(), "base delay plus C's duration")
	assert.Equal(t, "C (63s)", w.String())

	id, ok := w.Step()
	assert.True(t, ok)
	assert.Equal(t, steps.StepID('C'), id)

	idx, claimed := c.Worker()
	assert.True(t, claimed)
	assert.Equal(t, 1, idx)
}

func TestAssignTwice(t *testing.T) {
	g := newTestGraph(t)
	w := newWorker(0)
	require.NoError(t, w.Assign(mustStep(t, g, 'C'), 0))

	err := w.Assign(mustStep(t, g, 'A'), 0)
	assert.ErrorIs(t, err, ErrAlreadyAssigned)

	id, _ := w.Step()
	assert.Equal(t, steps.StepID('C'), id, "the held step must not change")
	_, claimed := mustStep(t, g, 'A').Worker()
	assert.False(t, claimed)
}

func TestAssignClaimedStep(t *testing.T) {
	g := newTestGraph(t)
	c := mustStep(t, g, 'C')
	require.NoError(t, newWorker(0).Assign(c, 0))

	w := newWorker(1)
	err := w.Assign(c, 0)
	assert.ErrorIs(t, err, steps.ErrStepClaimed)
	assert.False(t, w.IsAssigned())
}

func TestUnassign(t *testing.T) {
	g := newTestGraph(t)
	c := mustStep(t, g, 'C')
	w := newWorker(0)
	require.NoError(t, w.Assign(c, 0))

	id, err := w.Unassign(g)
	require.NoError(t, err)
	assert.Equal(t, steps.StepID('C'), id)
	assert.False(t, w.IsAssigned())
	assert.Equal(t, 0, w.TimeToComplete())

	_, claimed := c.Worker()
	assert.False(t, claimed, "back-reference must be cleared")
}

func TestUnassignIdle(t *testing.T) {
	_, err := newWorker(0).Unassign(steps.NewGraph())
	assert.ErrorIs(t, err, ErrNotAssigned)
}

func TestTickCountsDownToCompletion(t *testing.T) {
	g := newTestGraph(t)
	w := newWorker(0)
	require.NoError(t, w.Assign(mustStep(t, g, 'C'), 0))

	for i := 0; i < 2; i++ {
		require.NoError(t, w.Tick())
		assert.False(t, w.IsComplete(), "tick %d", i+1)
	}
	require.NoError(t, w.Tick())
	assert.True(t, w.IsComplete())

	// Floored at zero
	require.NoError(t, w.Tick())
	assert.Equal(t, 0, w.TimeToComplete())
	assert.True(t, w.IsComplete())
}

func TestTickIdle(t *testing.T) {
	assert.ErrorIs(t, newWorker(0).Tick(), ErrNotAssigned)
}

// ============================================================================
// Pool Tests
// ============================================================================

func TestNewPool(t *testing.T) {
	pool, err := NewPool(5)
	require.NoError(t, err)
	assert.Equal(t, 5, pool.GetWorkerCount())
	assert.Equal(t, 0, pool.Busy())
	assert.Equal(t, 5, pool.Idle())

	for i, w := range pool.Workers() {
		assert.Equal(t, i, w.ID(), "workers are in index order")
	}
}

func TestNewPoolInvalidCount(t *testing.T) {
	for _, n := range []int{0, -3} {
		pool, err := NewPool(n)
		assert.Nil(t, pool)
		assert.ErrorIs(t, err, ErrInvalidWorkerCount)
	}
}

func TestPoolOccupancy(t *testing.T) {
	g := newTestGraph(t)
	pool, err := NewPool(3)
	require.NoError(t, err)

	require.NoError(t, pool.Workers()[1].Assign(mustStep(t, g, 'C'), 0))
	assert.Equal(t, 1, pool.Busy())
	assert.Equal(t, 2, pool.Idle())
	assert.Equal(t, "-- | C (3s) | --", pool.String())
}
