package scheduler

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/ChuLiYu/aoc2018/internal/steps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleInput = `Step C must be finished before step A can begin.
Step C must be finished before step F can begin.
Step A must be finished before step B can begin.
Step A must be finished before step D can begin.
Step B must be finished before step E can begin.
Step D must be finished before step E can begin.
Step F must be finished before step E can begin.
`

func parse(t *testing.T, input string) *steps.Graph {
	t.Helper()
	g, err := steps.Parse(strings.NewReader(input))
	require.NoError(t, err)
	return g
}

type event struct {
	id     steps.StepID
	worker int
	at     int
}

type fakeRecorder struct {
	assigned  []event
	completed []event
	timeSteps int
	maxBusy   int
}

func (r *fakeRecorder) StepAssigned(id steps.StepID, worker, at int) {
	r.assigned = append(r.assigned, event{id, worker, at})
}

func (r *fakeRecorder) StepCompleted(id steps.StepID, worker, at int) {
	r.completed = append(r.completed, event{id, worker, at})
}

func (r *fakeRecorder) TimeStep(busy, idle int) {
	r.timeSteps++
	if busy > r.maxBusy {
		r.maxBusy = busy
	}
}

func TestExampleSingleWorker(t *testing.T) {
	res, err := CompleteSteps(parse(t, exampleInput), Options{Workers: 1})
	require.NoError(t, err)
	assert.Equal(t, "CABDFE", res.Order)
	assert.Equal(t, 21, res.Elapsed, "one worker pays every duration serially")
}

func TestExampleTwoWorkers(t *testing.T) {
	res, err := CompleteSteps(parse(t, exampleInput), Options{Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, 15, res.Elapsed)
	assert.Equal(t, "CABFDE", res.Order)
}

func TestMoreWorkersNeverSlower(t *testing.T) {
	g := parse(t, exampleInput)
	want := []int{21, 15, 14, 14, 14, 14}

	prev := -1
	for n := 1; n <= len(want); n++ {
		res, err := CompleteSteps(g.Clone(), Options{Workers: n})
		require.NoError(t, err)
		assert.Equal(t, want[n-1], res.Elapsed, "workers=%d", n)
		if prev >= 0 {
			assert.LessOrEqual(t, res.Elapsed, prev, "workers=%d", n)
		}
		prev = res.Elapsed
	}
}

func TestEnoughWorkersMatchCriticalPath(t *testing.T) {
	g := parse(t, exampleInput)
	for _, base := range []int{0, 1, 60} {
		cp, err := g.CriticalPath(base)
		require.NoError(t, err)

		res, err := CompleteSteps(g.Clone(), Options{Workers: g.Len(), BaseDelay: base})
		require.NoError(t, err)
		assert.Equal(t, cp, res.Elapsed, "base=%d", base)

		res, err = CompleteSteps(g.Clone(), Options{Workers: 26, BaseDelay: base})
		require.NoError(t, err)
		assert.Equal(t, cp, res.Elapsed, "base=%d with 26 workers", base)
	}
}

func TestSingleWorkerOrderIsMinimalTopologicalSort(t *testing.T) {
	inputs := []string{
		exampleInput,
		"Step A must be finished before step B can begin.\nStep Y must be finished before step Z can begin.\n",
		"Step Z must be finished before step A can begin.\nStep B must be finished before step A can begin.\nStep C must be finished before step Z can begin.\n",
		"Step D must be finished before step C can begin.\nStep C must be finished before step B can begin.\nStep B must be finished before step A can begin.\n",
	}

	for _, input := range inputs {
		g := parse(t, input)
		topo, err := g.TopologicalOrder()
		require.NoError(t, err)

		var want strings.Builder
		for _, id := range topo {
			want.WriteString(id.String())
		}

		res, err := CompleteSteps(g.Clone(), Options{Workers: 1})
		require.NoError(t, err)
		assert.Equal(t, want.String(), res.Order)
	}
}

// buildDAG adds edge letters[i] -> letters[j] (i < j) for every set bit of
// mask, walking the pairs in (i, j) order; letters need not be sorted, so
// edges run both up and down the alphabet
func buildDAG(t *testing.T, letters string, mask int) *steps.Graph {
	t.Helper()
	g := steps.NewGraph()
	bit := 0
	for i := 0; i < len(letters); i++ {
		for j := i + 1; j < len(letters); j++ {
			if mask&(1<<bit) != 0 {
				require.NoError(t, g.AddEdge(steps.StepID(letters[i]), steps.StepID(letters[j])))
			}
			bit++
		}
	}
	return g
}

// Every DAG on five letters, under several base delays: one worker yields the
// minimal topological order at the summed cost, adding workers never slows a
// run down, and at least one worker per step reaches the critical path.
func TestSchedulingPropertiesOverAllSmallDAGs(t *testing.T) {
	const pairs = 5 * 4 / 2

	for _, letters := range []string{"ABCDE", "EDCBA", "ZYXWV", "QCZFJ", "AEIOU"} {
		for mask := 1; mask < 1<<pairs; mask++ {
			g := buildDAG(t, letters, mask)
			n := g.Len()

			topo, err := g.TopologicalOrder()
			require.NoError(t, err)
			var wantOrder strings.Builder
			for _, id := range topo {
				wantOrder.WriteString(id.String())
			}

			for _, base := range []int{0, 1, 13} {
				cp, err := g.CriticalPath(base)
				require.NoError(t, err)

				serial := 0
				for _, id := range g.IDs() {
					serial += base + id.Duration()
				}

				prev := 0
				for workers := 1; workers <= n+1; workers++ {
					res, err := CompleteSteps(g.Clone(), Options{Workers: workers, BaseDelay: base})
					require.NoError(t, err)

					if workers == 1 {
						require.Equal(t, wantOrder.String(), res.Order, "%s mask=%d base=%d", letters, mask, base)
						require.Equal(t, serial, res.Elapsed, "%s mask=%d base=%d", letters, mask, base)
					} else {
						require.LessOrEqual(t, res.Elapsed, prev, "%s mask=%d base=%d workers=%d", letters, mask, base, workers)
					}
					if workers >= n {
						require.Equal(t, cp, res.Elapsed, "%s mask=%d base=%d workers=%d", letters, mask, base, workers)
					}
					prev = res.Elapsed
				}
			}
		}
	}
}

func TestIndependentChains(t *testing.T) {
	g := parse(t, "Step A must be finished before step B can begin.\nStep Y must be finished before step Z can begin.\n")
	res, err := CompleteSteps(g, Options{Workers: 1})
	require.NoError(t, err)
	assert.Equal(t, "ABYZ", res.Order)
	assert.Equal(t, 1+2+25+26, res.Elapsed)
}

func TestStepUnlockedInSameTimeStep(t *testing.T) {
	// A finishes at t=1; worker 0 picks up B and worker 1 picks up C in
	// that same pass, so C (3) ends at t=4
	g := parse(t, "Step A must be finished before step B can begin.\nStep A must be finished before step C can begin.\n")
	rec := &fakeRecorder{}

	res, err := CompleteSteps(g, Options{Workers: 3, Recorder: rec})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Elapsed)
	assert.Equal(t, "ABC", res.Order)
	assert.Equal(t, []event{{'A', 0, 0}, {'B', 0, 1}, {'C', 1, 1}}, rec.assigned)
}

func TestDeterministicOnClones(t *testing.T) {
	g := parse(t, exampleInput)

	a, err := CompleteSteps(g.Clone(), Options{Workers: 5, BaseDelay: 60})
	require.NoError(t, err)
	b, err := CompleteSteps(g.Clone(), Options{Workers: 5, BaseDelay: 60})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, 6, g.Len(), "original graph must be untouched")
}

func TestGraphIsConsumed(t *testing.T) {
	g := parse(t, exampleInput)
	_, err := CompleteSteps(g, Options{Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, 0, g.Len())
}

func TestRecorder(t *testing.T) {
	rec := &fakeRecorder{}
	res, err := CompleteSteps(parse(t, exampleInput), Options{Workers: 1, Recorder: rec})
	require.NoError(t, err)

	assert.Len(t, rec.assigned, 6)
	assert.Len(t, rec.completed, 6)
	assert.Equal(t, event{'C', 0, 3}, rec.completed[0])
	assert.Equal(t, event{'A', 0, 3}, rec.assigned[1], "A starts the tick C completes")
	assert.Equal(t, res.Elapsed+1, rec.timeSteps, "the draining time step adds no unit")
	assert.Equal(t, 1, rec.maxBusy)
}

func TestDebugLogShowsWorkers(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := CompleteSteps(parse(t, exampleInput), Options{Workers: 2, Logger: logger})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `t=0 workers="C (3s) | --" done=""`)
	assert.Contains(t, out, `t=3 workers="A (1s) | F (6s)" done=C`)
	assert.Equal(t, 16, strings.Count(out, `msg="time step"`), "15 units plus the draining step")
}

func TestEmptyGraph(t *testing.T) {
	res, err := CompleteSteps(steps.NewGraph(), Options{Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
}

func TestInvalidOptions(t *testing.T) {
	for _, opts := range []Options{{Workers: 0}, {Workers: -1}, {Workers: 2, BaseDelay: -1}} {
		_, err := CompleteSteps(parse(t, exampleInput), opts)
		assert.ErrorIs(t, err, ErrInvalidOptions, "%+v", opts)
	}
}

func TestCycleRejected(t *testing.T) {
	g := parse(t, "Step A must be finished before step B can begin.\nStep B must be finished before step A can begin.\n")
	_, err := CompleteSteps(g, Options{Workers: 2})
	assert.ErrorIs(t, err, steps.ErrCycle)
	assert.Equal(t, 2, g.Len())
}
