// ============================================================================
// AoC Metrics - Prometheus Counters for Simulation and Parsing
// ============================================================================
//
// Package: internal/metrics
// File: metrics.go
// Function: Collects run metrics and renders them in Prometheus text format
//
// Metric Categories:
//
//   1. Step counters (Counter):
//      - aoc_steps_assigned_total{run}: steps handed to a worker
//      - aoc_steps_completed_total{run}: steps finished
//
//   2. Worker occupancy (Counter), one increment per worker per time step:
//      - aoc_worker_busy_ticks_total{run}
//      - aoc_worker_idle_ticks_total{run}
//
//   3. Results (Gauge):
//      - aoc_simulation_elapsed_units{run}: total simulated time of a run
//
//   4. Day 4 parsing (Counter):
//      - aoc_guard_events_total{kind}: parsed log events by kind
//
// The run label is "part1" or "part2". Busy / (busy + idle) is the worker
// utilisation of a run.
//
// Output:
//   A one-shot CLI has nothing to scrape it, so WriteText renders the
//   registry in exposition format (to stderr with --metrics).
//
// ============================================================================

package metrics

import (
	"fmt"
	"io"

	"github.com/ChuLiYu/aoc2018/internal/steps"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Collector Prometheus 指標收集器
type Collector struct {
	registry *prometheus.Registry

	// 步驟相關指標
	stepsAssigned  *prometheus.CounterVec
	stepsCompleted *prometheus.CounterVec

	// Worker 佔用率
	busyTicks *prometheus.CounterVec
	idleTicks *prometheus.CounterVec

	// 結果指標
	elapsed *prometheus.GaugeVec

	// Day 4 事件
	guardEvents *prometheus.CounterVec
}

// NewCollector 創建新的指標收集器並註冊到 registry
func NewCollector(registry *prometheus.Registry) *Collector {
	c := &Collector{
		registry: registry,
		stepsAssigned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aoc_steps_assigned_total",
			Help: "Total number of steps assigned to a worker",
		}, []string{"run"}),
		stepsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aoc_steps_completed_total",
			Help: "Total number of steps completed",
		}, []string{"run"}),
		busyTicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aoc_worker_busy_ticks_total",
			Help: "Worker time steps spent holding a step",
		}, []string{"run"}),
		idleTicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aoc_worker_idle_ticks_total",
			Help: "Worker time steps spent idle",
		}, []string{"run"}),
		elapsed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "aoc_simulation_elapsed_units",
			Help: "Simulated time units taken by a run",
		}, []string{"run"}),
		guardEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aoc_guard_events_total",
			Help: "Parsed guard log events by kind",
		}, []string{"kind"}),
	}

	registry.MustRegister(
		c.stepsAssigned,
		c.stepsCompleted,
		c.busyTicks,
		c.idleTicks,
		c.elapsed,
		c.guardEvents,
	)

	return c
}

// Run returns a recorder bound to one simulation run
func (c *Collector) Run(name string) *RunRecorder {
	return &RunRecorder{
		assigned:  c.stepsAssigned.WithLabelValues(name),
		completed: c.stepsCompleted.WithLabelValues(name),
		busy:      c.busyTicks.WithLabelValues(name),
		idle:      c.idleTicks.WithLabelValues(name),
		elapsed:   c.elapsed.WithLabelValues(name),
	}
}

// RecordGuardEvent 記錄一筆解析的守衛事件
func (c *Collector) RecordGuardEvent(kind string) {
	c.guardEvents.WithLabelValues(kind).Inc()
}

// WriteText 以 Prometheus 文字格式輸出所有指標
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

// RunRecorder observes one scheduler run
type RunRecorder struct {
	assigned  prometheus.Counter
	completed prometheus.Counter
	busy      prometheus.Counter
	idle      prometheus.Counter
	elapsed   prometheus.Gauge
}

// StepAssigned 記錄步驟分派
func (r *RunRecorder) StepAssigned(steps.StepID, int, int) {
	r.assigned.Inc()
}

// StepCompleted 記錄步驟完成
func (r *RunRecorder) StepCompleted(steps.StepID, int, int) {
	r.completed.Inc()
}

// TimeStep 記錄一個時間步的 worker 佔用
func (r *RunRecorder) TimeStep(busy, idle int) {
	r.busy.Add(float64(busy))
	r.idle.Add(float64(idle))
}

// SetElapsed 設置模擬總時間
func (r *RunRecorder) SetElapsed(units int) {
	r.elapsed.Set(float64(units))
}
