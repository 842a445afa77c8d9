// ============================================================================
// AoC 控制器 - 求解流程協調器
// ============================================================================
//
// Package: internal/controller
// 文件: controller.go
// 功能: 協調解析結果、排程模擬與指標，產生每日的報告
//
// Day 7 流程:
//   1. part1: Clone 圖 → 1 個 worker、無基礎延遲 → 完成順序
//   2. part2: Clone 圖 → N 個 worker、基礎延遲 → 總執行時間
//   3. 以 part2 的參數計算關鍵路徑（執行時間下界）
//   模擬會破壞性地消耗圖，所以每次都在獨立的副本上執行
//
// Day 4 流程:
//   1. 建立每位守衛的睡眠統計
//   2. 策略一（總睡眠最多）與策略二（同一分鐘最常睡著）
//
// ============================================================================

package controller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ChuLiYu/aoc2018/internal/guards"
	"github.com/ChuLiYu/aoc2018/internal/metrics"
	"github.com/ChuLiYu/aoc2018/internal/scheduler"
	"github.com/ChuLiYu/aoc2018/internal/steps"
	"github.com/ChuLiYu/aoc2018/pkg/types"
)

// Controller 求解協調器
type Controller struct {
	metrics *metrics.Collector // 可為 nil
	log     *slog.Logger
}

// NewController 建立新的 Controller 實例
//
// 參數：
//   - collector: 指標收集器，nil 表示不收集
//   - logger: nil 時使用 slog.Default()
func NewController(collector *metrics.Collector, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		metrics: collector,
		log:     logger.With("component", "controller"),
	}
}

// SolveDay7 在 g 的獨立副本上執行兩次模擬；g 本身不會被修改
func (c *Controller) SolveDay7(g *steps.Graph, workers, baseDelay int) (types.Day7Report, error) {
	var report types.Day7Report

	part1, err := c.simulate("part1", g.Clone(), 1, 0)
	if err != nil {
		return report, fmt.Errorf("part 1: %w", err)
	}

	part2, err := c.simulate("part2", g.Clone(), workers, baseDelay)
	if err != nil {
		return report, fmt.Errorf("part 2: %w", err)
	}

	criticalPath, err := g.CriticalPath(baseDelay)
	if err != nil {
		return report, fmt.Errorf("critical path: %w", err)
	}

	report = types.Day7Report{
		CompletionOrder: part1.Order,
		Workers:         workers,
		BaseDelay:       baseDelay,
		ExecutionTime:   part2.Elapsed,
		CriticalPath:    criticalPath,
	}
	c.log.Info("day 7 solved",
		"steps", g.Len(),
		"order", report.CompletionOrder,
		"elapsed", report.ExecutionTime,
		"critical_path", report.CriticalPath)
	return report, nil
}

func (c *Controller) simulate(run string, g *steps.Graph, workers, baseDelay int) (scheduler.Result, error) {
	log := c.log.With("run", run)
	opts := scheduler.Options{Workers: workers, BaseDelay: baseDelay, Logger: log}

	var rec *metrics.RunRecorder
	if c.metrics != nil {
		rec = c.metrics.Run(run)
		opts.Recorder = rec
	}

	log.Debug("simulation starting", "steps", g.Len(), "workers", workers, "base_delay", baseDelay)
	if log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("dependency graph", "graph", g.String())
	}
	res, err := scheduler.CompleteSteps(g, opts)
	if err != nil {
		return res, err
	}
	if rec != nil {
		rec.SetElapsed(res.Elapsed)
	}
	log.Debug("simulation finished", "order", res.Order, "elapsed", res.Elapsed)
	return res, nil
}

// SolveDay4 依兩種策略分析已按時間排序的事件
func (c *Controller) SolveDay4(events []guards.Event) (types.Day4Report, error) {
	var report types.Day4Report

	if c.metrics != nil {
		for _, e := range events {
			c.metrics.RecordGuardEvent(string(e.Kind))
		}
	}

	tallies, err := guards.BuildTallies(events)
	if err != nil {
		return report, err
	}

	s1, err := guards.SleepiestGuard(tallies)
	if err != nil {
		return report, fmt.Errorf("strategy 1: %w", err)
	}
	s2, err := guards.SleepiestMinute(tallies)
	if err != nil {
		return report, fmt.Errorf("strategy 2: %w", err)
	}

	report = types.Day4Report{
		SleepiestGuard:  toResult(s1),
		SleepiestMinute: toResult(s2),
		Guards:          tallies.Len(),
		Events:          len(events),
	}
	c.log.Info("day 4 solved",
		"guards", report.Guards,
		"events", report.Events,
		"strategy1", s1.Product(),
		"strategy2", s2.Product())
	return report, nil
}

func toResult(s guards.Strategy) types.StrategyResult {
	return types.StrategyResult{
		GuardID: s.GuardID,
		Minute:  s.Minute,
		Product: s.Product(),
	}
}
