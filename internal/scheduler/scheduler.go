// ============================================================================
// AoC Scheduler - 離散時間步的多 Worker 模擬
// ============================================================================
//
// Package: internal/scheduler
// 文件: scheduler.go
// 功能: 在固定數量的 Worker 上確定性地執行步驟圖，每輪迴圈為一個時間單位
//
// 每個時間步:
//   1. startable = 無未完成依賴且未被認領的步驟，依 ID 排序
//   2. 依索引順序走訪每個 Worker:
//      a. 忙碌中: Tick；若步驟完成則 Unassign、追加到完成順序、
//         從引用者的依賴中移除、從圖中刪除，並重新計算 startable
//      b. （此時）閒置且 startable 非空: 以本次的基礎延遲 Assign startable[0]，
//         並重新計算 startable
//   3. 圖中仍有步驟時 elapsed++
//   4. 重複直到圖為空
//
// 同一輪中，某 Worker 完成的依賴會立即解鎖其引用者，
// 之後走訪到的 Worker（包括完成者本身）都能認領
//
// 圖會被消耗：需要保留原圖時，呼叫者應傳入 Clone
//
// ============================================================================

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ChuLiYu/aoc2018/internal/steps"
	"github.com/ChuLiYu/aoc2018/internal/worker"
)

var (
	// ErrInvalidOptions Worker 數量小於 1 或基礎延遲為負
	ErrInvalidOptions = errors.New("scheduler: invalid options")
	// ErrStalled 仍有步驟但沒有任何 Worker 能執行
	ErrStalled = errors.New("scheduler: simulation stalled")
)

// Recorder 觀察一次模擬的事件，at 為事件發生的時間步
type Recorder interface {
	StepAssigned(id steps.StepID, worker, at int)
	StepCompleted(id steps.StepID, worker, at int)
	TimeStep(busy, idle int)
}

// Options 單次模擬的參數
type Options struct {
	Workers   int          // Worker 數量，至少 1
	BaseDelay int          // 每個步驟額外的固定耗時，至少 0
	Recorder  Recorder     // 可為 nil
	Logger    *slog.Logger // 可為 nil；Debug 等級時每個時間步輸出 Worker 狀態
}

// Result 單次模擬的結果
type Result struct {
	Order   string // 依完成順序排列的步驟 ID
	Elapsed int    // 仍有步驟未完成時經過的時間單位
}

type nopRecorder struct{}

func (nopRecorder) StepAssigned(steps.StepID, int, int)  {}
func (nopRecorder) StepCompleted(steps.StepID, int, int) {}
func (nopRecorder) TimeStep(int, int)                    {}

// CompleteSteps 執行模擬直到 g 中所有步驟完成
//
// g 會被就地消耗；有環的圖在任何工作開始前就被拒絕
func CompleteSteps(g *steps.Graph, opts Options) (Result, error) {
	if opts.Workers < 1 || opts.BaseDelay < 0 {
		return Result{}, fmt.Errorf("%w: workers=%d base_delay=%d", ErrInvalidOptions, opts.Workers, opts.BaseDelay)
	}
	if err := g.Validate(); err != nil {
		return Result{}, err
	}

	rec := opts.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}

	debug := opts.Logger != nil && opts.Logger.Enabled(context.Background(), slog.LevelDebug)

	pool, err := worker.NewPool(opts.Workers)
	if err != nil {
		return Result{}, err
	}

	var order strings.Builder
	elapsed := 0
	startable := g.Startable()

	for g.Len() > 0 {
		for _, w := range pool.Workers() {
			if w.IsAssigned() {
				if err := w.Tick(); err != nil {
					return Result{}, err
				}
				if w.IsComplete() {
					id, err := w.Unassign(g)
					if err != nil {
						return Result{}, err
					}
					order.WriteString(id.String())
					if err := g.Complete(id); err != nil {
						return Result{}, fmt.Errorf("completing %s: %w", id, err)
					}
					rec.StepCompleted(id, w.ID(), elapsed)
					startable = g.Startable()
				}
			}

			if !w.IsAssigned() && len(startable) > 0 {
				s, ok := g.Step(startable[0])
				if !ok {
					return Result{}, fmt.Errorf("assigning %s: %w", startable[0], steps.ErrStepNotFound)
				}
				if err := w.Assign(s, opts.BaseDelay); err != nil {
					return Result{}, err
				}
				rec.StepAssigned(s.ID, w.ID(), elapsed)
				startable = g.Startable()
			}
		}

		rec.TimeStep(pool.Busy(), pool.Idle())
		if debug {
			opts.Logger.Debug("time step", "t", elapsed, "workers", pool.String(), "done", order.String())
		}

		if g.Len() > 0 {
			if pool.Busy() == 0 {
				return Result{}, fmt.Errorf("%w: %d steps left at t=%d", ErrStalled, g.Len(), elapsed)
			}
			elapsed++
		}
	}

	return Result{Order: order.String(), Elapsed: elapsed}, nil
}
