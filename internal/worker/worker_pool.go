// ============================================================================
// AoC Worker Pool - 固定數量的模擬 Worker
// ============================================================================
//
// Package: internal/worker
// 文件: worker_pool.go
// 功能: 持有單次模擬的所有 Worker，並依索引順序提供給排程器
//
// 設計模式:
//   與並發工作池不同，這裡沒有 goroutine 也沒有 channel：
//   1. 排程器每個時間步依索引順序走訪 Worker 一次
//   2. Worker 的狀態只在該次走訪中被修改
//   3. 結果完全由圖與參數決定，可重現
//
// 生命週期:
//   1. NewPool(n) - 建立 n 個閒置 Worker
//   2. Workers() - 每個時間步依索引順序走訪
//   3. Busy() / Idle() - 佔用情況，供指標與停滯偵測使用
//   4. String() - 目前狀態快照，供除錯日誌使用
//
// 每次模擬各自建立 Pool，不在多次模擬間共用
//
// ============================================================================

package worker

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidWorkerCount Worker 數量小於 1
var ErrInvalidWorkerCount = errors.New("worker pool: worker count must be at least 1")

// ============================================================================
// 資料結構定義
// ============================================================================

// Pool 單次模擬的 Worker 集合
type Pool struct {
	workers []*Worker // 索引即 Worker ID
}

// NewPool 建立 workerCount 個閒置 Worker，ID 為 0..workerCount-1
func NewPool(workerCount int) (*Pool, error) {
	if workerCount < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkerCount, workerCount)
	}

	p := &Pool{
		workers: make([]*Worker, 0, workerCount),
	}
	for i := 0; i < workerCount; i++ {
		p.workers = append(p.workers, newWorker(i))
	}
	return p, nil
}

// ============================================================================
// 核心方法實作
// ============================================================================

// Workers 依索引順序回傳所有 Worker
func (p *Pool) Workers() []*Worker {
	return p.workers
}

// GetWorkerCount 獲取 Worker 數量
func (p *Pool) GetWorkerCount() int {
	return len(p.workers)
}

// Busy 正在處理步驟的 Worker 數量
func (p *Pool) Busy() int {
	n := 0
	for _, w := range p.workers {
		if w.IsAssigned() {
			n++
		}
	}
	return n
}

// Idle 閒置的 Worker 數量
func (p *Pool) Idle() int {
	return len(p.workers) - p.Busy()
}

// String 依索引列出每個 Worker，例如 "C (2s) | --"
func (p *Pool) String() string {
	parts := make([]string, len(p.workers))
	for i, w := range p.workers {
		parts[i] = w.String()
	}
	return strings.Join(parts, " | ")
}
