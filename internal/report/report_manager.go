package report

// ============================================================================
// 職責說明：
// 1. 將求解結果序列化為 JSON 報告檔
// 2. 使用原子性寫入（temp file + rename）防止損壞
// 3. 載入時驗證 schema 版本相容性
// ============================================================================

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ChuLiYu/aoc2018/pkg/types"
)

// SchemaVersion 目前的報告格式版本
const SchemaVersion = 1

var (
	ErrCorruptedReport     = errors.New("report file is corrupted")
	ErrIncompatibleVersion = errors.New("report schema version is incompatible")
	ErrReportNotFound      = errors.New("report file not found")
)

// Manager 報告檔管理器
type Manager struct {
	path string     // 報告檔案路徑
	mu   sync.Mutex // 保護檔案操作
}

// NewManager 建立報告管理器實例
func NewManager(path string) *Manager {
	return &Manager{
		path: path,
	}
}

// Write 原子性寫入報告
//
// 流程：
// 1. 補上版本號與建立時間
// 2. 寫入臨時檔案（.tmp）
// 3. 使用 os.Rename 原子性替換原始檔案
func (m *Manager) Write(r types.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r.SchemaVer = SchemaVersion
	if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().UnixMilli()
	}

	jsonBytes, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	tmpPath := m.path + ".tmp"
	if err := os.WriteFile(tmpPath, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write temp report: %w", err)
	}

	if err := os.Rename(tmpPath, m.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename report: %w", err)
	}

	return nil
}

// Load 載入報告
//
// 行為：
//   - 檔案不存在回傳 ErrReportNotFound
//   - 驗證 schema 版本是否相容
//   - 偵測損壞的報告檔案
func (m *Manager) Load() (types.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var r types.Report

	jsonBytes, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, fmt.Errorf("%w: %s", ErrReportNotFound, m.path)
		}
		return r, fmt.Errorf("failed to read report: %w", err)
	}

	if err := json.Unmarshal(jsonBytes, &r); err != nil {
		return r, fmt.Errorf("%w: %v", ErrCorruptedReport, err)
	}

	if r.SchemaVer != SchemaVersion {
		return r, fmt.Errorf("%w: got %d, want %d", ErrIncompatibleVersion, r.SchemaVer, SchemaVersion)
	}

	switch {
	case r.Kind == types.KindDay4 && r.Day4 == nil,
		r.Kind == types.KindDay7 && r.Day7 == nil:
		return r, fmt.Errorf("%w: %s report without %s section", ErrCorruptedReport, r.Kind, r.Kind)
	case r.Kind != types.KindDay4 && r.Kind != types.KindDay7:
		return r, fmt.Errorf("%w: unknown kind %q", ErrCorruptedReport, r.Kind)
	}

	return r, nil
}

// Exists 檢查報告檔案是否存在
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.path)
	return err == nil
}

// GetPath 取得報告檔案路徑
func (m *Manager) GetPath() string {
	return m.path
}
