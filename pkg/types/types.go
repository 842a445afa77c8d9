// Package types 定義了 day4 / day7 求解結果的共用資料模型
package types

// ReportKind 報告種類
type ReportKind string

const (
	KindDay4 ReportKind = "day4" // 守衛睡眠統計
	KindDay7 ReportKind = "day7" // 步驟排程模擬
)

// Day7Report 步驟排程模擬的結果
type Day7Report struct {
	// 第一部分：單一 worker、無基礎延遲
	CompletionOrder string `json:"completion_order"`

	// 第二部分：N 個 worker、固定基礎延遲
	Workers       int `json:"workers"`
	BaseDelay     int `json:"base_delay"`
	ExecutionTime int `json:"execution_time"`

	// 第二部分參數下的關鍵路徑，為執行時間的下界
	CriticalPath int `json:"critical_path"`
}

// StrategyResult 單一策略選出的守衛與分鐘
type StrategyResult struct {
	GuardID int `json:"guard_id"`
	Minute  int `json:"minute"`
	Product int `json:"product"`
}

// Day4Report 守衛睡眠統計的結果
type Day4Report struct {
	SleepiestGuard  StrategyResult `json:"sleepiest_guard"`  // 策略一：總睡眠分鐘最多
	SleepiestMinute StrategyResult `json:"sleepiest_minute"` // 策略二：同一分鐘睡著次數最多
	Guards          int            `json:"guards"`
	Events          int            `json:"events"`
}

// Report 寫入檔案的報告外層結構
type Report struct {
	Kind      ReportKind  `json:"kind"`
	Input     string      `json:"input"`
	Day4      *Day4Report `json:"day4,omitempty"`
	Day7      *Day7Report `json:"day7,omitempty"`
	SchemaVer int         `json:"schema_ver"` // 資料結構版本號
	CreatedAt int64       `json:"created_at"` // 建立時間（Unix 毫秒）
}
