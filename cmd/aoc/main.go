package main

// ============================================================================
// 職責說明：
// 1. CLI 應用程式入口點
// 2. 建立並執行 CLI 命令
// 3. 將錯誤對應到輸出位置與結束碼
// ============================================================================

import (
	"errors"
	"fmt"
	"os"

	"github.com/ChuLiYu/aoc2018/internal/cli"
)

func main() {
	rootCmd := cli.BuildCLI()

	if err := rootCmd.Execute(); err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fmt.Println(usageErr.Error())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

/*
# 編譯
go build -o bin/aoc ./cmd/aoc

# 執行
./bin/aoc day7 input/day07.txt 5 60
./bin/aoc day7 --metrics --out day07.json input/day07.txt 5 60   # day7 的旗標需放在 <input> 之前
./bin/aoc day4 input/day04.txt --out day04.json
./bin/aoc show day04.json
*/
