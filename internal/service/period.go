package service

import (
	"strconv"
	"strings"
)

// DecodePeriod 解析节次编码字符串，如 "(3)10:20-11:00" → (3, "10:20-11:00")。
//
// 容错设计：来源资料可能残缺，解析失败时不报错，降级为
// (0, 原始字符串)，由呼叫方以"未知节次"形式继续展示。
func DecodePeriod(raw string) (int, string) {
	idx := strings.Index(raw, ")")
	if idx < 0 {
		return 0, raw
	}

	numPart := strings.TrimPrefix(raw[:idx], "(")
	period, err := strconv.Atoi(strings.TrimSpace(numPart))
	if err != nil {
		return 0, raw
	}

	timeRange := raw[idx+1:]
	return period, timeRange
}
