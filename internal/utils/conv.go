package utils

import (
	"strconv"
)

// ParsePositiveInt 解析查询参数里的正整数，非法或非正数时返回 fallback
func ParsePositiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
