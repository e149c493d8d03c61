package util

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"
)

// RandomDuration 返回 [min, max] 区间内的随机时长
func RandomDuration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + rand.N(max-min+1)
}

// RandomSleep 随机等待一段时间，ctx 取消时提前返回
func RandomSleep(ctx context.Context, min, max time.Duration) error {
	d := RandomDuration(min, max)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// TruncateRunes 去除首尾空白并按字符数截断
func TruncateRunes(s string, limit int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// CollapseSpace 将连续空白压缩为单个空格
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
