package game

import "time"

// Clock 提供当前时间，过渡看门狗据此计时
// 测试中注入可手动推进的时钟
type Clock interface {
	Now() time.Time
}

// SystemClock 使用系统时间
type SystemClock struct{}

// Now 返回 time.Now()
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock 只在 Advance 时前进的时钟
// 用于回放和测试，保证看门狗行为可复现
type ManualClock struct {
	now time.Time
}

// NewManualClock 创建起始于 start 的手动时钟
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now 返回当前记录的时间
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Advance 推进时钟
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
