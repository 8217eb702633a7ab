package utils

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// DoubleClickInterval 两次点击被视为双击的最大间隔（秒）
	DoubleClickInterval = 0.35

	// DoubleClickSlop 两次点击之间允许的最大位移（像素）
	DoubleClickSlop = 6.0
)

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	// 检查触摸
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// DoubleClickDetector 把单次点击序列识别为双击
//
// 时间由调用方传入（场景累计的秒数），不读取系统时钟
type DoubleClickDetector struct {
	Interval float64
	Slop     float64

	lastTime   float64
	lastX      int
	lastY      int
	hasPending bool
}

// NewDoubleClickDetector 使用默认间隔和位移阈值
func NewDoubleClickDetector() *DoubleClickDetector {
	return &DoubleClickDetector{
		Interval: DoubleClickInterval,
		Slop:     DoubleClickSlop,
	}
}

// Click 记录一次点击，构成双击时返回 true
// 双击被识别后状态清空，第三次点击重新开始计数
func (d *DoubleClickDetector) Click(now float64, x, y int) bool {
	if d.hasPending &&
		now-d.lastTime <= d.Interval &&
		math.Hypot(float64(x-d.lastX), float64(y-d.lastY)) <= d.Slop {
		d.hasPending = false
		return true
	}

	d.lastTime = now
	d.lastX, d.lastY = x, y
	d.hasPending = true
	return false
}

// Reset 丢弃待配对的点击
func (d *DoubleClickDetector) Reset() {
	d.hasPending = false
}
