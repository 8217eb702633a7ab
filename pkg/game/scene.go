package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个可切换的画面（如星系视图）
// 每个场景有自己的更新和渲染逻辑
type Scene interface {
	// Update 按帧推进场景逻辑，deltaTime 为距上一帧的秒数
	Update(deltaTime float64)

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：场景在程序退出时保存状态
//
// 实现此接口的场景会在窗口关闭时被调用 SaveOnExit()
type Saveable interface {
	// SaveOnExit 返回 true 表示保存成功或无需保存
	// 返回 false 表示保存失败（但程序仍会正常退出）
	SaveOnExit() bool
}
