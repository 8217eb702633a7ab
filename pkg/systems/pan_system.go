package systems

import (
	"github.com/gonewx/jovian/pkg/components"
	"github.com/gonewx/jovian/pkg/game"
	"github.com/gonewx/jovian/pkg/types"
	"github.com/gonewx/jovian/pkg/utils"
)

// PanDirection 平移方向
type PanDirection int

const (
	PanForward PanDirection = iota
	PanBackward
	PanLeft
	PanRight
	panDirectionCount
)

// panEpsilonSq 小于该平方长度的平移量视为无输入
const panEpsilonSq = 1e-6

// PanSystem 星系视图下的键盘平移
//
// 仅在 SYSTEM 且不在过渡中时生效。前进方向取镜头到注视点方向的水平分量，
// 右方向为 forward × up；多个方向直接相加，镜头和注视点同步平移（不是环绕）。
type PanSystem struct {
	model *game.FocusModel
	rig   *components.CameraRigComponent
	speed float64 // 单位/秒
	held  [panDirectionCount]bool
}

// NewPanSystem 创建平移系统，speed 单位为 单位/秒
func NewPanSystem(model *game.FocusModel, rig *components.CameraRigComponent, speed float64) *PanSystem {
	return &PanSystem{
		model: model,
		rig:   rig,
		speed: speed,
	}
}

// SetDirectionHeld 记录方向键按下/松开
func (ps *PanSystem) SetDirectionHeld(dir PanDirection, held bool) {
	if dir < 0 || dir >= panDirectionCount {
		return
	}
	ps.held[dir] = held
}

// IsHeld 方向键是否按下
func (ps *PanSystem) IsHeld(dir PanDirection) bool {
	if dir < 0 || dir >= panDirectionCount {
		return false
	}
	return ps.held[dir]
}

// ReleaseAll 松开所有方向（窗口失焦时调用）
func (ps *PanSystem) ReleaseAll() {
	ps.held = [panDirectionCount]bool{}
}

// Update 按帧平移镜头
func (ps *PanSystem) Update(dt float64) {
	if ps.model.ViewState != types.ViewSystem || ps.model.IsTransitioning || !ps.rig.Enabled {
		return
	}

	forward := ps.rig.Target.Sub(ps.rig.Position)
	forward.Y = 0
	forward = forward.Normalize()

	up := ps.rig.Up
	if up.LengthSq() == 0 {
		up = utils.V3(0, 1, 0)
	}
	right := forward.Cross(up).Normalize()

	var offset utils.Vec3
	if ps.held[PanForward] {
		offset = offset.Add(forward)
	}
	if ps.held[PanBackward] {
		offset = offset.Sub(forward)
	}
	if ps.held[PanLeft] {
		offset = offset.Sub(right)
	}
	if ps.held[PanRight] {
		offset = offset.Add(right)
	}

	offset = offset.Scale(ps.speed * dt)
	if offset.LengthSq() < panEpsilonSq {
		return
	}

	ps.rig.Position = ps.rig.Position.Add(offset)
	ps.rig.Target = ps.rig.Target.Add(offset)
}
