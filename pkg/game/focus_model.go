package game

import (
	"fmt"
	"time"

	"github.com/gonewx/jovian/pkg/ecs"
	"github.com/gonewx/jovian/pkg/types"
)

// FocusModel 记录当前视图状态、聚焦对象以及过渡动画的簿记数据
//
// 由 NewFocusModel 在启动时创建一次并注入到控制器和各系统中，
// 只会被 ViewStateController 和 TransitionSystem 修改。没有销毁，只有 ResetToSystem。
type FocusModel struct {
	// ViewState 当前稳定状态或正在过渡到的目标状态
	ViewState types.ViewState

	// PreviousViewState / TransitionSourceState 本次过渡离开的状态
	// 用于决定离开兴趣点时的缩放恢复动画
	PreviousViewState     types.ViewState
	TransitionSourceState types.ViewState

	// FocusedObject 当前聚焦的节点；ViewState 为聚焦状态时必须非空
	FocusedObject ecs.EntityID

	// FocusedMoon 聚焦兴趣点时为其所属卫星，聚焦卫星时为卫星本身，SYSTEM 下为空
	FocusedMoon ecs.EntityID

	IsTransitioning     bool
	TransitionStartTime time.Time
	TransitionProgress  float64 // [0, 1]

	// ObjectToResetScale 需要动画恢复到原始缩放的兴趣点（最多一个）
	ObjectToResetScale ecs.EntityID
	// ResetProgress 缩放恢复动画的进度 [0, 1]
	ResetProgress float64

	// 过渡开始时镜头到目标的距离，用于把兴趣点缩放与镜头接近程度绑定
	TransitionStartDistance float64
	TransitionEndDistance   float64
}

// NewFocusModel 创建处于 SYSTEM 状态、无聚焦对象的模型
func NewFocusModel() *FocusModel {
	return &FocusModel{
		ViewState:             types.ViewSystem,
		PreviousViewState:     types.ViewSystem,
		TransitionSourceState: types.ViewSystem,
	}
}

// ResetToSystem 回到 SYSTEM 并清除聚焦
// 不处理待恢复的缩放，调用方负责先结算 ObjectToResetScale
func (m *FocusModel) ResetToSystem() {
	m.ViewState = types.ViewSystem
	m.FocusedObject = ecs.NoEntity
	m.FocusedMoon = ecs.NoEntity
	m.IsTransitioning = false
	m.TransitionProgress = 0
}

// HasPendingReset 是否有兴趣点等待恢复缩放
func (m *FocusModel) HasPendingReset() bool {
	return m.ObjectToResetScale != ecs.NoEntity
}

// ClearPendingReset 清空待恢复槽位
func (m *FocusModel) ClearPendingReset() {
	m.ObjectToResetScale = ecs.NoEntity
	m.ResetProgress = 0
}

// Validate 检查模型自身的一致性
//
// 聚焦状态必须有聚焦对象；SYSTEM 下不能残留聚焦卫星；进度必须在 [0, 1]
func (m *FocusModel) Validate() error {
	if m.ViewState.IsFocus() && m.FocusedObject == ecs.NoEntity {
		return fmt.Errorf("view state %s requires a focused object", m.ViewState)
	}
	if m.ViewState.IsFocus() && m.FocusedMoon == ecs.NoEntity {
		return fmt.Errorf("view state %s requires a focused moon", m.ViewState)
	}
	if m.ViewState == types.ViewSystem && m.FocusedMoon != ecs.NoEntity {
		return fmt.Errorf("focused moon %d retained in %s", m.FocusedMoon, m.ViewState)
	}
	if m.TransitionProgress < 0 || m.TransitionProgress > 1 {
		return fmt.Errorf("transition progress %.3f out of range", m.TransitionProgress)
	}
	if m.ResetProgress < 0 || m.ResetProgress > 1 {
		return fmt.Errorf("reset progress %.3f out of range", m.ResetProgress)
	}
	return nil
}
