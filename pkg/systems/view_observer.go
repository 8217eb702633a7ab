package systems

import (
	"github.com/gonewx/jovian/pkg/ecs"
	"github.com/gonewx/jovian/pkg/types"
)

// FocusInfo 聚焦对象的元数据，供 UI 面板显示
type FocusInfo struct {
	ID        ecs.EntityID
	Name      string
	Info      string
	Kind      types.BodyKind
	HasMarket bool

	// 兴趣点所属卫星（其他类型为空）
	ParentMoon     ecs.EntityID
	ParentMoonName string
}

// Visibility 标签与兴趣点分组的可见性
type Visibility struct {
	// ShowSystemLabels 是否显示天体标签（仅 SYSTEM 静止时）
	ShowSystemLabels bool

	// POIGroupOwner 显示兴趣点分组的卫星，ecs.NoEntity 表示全部隐藏
	POIGroupOwner ecs.EntityID

	// POILabelsFor 显示兴趣点标签的卫星（仅 MOON_FOCUS 静止时）
	POILabelsFor ecs.EntityID
}

// ViewObserver 视图状态变化的监听者
//
// 回调在请求处理或每帧更新中同步调用，实现方不能阻塞。
// 核心只通过此接口通知 UI，不依赖 UI 代码
type ViewObserver interface {
	OnStateChanged(state types.ViewState, focused *FocusInfo)
	OnTransitionCompleted(state types.ViewState, focused *FocusInfo)
	OnVisibilityChanged(v Visibility)
}

// ViewCallbacks 以函数字段实现 ViewObserver，未设置的回调被忽略
type ViewCallbacks struct {
	StateChanged        func(state types.ViewState, focused *FocusInfo)
	TransitionCompleted func(state types.ViewState, focused *FocusInfo)
	VisibilityChanged   func(v Visibility)
}

func (c ViewCallbacks) OnStateChanged(state types.ViewState, focused *FocusInfo) {
	if c.StateChanged != nil {
		c.StateChanged(state, focused)
	}
}

func (c ViewCallbacks) OnTransitionCompleted(state types.ViewState, focused *FocusInfo) {
	if c.TransitionCompleted != nil {
		c.TransitionCompleted(state, focused)
	}
}

func (c ViewCallbacks) OnVisibilityChanged(v Visibility) {
	if c.VisibilityChanged != nil {
		c.VisibilityChanged(v)
	}
}
