package systems

import (
	"github.com/gonewx/jovian/pkg/components"
	"github.com/gonewx/jovian/pkg/ecs"
	"github.com/gonewx/jovian/pkg/game"
	"github.com/gonewx/jovian/pkg/types"
)

// VisibilitySystem 根据视图状态切换标签和兴趣点分组的可见性
//
//   - 天体标签：仅 SYSTEM 且不在过渡中
//   - 兴趣点分组：聚焦卫星或其兴趣点且不在过渡中时，只显示该卫星的分组
//   - 兴趣点标签：仅 MOON_FOCUS 静止时，显示该卫星下的兴趣点标签
type VisibilitySystem struct {
	entityManager *ecs.EntityManager
	model         *game.FocusModel
}

// NewVisibilitySystem 创建可见性系统
func NewVisibilitySystem(em *ecs.EntityManager, model *game.FocusModel) *VisibilitySystem {
	return &VisibilitySystem{entityManager: em, model: model}
}

// Compute 由当前 FocusModel 推导可见性
func (vs *VisibilitySystem) Compute() Visibility {
	m := vs.model
	v := Visibility{
		ShowSystemLabels: m.ViewState == types.ViewSystem && !m.IsTransitioning,
	}
	if !m.IsTransitioning && m.ViewState.IsFocus() {
		v.POIGroupOwner = m.FocusedMoon
	}
	if !m.IsTransitioning && m.ViewState == types.ViewMoonFocus {
		v.POILabelsFor = m.FocusedMoon
	}
	return v
}

// Update 计算并应用到标签与分组组件，返回本次结果
func (vs *VisibilitySystem) Update() Visibility {
	v := vs.Compute()

	for _, id := range ecs.GetEntitiesWith1[*components.LabelComponent](vs.entityManager) {
		label, _ := ecs.GetComponent[*components.LabelComponent](vs.entityManager, id)
		if !label.IsPOI {
			label.Visible = v.ShowSystemLabels
			continue
		}
		visible := false
		if poi, ok := ecs.GetComponent[*components.POIComponent](vs.entityManager, id); ok {
			visible = v.POILabelsFor != ecs.NoEntity && poi.ParentMoon == v.POILabelsFor
		}
		label.Visible = visible
	}

	for _, id := range ecs.GetEntitiesWith1[*components.POIGroupComponent](vs.entityManager) {
		group, _ := ecs.GetComponent[*components.POIGroupComponent](vs.entityManager, id)
		group.Visible = v.POIGroupOwner != ecs.NoEntity && group.Moon == v.POIGroupOwner
	}

	return v
}

// NodeVisible 节点是否可见：父链上任一兴趣点分组隐藏时不可见
func NodeVisible(em *ecs.EntityManager, id ecs.EntityID) bool {
	current := id
	for depth := 0; depth < maxSceneDepth && current != ecs.NoEntity; depth++ {
		if group, ok := ecs.GetComponent[*components.POIGroupComponent](em, current); ok && !group.Visible {
			return false
		}
		transform, ok := ecs.GetComponent[*components.TransformComponent](em, current)
		if !ok {
			return false
		}
		current = transform.Parent
	}
	return true
}
