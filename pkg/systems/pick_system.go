package systems

import (
	"math"

	"github.com/gonewx/jovian/pkg/components"
	"github.com/gonewx/jovian/pkg/ecs"
	"github.com/gonewx/jovian/pkg/utils"
)

const (
	// maxPickParentWalk 命中节点向上查找已注册可拾取节点的最大层数
	maxPickParentWalk = 5

	// minPickRadiusPx 投影后的最小拾取半径（像素），保证很小的兴趣点也能点中
	minPickRadiusPx = 6.0
)

// PickSystem 把屏幕点击映射到可拾取节点
//
// 对所有可见天体做投影命中测试，取最近的命中；
// 命中的节点本身未注册为可拾取时，沿父链最多向上查找 maxPickParentWalk 层。
type PickSystem struct {
	entityManager *ecs.EntityManager
	scene         SceneReader
}

// NewPickSystem 创建拾取系统
func NewPickSystem(em *ecs.EntityManager, scene SceneReader) *PickSystem {
	return &PickSystem{entityManager: em, scene: scene}
}

// Pick 返回屏幕坐标 (sx, sy) 处的可拾取节点，没有命中时返回 ecs.NoEntity
func (ps *PickSystem) Pick(proj utils.Projection, sx, sy float64) ecs.EntityID {
	best := ecs.NoEntity
	bestDepth := math.Inf(1)

	for _, id := range ecs.GetEntitiesWith1[*components.CelestialBodyComponent](ps.entityManager) {
		if !NodeVisible(ps.entityManager, id) {
			continue
		}
		world, err := ps.scene.WorldPosition(id)
		if err != nil {
			continue
		}
		x, y, depth, ok := proj.WorldToScreen(world)
		if !ok || depth >= bestDepth {
			continue
		}

		body, _ := ecs.GetComponent[*components.CelestialBodyComponent](ps.entityManager, id)
		radius := body.BaseRadius * ps.scaleOf(id)
		if clickable, ok := ecs.GetComponent[*components.ClickableComponent](ps.entityManager, id); ok && clickable.PickRadius > radius {
			radius = clickable.PickRadius
		}
		hitRadius := math.Max(minPickRadiusPx, proj.ProjectedRadius(radius, depth))
		if math.Hypot(sx-x, sy-y) > hitRadius {
			continue
		}

		registered := ps.registeredAncestor(id)
		if registered == ecs.NoEntity {
			continue
		}
		best = registered
		bestDepth = depth
	}

	return best
}

// registeredAncestor 从命中节点开始向上查找启用的可拾取节点
func (ps *PickSystem) registeredAncestor(id ecs.EntityID) ecs.EntityID {
	current := id
	for i := 0; i < maxPickParentWalk && current != ecs.NoEntity; i++ {
		if clickable, ok := ecs.GetComponent[*components.ClickableComponent](ps.entityManager, current); ok {
			if clickable.IsEnabled {
				return current
			}
			return ecs.NoEntity
		}
		transform, ok := ecs.GetComponent[*components.TransformComponent](ps.entityManager, current)
		if !ok {
			break
		}
		current = transform.Parent
	}
	return ecs.NoEntity
}

func (ps *PickSystem) scaleOf(id ecs.EntityID) float64 {
	if scale, ok := ecs.GetComponent[*components.ScaleComponent](ps.entityManager, id); ok {
		return scale.Scale
	}
	return components.NeutralScale
}
