package systems

import (
	"math"

	"github.com/gonewx/jovian/pkg/components"
	"github.com/gonewx/jovian/pkg/ecs"
)

// OrbitSystem 推进卫星在轨道上的角度并更新局部坐标
// 非物理模拟：圆轨道、匀角速度，轨道面为父节点的 XZ 平面
type OrbitSystem struct {
	entityManager *ecs.EntityManager
	paused        bool
}

// NewOrbitSystem 创建轨道系统
func NewOrbitSystem(em *ecs.EntityManager) *OrbitSystem {
	return &OrbitSystem{entityManager: em}
}

// SetPaused 暂停/恢复轨道运动
func (s *OrbitSystem) SetPaused(paused bool) {
	s.paused = paused
}

// IsPaused 轨道运动是否暂停
func (s *OrbitSystem) IsPaused() bool {
	return s.paused
}

// Update 按帧推进轨道
func (s *OrbitSystem) Update(dt float64) {
	if s.paused {
		return
	}

	entities := ecs.GetEntitiesWith2[*components.OrbitComponent, *components.TransformComponent](s.entityManager)
	for _, id := range entities {
		orbit, _ := ecs.GetComponent[*components.OrbitComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if orbit.AngularSpeed == 0 {
			continue
		}

		orbit.Angle = math.Mod(orbit.Angle+orbit.AngularSpeed*dt, 2*math.Pi)
		PlaceOnOrbit(transform, orbit)
	}
}

// PlaceOnOrbit 按当前角度设置局部坐标
func PlaceOnOrbit(transform *components.TransformComponent, orbit *components.OrbitComponent) {
	transform.Position.X = orbit.Radius * math.Cos(orbit.Angle)
	transform.Position.Z = orbit.Radius * math.Sin(orbit.Angle)
}
