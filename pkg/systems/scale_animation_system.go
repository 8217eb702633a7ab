package systems

import (
	"log"
	"math"

	"github.com/gonewx/jovian/pkg/components"
	"github.com/gonewx/jovian/pkg/config"
	"github.com/gonewx/jovian/pkg/ecs"
	"github.com/gonewx/jovian/pkg/game"
	"github.com/gonewx/jovian/pkg/types"
	"github.com/gonewx/jovian/pkg/utils"
)

// ScaleAnimationSystem 兴趣点聚焦时的缩放强调
//
// 进入兴趣点：缩放进度由镜头到目标的距离决定，
// progress = clamp01(1 - (cur - end) / (start - end))，scale = lerp(1, focusedScale, progress)，
// 与镜头实际移动同步，不受帧率波动影响。
//
// 离开兴趣点：进度按固定速率累加，scale = lerp(focusedScale, 1, progress)，
// 到达 1 时回到原始缩放并清空待恢复槽位。
//
// 除 FocusModel 外不持有状态。
type ScaleAnimationSystem struct {
	entityManager *ecs.EntityManager
	model         *game.FocusModel
	config        *config.CameraConfig
}

// NewScaleAnimationSystem 创建缩放动画系统
func NewScaleAnimationSystem(em *ecs.EntityManager, model *game.FocusModel, cfg *config.CameraConfig) *ScaleAnimationSystem {
	return &ScaleAnimationSystem{
		entityManager: em,
		model:         model,
		config:        cfg,
	}
}

// Update 在过渡期间每帧调用
//
// 参数：
//   - dt: 帧时长（秒）
//   - cameraPos: 本帧插值后的镜头位置
//   - focusPos: 聚焦对象的实时世界坐标
func (s *ScaleAnimationSystem) Update(dt float64, cameraPos, focusPos utils.Vec3) {
	m := s.model

	if m.ViewState == types.ViewPOIFocus && m.FocusedObject != ecs.NoEntity && !m.HasPendingReset() {
		span := m.TransitionStartDistance - m.TransitionEndDistance
		if span <= 0 {
			span = minDistanceSpan
		}
		current := cameraPos.DistanceTo(focusPos)
		m.TransitionProgress = utils.Clamp01(1 - (current-m.TransitionEndDistance)/span)
		s.setScale(m.FocusedObject, utils.Lerp(components.NeutralScale, s.config.FocusedScale, m.TransitionProgress))
		return
	}

	if m.HasPendingReset() &&
		(m.ViewState == types.ViewMoonFocus || m.ViewState == types.ViewSystem) &&
		m.TransitionSourceState == types.ViewPOIFocus {
		m.ResetProgress += s.config.LerpSpeed * dt * 60 * s.config.ResetRateFactor
		m.ResetProgress = math.Min(1, m.ResetProgress)
		s.setScale(m.ObjectToResetScale, utils.Lerp(s.config.FocusedScale, components.NeutralScale, m.ResetProgress))
		if m.ResetProgress >= 1 {
			s.ResetScale(m.ObjectToResetScale)
		}
	}
}

// minDistanceSpan 起止距离的最小差值，避免进度公式除零
const minDistanceSpan = 0.1

// BeginApproach 过渡开始时记录镜头到目标的起止距离
// 起始距离至少比终止距离大 minDistanceSpan
func (s *ScaleAnimationSystem) BeginApproach(cameraPos, targetPos utils.Vec3, endDistance float64) {
	s.model.TransitionEndDistance = endDistance
	s.model.TransitionStartDistance = math.Max(endDistance+minDistanceSpan, cameraPos.DistanceTo(targetPos))
}

// ResetScale 立即把兴趣点恢复到原始缩放
// 如果它正是待恢复对象，同时清空槽位。节点已不存在时只清空槽位
func (s *ScaleAnimationSystem) ResetScale(id ecs.EntityID) {
	if id == ecs.NoEntity {
		return
	}
	if scale, ok := ecs.GetComponent[*components.ScaleComponent](s.entityManager, id); ok && s.isPOI(id) {
		if scale.Scale != components.NeutralScale {
			log.Printf("[ScaleAnimationSystem] Reset scale: %d", id)
			scale.Scale = components.NeutralScale
		}
	}
	if s.model.ObjectToResetScale == id {
		s.model.ClearPendingReset()
	}
}

// SetFocused 把兴趣点直接设为聚焦缩放
func (s *ScaleAnimationSystem) SetFocused(id ecs.EntityID) {
	if s.isPOI(id) {
		s.setScale(id, s.config.FocusedScale)
	}
}

// ScaleOf 节点当前缩放，没有缩放组件时为原始缩放
func (s *ScaleAnimationSystem) ScaleOf(id ecs.EntityID) float64 {
	if scale, ok := ecs.GetComponent[*components.ScaleComponent](s.entityManager, id); ok {
		return scale.Scale
	}
	return components.NeutralScale
}

func (s *ScaleAnimationSystem) setScale(id ecs.EntityID, value float64) {
	scale, ok := ecs.GetComponent[*components.ScaleComponent](s.entityManager, id)
	if !ok {
		scale = &components.ScaleComponent{}
		ecs.AddComponent(s.entityManager, id, scale)
	}
	scale.Scale = value
}

func (s *ScaleAnimationSystem) isPOI(id ecs.EntityID) bool {
	body, ok := ecs.GetComponent[*components.CelestialBodyComponent](s.entityManager, id)
	return ok && body.Kind == types.BodyPOI
}
