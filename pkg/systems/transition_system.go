package systems

import (
	"fmt"
	"log"

	"github.com/gonewx/jovian/pkg/components"
	"github.com/gonewx/jovian/pkg/config"
	"github.com/gonewx/jovian/pkg/ecs"
	"github.com/gonewx/jovian/pkg/game"
	"github.com/gonewx/jovian/pkg/types"
	"github.com/gonewx/jovian/pkg/utils"
)

// Pose 镜头位姿：位置与注视点
type Pose struct {
	Position utils.Vec3
	Target   utils.Vec3
}

// IsFinite 两个分量都是有限值
func (p Pose) IsFinite() bool {
	return p.Position.IsFinite() && p.Target.IsFinite()
}

// TransitionSystem 每帧把镜头从当前位姿推向 FocusModel 对应的目标位姿
//
// 插值为指数逼近：factor = min(1, lerpSpeed × dt × 60)，越接近目标移动越慢。
// 位置和注视点都进入阈值后吸附到目标并结束过渡。
// 看门狗超时或聚焦对象丢失时返回故障，由调用方执行 ForceEnd。
type TransitionSystem struct {
	entityManager *ecs.EntityManager
	scene         SceneReader
	model         *game.FocusModel
	rig           *components.CameraRigComponent
	scale         *ScaleAnimationSystem
	config        *config.CameraConfig
	clock         game.Clock

	// defaultPose 启动时记录的星系视图位姿，也是 Force-End 的最终兜底
	defaultPose Pose
}

// NewTransitionSystem 创建过渡系统
func NewTransitionSystem(
	em *ecs.EntityManager,
	scene SceneReader,
	model *game.FocusModel,
	rig *components.CameraRigComponent,
	scale *ScaleAnimationSystem,
	cfg *config.CameraConfig,
	clock game.Clock,
	defaultPose Pose,
) *TransitionSystem {
	return &TransitionSystem{
		entityManager: em,
		scene:         scene,
		model:         model,
		rig:           rig,
		scale:         scale,
		config:        cfg,
		clock:         clock,
		defaultPose:   defaultPose,
	}
}

// DefaultPose 星系视图的默认位姿
func (ts *TransitionSystem) DefaultPose() Pose {
	return ts.defaultPose
}

// Update 推进一帧过渡
//
// 返回：
//   - completed: 本帧自然完成了过渡
//   - fault: 需要 Force-End 的故障；位姿计算中的 panic 也在此转换为 FaultError
func (ts *TransitionSystem) Update(dt float64) (completed bool, fault *TransitionFault) {
	if !ts.model.IsTransitioning {
		return false, nil
	}

	defer func() {
		if r := recover(); r != nil {
			completed = false
			fault = &TransitionFault{Reason: FaultError, Err: fmt.Errorf("panic during transition update: %v", r)}
		}
	}()

	m := ts.model

	// 看门狗
	if elapsed := ts.clock.Now().Sub(m.TransitionStartTime); elapsed > ts.config.Timeout() {
		return false, &TransitionFault{
			Reason: FaultTimeout,
			Err:    fmt.Errorf("transition to %s still running after %v", m.ViewState, elapsed),
		}
	}

	if m.ViewState.IsFocus() && !ts.scene.NodeExists(m.FocusedObject) {
		return false, &TransitionFault{
			Reason: FaultObjectLost,
			Err:    fmt.Errorf("focused node %d: %w", m.FocusedObject, ErrNodeNotFound),
		}
	}

	desired, err := ts.DesiredPose()
	if err != nil {
		return false, faultFromError(err)
	}

	factor := utils.DampFactor(ts.config.LerpSpeed, dt)
	ts.rig.Position = ts.rig.Position.Lerp(desired.Position, factor)
	ts.rig.Target = ts.rig.Target.Lerp(desired.Target, factor)

	ts.scale.Update(dt, ts.rig.Position, desired.Target)

	threshold := ts.config.ThresholdFor(m.ViewState)
	if ts.rig.Position.DistanceTo(desired.Position) >= threshold.Position ||
		ts.rig.Target.DistanceTo(desired.Target) >= threshold.Target {
		return false, nil
	}

	// 吸附到目标，消除浮点残差
	ts.rig.Position = desired.Position
	ts.rig.Target = desired.Target
	m.IsTransitioning = false
	m.TransitionProgress = 1
	ts.rig.Enabled = true

	if m.HasPendingReset() {
		ts.scale.ResetScale(m.ObjectToResetScale)
	}
	if m.ViewState == types.ViewPOIFocus {
		ts.scale.SetFocused(m.FocusedObject)
	}

	log.Printf("[TransitionSystem] Transition finished naturally to %s", m.ViewState)
	return true, nil
}

// DesiredPose 根据当前视图状态和实时物体位置计算目标位姿
func (ts *TransitionSystem) DesiredPose() (Pose, error) {
	m := ts.model
	switch m.ViewState {
	case types.ViewSystem:
		return ts.defaultPose, nil
	case types.ViewMoonFocus, types.ViewPOIFocus:
		return ts.focusPose(m.FocusedObject, m.ViewState)
	default:
		return Pose{}, fmt.Errorf("unknown view state %d: %w", m.ViewState, ErrMalformedNode)
	}
}

// focusPose 聚焦位姿：注视点为物体世界坐标，镜头位于注视点加按半径缩放的偏移
func (ts *TransitionSystem) focusPose(id ecs.EntityID, state types.ViewState) (Pose, error) {
	target, err := ts.scene.WorldPosition(id)
	if err != nil {
		return Pose{}, err
	}
	offset, err := ts.focusOffset(id, state)
	if err != nil {
		return Pose{}, err
	}

	pose := Pose{Position: target.Add(offset), Target: target}
	if !pose.IsFinite() {
		return Pose{}, fmt.Errorf("node %d produced non-finite pose: %w", id, ErrMalformedNode)
	}
	return pose, nil
}

// focusOffset 按天体半径缩放的镜头偏移；半径为 0 时使用默认半径
func (ts *TransitionSystem) focusOffset(id ecs.EntityID, state types.ViewState) (utils.Vec3, error) {
	body, ok := ecs.GetComponent[*components.CelestialBodyComponent](ts.entityManager, id)
	if !ok {
		return utils.Vec3{}, fmt.Errorf("node %d has no body data: %w", id, ErrMalformedNode)
	}

	r := body.BaseRadius
	if state == types.ViewPOIFocus {
		if r == 0 {
			r = ts.config.POIBaseRadius
		}
		return ts.config.Offsets.POI.Vec().Scale(r), nil
	}
	if r == 0 {
		r = ts.config.MoonDefaultRadius
	}
	return ts.config.Offsets.Moon.Vec().Scale(r), nil
}

// BeginTransition 标记过渡开始：记录起始时间、禁用手动操作，
// 聚焦状态下为缩放动画记录起止距离
func (ts *TransitionSystem) BeginTransition() {
	m := ts.model
	m.IsTransitioning = true
	m.TransitionStartTime = ts.clock.Now()
	m.TransitionProgress = 0
	ts.rig.Enabled = false

	if !m.ViewState.IsFocus() {
		return
	}

	target, err := ts.scene.WorldPosition(m.FocusedObject)
	if err != nil {
		log.Printf("[TransitionSystem] Warning: cannot resolve focus target %d: %v", m.FocusedObject, err)
		return
	}
	offset, err := ts.focusOffset(m.FocusedObject, m.ViewState)
	if err != nil {
		log.Printf("[TransitionSystem] Warning: cannot compute focus offset for %d: %v", m.FocusedObject, err)
		return
	}
	ts.scale.BeginApproach(ts.rig.Position, target, offset.Length())
}

// ForceEnd 立即把镜头和模型收敛到当前视图状态的静止位姿
//
// 聚焦对象可解析时吸附到其目标位姿（兴趣点同时设为聚焦缩放），
// 否则回到默认星系位姿并把视图状态重置为 SYSTEM。
// 无论哪条路径都会结算待恢复缩放、结束过渡并恢复手动操作。此方法不会 panic
func (ts *TransitionSystem) ForceEnd(reason FaultReason) {
	log.Printf("[TransitionSystem] Force end transition (%s) to %s", reason, ts.model.ViewState)

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[TransitionSystem] Error during force end: %v (falling back to default pose)", r)
			ts.fallbackToDefault()
		}
	}()

	m := ts.model
	m.IsTransitioning = false

	pose := ts.defaultPose
	if m.ViewState.IsFocus() {
		if !ts.scene.NodeExists(m.FocusedObject) {
			log.Printf("[TransitionSystem] Focused node %d unresolvable, resetting to SYSTEM", m.FocusedObject)
			m.ResetToSystem()
		} else if p, err := ts.DesiredPose(); err != nil {
			log.Printf("[TransitionSystem] Cannot compute resting pose: %v, resetting to SYSTEM", err)
			m.ResetToSystem()
		} else {
			pose = p
			m.TransitionProgress = 1
			if m.ViewState == types.ViewPOIFocus {
				ts.scale.SetFocused(m.FocusedObject)
			}
		}
	} else {
		// SYSTEM 或未知状态
		m.ResetToSystem()
	}

	if m.HasPendingReset() {
		ts.scale.ResetScale(m.ObjectToResetScale)
	}

	ts.rig.Position = pose.Position
	ts.rig.Target = pose.Target
	ts.rig.Enabled = true

	log.Printf("[TransitionSystem] Forced end state set: %s, controls enabled: %v", m.ViewState, ts.rig.Enabled)
}

// fallbackToDefault 最终兜底：默认位姿 + SYSTEM
// 只做赋值，不访问场景
func (ts *TransitionSystem) fallbackToDefault() {
	ts.rig.Position = ts.defaultPose.Position
	ts.rig.Target = ts.defaultPose.Target
	ts.rig.Enabled = true
	ts.model.ResetToSystem()
	if ts.model.HasPendingReset() {
		if scale, ok := ecs.GetComponent[*components.ScaleComponent](ts.entityManager, ts.model.ObjectToResetScale); ok {
			scale.Scale = components.NeutralScale
		}
		ts.model.ClearPendingReset()
	}
}
