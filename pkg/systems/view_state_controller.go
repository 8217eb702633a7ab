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

// ViewStateController 视图状态机的公共入口
//
// 外部命令（聚焦节点、返回星系视图、取消）只会启动过渡，动画部分在 Update 中逐帧完成。
// 过渡进行中收到新请求时不排队，直接覆盖目标，以当前镜头位姿为新的起点；
// 对同一目标的重复请求不产生任何变化。
//
// 每帧顺序：先按当前状态刷新可见性，再推进过渡或平移，最后发出完成通知，
// 保证监听者不会看到更新到一半的 FocusModel。
type ViewStateController struct {
	entityManager *ecs.EntityManager
	scene         SceneReader
	model         *game.FocusModel
	rig           *components.CameraRigComponent
	config        *config.CameraConfig

	anchor ecs.EntityID // 行星系锚点（星系视图的注视点）

	scale      *ScaleAnimationSystem
	transition *TransitionSystem
	pan        *PanSystem
	visibility *VisibilitySystem

	observers      []ViewObserver
	lastVisibility Visibility
	visibilitySent bool
}

// NewViewStateController 创建控制器
//
// 参数：
//   - em: 实体管理器（读取天体数据、写入缩放）
//   - scene: 场景读取器，通常为 NewSceneGraph(em)
//   - model: 注入的 FocusModel
//   - cameraEntity: 带 CameraRigComponent 的镜头实体
//   - anchor: 行星系锚点；启动时据此记录默认星系位姿
//   - cfg: 镜头调参
//   - clock: 看门狗时钟
func NewViewStateController(
	em *ecs.EntityManager,
	scene SceneReader,
	model *game.FocusModel,
	cameraEntity ecs.EntityID,
	anchor ecs.EntityID,
	cfg *config.CameraConfig,
	clock game.Clock,
) (*ViewStateController, error) {
	rig, ok := ecs.GetComponent[*components.CameraRigComponent](em, cameraEntity)
	if !ok {
		return nil, fmt.Errorf("camera entity %d has no CameraRigComponent", cameraEntity)
	}
	if cfg == nil {
		cfg = config.DefaultCameraConfig()
	}
	if clock == nil {
		clock = game.SystemClock{}
	}

	anchorPos, err := scene.WorldPosition(anchor)
	if err != nil {
		log.Printf("[ViewStateController] Warning: system anchor unresolvable (%v), using origin", err)
		anchorPos = utils.Vec3{}
	}
	defaultPose := Pose{
		Position: anchorPos.Add(cfg.Offsets.System.Vec()),
		Target:   anchorPos,
	}

	scale := NewScaleAnimationSystem(em, model, cfg)
	vc := &ViewStateController{
		entityManager: em,
		scene:         scene,
		model:         model,
		rig:           rig,
		config:        cfg,
		anchor:        anchor,
		scale:         scale,
		transition:    NewTransitionSystem(em, scene, model, rig, scale, cfg, clock, defaultPose),
		pan:           NewPanSystem(model, rig, cfg.PanSpeed),
		visibility:    NewVisibilitySystem(em, model),
	}

	// 启动时镜头位于默认星系位姿
	rig.Position = defaultPose.Position
	rig.Target = defaultPose.Target
	rig.Enabled = !model.IsTransitioning

	return vc, nil
}

// AddObserver 注册监听者
func (vc *ViewStateController) AddObserver(o ViewObserver) {
	if o != nil {
		vc.observers = append(vc.observers, o)
	}
}

// Model 当前 FocusModel（只读使用）
func (vc *ViewStateController) Model() *game.FocusModel {
	return vc.model
}

// Rig 镜头
func (vc *ViewStateController) Rig() *components.CameraRigComponent {
	return vc.rig
}

// DefaultPose 星系视图的默认位姿
func (vc *ViewStateController) DefaultPose() Pose {
	return vc.transition.DefaultPose()
}

// RequestFocus 聚焦节点
//
// 兴趣点进入 POI_FOCUS（parentMoon 为空时取兴趣点记录的所属卫星）；
// 卫星进入 MOON_FOCUS；行星不做动画，立即以 SYSTEM 通知完成，必要时请求星系视图。
// 无效请求记录日志后忽略，不改变状态。
func (vc *ViewStateController) RequestFocus(node, parentMoon ecs.EntityID) error {
	if node == ecs.NoEntity {
		log.Printf("[ViewStateController] Ignoring focus request: empty node")
		return ErrInvalidFocusTarget
	}
	if !vc.scene.NodeExists(node) {
		log.Printf("[ViewStateController] Ignoring focus request: node %d not in scene", node)
		return fmt.Errorf("focus node %d: %w", node, ErrNodeNotFound)
	}
	body, ok := ecs.GetComponent[*components.CelestialBodyComponent](vc.entityManager, node)
	if !ok {
		log.Printf("[ViewStateController] Ignoring focus request: node %d is not a body", node)
		return fmt.Errorf("focus node %d: %w", node, ErrInvalidFocusTarget)
	}

	switch body.Kind {
	case types.BodyPOI:
		moon := parentMoon
		if moon == ecs.NoEntity {
			if poi, ok := ecs.GetComponent[*components.POIComponent](vc.entityManager, node); ok {
				moon = poi.ParentMoon
			}
		}
		if moon == ecs.NoEntity || !vc.scene.NodeExists(moon) {
			log.Printf("[ViewStateController] Ignoring focus request: POI %s has no parent moon", body.Name)
			return fmt.Errorf("focus POI %s: %w", body.Name, ErrMissingParentMoon)
		}
		vc.startTransition(types.ViewPOIFocus, node, moon, ecs.NoEntity)

	case types.BodyMoon:
		if vc.inFlight(types.ViewMoonFocus, node) {
			log.Printf("[ViewStateController] Already transitioning to %s (%d), ignoring duplicate request", types.ViewMoonFocus, node)
			return nil
		}
		// 正在恢复的兴趣点属于这颗卫星时，先完成恢复
		if vc.model.HasPendingReset() && vc.parentMoonOf(vc.model.ObjectToResetScale) == node {
			vc.scale.ResetScale(vc.model.ObjectToResetScale)
		}
		vc.startTransition(types.ViewMoonFocus, node, node, vc.departingPOI())

	case types.BodyPlanet:
		if vc.model.HasPendingReset() {
			vc.scale.ResetScale(vc.model.ObjectToResetScale)
		}
		if vc.model.ViewState != types.ViewSystem {
			vc.startTransition(types.ViewSystem, ecs.NoEntity, ecs.NoEntity, vc.departingPOI())
		} else {
			vc.notifyStatus()
			vc.refreshVisibility(true)
		}
		info := vc.focusInfo(node)
		for _, o := range vc.observers {
			o.OnTransitionCompleted(types.ViewSystem, info)
		}

	default:
		log.Printf("[ViewStateController] Ignoring focus request: %s (%s) is not focusable", body.Name, body.Kind)
		return fmt.Errorf("focus %s (%s): %w", body.Name, body.Kind, ErrInvalidFocusTarget)
	}

	return nil
}

// RequestSystemView 返回星系视图
// 已处于（或正过渡到）SYSTEM 时不做任何事
func (vc *ViewStateController) RequestSystemView() {
	if vc.model.ViewState == types.ViewSystem {
		return
	}
	vc.startTransition(types.ViewSystem, ecs.NoEntity, ecs.NoEntity, vc.departingPOI())
}

// RequestCancel 处理取消（Esc）
//
//   - POI_FOCUS：回到所属卫星，离开的兴趣点作为缩放恢复对象
//   - MOON_FOCUS：回到星系视图
//   - SYSTEM：只恢复残留的兴趣点缩放
func (vc *ViewStateController) RequestCancel() {
	m := vc.model
	switch m.ViewState {
	case types.ViewPOIFocus:
		poi := m.FocusedObject
		moon := m.FocusedMoon
		if moon == ecs.NoEntity {
			moon = vc.parentMoonOf(poi)
		}
		if moon != ecs.NoEntity && vc.scene.NodeExists(moon) {
			vc.startTransition(types.ViewMoonFocus, moon, moon, poi)
			return
		}
		vc.startTransition(types.ViewSystem, ecs.NoEntity, ecs.NoEntity, poi)

	case types.ViewMoonFocus:
		vc.startTransition(types.ViewSystem, ecs.NoEntity, ecs.NoEntity, ecs.NoEntity)

	default:
		if m.HasPendingReset() {
			vc.scale.ResetScale(m.ObjectToResetScale)
		}
		vc.notifyStatus()
		vc.refreshVisibility(true)
	}
}

// RequestPick 处理拾取结果（双击）：空白处清除选择，否则按天体类型聚焦
func (vc *ViewStateController) RequestPick(node ecs.EntityID) error {
	if node == ecs.NoEntity {
		vc.ClearSelection()
		return nil
	}
	return vc.RequestFocus(node, ecs.NoEntity)
}

// ClearSelection 恢复残留的兴趣点缩放
func (vc *ViewStateController) ClearSelection() {
	if vc.model.HasPendingReset() {
		vc.scale.ResetScale(vc.model.ObjectToResetScale)
	}
}

// SetDirectionHeld 方向键状态
func (vc *ViewStateController) SetDirectionHeld(dir PanDirection, held bool) {
	vc.pan.SetDirectionHeld(dir, held)
}

// ReleaseDirections 松开所有方向键
func (vc *ViewStateController) ReleaseDirections() {
	vc.pan.ReleaseAll()
}

// Update 每帧调用一次，不可重入
func (vc *ViewStateController) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}

	vc.refreshVisibility(false)

	m := vc.model
	if m.IsTransitioning {
		completed, fault := vc.transition.Update(dt)
		switch {
		case fault != nil:
			log.Printf("[ViewStateController] %v", fault)
			vc.forceEnd(fault.Reason)
		case completed:
			vc.notifyCompleted()
		}
		return
	}

	switch m.ViewState {
	case types.ViewSystem:
		vc.pan.Update(dt)
	case types.ViewMoonFocus, types.ViewPOIFocus:
		vc.followFocus()
	}
}

// ForceEnd 立即结束过渡并收敛到安全位姿
func (vc *ViewStateController) ForceEnd(reason FaultReason) {
	vc.forceEnd(reason)
}

// StatusText 状态栏文字，如 "View: System (Jupiter)"、"View: Focused (Io)"
func (vc *ViewStateController) StatusText() string {
	m := vc.model
	switch m.ViewState {
	case types.ViewSystem:
		return fmt.Sprintf("View: System (%s)", vc.nameOr(vc.anchor, "Origin"))
	case types.ViewMoonFocus:
		name := vc.nameOr(m.FocusedMoon, "")
		if name == "" {
			name = vc.nameOr(m.FocusedObject, "Moon")
		}
		return fmt.Sprintf("View: Focused (%s)", name)
	case types.ViewPOIFocus:
		return fmt.Sprintf("View: Focused (%s)", vc.nameOr(m.FocusedObject, "POI"))
	default:
		return "View: Unknown"
	}
}

// startTransition 启动（或覆盖）一次过渡
//
// poiToReset 为离开的兴趣点；与当前待恢复对象不同时，旧对象先立即恢复
func (vc *ViewStateController) startTransition(state types.ViewState, node, moon, poiToReset ecs.EntityID) {
	m := vc.model

	if vc.inFlight(state, node) {
		log.Printf("[ViewStateController] Already transitioning to %s (%d), ignoring duplicate request", state, node)
		return
	}

	log.Printf("[ViewStateController] Start transition: %s -> %s (node %d)", m.ViewState, state, node)

	if m.HasPendingReset() && m.ObjectToResetScale != poiToReset {
		vc.scale.ResetScale(m.ObjectToResetScale)
	}
	// 兴趣点之间切换：离开的兴趣点立即恢复
	if m.ViewState == types.ViewPOIFocus && m.FocusedObject != node && m.FocusedObject != poiToReset {
		vc.scale.ResetScale(m.FocusedObject)
	}
	if poiToReset != ecs.NoEntity && m.ObjectToResetScale != poiToReset {
		if vc.scale.ScaleOf(poiToReset) != components.NeutralScale {
			m.ObjectToResetScale = poiToReset
			m.ResetProgress = 0
		}
	}

	m.PreviousViewState = m.ViewState
	m.TransitionSourceState = m.ViewState
	m.ViewState = state
	m.FocusedObject = node
	m.FocusedMoon = moon
	vc.transition.BeginTransition()

	vc.notifyStatus()
	vc.refreshVisibility(true)
}

// inFlight 是否已经在过渡到同一状态和节点
func (vc *ViewStateController) inFlight(state types.ViewState, node ecs.EntityID) bool {
	m := vc.model
	return m.IsTransitioning && m.ViewState == state && m.FocusedObject == node
}

// departingPOI 当前聚焦的兴趣点（离开它时需要恢复缩放）
func (vc *ViewStateController) departingPOI() ecs.EntityID {
	if vc.model.ViewState == types.ViewPOIFocus {
		return vc.model.FocusedObject
	}
	return ecs.NoEntity
}

// followFocus 静止聚焦时注视点跟随聚焦对象；对象消失则返回星系视图
func (vc *ViewStateController) followFocus() {
	m := vc.model
	pos, err := vc.scene.WorldPosition(m.FocusedObject)
	if err != nil {
		log.Printf("[ViewStateController] Focused node %d lost while idle (%v), returning to system view", m.FocusedObject, err)
		vc.startTransition(types.ViewSystem, ecs.NoEntity, ecs.NoEntity, vc.departingPOI())
		return
	}
	delta := pos.Sub(vc.rig.Target)
	vc.rig.Target = pos
	vc.rig.Position = vc.rig.Position.Add(delta)
}

func (vc *ViewStateController) forceEnd(reason FaultReason) {
	vc.transition.ForceEnd(reason)
	vc.notifyStatus()
	vc.refreshVisibility(true)
}

func (vc *ViewStateController) notifyStatus() {
	info := vc.focusInfo(vc.model.FocusedObject)
	for _, o := range vc.observers {
		o.OnStateChanged(vc.model.ViewState, info)
	}
}

func (vc *ViewStateController) notifyCompleted() {
	vc.notifyStatus()
	vc.refreshVisibility(false)
	info := vc.focusInfo(vc.model.FocusedObject)
	for _, o := range vc.observers {
		o.OnTransitionCompleted(vc.model.ViewState, info)
	}
}

// refreshVisibility 应用可见性；force 为 true 时即使没有变化也通知
func (vc *ViewStateController) refreshVisibility(force bool) {
	v := vc.visibility.Update()
	if !force && vc.visibilitySent && v == vc.lastVisibility {
		return
	}
	vc.lastVisibility = v
	vc.visibilitySent = true
	for _, o := range vc.observers {
		o.OnVisibilityChanged(v)
	}
}

// focusInfo 节点元数据，节点为空或不是天体时返回 nil
func (vc *ViewStateController) focusInfo(id ecs.EntityID) *FocusInfo {
	if id == ecs.NoEntity {
		return nil
	}
	body, ok := ecs.GetComponent[*components.CelestialBodyComponent](vc.entityManager, id)
	if !ok {
		return nil
	}
	info := &FocusInfo{
		ID:        id,
		Name:      body.Name,
		Info:      body.Info,
		Kind:      body.Kind,
		HasMarket: body.HasMarket,
	}
	if body.Kind == types.BodyPOI {
		info.ParentMoon = vc.parentMoonOf(id)
		info.ParentMoonName = vc.nameOr(info.ParentMoon, "")
	}
	return info
}

func (vc *ViewStateController) parentMoonOf(poi ecs.EntityID) ecs.EntityID {
	if c, ok := ecs.GetComponent[*components.POIComponent](vc.entityManager, poi); ok {
		return c.ParentMoon
	}
	return ecs.NoEntity
}

func (vc *ViewStateController) nameOr(id ecs.EntityID, fallback string) string {
	if body, ok := ecs.GetComponent[*components.CelestialBodyComponent](vc.entityManager, id); ok && body.Name != "" {
		return body.Name
	}
	return fallback
}
