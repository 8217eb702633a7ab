package systems

import (
	"testing"
	"time"

	"github.com/gonewx/jovian/pkg/components"
	"github.com/gonewx/jovian/pkg/config"
	"github.com/gonewx/jovian/pkg/ecs"
	"github.com/gonewx/jovian/pkg/game"
	"github.com/gonewx/jovian/pkg/types"
	"github.com/gonewx/jovian/pkg/utils"
)

const testFrame = 1.0 / 60

// testScene 测试用的小型星系：太阳、行星系锚点、行星、Io（两个兴趣点）、Europa
type testScene struct {
	em     *ecs.EntityManager
	scene  SceneReader
	model  *game.FocusModel
	clock  *game.ManualClock
	config *config.CameraConfig
	vc     *ViewStateController

	sun, anchor, planet ecs.EntityID
	io, europa          ecs.EntityID
	ioGroup             ecs.EntityID
	p1, p2              ecs.EntityID
	camera              ecs.EntityID

	events *recordedEvents
}

type recordedEvents struct {
	states      []types.ViewState
	completed   []types.ViewState
	completedBy []*FocusInfo
	visibility  []Visibility
}

func addBody(em *ecs.EntityManager, parent ecs.EntityID, pos utils.Vec3, name string, kind types.BodyKind, radius float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransformComponent{Position: pos, Parent: parent})
	ecs.AddComponent(em, id, &components.CelestialBodyComponent{Name: name, Kind: kind, BaseRadius: radius})
	return id
}

func addLabel(em *ecs.EntityManager, id ecs.EntityID, text string, isPOI bool) {
	ecs.AddComponent(em, id, &components.LabelComponent{Text: text, IsPOI: isPOI})
}

func addClickable(em *ecs.EntityManager, id ecs.EntityID) {
	ecs.AddComponent(em, id, &components.ClickableComponent{IsEnabled: true})
}

// buildScene 以 Io 半径 1 构建场景，使聚焦过渡需要多帧
func buildScene(t *testing.T) *testScene {
	return buildSceneWithReader(t, nil)
}

// buildSceneWithReader 允许替换场景读取器（用于故障注入）
func buildSceneWithReader(t *testing.T, wrap func(SceneReader) SceneReader) *testScene {
	t.Helper()

	em := ecs.NewEntityManager()
	ts := &testScene{em: em, events: &recordedEvents{}}

	ts.sun = addBody(em, ecs.NoEntity, utils.Vec3{}, "Sun", types.BodyStar, 5)
	ts.anchor = addBody(em, ecs.NoEntity, utils.V3(90, 0, 0), "Jupiter", types.BodyGroup, 0)
	ts.planet = addBody(em, ts.anchor, utils.Vec3{}, "Jupiter", types.BodyPlanet, 4)
	addLabel(em, ts.planet, "Jupiter", false)
	addClickable(em, ts.planet)

	ts.io = addBody(em, ts.anchor, utils.V3(7.8, 0, 0), "Io", types.BodyMoon, 1)
	addLabel(em, ts.io, "Io", false)
	addClickable(em, ts.io)

	ts.europa = addBody(em, ts.anchor, utils.V3(0, 0, 9), "Europa", types.BodyMoon, 1)
	addLabel(em, ts.europa, "Europa", false)
	addClickable(em, ts.europa)

	ts.ioGroup = em.CreateEntity()
	ecs.AddComponent(em, ts.ioGroup, &components.TransformComponent{Parent: ts.io})
	group := &components.POIGroupComponent{Moon: ts.io}
	ecs.AddComponent(em, ts.ioGroup, group)

	for i, pos := range []utils.Vec3{utils.V3(0, 1.05, 0), utils.V3(1.05, 0, 0)} {
		name := []string{"Io POI 1", "Io POI 2"}[i]
		id := addBody(em, ts.ioGroup, pos, name, types.BodyPOI, 0)
		ecs.AddComponent(em, id, &components.POIComponent{ParentMoon: ts.io})
		ecs.AddComponent(em, id, &components.ScaleComponent{Scale: components.NeutralScale})
		addLabel(em, id, name, true)
		addClickable(em, id)
		group.POIs = append(group.POIs, id)
	}
	ts.p1, ts.p2 = group.POIs[0], group.POIs[1]

	ts.camera = em.CreateEntity()
	ecs.AddComponent(em, ts.camera, &components.CameraRigComponent{Up: utils.V3(0, 1, 0), FOV: 60, Enabled: true})

	var reader SceneReader = NewSceneGraph(em)
	if wrap != nil {
		reader = wrap(reader)
	}
	ts.scene = reader
	ts.model = game.NewFocusModel()
	ts.clock = game.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	ts.config = config.DefaultCameraConfig()

	vc, err := NewViewStateController(em, reader, ts.model, ts.camera, ts.anchor, ts.config, ts.clock)
	if err != nil {
		t.Fatalf("NewViewStateController failed: %v", err)
	}
	ts.vc = vc

	ev := ts.events
	vc.AddObserver(ViewCallbacks{
		StateChanged: func(state types.ViewState, _ *FocusInfo) {
			ev.states = append(ev.states, state)
		},
		TransitionCompleted: func(state types.ViewState, info *FocusInfo) {
			ev.completed = append(ev.completed, state)
			ev.completedBy = append(ev.completedBy, info)
		},
		VisibilityChanged: func(v Visibility) {
			ev.visibility = append(ev.visibility, v)
		},
	})
	return ts
}

// tick 推进时钟并执行一帧
func (ts *testScene) tick(dt float64) {
	ts.clock.Advance(time.Duration(dt * float64(time.Second)))
	ts.vc.Update(dt)
}

// settle 逐帧推进直到过渡结束，返回使用的帧数
func (ts *testScene) settle(t *testing.T, maxFrames int) int {
	t.Helper()
	for i := 1; i <= maxFrames; i++ {
		ts.tick(testFrame)
		ts.checkInvariants(t)
		if !ts.model.IsTransitioning {
			return i
		}
	}
	t.Fatalf("transition to %s still running after %d frames", ts.model.ViewState, maxFrames)
	return maxFrames
}

// checkInvariants 过渡与手动操作互斥；待恢复对象的缩放不是原始值
func (ts *testScene) checkInvariants(t *testing.T) {
	t.Helper()
	rig := ts.vc.Rig()
	if ts.model.IsTransitioning == rig.Enabled {
		t.Fatalf("IsTransitioning=%v but rig.Enabled=%v", ts.model.IsTransitioning, rig.Enabled)
	}
	if ts.model.HasPendingReset() {
		if s := ts.scaleOf(ts.model.ObjectToResetScale); s == components.NeutralScale {
			t.Fatalf("pending reset target %d already at neutral scale", ts.model.ObjectToResetScale)
		}
	}
	if err := ts.model.Validate(); err != nil {
		t.Fatalf("focus model invalid: %v", err)
	}
}

func (ts *testScene) scaleOf(id ecs.EntityID) float64 {
	if s, ok := ecs.GetComponent[*components.ScaleComponent](ts.em, id); ok {
		return s.Scale
	}
	return components.NeutralScale
}

func (ts *testScene) worldPos(t *testing.T, id ecs.EntityID) utils.Vec3 {
	t.Helper()
	p, err := NewSceneGraph(ts.em).WorldPosition(id)
	if err != nil {
		t.Fatalf("WorldPosition(%d): %v", id, err)
	}
	return p
}

// focusMoon 聚焦 Io 并等待过渡结束
func (ts *testScene) focusMoon(t *testing.T, moon ecs.EntityID) {
	t.Helper()
	if err := ts.vc.RequestFocus(moon, ecs.NoEntity); err != nil {
		t.Fatalf("RequestFocus(moon) failed: %v", err)
	}
	ts.settle(t, 300)
}

// focusPOI 聚焦兴趣点并等待过渡结束
func (ts *testScene) focusPOI(t *testing.T, poi ecs.EntityID) {
	t.Helper()
	if err := ts.vc.RequestFocus(poi, ts.io); err != nil {
		t.Fatalf("RequestFocus(poi) failed: %v", err)
	}
	ts.settle(t, 300)
}

// panicReader 在 armed 时从 WorldPosition 中 panic
type panicReader struct {
	SceneReader
	armed bool
}

func (r *panicReader) WorldPosition(id ecs.EntityID) (utils.Vec3, error) {
	if r.armed {
		panic("corrupted scene node")
	}
	return r.SceneReader.WorldPosition(id)
}
