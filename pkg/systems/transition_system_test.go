package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/gonewx/jovian/pkg/components"
	"github.com/gonewx/jovian/pkg/ecs"
	"github.com/gonewx/jovian/pkg/types"
	"github.com/gonewx/jovian/pkg/utils"
)

func TestTransitionSystem_DesiredPose(t *testing.T) {
	ts := buildScene(t)
	tr := ts.vc.transition

	io := ts.worldPos(t, ts.io)
	p1 := ts.worldPos(t, ts.p1)

	tests := []struct {
		name  string
		state types.ViewState
		node  ecs.EntityID
		want  Pose
	}{
		{"system", types.ViewSystem, ecs.NoEntity, ts.vc.DefaultPose()},
		{"moon", types.ViewMoonFocus, ts.io, Pose{Position: io.Add(utils.V3(0, 1.5, 4)), Target: io}},
		// 兴趣点没有半径，使用 poiBaseRadius 0.01
		{"poi", types.ViewPOIFocus, ts.p1, Pose{Position: p1.Add(utils.V3(0, 0.15, 0.25)), Target: p1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.model.ViewState = tt.state
			ts.model.FocusedObject = tt.node
			got, err := tr.DesiredPose()
			if err != nil {
				t.Fatalf("DesiredPose: %v", err)
			}
			if got.Position.DistanceTo(tt.want.Position) > 1e-9 || got.Target.DistanceTo(tt.want.Target) > 1e-9 {
				t.Errorf("DesiredPose = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTransitionSystem_DesiredPoseErrors(t *testing.T) {
	ts := buildScene(t)
	tr := ts.vc.transition

	ts.model.ViewState = types.ViewMoonFocus
	ts.model.FocusedObject = ts.ioGroup
	if _, err := tr.DesiredPose(); !errors.Is(err, ErrMalformedNode) {
		t.Errorf("node without body data: err = %v", err)
	}

	ts.model.FocusedObject = 4242
	if _, err := tr.DesiredPose(); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("missing node: err = %v", err)
	}
	if fault := faultFromError(&TransitionFault{Reason: FaultError, Err: ErrNodeNotFound}); fault.Reason != FaultObjectLost {
		t.Errorf("wrapped not-found should map to object lost, got %s", fault.Reason)
	}
}

func TestTransitionSystem_ForceEndPOI(t *testing.T) {
	ts := buildScene(t)
	ts.focusMoon(t, ts.io)
	_ = ts.vc.RequestFocus(ts.p1, ts.io)
	ts.tick(testFrame)

	ts.vc.ForceEnd(FaultTimeout)

	if ts.model.IsTransitioning || ts.model.ViewState != types.ViewPOIFocus {
		t.Fatalf("state = %s transitioning = %v", ts.model.ViewState, ts.model.IsTransitioning)
	}
	if math.Abs(ts.scaleOf(ts.p1)-ts.config.FocusedScale) > 1e-9 {
		t.Errorf("p1 scale = %v, want focused scale", ts.scaleOf(ts.p1))
	}
	if ts.vc.Rig().Target != ts.worldPos(t, ts.p1) || !ts.vc.Rig().Enabled {
		t.Error("rig should rest on p1 with controls enabled")
	}
}

func TestTransitionSystem_ForceEndResolvesPendingReset(t *testing.T) {
	ts := buildScene(t)
	ts.focusMoon(t, ts.io)
	ts.focusPOI(t, ts.p1)
	ts.vc.RequestCancel()

	ts.vc.ForceEnd(FaultError)

	if ts.model.HasPendingReset() || ts.scaleOf(ts.p1) != components.NeutralScale {
		t.Errorf("pending = %v scale = %v", ts.model.HasPendingReset(), ts.scaleOf(ts.p1))
	}
	if ts.model.ViewState != types.ViewMoonFocus {
		t.Errorf("ViewState = %s, want MOON_FOCUS", ts.model.ViewState)
	}
}

func TestTransitionFault_Error(t *testing.T) {
	f := &TransitionFault{Reason: FaultTimeout}
	if f.Error() != "transition fault: timeout" {
		t.Errorf("Error() = %q", f.Error())
	}
	wrapped := &TransitionFault{Reason: FaultObjectLost, Err: ErrNodeNotFound}
	if !errors.Is(wrapped, ErrNodeNotFound) {
		t.Error("fault should unwrap to its cause")
	}
}
