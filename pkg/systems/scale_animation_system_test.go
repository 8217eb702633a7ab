package systems

import (
	"math"
	"testing"

	"github.com/gonewx/jovian/pkg/components"
	"github.com/gonewx/jovian/pkg/config"
	"github.com/gonewx/jovian/pkg/ecs"
	"github.com/gonewx/jovian/pkg/game"
	"github.com/gonewx/jovian/pkg/types"
	"github.com/gonewx/jovian/pkg/utils"
)

func newScaleFixture() (*ecs.EntityManager, *game.FocusModel, *ScaleAnimationSystem, ecs.EntityID) {
	em := ecs.NewEntityManager()
	poi := addBody(em, ecs.NoEntity, utils.Vec3{}, "poi", types.BodyPOI, 0)
	ecs.AddComponent(em, poi, &components.ScaleComponent{Scale: 1})
	model := game.NewFocusModel()
	return em, model, NewScaleAnimationSystem(em, model, config.DefaultCameraConfig()), poi
}

func TestScaleAnimation_EnteringFollowsDistance(t *testing.T) {
	_, model, s, poi := newScaleFixture()
	model.ViewState = types.ViewPOIFocus
	model.FocusedObject = poi

	focus := utils.Vec3{}
	s.BeginApproach(utils.V3(0, 0, 10), focus, 1)
	if model.TransitionStartDistance != 10 || model.TransitionEndDistance != 1 {
		t.Fatalf("distances = %v/%v", model.TransitionStartDistance, model.TransitionEndDistance)
	}

	tests := []struct {
		name      string
		cameraZ   float64
		wantScale float64
	}{
		{"at start", 10, 1},
		{"halfway", 5.5, 0.55},
		{"at end", 1, 0.1},
		{"past end clamps", 0.5, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.Update(testFrame, utils.V3(0, 0, tt.cameraZ), focus)
			if got := s.ScaleOf(poi); math.Abs(got-tt.wantScale) > 1e-9 {
				t.Errorf("scale = %v, want %v", got, tt.wantScale)
			}
		})
	}
}

func TestScaleAnimation_BeginApproachMinimumSpan(t *testing.T) {
	_, model, s, _ := newScaleFixture()
	s.BeginApproach(utils.V3(0, 0, 1), utils.Vec3{}, 1)
	if span := model.TransitionStartDistance - model.TransitionEndDistance; span < minDistanceSpan-1e-12 {
		t.Errorf("span = %v, want at least %v", span, minDistanceSpan)
	}
}

func TestScaleAnimation_ResetAnimation(t *testing.T) {
	_, model, s, poi := newScaleFixture()
	s.SetFocused(poi)

	model.ViewState = types.ViewMoonFocus
	model.TransitionSourceState = types.ViewPOIFocus
	model.ObjectToResetScale = poi

	prev := s.ScaleOf(poi)
	frames := 0
	for model.HasPendingReset() && frames < 100 {
		s.Update(testFrame, utils.Vec3{}, utils.Vec3{})
		frames++
		cur := s.ScaleOf(poi)
		if cur < prev {
			t.Fatalf("frame %d: scale decreased %v -> %v", frames, prev, cur)
		}
		prev = cur
	}

	if model.HasPendingReset() {
		t.Fatal("reset never completed")
	}
	if s.ScaleOf(poi) != components.NeutralScale {
		t.Errorf("final scale = %v, want exactly 1", s.ScaleOf(poi))
	}
	// 0.08 × 0.9 每帧
	if frames != 14 {
		t.Errorf("reset took %d frames, want 14", frames)
	}
}

func TestScaleAnimation_ResetScaleIgnoresNonPOI(t *testing.T) {
	em, model, s, _ := newScaleFixture()
	moon := addBody(em, ecs.NoEntity, utils.Vec3{}, "moon", types.BodyMoon, 1)
	ecs.AddComponent(em, moon, &components.ScaleComponent{Scale: 2})
	model.ObjectToResetScale = moon

	s.ResetScale(moon)
	if s.ScaleOf(moon) != 2 {
		t.Error("non-POI scale should not be touched")
	}
	if model.HasPendingReset() {
		t.Error("slot should still be cleared")
	}
}
