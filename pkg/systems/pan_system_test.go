package systems

import (
	"math"
	"testing"

	"github.com/gonewx/jovian/pkg/components"
	"github.com/gonewx/jovian/pkg/game"
	"github.com/gonewx/jovian/pkg/types"
	"github.com/gonewx/jovian/pkg/utils"
)

func TestPanSystem_Directions(t *testing.T) {
	// 镜头从 +Z 斜上方看向原点：前进为 -Z，右为 +X
	tests := []struct {
		name string
		held []PanDirection
		want utils.Vec3
	}{
		{"forward", []PanDirection{PanForward}, utils.V3(0, 0, -10)},
		{"backward", []PanDirection{PanBackward}, utils.V3(0, 0, 10)},
		{"left", []PanDirection{PanLeft}, utils.V3(-10, 0, 0)},
		{"right", []PanDirection{PanRight}, utils.V3(10, 0, 0)},
		{"forward and right", []PanDirection{PanForward, PanRight}, utils.V3(10, 0, -10)},
		{"opposites cancel", []PanDirection{PanLeft, PanRight}, utils.Vec3{}},
		{"none", nil, utils.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := &components.CameraRigComponent{
				Position: utils.V3(0, 16, 32),
				Up:       utils.V3(0, 1, 0),
				Enabled:  true,
			}
			ps := NewPanSystem(game.NewFocusModel(), rig, 10)
			for _, d := range tt.held {
				ps.SetDirectionHeld(d, true)
			}

			ps.Update(1)

			moved := rig.Position.Sub(utils.V3(0, 16, 32))
			if moved.DistanceTo(tt.want) > 1e-9 {
				t.Errorf("camera moved %v, want %v", moved, tt.want)
			}
			if rig.Target.DistanceTo(tt.want) > 1e-9 {
				t.Errorf("target moved to %v, want %v (pan, not orbit)", rig.Target, tt.want)
			}
			if math.Abs(moved.Y) > 1e-12 {
				t.Errorf("pan should stay horizontal, dy = %v", moved.Y)
			}
		})
	}
}

func TestPanSystem_Gated(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *game.FocusModel, rig *components.CameraRigComponent)
	}{
		{"transitioning", func(m *game.FocusModel, rig *components.CameraRigComponent) { m.IsTransitioning = true }},
		{"moon focus", func(m *game.FocusModel, rig *components.CameraRigComponent) { m.ViewState = types.ViewMoonFocus }},
		{"controls disabled", func(m *game.FocusModel, rig *components.CameraRigComponent) { rig.Enabled = false }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := game.NewFocusModel()
			rig := &components.CameraRigComponent{Position: utils.V3(0, 5, 5), Up: utils.V3(0, 1, 0), Enabled: true}
			tt.setup(m, rig)
			ps := NewPanSystem(m, rig, 10)
			ps.SetDirectionHeld(PanForward, true)
			ps.Update(1)
			if rig.Position != utils.V3(0, 5, 5) {
				t.Errorf("camera moved to %v", rig.Position)
			}
		})
	}
}

func TestPanSystem_HeldState(t *testing.T) {
	ps := NewPanSystem(game.NewFocusModel(), &components.CameraRigComponent{}, 1)
	ps.SetDirectionHeld(PanLeft, true)
	ps.SetDirectionHeld(PanDirection(99), true)
	if !ps.IsHeld(PanLeft) || ps.IsHeld(PanRight) || ps.IsHeld(PanDirection(99)) {
		t.Error("unexpected held state")
	}
	ps.ReleaseAll()
	if ps.IsHeld(PanLeft) {
		t.Error("ReleaseAll should clear all directions")
	}
}
