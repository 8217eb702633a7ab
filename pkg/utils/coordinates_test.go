package utils

import (
	"math"
	"testing"
)

func testProjection() Projection {
	return Projection{
		Position: V3(0, 0, 10),
		Target:   V3(0, 0, 0),
		Up:       V3(0, 1, 0),
		FOV:      60,
		Width:    800,
		Height:   600,
	}
}

// TestWorldToScreen_Center 注视点投影到屏幕中心
func TestWorldToScreen_Center(t *testing.T) {
	p := testProjection()
	x, y, depth, ok := p.WorldToScreen(V3(0, 0, 0))
	if !ok {
		t.Fatal("target should be visible")
	}
	if math.Abs(x-400) > 1e-9 || math.Abs(y-300) > 1e-9 {
		t.Errorf("center = (%.2f, %.2f), want (400, 300)", x, y)
	}
	if math.Abs(depth-10) > 1e-9 {
		t.Errorf("depth = %v, want 10", depth)
	}
}

// TestWorldToScreen_Axes 右方和上方的点分别落在屏幕右侧和上侧
func TestWorldToScreen_Axes(t *testing.T) {
	p := testProjection()

	x, _, _, ok := p.WorldToScreen(V3(1, 0, 0))
	if !ok || x <= 400 {
		t.Errorf("+X should project right of center, got x=%.2f ok=%v", x, ok)
	}

	_, y, _, ok := p.WorldToScreen(V3(0, 1, 0))
	if !ok || y >= 300 {
		t.Errorf("+Y should project above center, got y=%.2f ok=%v", y, ok)
	}
}

// TestWorldToScreen_BehindCamera 镜头后方的点不可见
func TestWorldToScreen_BehindCamera(t *testing.T) {
	p := testProjection()
	if _, _, _, ok := p.WorldToScreen(V3(0, 0, 20)); ok {
		t.Error("point behind camera should not be visible")
	}
}

// TestWorldToScreen_LookingDown 俯视（forward 与 Up 平行）时不产生 NaN
func TestWorldToScreen_LookingDown(t *testing.T) {
	p := testProjection()
	p.Position = V3(0, 10, 0)
	x, y, _, ok := p.WorldToScreen(V3(1, 0, 0))
	if !ok {
		t.Fatal("point below camera should be visible")
	}
	if math.IsNaN(x) || math.IsNaN(y) {
		t.Errorf("projection produced NaN: (%v, %v)", x, y)
	}
}

// TestProjectedRadius 投影半径与深度成反比
func TestProjectedRadius(t *testing.T) {
	p := testProjection()
	near := p.ProjectedRadius(1, 5)
	far := p.ProjectedRadius(1, 10)
	if math.Abs(near-2*far) > 1e-9 {
		t.Errorf("near=%v far=%v, want near == 2*far", near, far)
	}
	if p.ProjectedRadius(1, 0) != 0 {
		t.Error("radius at zero depth should be 0")
	}
}
