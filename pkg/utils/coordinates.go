// Package utils 提供通用的数学与坐标工具
//
// coordinates.go 提供世界坐标到屏幕坐标的透视投影，渲染与点击拾取共用同一套公式。
//
// # 坐标系统概述
//
//   - **世界坐标**：三维右手系，Y 轴向上，单位与场景半径一致
//   - **相机坐标**：以镜头位置为原点，forward 指向注视点
//   - **屏幕坐标**：相对于窗口左上角，Y 轴向下（Ebiten 默认）
//
// # 核心转换公式
//
//	d      = world - cameraPos
//	depth  = d · forward
//	focal  = (screenH / 2) / tan(fov / 2)
//	screenX = screenW/2 + (d · right) * focal / depth
//	screenY = screenH/2 - (d · up)    * focal / depth
//
// depth 小于近裁剪面时点不可见。
package utils

import "math"

// 近裁剪面距离，与原始场景的相机保持一致
const ProjectionNear = 0.1

// Projection 描述一次投影所需的相机参数
type Projection struct {
	Position Vec3    // 镜头位置
	Target   Vec3    // 注视点
	Up       Vec3    // 镜头上方向（通常为 +Y）
	FOV      float64 // 垂直视角（度）
	Width    float64 // 屏幕宽度（像素）
	Height   float64 // 屏幕高度（像素）
}

// basis 计算相机的正交基 forward/right/up
// 当 forward 与 Up 平行时退化为以 -Z 作为上方向
func (p Projection) basis() (forward, right, up Vec3) {
	forward = p.Target.Sub(p.Position).Normalize()
	worldUp := p.Up
	if worldUp.LengthSq() == 0 {
		worldUp = V3(0, 1, 0)
	}
	right = forward.Cross(worldUp)
	if right.LengthSq() < 1e-12 {
		right = forward.Cross(V3(0, 0, -1))
	}
	right = right.Normalize()
	up = right.Cross(forward)
	return forward, right, up
}

func (p Projection) focal() float64 {
	fov := p.FOV
	if fov <= 0 || fov >= 180 {
		fov = 60
	}
	return (p.Height / 2) / math.Tan(fov*math.Pi/360)
}

// WorldToScreen 将世界坐标投影到屏幕
//
// 返回：
//   - x, y: 屏幕坐标（像素）
//   - depth: 沿视线方向的深度，可用于排序
//   - ok: 点是否位于近裁剪面之前
func (p Projection) WorldToScreen(world Vec3) (x, y, depth float64, ok bool) {
	forward, right, up := p.basis()
	d := world.Sub(p.Position)
	depth = d.Dot(forward)
	if depth <= ProjectionNear {
		return 0, 0, depth, false
	}
	f := p.focal() / depth
	x = p.Width/2 + d.Dot(right)*f
	y = p.Height/2 - d.Dot(up)*f
	return x, y, depth, true
}

// ProjectedRadius 半径为 radius 的球体在 depth 处投影后的像素半径
func (p Projection) ProjectedRadius(radius, depth float64) float64 {
	if depth <= ProjectionNear {
		return 0
	}
	return radius * p.focal() / depth
}
