package utils

import "math"

// Vec3 三维向量（世界坐标，右手系，Y 轴向上）
//
// 所有方法都是值语义，不修改接收者。
type Vec3 struct {
	X, Y, Z float64
}

// V3 构造 Vec3 的简写
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add 向量加法
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub 向量减法
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale 数乘
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot 点积
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross 叉积 v × o
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// LengthSq 长度的平方
func (v Vec3) LengthSq() float64 {
	return v.Dot(v)
}

// Length 长度
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

// DistanceTo 到另一点的距离
func (v Vec3) DistanceTo(o Vec3) float64 {
	return v.Sub(o).Length()
}

// Normalize 返回单位向量；零向量原样返回
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Lerp 按 t 在 v 与 o 之间线性插值（t=0 返回 v，t=1 返回 o）
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		X: Lerp(v.X, o.X, t),
		Y: Lerp(v.Y, o.Y, t),
		Z: Lerp(v.Z, o.Z, t),
	}
}

// IsFinite 三个分量都不是 NaN/Inf
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// FromSpherical 由球坐标构造向量
// phi 为与 +Y 轴的夹角，theta 为绕 Y 轴的方位角（与 three.js 的 setFromSphericalCoords 一致）
func FromSpherical(radius, phi, theta float64) Vec3 {
	sinPhi := math.Sin(phi)
	return Vec3{
		X: radius * sinPhi * math.Sin(theta),
		Y: radius * math.Cos(phi),
		Z: radius * sinPhi * math.Cos(theta),
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
