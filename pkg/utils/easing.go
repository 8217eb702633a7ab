package utils

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi] 范围内
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 将 v 限制在 [0, 1] 范围内
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// DampFactor 帧率补偿的指数逼近系数
//
// speed 以 60fps 下每帧的逼近比例给出，dt 为本帧秒数。
// 结果被限制在 [0, 1]，dt 过大时一步到位。
func DampFactor(speed, dt float64) float64 {
	return Clamp01(speed * dt * 60)
}
