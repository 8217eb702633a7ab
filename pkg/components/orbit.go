package components

// OrbitComponent 绕父节点的圆形轨道
// 非物理模拟：角度按固定角速度推进，Y 轴为轨道面法线
type OrbitComponent struct {
	Radius       float64 // 轨道半径
	Angle        float64 // 当前角度（弧度）
	AngularSpeed float64 // 角速度（弧度/秒），0 表示静止
}
