package components

// ScaleComponent 节点的统一缩放因子
// 用于兴趣点聚焦时的缩小动画（1.0 = 原始大小，0.1 = 聚焦时的大小）
//
// 缩放只影响渲染半径，不影响子节点位置
type ScaleComponent struct {
	Scale float64
}

// NeutralScale 未被强调时的缩放值
const NeutralScale = 1.0
