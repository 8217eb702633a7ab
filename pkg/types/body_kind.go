// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// BodyKind 定义场景节点（天体或兴趣点）的类别
type BodyKind int

const (
	// BodyUnknown 未知类别
	BodyUnknown BodyKind = iota
	// BodyStar 恒星
	BodyStar
	// BodyPlanet 行星（聚焦时不产生接近动画）
	BodyPlanet
	// BodyMoon 卫星
	BodyMoon
	// BodyPOI 卫星表面的兴趣点标记
	BodyPOI
	// BodyGroup 纯变换节点（如行星系锚点），不可见也不可点击
	BodyGroup
)

// String 返回类别的字符串表示
func (k BodyKind) String() string {
	switch k {
	case BodyStar:
		return "Star"
	case BodyPlanet:
		return "Planet"
	case BodyMoon:
		return "Moon"
	case BodyPOI:
		return "POI"
	case BodyGroup:
		return "Group"
	default:
		return "Unknown"
	}
}

// ParseBodyKind 将配置文件中的字符串解析为 BodyKind
// 无法识别时返回 BodyUnknown
func ParseBodyKind(s string) BodyKind {
	switch s {
	case "Star", "star":
		return BodyStar
	case "Planet", "planet":
		return BodyPlanet
	case "Moon", "moon":
		return BodyMoon
	case "POI", "poi":
		return BodyPOI
	case "Group", "group":
		return BodyGroup
	default:
		return BodyUnknown
	}
}
