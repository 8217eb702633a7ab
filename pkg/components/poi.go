package components

import "github.com/gonewx/jovian/pkg/ecs"

// POIComponent 标记兴趣点，记录其所属卫星
type POIComponent struct {
	ParentMoon ecs.EntityID
}

// POIGroupComponent 卫星下兴趣点的分组节点
// 分组默认隐藏，只有聚焦到所属卫星（或其兴趣点）时才显示
type POIGroupComponent struct {
	Moon    ecs.EntityID
	Visible bool
	POIs    []ecs.EntityID
}
