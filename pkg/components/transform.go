package components

import (
	"github.com/gonewx/jovian/pkg/ecs"
	"github.com/gonewx/jovian/pkg/utils"
)

// TransformComponent 场景节点的局部变换
// Position 是相对父节点的局部坐标，Parent 为 ecs.NoEntity 时即世界坐标。
// 世界坐标由 systems.SceneGraph 沿父链累加得到
type TransformComponent struct {
	Position utils.Vec3
	Parent   ecs.EntityID
}
