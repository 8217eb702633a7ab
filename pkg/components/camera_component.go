package components

import "github.com/gonewx/jovian/pkg/utils"

// CameraRigComponent 管理镜头位置、注视点和手动操作开关。
// 过渡动画期间 Enabled 为 false，此时平移等手动操作被忽略。
type CameraRigComponent struct {
	// Position 镜头世界坐标
	Position utils.Vec3

	// Target 注视点世界坐标（与 Position 独立）
	Target utils.Vec3

	// Up 上方向，通常为 (0, 1, 0)
	Up utils.Vec3

	// FOV 垂直视场角（度）
	FOV float64

	// Enabled 是否允许手动操作（WASD 平移）
	Enabled bool
}
