package entities

import (
	"github.com/gonewx/jovian/pkg/components"
	"github.com/gonewx/jovian/pkg/config"
	"github.com/gonewx/jovian/pkg/ecs"
	"github.com/gonewx/jovian/pkg/utils"
)

// NewCameraRigEntity 创建镜头实体
// 位置与注视点由 ViewStateController 在创建时设为默认星系位姿
func NewCameraRigEntity(em *ecs.EntityManager, cfg *config.CameraConfig) ecs.EntityID {
	if cfg == nil {
		cfg = config.DefaultCameraConfig()
	}
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.CameraRigComponent{
		Up:      utils.V3(0, 1, 0),
		FOV:     cfg.FOV,
		Enabled: true,
	})
	return id
}
