package systems

import (
	"fmt"

	"github.com/gonewx/jovian/pkg/components"
	"github.com/gonewx/jovian/pkg/ecs"
	"github.com/gonewx/jovian/pkg/utils"
)

// maxSceneDepth 父链的最大深度，超过即视为成环
const maxSceneDepth = 32

// SceneReader 视图控制器对场景的只读访问
// 每帧都重新查询，不缓存移动物体的世界坐标
type SceneReader interface {
	// NodeExists 节点及其整条父链都仍在场景中
	NodeExists(id ecs.EntityID) bool

	// WorldPosition 节点的世界坐标
	WorldPosition(id ecs.EntityID) (utils.Vec3, error)
}

// SceneGraph 基于 TransformComponent 父子关系的场景图
type SceneGraph struct {
	entityManager *ecs.EntityManager
}

// NewSceneGraph 创建场景图读取器
func NewSceneGraph(em *ecs.EntityManager) *SceneGraph {
	return &SceneGraph{entityManager: em}
}

// NodeExists 节点及其父链是否都存在且带有变换
func (sg *SceneGraph) NodeExists(id ecs.EntityID) bool {
	current := id
	for depth := 0; depth < maxSceneDepth; depth++ {
		if !sg.entityManager.Exists(current) {
			return false
		}
		transform, ok := ecs.GetComponent[*components.TransformComponent](sg.entityManager, current)
		if !ok {
			return false
		}
		if transform.Parent == ecs.NoEntity {
			return true
		}
		current = transform.Parent
	}
	return false
}

// WorldPosition 沿父链累加局部坐标得到世界坐标
//
// 返回 ErrNodeNotFound：节点或某个父节点已被删除
// 返回 ErrMalformedNode：缺少变换组件、坐标非有限值或父链成环
func (sg *SceneGraph) WorldPosition(id ecs.EntityID) (utils.Vec3, error) {
	var world utils.Vec3
	current := id
	for depth := 0; depth < maxSceneDepth; depth++ {
		if !sg.entityManager.Exists(current) {
			return utils.Vec3{}, fmt.Errorf("node %d (resolving %d): %w", current, id, ErrNodeNotFound)
		}
		transform, ok := ecs.GetComponent[*components.TransformComponent](sg.entityManager, current)
		if !ok {
			return utils.Vec3{}, fmt.Errorf("node %d has no transform: %w", current, ErrMalformedNode)
		}
		if !transform.Position.IsFinite() {
			return utils.Vec3{}, fmt.Errorf("node %d has non-finite position %v: %w", current, transform.Position, ErrMalformedNode)
		}
		world = world.Add(transform.Position)
		if transform.Parent == ecs.NoEntity {
			return world, nil
		}
		current = transform.Parent
	}
	return utils.Vec3{}, fmt.Errorf("node %d parent chain deeper than %d: %w", id, maxSceneDepth, ErrMalformedNode)
}
