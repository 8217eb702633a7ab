package scenes

import (
	"fmt"

	"github.com/gonewx/jovian/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// SceneSystem 星系视图场景名称
const SceneSystem = "system"

// NewSceneFactory 返回供 game.SceneManager 使用的场景工厂
// 每次加载都按 cfg 重新构建场景
func NewSceneFactory(cfg SystemSceneConfig) game.SceneFactory {
	return func(name string) (game.Scene, error) {
		switch name {
		case SceneSystem:
			return NewSystemScene(cfg)
		default:
			return nil, fmt.Errorf("unknown scene %q", name)
		}
	}
}
