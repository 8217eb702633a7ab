package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gonewx/jovian/pkg/config"
	"github.com/gonewx/jovian/pkg/embedded"
)

// 配置文件名（位于 data/ 或 --config 指定的目录）
const (
	cameraConfigFile  = "camera.yaml"
	systemConfigFile  = "system.yaml"
	marketsConfigFile = "markets.yaml"
)

// Configs 启动所需的全部配置
type Configs struct {
	Camera  *config.CameraConfig
	System  *config.SystemConfig
	Markets *config.MarketConfig
}

// LoadConfigs 读取并验证配置
// dir 为空时从嵌入的 data/ 读取，否则从 dir 目录读取
func LoadConfigs(dir string) (*Configs, error) {
	read := func(name string) ([]byte, error) {
		if dir == "" {
			return embedded.ReadFile("data/" + name)
		}
		return os.ReadFile(filepath.Join(dir, name))
	}

	data, err := read(cameraConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", cameraConfigFile, err)
	}
	camera, err := config.ParseCameraConfig(data)
	if err != nil {
		return nil, err
	}

	data, err = read(systemConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", systemConfigFile, err)
	}
	system, err := config.ParseSystemConfig(data)
	if err != nil {
		return nil, err
	}

	data, err = read(marketsConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", marketsConfigFile, err)
	}
	markets, err := config.ParseMarketConfig(data)
	if err != nil {
		return nil, err
	}

	return &Configs{Camera: camera, System: system, Markets: markets}, nil
}
