package config

import (
	"fmt"
	"os"
	"time"

	"github.com/gonewx/jovian/pkg/types"
	"github.com/gonewx/jovian/pkg/utils"
	"gopkg.in/yaml.v3"
)

// CameraConfig 镜头过渡与平移的调参
//
// 配置文件位置: data/camera.yaml
// 缺省字段保留 DefaultCameraConfig 中的值。
type CameraConfig struct {
	// LerpSpeed 每帧（按 60fps 归一化）向目标位姿逼近的比例
	LerpSpeed float64 `yaml:"lerpSpeed"`

	// TransitionTimeout 过渡看门狗时长（秒）
	TransitionTimeout float64 `yaml:"transitionTimeout"`

	// FocusedScale 兴趣点被聚焦时的缩放值
	FocusedScale float64 `yaml:"focusedScale"`

	// ResetRateFactor 离开兴趣点时缩放恢复速度相对 LerpSpeed 的系数
	ResetRateFactor float64 `yaml:"resetRateFactor"`

	// PanSpeed WASD 平移速度（单位/秒）
	PanSpeed float64 `yaml:"panSpeed"`

	// POIBaseRadius 兴趣点未设置半径时使用的半径
	POIBaseRadius float64 `yaml:"poiBaseRadius"`

	// MoonDefaultRadius 卫星未设置半径时使用的半径
	MoonDefaultRadius float64 `yaml:"moonDefaultRadius"`

	// FOV 垂直视场角（度）
	FOV float64 `yaml:"fov"`

	Offsets        CameraOffsets  `yaml:"offsets"`
	SnapThresholds SnapThresholds `yaml:"snapThresholds"`
}

// Offset 三维偏移
type Offset struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Vec 转换为 utils.Vec3
func (o Offset) Vec() utils.Vec3 {
	return utils.V3(o.X, o.Y, o.Z)
}

// CameraOffsets 各视图下镜头相对注视点的偏移
// Moon、POI 的偏移按天体半径缩放；System 为相对行星系锚点的固定偏移
type CameraOffsets struct {
	Moon   Offset `yaml:"moon"`
	POI    Offset `yaml:"poi"`
	System Offset `yaml:"system"`
}

// SnapThreshold 过渡完成判定的距离阈值
type SnapThreshold struct {
	Position float64 `yaml:"position"`
	Target   float64 `yaml:"target"`
}

// SnapThresholds 各视图状态的完成阈值
// 兴趣点更小，阈值更紧
type SnapThresholds struct {
	System SnapThreshold `yaml:"system"`
	Moon   SnapThreshold `yaml:"moon"`
	POI    SnapThreshold `yaml:"poi"`
}

// DefaultCameraConfig 返回内置默认调参
func DefaultCameraConfig() *CameraConfig {
	return &CameraConfig{
		LerpSpeed:         0.08,
		TransitionTimeout: 5.0,
		FocusedScale:      0.1,
		ResetRateFactor:   0.9,
		PanSpeed:          18,
		POIBaseRadius:     0.01,
		MoonDefaultRadius: 1.0,
		FOV:               60,
		Offsets: CameraOffsets{
			Moon:   Offset{X: 0, Y: 1.5, Z: 4},
			POI:    Offset{X: 0, Y: 15, Z: 25},
			System: Offset{X: 0, Y: 16, Z: 32},
		},
		SnapThresholds: SnapThresholds{
			System: SnapThreshold{Position: 1.2, Target: 0.8},
			Moon:   SnapThreshold{Position: 1.2, Target: 0.8},
			POI:    SnapThreshold{Position: 0.6, Target: 0.4},
		},
	}
}

// LoadCameraConfig 从文件加载镜头配置
func LoadCameraConfig(path string) (*CameraConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read camera config: %w", err)
	}
	return ParseCameraConfig(data)
}

// ParseCameraConfig 解析 YAML 内容，未出现的字段保留默认值
func ParseCameraConfig(data []byte) (*CameraConfig, error) {
	config := DefaultCameraConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse camera config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid camera config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
func (c *CameraConfig) Validate() error {
	if c.LerpSpeed <= 0 || c.LerpSpeed > 1 {
		return fmt.Errorf("lerpSpeed must be in (0, 1], got %.3f", c.LerpSpeed)
	}
	if c.TransitionTimeout <= 0 {
		return fmt.Errorf("transitionTimeout must be positive, got %.2f", c.TransitionTimeout)
	}
	if c.FocusedScale <= 0 || c.FocusedScale > 1 {
		return fmt.Errorf("focusedScale must be in (0, 1], got %.3f", c.FocusedScale)
	}
	if c.ResetRateFactor <= 0 {
		return fmt.Errorf("resetRateFactor must be positive, got %.3f", c.ResetRateFactor)
	}
	if c.PanSpeed < 0 {
		return fmt.Errorf("panSpeed must not be negative, got %.2f", c.PanSpeed)
	}
	if c.POIBaseRadius <= 0 || c.MoonDefaultRadius <= 0 {
		return fmt.Errorf("default radii must be positive (poi=%.3f, moon=%.3f)", c.POIBaseRadius, c.MoonDefaultRadius)
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		return fmt.Errorf("fov must be in (0, 180), got %.1f", c.FOV)
	}

	for name, th := range map[string]SnapThreshold{
		"system": c.SnapThresholds.System,
		"moon":   c.SnapThresholds.Moon,
		"poi":    c.SnapThresholds.POI,
	} {
		if th.Position <= 0 || th.Target <= 0 {
			return fmt.Errorf("snap threshold '%s' must be positive (position=%.3f, target=%.3f)", name, th.Position, th.Target)
		}
	}

	return nil
}

// Timeout 看门狗时长
func (c *CameraConfig) Timeout() time.Duration {
	return time.Duration(c.TransitionTimeout * float64(time.Second))
}

// ThresholdFor 返回指定视图状态的完成阈值
func (c *CameraConfig) ThresholdFor(state types.ViewState) SnapThreshold {
	switch state {
	case types.ViewPOIFocus:
		return c.SnapThresholds.POI
	case types.ViewMoonFocus:
		return c.SnapThresholds.Moon
	default:
		return c.SnapThresholds.System
	}
}
