package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// SystemConfig 星系布局配置
//
// 描述恒星、行星系锚点、行星、卫星以及卫星表面的兴趣点数量。
// 配置文件位置: data/system.yaml
type SystemConfig struct {
	// Seed 随机种子，决定轨道初始角度和兴趣点位置；0 表示使用当前时间
	Seed int64 `yaml:"seed"`

	Star   BodyConfig   `yaml:"star"`
	Planet PlanetConfig `yaml:"planet"`
	Moons  []MoonConfig `yaml:"moons"`
}

// BodyConfig 天体的通用描述
type BodyConfig struct {
	Name   string  `yaml:"name"`
	Info   string  `yaml:"info"`
	Radius float64 `yaml:"radius"`
	Color  string  `yaml:"color"` // "#rrggbb"
}

// PlanetConfig 行星及其所在行星系的锚点
type PlanetConfig struct {
	BodyConfig  `yaml:",inline"`
	OrbitRadius float64 `yaml:"orbitRadius"` // 行星系锚点到恒星的距离
}

// MoonConfig 卫星描述
type MoonConfig struct {
	BodyConfig  `yaml:",inline"`
	OrbitRadius float64 `yaml:"orbitRadius"`

	// OrbitalPeriod 公转周期（秒）；0 表示卫星静止
	OrbitalPeriod float64 `yaml:"orbitalPeriod"`

	// POICount 表面兴趣点数量
	POICount int `yaml:"poiCount"`
}

// LoadSystemConfig 从文件加载星系配置
func LoadSystemConfig(path string) (*SystemConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read system config: %w", err)
	}
	return ParseSystemConfig(data)
}

// ParseSystemConfig 解析 YAML 内容并验证
func ParseSystemConfig(data []byte) (*SystemConfig, error) {
	var config SystemConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse system config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid system config: %w", err)
	}

	return &config, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 所有天体名称非空且唯一
//   - 半径、轨道半径为正
//   - 卫星轨道在行星表面之外
//   - 颜色格式正确
func (c *SystemConfig) Validate() error {
	if err := c.Star.validate(); err != nil {
		return fmt.Errorf("star: %w", err)
	}
	if err := c.Planet.validate(); err != nil {
		return fmt.Errorf("planet: %w", err)
	}
	if c.Planet.OrbitRadius <= 0 {
		return fmt.Errorf("planet orbitRadius must be positive, got %.2f", c.Planet.OrbitRadius)
	}
	if len(c.Moons) == 0 {
		return fmt.Errorf("at least one moon is required")
	}

	names := map[string]bool{c.Star.Name: true, c.Planet.Name: true}
	for i, moon := range c.Moons {
		if err := moon.validate(); err != nil {
			return fmt.Errorf("moon[%d]: %w", i, err)
		}
		if names[moon.Name] {
			return fmt.Errorf("duplicate body name '%s'", moon.Name)
		}
		names[moon.Name] = true

		if moon.OrbitRadius <= c.Planet.Radius {
			return fmt.Errorf("moon '%s' orbit (%.2f) is inside the planet (radius %.2f)",
				moon.Name, moon.OrbitRadius, c.Planet.Radius)
		}
		if moon.OrbitalPeriod < 0 {
			return fmt.Errorf("moon '%s' orbitalPeriod must not be negative", moon.Name)
		}
		if moon.POICount < 0 {
			return fmt.Errorf("moon '%s' poiCount must not be negative", moon.Name)
		}
	}

	return nil
}

func (b BodyConfig) validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if b.Radius <= 0 {
		return fmt.Errorf("'%s' radius must be positive, got %.3f", b.Name, b.Radius)
	}
	if _, err := ParseHexColor(b.Color); err != nil {
		return fmt.Errorf("'%s': %w", b.Name, err)
	}
	return nil
}

// RGBA 返回天体颜色；格式错误时返回灰色（Validate 已保证格式）
func (b BodyConfig) RGBA() color.RGBA {
	c, err := ParseHexColor(b.Color)
	if err != nil {
		return color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
	}
	return c
}

// ParseHexColor 解析 "#rrggbb" 格式的颜色
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color '%s': expected #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color '%s': %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// FindMoon 按名称查找卫星配置
func (c *SystemConfig) FindMoon(name string) (*MoonConfig, bool) {
	for i := range c.Moons {
		if c.Moons[i].Name == name {
			return &c.Moons[i], true
		}
	}
	return nil, false
}
