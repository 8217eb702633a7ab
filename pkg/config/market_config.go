package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// MarketConfig 经济模拟配置：各卫星的市场、公司和合成配方
//
// 配置文件位置: data/markets.yaml
type MarketConfig struct {
	Economy EconomyTuning `yaml:"economy"`
	Markets []MarketDef   `yaml:"markets"`
	Recipes []RecipeDef   `yaml:"recipes"`
}

// EconomyTuning 经济模拟常量
type EconomyTuning struct {
	// UpdateInterval 市场刷新周期（秒）
	UpdateInterval float64 `yaml:"updateInterval"`

	// PriceVolatility 价格随库存波动的幅度（0 到 1+）
	PriceVolatility float64 `yaml:"priceVolatility"`

	// TradeVolatilityBoost 玩家交易后重新定价时对波动幅度的额外系数
	TradeVolatilityBoost float64 `yaml:"tradeVolatilityBoost"`

	// BaseRateScale 每周期产出/消耗量的缩放
	BaseRateScale float64 `yaml:"baseRateScale"`

	// MaxInventoryFactor 库存达到 baseRate 的该倍数时停止生产
	MaxInventoryFactor float64 `yaml:"maxInventoryFactor"`

	// MaxDemandBufferFactor 需求缓冲上限为 baseDemand 的该倍数
	MaxDemandBufferFactor float64 `yaml:"maxDemandBufferFactor"`

	// StartingCredits 新玩家的初始信用点
	StartingCredits float64 `yaml:"startingCredits"`
}

// MarketDef 一个卫星上的市场
type MarketDef struct {
	Moon        string       `yaml:"moon"`
	Description string       `yaml:"description"`
	Icon        string       `yaml:"icon"`
	Companies   []CompanyDef `yaml:"companies"`
}

// CompanyDef 市场中的公司，至少生产或消耗一种资源
type CompanyDef struct {
	Name     string          `yaml:"name"`
	Produces *ProductionDef  `yaml:"produces,omitempty"`
	Consumes *ConsumptionDef `yaml:"consumes,omitempty"`
}

// ProductionDef 公司产出的资源
type ProductionDef struct {
	Resource  string  `yaml:"resource"`
	BaseRate  float64 `yaml:"baseRate"`
	Inventory float64 `yaml:"inventory"`
	BasePrice float64 `yaml:"basePrice"`
}

// ConsumptionDef 公司需求的资源
type ConsumptionDef struct {
	Resource     string  `yaml:"resource"`
	BaseDemand   float64 `yaml:"baseDemand"`
	DemandBuffer float64 `yaml:"demandBuffer"`
	// BufferScale 对 MaxDemandBufferFactor 的额外缩放，0 视为 1
	BufferScale float64 `yaml:"bufferScale"`
	BasePrice   float64 `yaml:"basePrice"`
}

// RecipeDef 合成配方
type RecipeDef struct {
	Product     string             `yaml:"product"`
	Description string             `yaml:"description"`
	Ingredients map[string]float64 `yaml:"ingredients"`
}

// DefaultEconomyTuning 返回内置经济常量
func DefaultEconomyTuning() EconomyTuning {
	return EconomyTuning{
		UpdateInterval:        5,
		PriceVolatility:       0.8,
		TradeVolatilityBoost:  1.1,
		BaseRateScale:         1,
		MaxInventoryFactor:    200,
		MaxDemandBufferFactor: 150,
		StartingCredits:       10000,
	}
}

// LoadMarketConfig 从文件加载市场配置
func LoadMarketConfig(path string) (*MarketConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read market config: %w", err)
	}
	return ParseMarketConfig(data)
}

// ParseMarketConfig 解析 YAML 内容并验证
func ParseMarketConfig(data []byte) (*MarketConfig, error) {
	config := MarketConfig{Economy: DefaultEconomyTuning()}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse market config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid market config: %w", err)
	}

	return &config, nil
}

// Validate 验证配置有效性
func (c *MarketConfig) Validate() error {
	e := c.Economy
	if e.UpdateInterval <= 0 {
		return fmt.Errorf("updateInterval must be positive, got %.2f", e.UpdateInterval)
	}
	if e.MaxInventoryFactor <= 0 || e.MaxDemandBufferFactor <= 0 {
		return fmt.Errorf("inventory/demand factors must be positive")
	}
	if e.StartingCredits < 0 {
		return fmt.Errorf("startingCredits must not be negative")
	}

	seen := make(map[string]bool)
	for _, m := range c.Markets {
		if strings.TrimSpace(m.Moon) == "" {
			return fmt.Errorf("market without moon name")
		}
		if seen[m.Moon] {
			return fmt.Errorf("duplicate market for moon '%s'", m.Moon)
		}
		seen[m.Moon] = true

		for i, co := range m.Companies {
			if co.Produces == nil && co.Consumes == nil {
				return fmt.Errorf("market '%s' company[%d] '%s' neither produces nor consumes", m.Moon, i, co.Name)
			}
			if co.Produces != nil && (co.Produces.Resource == "" || co.Produces.BaseRate <= 0 || co.Produces.BasePrice <= 0) {
				return fmt.Errorf("market '%s' company '%s': invalid production", m.Moon, co.Name)
			}
			if co.Consumes != nil && (co.Consumes.Resource == "" || co.Consumes.BaseDemand <= 0 || co.Consumes.BasePrice <= 0) {
				return fmt.Errorf("market '%s' company '%s': invalid consumption", m.Moon, co.Name)
			}
		}
	}

	for i, r := range c.Recipes {
		if r.Product == "" || len(r.Ingredients) == 0 {
			return fmt.Errorf("recipe[%d] needs a product and ingredients", i)
		}
		for name, qty := range r.Ingredients {
			if qty <= 0 {
				return fmt.Errorf("recipe '%s': ingredient '%s' quantity must be positive", r.Product, name)
			}
		}
	}

	return nil
}

// HasMarket 卫星是否有市场
func (c *MarketConfig) HasMarket(moon string) bool {
	for _, m := range c.Markets {
		if m.Moon == moon {
			return true
		}
	}
	return false
}
