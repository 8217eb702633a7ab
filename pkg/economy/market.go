// Package economy 模拟各卫星市场的生产、消耗和价格，以及玩家的交易与合成
//
// 经济模拟与镜头状态完全独立：它只读写市场和玩家数据，由场景按帧推进。
package economy

import (
	"math"

	"github.com/gonewx/jovian/pkg/config"
)

// minPrice 价格下限
const minPrice = 0.01

// Market 一个卫星上的市场
type Market struct {
	Moon        string
	Description string
	Icon        string
	Companies   []*Company
}

// Company 市场中的公司
type Company struct {
	Name     string
	Produces *Production
	Consumes *Consumption
}

// Production 公司产出的资源（玩家可买入）
type Production struct {
	Resource     string
	BaseRate     float64 // 每个周期的基础产量
	Inventory    float64
	BasePrice    float64
	CurrentPrice float64
}

// Consumption 公司需求的资源（玩家可卖出）
type Consumption struct {
	Resource     string
	BaseDemand   float64 // 每个周期的基础消耗量
	DemandBuffer float64 // 当前储备
	MaxBuffer    float64 // 储备上限，达到后不再收购
	BasePrice    float64
	CurrentPrice float64
}

// newMarket 由配置创建市场，当前价格初始化为基础价格
func newMarket(def config.MarketDef, tuning config.EconomyTuning) *Market {
	m := &Market{
		Moon:        def.Moon,
		Description: def.Description,
		Icon:        def.Icon,
	}
	for _, co := range def.Companies {
		c := &Company{Name: co.Name}
		if p := co.Produces; p != nil {
			c.Produces = &Production{
				Resource:     p.Resource,
				BaseRate:     p.BaseRate * tuning.BaseRateScale,
				Inventory:    p.Inventory,
				BasePrice:    p.BasePrice,
				CurrentPrice: p.BasePrice,
			}
		}
		if d := co.Consumes; d != nil {
			scale := d.BufferScale
			if scale == 0 {
				scale = 1
			}
			baseDemand := d.BaseDemand * tuning.BaseRateScale
			c.Consumes = &Consumption{
				Resource:     d.Resource,
				BaseDemand:   baseDemand,
				DemandBuffer: d.DemandBuffer,
				MaxBuffer:    baseDemand * tuning.MaxDemandBufferFactor * scale,
				BasePrice:    d.BasePrice,
				CurrentPrice: d.BasePrice,
			}
		}
		m.Companies = append(m.Companies, c)
	}
	return m
}

// produce 一个周期的生产：库存越接近上限产量越低
func (p *Production) produce(tuning config.EconomyTuning) {
	maxInventory := p.BaseRate * tuning.MaxInventoryFactor
	amount := p.BaseRate * math.Max(0, 1-p.Inventory/maxInventory)
	p.Inventory = math.Min(p.Inventory+amount, maxInventory*1.2)
	p.reprice(tuning, tuning.PriceVolatility)
}

// reprice 按库存相对中位库存的比例定价：库存少则贵
func (p *Production) reprice(tuning config.EconomyTuning, volatility float64) {
	midPoint := math.Max(1, p.BaseRate*(tuning.MaxInventoryFactor/2))
	ratio := math.Max(0.1, math.Min(2.0, p.Inventory/midPoint))
	p.CurrentPrice = math.Max(minPrice, p.BasePrice*(1+(1-ratio)*volatility))
}

// consume 一个周期的消耗：储备未满时按基础需求消耗
func (c *Consumption) consume(tuning config.EconomyTuning) {
	needed := c.MaxBuffer - c.DemandBuffer
	perCycle := 0.0
	if needed > 0 {
		perCycle = c.BaseDemand
	}
	amount := math.Min(c.DemandBuffer, math.Min(c.BaseDemand, perCycle))
	c.DemandBuffer = math.Max(0, c.DemandBuffer-amount)
	c.reprice(tuning, tuning.PriceVolatility)
}

// reprice 按储备比例定价：储备越少收购价越高
func (c *Consumption) reprice(tuning config.EconomyTuning, volatility float64) {
	ratio := math.Min(1.0, math.Max(0, c.DemandBuffer/math.Max(1, c.MaxBuffer)))
	c.CurrentPrice = math.Max(minPrice, c.BasePrice*(1+(1-ratio)*volatility))
}

// DemandAvailable 公司当前还愿意收购的整数数量
func (c *Consumption) DemandAvailable() int {
	return int(math.Max(0, math.Floor(c.MaxBuffer-c.DemandBuffer)))
}

// Stock 可购买的整数库存
func (p *Production) Stock() int {
	return int(math.Floor(p.Inventory))
}
