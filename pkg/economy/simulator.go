package economy

import (
	"fmt"
	"log"
	"time"

	"github.com/gonewx/jovian/pkg/config"
	"github.com/google/uuid"
)

// Simulator 周期性推进所有市场，并处理玩家的买入、卖出与合成
//
// 按帧调用 Update，累计时间达到 UpdateInterval 时执行一个经济周期。
// 不使用后台 goroutine，因此与镜头更新在同一线程内串行执行。
type Simulator struct {
	tuning  config.EconomyTuning
	markets map[string]*Market
	order   []string // 配置中的市场顺序
	recipes []config.RecipeDef
	player  *Player

	elapsed float64
	paused  bool
	cycles  int

	now func() time.Time
}

// NewSimulator 创建经济模拟
//
// player 为 nil 时使用带初始信用点的新玩家
func NewSimulator(cfg *config.MarketConfig, player *Player) (*Simulator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("market config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid market config: %w", err)
	}
	if player == nil {
		player = NewPlayer(cfg.Economy.StartingCredits)
	}

	s := &Simulator{
		tuning:  cfg.Economy,
		markets: make(map[string]*Market, len(cfg.Markets)),
		recipes: cfg.Recipes,
		player:  player,
		now:     time.Now,
	}
	for _, def := range cfg.Markets {
		s.markets[def.Moon] = newMarket(def, cfg.Economy)
		s.order = append(s.order, def.Moon)
	}

	log.Printf("[Economy] Simulation ready: %d markets, %d recipes (update interval: %.1fs)",
		len(s.markets), len(s.recipes), s.tuning.UpdateInterval)
	return s, nil
}

// Update 按帧推进模拟
func (s *Simulator) Update(dt float64) {
	if s.paused || dt <= 0 {
		return
	}
	s.elapsed += dt
	for s.elapsed >= s.tuning.UpdateInterval {
		s.elapsed -= s.tuning.UpdateInterval
		s.Step()
	}
}

// Step 立即执行一个经济周期
func (s *Simulator) Step() {
	for _, moon := range s.order {
		for _, c := range s.markets[moon].Companies {
			if c.Produces != nil {
				c.Produces.produce(s.tuning)
			}
			if c.Consumes != nil {
				c.Consumes.consume(s.tuning)
			}
		}
	}
	s.cycles++
}

// Pause 暂停周期推进（交易不受影响）
func (s *Simulator) Pause() {
	if !s.paused {
		log.Printf("[Economy] Simulation paused")
	}
	s.paused = true
}

// Resume 恢复周期推进
func (s *Simulator) Resume() {
	if s.paused {
		log.Printf("[Economy] Simulation resumed")
	}
	s.paused = false
}

// IsPaused 是否暂停
func (s *Simulator) IsPaused() bool {
	return s.paused
}

// Cycles 已执行的经济周期数
func (s *Simulator) Cycles() int {
	return s.cycles
}

// Player 当前玩家
func (s *Simulator) Player() *Player {
	return s.player
}

// Market 按卫星名称查找市场
func (s *Simulator) Market(moon string) (*Market, bool) {
	m, ok := s.markets[moon]
	return m, ok
}

// Markets 按配置顺序返回所有市场
func (s *Simulator) Markets() []*Market {
	out := make([]*Market, 0, len(s.order))
	for _, moon := range s.order {
		out = append(out, s.markets[moon])
	}
	return out
}

// Recipes 合成配方
func (s *Simulator) Recipes() []config.RecipeDef {
	return s.recipes
}

func (s *Simulator) company(moon string, index int) (*Market, *Company, error) {
	m, ok := s.markets[moon]
	if !ok {
		return nil, nil, fmt.Errorf("market '%s': %w", moon, ErrUnknownMarket)
	}
	if index < 0 || index >= len(m.Companies) {
		return nil, nil, fmt.Errorf("market '%s' company %d: %w", moon, index, ErrUnknownCompany)
	}
	return m, m.Companies[index], nil
}

// Buy 从公司买入资源
//
// 数量超过库存时按库存成交；成交后按加强的波动系数重新定价
func (s *Simulator) Buy(moon string, companyIndex, quantity int) (Receipt, error) {
	if quantity <= 0 {
		return Receipt{}, ErrInvalidQuantity
	}
	m, c, err := s.company(moon, companyIndex)
	if err != nil {
		return Receipt{}, err
	}
	prod := c.Produces
	if prod == nil {
		return Receipt{}, fmt.Errorf("%s sells nothing: %w", c.Name, ErrOutOfStock)
	}

	if stock := prod.Stock(); quantity > stock {
		log.Printf("[Economy] Only %d of %s available, buying that amount", stock, prod.Resource)
		quantity = stock
	}
	if quantity <= 0 {
		return Receipt{}, fmt.Errorf("%s at %s: %w", prod.Resource, c.Name, ErrOutOfStock)
	}

	price := prod.CurrentPrice
	total := price * float64(quantity)
	if s.player.Credits < total {
		return Receipt{}, fmt.Errorf("need %.2f C, have %.2f C: %w", total, s.player.Credits, ErrInsufficientCredits)
	}

	s.player.Credits -= total
	prod.Inventory -= float64(quantity)
	s.player.add(prod.Resource, float64(quantity))
	prod.reprice(s.tuning, s.tuning.PriceVolatility*s.tuning.TradeVolatilityBoost)

	r := s.receipt(ReceiptBuy, m.Moon, c.Name, prod.Resource, float64(quantity), price, total)
	log.Printf("[Economy] Bought %d %s from %s @ %.2f C for %.2f C", quantity, prod.Resource, c.Name, price, total)
	return r, nil
}

// Sell 向公司卖出资源
//
// 数量超过货舱存量或公司剩余需求时按较小值成交
func (s *Simulator) Sell(moon string, companyIndex, quantity int) (Receipt, error) {
	if quantity <= 0 {
		return Receipt{}, ErrInvalidQuantity
	}
	m, c, err := s.company(moon, companyIndex)
	if err != nil {
		return Receipt{}, err
	}
	cons := c.Consumes
	if cons == nil {
		return Receipt{}, fmt.Errorf("%s buys nothing: %w", c.Name, ErrNoDemand)
	}

	if have := s.player.Quantity(cons.Resource); float64(quantity) > have {
		quantity = int(have)
	}
	demand := cons.DemandAvailable()
	if demand <= 0 {
		return Receipt{}, fmt.Errorf("%s does not need %s: %w", c.Name, cons.Resource, ErrNoDemand)
	}
	if quantity > demand {
		quantity = demand
	}
	if quantity <= 0 {
		return Receipt{}, fmt.Errorf("no %s in cargo: %w", cons.Resource, ErrInsufficientResources)
	}

	price := cons.CurrentPrice
	total := price * float64(quantity)

	s.player.Credits += total
	s.player.remove(cons.Resource, float64(quantity))
	cons.DemandBuffer += float64(quantity)
	cons.reprice(s.tuning, s.tuning.PriceVolatility*s.tuning.TradeVolatilityBoost)

	r := s.receipt(ReceiptSell, m.Moon, c.Name, cons.Resource, float64(quantity), price, total)
	log.Printf("[Economy] Sold %d %s to %s @ %.2f C for %.2f C", quantity, cons.Resource, c.Name, price, total)
	return r, nil
}

// Craft 按配方合成一件产品
func (s *Simulator) Craft(recipeIndex int) (Receipt, error) {
	if recipeIndex < 0 || recipeIndex >= len(s.recipes) {
		return Receipt{}, fmt.Errorf("recipe %d: %w", recipeIndex, ErrUnknownRecipe)
	}
	recipe := s.recipes[recipeIndex]

	for name, qty := range recipe.Ingredients {
		if s.player.Quantity(name) < qty {
			return Receipt{}, fmt.Errorf("crafting %s needs %.0f %s: %w", recipe.Product, qty, name, ErrInsufficientResources)
		}
	}
	for name, qty := range recipe.Ingredients {
		s.player.remove(name, qty)
	}
	s.player.add(recipe.Product, 1)

	r := s.receipt(ReceiptCraft, "", "", recipe.Product, 1, 0, 0)
	log.Printf("[Economy] Crafted 1x %s", recipe.Product)
	return r, nil
}

// CanCraft 货舱是否满足配方
func (s *Simulator) CanCraft(recipeIndex int) bool {
	if recipeIndex < 0 || recipeIndex >= len(s.recipes) {
		return false
	}
	for name, qty := range s.recipes[recipeIndex].Ingredients {
		if s.player.Quantity(name) < qty {
			return false
		}
	}
	return true
}

func (s *Simulator) receipt(kind ReceiptKind, moon, company, resource string, qty, price, total float64) Receipt {
	r := Receipt{
		ID:        uuid.NewString(),
		Kind:      kind,
		Moon:      moon,
		Company:   company,
		Resource:  resource,
		Quantity:  qty,
		UnitPrice: price,
		Total:     total,
		Time:      s.now(),
	}
	s.player.record(r)
	return r
}
