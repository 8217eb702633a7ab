package economy

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// cargoEpsilon 小于等于该值的货物视为清空
const cargoEpsilon = 0.001

// maxReceipts 保留的最近交易记录数
const maxReceipts = 50

// Player 玩家的信用点、货舱和最近的交易记录
type Player struct {
	Credits  float64            `yaml:"credits"`
	Cargo    map[string]float64 `yaml:"cargo"`
	Receipts []Receipt          `yaml:"receipts,omitempty"`
}

// ReceiptKind 交易类型
type ReceiptKind string

const (
	ReceiptBuy   ReceiptKind = "buy"
	ReceiptSell  ReceiptKind = "sell"
	ReceiptCraft ReceiptKind = "craft"
)

// Receipt 一笔交易或合成的记录
type Receipt struct {
	ID        string      `yaml:"id"`
	Kind      ReceiptKind `yaml:"kind"`
	Moon      string      `yaml:"moon,omitempty"`
	Company   string      `yaml:"company,omitempty"`
	Resource  string      `yaml:"resource"`
	Quantity  float64     `yaml:"quantity"`
	UnitPrice float64     `yaml:"unitPrice,omitempty"`
	Total     float64     `yaml:"total,omitempty"`
	Time      time.Time   `yaml:"time"`
}

// NewPlayer 创建新玩家
func NewPlayer(credits float64) *Player {
	return &Player{
		Credits: credits,
		Cargo:   make(map[string]float64),
	}
}

// Quantity 货舱中某资源的数量
func (p *Player) Quantity(resource string) float64 {
	return p.Cargo[resource]
}

// CargoNames 货舱中的资源名称（排序后）
func (p *Player) CargoNames() []string {
	names := make([]string, 0, len(p.Cargo))
	for name := range p.Cargo {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Player) add(resource string, qty float64) {
	if p.Cargo == nil {
		p.Cargo = make(map[string]float64)
	}
	p.Cargo[resource] += qty
}

// remove 扣除货物，剩余量可忽略时删除该项
func (p *Player) remove(resource string, qty float64) {
	p.Cargo[resource] -= qty
	if p.Cargo[resource] <= cargoEpsilon {
		delete(p.Cargo, resource)
	}
}

func (p *Player) record(r Receipt) {
	p.Receipts = append(p.Receipts, r)
	if len(p.Receipts) > maxReceipts {
		p.Receipts = p.Receipts[len(p.Receipts)-maxReceipts:]
	}
}

// PlayerStore 玩家数据的持久化
type PlayerStore struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，不持久化）
}

// 存储路径常量
const (
	playerObject   = "player"
	playerProperty = "ledger"
)

// NewPlayerStore 创建玩家存储，gdataManager 为 nil 时只在内存中保存
func NewPlayerStore(gdataManager *gdata.Manager) *PlayerStore {
	return &PlayerStore{gdataManager: gdataManager}
}

// Load 读取玩家数据；没有存档时返回带初始信用点的新玩家
func (s *PlayerStore) Load(startingCredits float64) (*Player, error) {
	if s.gdataManager == nil || !s.gdataManager.ObjectPropExists(playerObject, playerProperty) {
		return NewPlayer(startingCredits), nil
	}

	data, err := s.gdataManager.LoadObjectProp(playerObject, playerProperty)
	if err != nil {
		return NewPlayer(startingCredits), fmt.Errorf("failed to load player: %w", err)
	}

	player := NewPlayer(startingCredits)
	if err := yaml.Unmarshal(data, player); err != nil {
		return NewPlayer(startingCredits), fmt.Errorf("failed to unmarshal player: %w", err)
	}
	if player.Cargo == nil {
		player.Cargo = make(map[string]float64)
	}

	log.Printf("[PlayerStore] Player loaded: %.2f credits, %d cargo entries", player.Credits, len(player.Cargo))
	return player, nil
}

// Save 保存玩家数据
func (s *PlayerStore) Save(player *Player) error {
	if s.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}
	if err := s.gdataManager.SaveObjectProp(playerObject, playerProperty, data); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}

	log.Printf("[PlayerStore] Player saved")
	return nil
}
