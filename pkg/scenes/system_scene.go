package scenes

import (
	"bytes"
	"fmt"
	"log"

	"github.com/gonewx/jovian/pkg/components"
	"github.com/gonewx/jovian/pkg/config"
	"github.com/gonewx/jovian/pkg/ecs"
	"github.com/gonewx/jovian/pkg/economy"
	"github.com/gonewx/jovian/pkg/entities"
	"github.com/gonewx/jovian/pkg/game"
	"github.com/gonewx/jovian/pkg/systems"
	"github.com/gonewx/jovian/pkg/types"
	"github.com/gonewx/jovian/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	labelFontSize    = 14
	poiLabelFontSize = 11
	panelFontSize    = 14

	// messageDuration 交易结果提示的显示时间（秒）
	messageDuration = 3.0

	// tradeQuantity 每次按键买入/卖出的数量
	tradeQuantity = 10
)

// digitKeys 数字键 1-9：交易/合成时选择公司或配方
var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// SystemSceneConfig 创建星系场景所需的配置与存储
type SystemSceneConfig struct {
	Camera  *config.CameraConfig
	System  *config.SystemConfig
	Markets *config.MarketConfig

	// Settings 显示设置，可为 nil（使用默认设置且不保存）
	Settings *game.SettingsManager
	// PlayerStore 玩家存档，可为 nil（不保存）
	PlayerStore *economy.PlayerStore

	Width, Height int
}

// SystemScene 星系视图场景
//
// 每帧顺序：输入 → 轨道运动 → 镜头控制器 → 经济模拟。
// 场景作为 ViewObserver 接收状态变化，用于面板显示。
type SystemScene struct {
	entityManager *ecs.EntityManager
	system        *entities.StarSystem
	sceneGraph    *systems.SceneGraph

	controller   *systems.ViewStateController
	orbitSystem  *systems.OrbitSystem
	pickSystem   *systems.PickSystem
	renderSystem *systems.RenderSystem

	economy     *economy.Simulator
	playerStore *economy.PlayerStore
	settings    *game.SettingsManager

	width, height float64
	panelFace     *text.GoTextFace
	doubleClick   *utils.DoubleClickDetector

	// sceneTime 场景累计运行时间（秒），用于双击检测
	sceneTime     float64
	windowFocused bool

	// focusInfo 最近一次完成聚焦的对象；SYSTEM 下为 nil
	focusInfo  *systems.FocusInfo
	visibility systems.Visibility

	message      string
	messageTimer float64
}

// NewSystemScene 按配置构建星系、镜头和经济模拟
func NewSystemScene(cfg SystemSceneConfig) (*SystemScene, error) {
	if cfg.Camera == nil {
		cfg.Camera = config.DefaultCameraConfig()
	}
	if cfg.Settings == nil {
		cfg.Settings = game.NewSettingsManager(nil)
	}
	if cfg.PlayerStore == nil {
		cfg.PlayerStore = economy.NewPlayerStore(nil)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = config.GameWindowWidth, config.GameWindowHeight
	}

	em := ecs.NewEntityManager()
	starSystem, err := entities.BuildStarSystem(em, cfg.System, cfg.Markets)
	if err != nil {
		return nil, fmt.Errorf("failed to build star system: %w", err)
	}
	camera := entities.NewCameraRigEntity(em, cfg.Camera)
	sceneGraph := systems.NewSceneGraph(em)

	controller, err := systems.NewViewStateController(
		em, sceneGraph, game.NewFocusModel(), camera, starSystem.Anchor, cfg.Camera, game.SystemClock{})
	if err != nil {
		return nil, fmt.Errorf("failed to create view controller: %w", err)
	}

	startingCredits := config.DefaultEconomyTuning().StartingCredits
	if cfg.Markets != nil {
		startingCredits = cfg.Markets.Economy.StartingCredits
	}
	player, err := cfg.PlayerStore.Load(startingCredits)
	if err != nil {
		log.Printf("[SystemScene] Warning: %v (starting a new ledger)", err)
	}
	sim, err := economy.NewSimulator(cfg.Markets, player)
	if err != nil {
		return nil, fmt.Errorf("failed to create economy: %w", err)
	}

	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	s := &SystemScene{
		entityManager: em,
		system:        starSystem,
		sceneGraph:    sceneGraph,
		controller:    controller,
		orbitSystem:   systems.NewOrbitSystem(em),
		pickSystem:    systems.NewPickSystem(em, sceneGraph),
		renderSystem:  systems.NewRenderSystem(em, sceneGraph),
		economy:       sim,
		playerStore:   cfg.PlayerStore,
		settings:      cfg.Settings,
		width:         float64(cfg.Width),
		height:        float64(cfg.Height),
		panelFace:     &text.GoTextFace{Source: fontSource, Size: panelFontSize},
		doubleClick:   utils.NewDoubleClickDetector(),
		windowFocused: true,
	}
	s.renderSystem.SetFonts(
		&text.GoTextFace{Source: fontSource, Size: labelFontSize},
		&text.GoTextFace{Source: fontSource, Size: poiLabelFontSize},
	)
	controller.AddObserver(s)
	// 首帧之前应用一次可见性
	controller.Update(0)

	log.Printf("[SystemScene] Ready: %s", controller.StatusText())
	return s, nil
}

// Controller 镜头控制器
func (s *SystemScene) Controller() *systems.ViewStateController {
	return s.controller
}

// Economy 经济模拟
func (s *SystemScene) Economy() *economy.Simulator {
	return s.economy
}

// StarSystem 场景中的天体
func (s *SystemScene) StarSystem() *entities.StarSystem {
	return s.system
}

// RemoveBody 标记节点及其全部子节点待删除，在本帧末尾生效
// 被聚焦的节点被删除后，控制器在下一帧按对象丢失处理
func (s *SystemScene) RemoveBody(id ecs.EntityID) {
	if !s.entityManager.Exists(id) {
		return
	}
	marked := map[ecs.EntityID]bool{id: true}
	queue := []ecs.EntityID{id}
	nodes := ecs.GetEntitiesWith1[*components.TransformComponent](s.entityManager)
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for _, child := range nodes {
			if marked[child] {
				continue
			}
			if t, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, child); ok && t.Parent == parent {
				marked[child] = true
				queue = append(queue, child)
			}
		}
	}
	for node := range marked {
		s.entityManager.DestroyEntity(node)
	}
	log.Printf("[SystemScene] Removing node %d (%d nodes)", id, len(marked))
}

// Update 处理输入并推进场景
func (s *SystemScene) Update(deltaTime float64) {
	s.handleInput()
	s.step(deltaTime)
}

// step 推进场景逻辑（不读取输入）
func (s *SystemScene) step(dt float64) {
	s.sceneTime += dt
	s.orbitSystem.Update(dt)
	s.controller.Update(dt)
	s.economy.Update(dt)
	s.entityManager.RemoveMarkedEntities()

	if s.messageTimer > 0 {
		s.messageTimer -= dt
		if s.messageTimer <= 0 {
			s.message = ""
		}
	}
}

// handleInput 读取键盘与鼠标
func (s *SystemScene) handleInput() {
	s.setWindowFocused(ebiten.IsFocused())
	if !s.windowFocused {
		return
	}

	if clicked, x, y := utils.IsJustTouchedOrClicked(); clicked && s.doubleClick.Click(s.sceneTime, x, y) {
		s.handleDoubleClick(float64(x), float64(y))
	}

	s.controller.SetDirectionHeld(systems.PanForward, ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp))
	s.controller.SetDirectionHeld(systems.PanBackward, ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown))
	s.controller.SetDirectionHeld(systems.PanLeft, ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft))
	s.controller.SetDirectionHeld(systems.PanRight, ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight))

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.controller.RequestCancel()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		s.controller.RequestSystemView()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		s.settings.ToggleOrbits()
		s.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		s.settings.ToggleLabels()
		s.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		s.settings.ToggleStarfield()
		s.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		s.toggleOrbitPause()
	}

	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	for i, key := range digitKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		switch {
		case ctrl:
			s.craft(i)
		case shift:
			s.trade(i, true)
		default:
			s.trade(i, false)
		}
	}
}

// setWindowFocused 窗口失焦时松开方向键并暂停经济模拟
func (s *SystemScene) setWindowFocused(focused bool) {
	if focused == s.windowFocused {
		return
	}
	s.windowFocused = focused
	if focused {
		s.economy.Resume()
		return
	}
	s.controller.ReleaseDirections()
	s.doubleClick.Reset()
	s.economy.Pause()
}

// handleDoubleClick 拾取屏幕坐标处的节点并交给控制器
func (s *SystemScene) handleDoubleClick(x, y float64) {
	proj := systems.RigProjection(s.controller.Rig(), s.width, s.height)
	node := s.pickSystem.Pick(proj, x, y)
	if err := s.controller.RequestPick(node); err != nil {
		log.Printf("[SystemScene] Pick ignored: %v", err)
	}
}

func (s *SystemScene) toggleOrbitPause() {
	paused := !s.orbitSystem.IsPaused()
	s.orbitSystem.SetPaused(paused)
	if paused {
		s.showMessage("Orbits paused")
	} else {
		s.showMessage("Orbits resumed")
	}
}

// activeMarket 当前聚焦卫星的市场；聚焦兴趣点时取其所属卫星
func (s *SystemScene) activeMarket() (*economy.Market, bool) {
	info := s.focusInfo
	if info == nil {
		return nil, false
	}
	moon := info.Name
	if info.Kind == types.BodyPOI {
		moon = info.ParentMoonName
	}
	if moon == "" {
		return nil, false
	}
	return s.economy.Market(moon)
}

// trade 与当前市场的第 index 家公司交易
func (s *SystemScene) trade(index int, sell bool) {
	market, ok := s.activeMarket()
	if !ok {
		s.showMessage("No market here")
		return
	}

	var (
		receipt economy.Receipt
		err     error
	)
	if sell {
		receipt, err = s.economy.Sell(market.Moon, index, tradeQuantity)
	} else {
		receipt, err = s.economy.Buy(market.Moon, index, tradeQuantity)
	}
	if err != nil {
		s.showMessage(fmt.Sprintf("Trade failed: %v", err))
		return
	}
	s.showMessage(fmt.Sprintf("%s %.0f %s for %.2f", receipt.Kind, receipt.Quantity, receipt.Resource, receipt.Total))
	s.savePlayer()
}

// craft 按配方合成
func (s *SystemScene) craft(index int) {
	receipt, err := s.economy.Craft(index)
	if err != nil {
		s.showMessage(fmt.Sprintf("Craft failed: %v", err))
		return
	}
	s.showMessage(fmt.Sprintf("Crafted %s", receipt.Resource))
	s.savePlayer()
}

func (s *SystemScene) showMessage(msg string) {
	s.message = msg
	s.messageTimer = messageDuration
}

func (s *SystemScene) saveSettings() {
	if err := s.settings.Save(); err != nil {
		log.Printf("[SystemScene] Warning: %v", err)
	}
}

func (s *SystemScene) savePlayer() {
	if err := s.playerStore.Save(s.economy.Player()); err != nil {
		log.Printf("[SystemScene] Warning: %v", err)
	}
}

// OnStateChanged 实现 systems.ViewObserver
func (s *SystemScene) OnStateChanged(state types.ViewState, focused *systems.FocusInfo) {
	if state == types.ViewSystem {
		s.focusInfo = nil
	}
}

// OnTransitionCompleted 实现 systems.ViewObserver
func (s *SystemScene) OnTransitionCompleted(state types.ViewState, focused *systems.FocusInfo) {
	s.focusInfo = focused
	if focused != nil {
		log.Printf("[SystemScene] Arrived at %s (%s)", focused.Name, state)
	}
}

// OnVisibilityChanged 实现 systems.ViewObserver
func (s *SystemScene) OnVisibilityChanged(v systems.Visibility) {
	s.visibility = v
}

// SaveOnExit 实现 game.Saveable：保存显示设置和玩家存档
func (s *SystemScene) SaveOnExit() bool {
	ok := true
	if err := s.settings.Save(); err != nil {
		log.Printf("[SystemScene] Failed to save settings: %v", err)
		ok = false
	}
	if err := s.playerStore.Save(s.economy.Player()); err != nil {
		log.Printf("[SystemScene] Failed to save player: %v", err)
		ok = false
	}
	return ok
}
