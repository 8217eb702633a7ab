package scenes

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/gonewx/jovian/pkg/config"
	"github.com/gonewx/jovian/pkg/economy"
	"github.com/gonewx/jovian/pkg/ecs"
	"github.com/gonewx/jovian/pkg/systems"
	"github.com/gonewx/jovian/pkg/types"
	"github.com/gonewx/jovian/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 面板布局
const (
	panelMargin      = 12.0
	panelPadding     = 8.0
	panelLineHeight  = 18.0
	infoPanelWidth   = 300.0
	marketPanelWidth = 460.0
)

var (
	backgroundColor = color.RGBA{R: 0x00, G: 0x00, B: 0x08, A: 0xff}
	panelColor      = color.RGBA{R: 0x10, G: 0x14, B: 0x20, A: 0xd0}
	panelTextColor  = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	accentColor     = color.RGBA{R: 0xff, G: 0xcc, B: 0x66, A: 0xff}
	readyColor      = color.RGBA{R: 0x88, G: 0xff, B: 0x88, A: 0xff}
)

// helpLines 操作说明
var helpLines = []string{
	"Double-click: focus   Esc: back   Home: system view",
	"WASD: pan   O: orbits   L: labels   F: stars   P: pause orbits",
	"1-9: buy   Shift+1-9: sell   Ctrl+1-9: craft",
}

// Draw 绘制星空、轨道、天体和面板
func (s *SystemScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	settings := s.settings.GetSettings()
	proj := systems.RigProjection(s.controller.Rig(), s.width, s.height)

	if settings.ShowStarfield {
		systems.DrawStarfield(screen, proj, s.system.Stars)
	}
	if settings.ShowOrbits {
		// 行星系绕恒星的轨道
		systems.DrawOrbitRing(screen, proj, utils.Vec3{}, s.system.PlanetOrbitRadius)
		s.renderSystem.DrawOrbits(screen, proj)
	}
	s.renderSystem.Draw(screen, proj, settings.ShowLabels)

	s.drawPanel(screen, panelMargin, panelMargin, infoPanelWidth, s.infoLines(), panelTextColor)
	if lines := s.marketLines(); len(lines) > 0 {
		s.drawPanel(screen, s.width-marketPanelWidth-panelMargin, panelMargin, marketPanelWidth, lines, panelTextColor)
	}

	helpHeight := float64(len(helpLines))*panelLineHeight + 2*panelPadding
	s.drawPanel(screen, panelMargin, s.height-helpHeight-panelMargin, 480, helpLines, panelTextColor)

	if s.message != "" {
		s.drawPanel(screen, s.width/2-200, s.height-panelLineHeight-2*panelPadding-panelMargin, 400, []string{s.message}, accentColor)
	}
}

// drawPanel 半透明底板加多行文字
func (s *SystemScene) drawPanel(screen *ebiten.Image, x, y, width float64, lines []string, clr color.RGBA) {
	height := float64(len(lines))*panelLineHeight + 2*panelPadding
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), panelColor, false)

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x+panelPadding, y+panelPadding+float64(i)*panelLineHeight)
		op.ColorScale.ScaleWithColor(clr)
		if strings.HasSuffix(line, "(ready)") {
			op.ColorScale.Reset()
			op.ColorScale.ScaleWithColor(readyColor)
		}
		text.Draw(screen, line, s.panelFace, op)
	}
}

// infoLines 状态栏与聚焦对象信息
func (s *SystemScene) infoLines() []string {
	lines := []string{s.controller.StatusText()}
	if s.controller.Model().IsTransitioning {
		lines = append(lines, "Moving...")
	}

	if info := s.focusInfo; info != nil {
		lines = append(lines, "", info.Name)
		if info.Kind == types.BodyPOI && info.ParentMoonName != "" {
			lines = append(lines, fmt.Sprintf("Point of interest on %s", info.ParentMoonName))
		}
		if info.Info != "" {
			lines = append(lines, info.Info)
		}
		if info.HasMarket {
			lines = append(lines, "Market available")
		}
	}

	if s.visibility.POIGroupOwner != ecs.NoEntity && s.controller.Model().ViewState == types.ViewMoonFocus {
		lines = append(lines, "", "Double-click a marker to inspect it")
	}

	if s.orbitSystem.IsPaused() {
		lines = append(lines, "", "Orbits paused")
	}
	return lines
}

// marketLines 当前市场、货舱和配方；没有市场时返回 nil
func (s *SystemScene) marketLines() []string {
	market, ok := s.activeMarket()
	if !ok {
		return nil
	}
	return formatMarket(market, s.economy.Player(), s.economy.Recipes(), s.economy.CanCraft)
}

// formatMarket 把市场与玩家数据排版为面板文字
func formatMarket(market *economy.Market, player *economy.Player, recipes []config.RecipeDef, canCraft func(int) bool) []string {
	lines := []string{fmt.Sprintf("%s Market", market.Moon)}
	if market.Description != "" {
		lines = append(lines, market.Description)
	}
	lines = append(lines, "")

	for i, c := range market.Companies {
		lines = append(lines, fmt.Sprintf("[%d] %s", i+1, c.Name))
		if p := c.Produces; p != nil {
			lines = append(lines, fmt.Sprintf("    sells %s: %d @ %.2f", p.Resource, p.Stock(), p.CurrentPrice))
		}
		if d := c.Consumes; d != nil {
			lines = append(lines, fmt.Sprintf("    buys %s: %d @ %.2f", d.Resource, d.DemandAvailable(), d.CurrentPrice))
		}
	}

	lines = append(lines, "", fmt.Sprintf("Credits: %.2f", player.Credits))
	for _, name := range player.CargoNames() {
		lines = append(lines, fmt.Sprintf("  %s x%.0f", name, player.Quantity(name)))
	}

	if len(recipes) > 0 {
		lines = append(lines, "", "Crafting:")
	}
	for i, r := range recipes {
		line := fmt.Sprintf("[Ctrl+%d] %s: %s", i+1, r.Product, formatIngredients(r.Ingredients))
		if canCraft != nil && canCraft(i) {
			line += " (ready)"
		}
		lines = append(lines, line)
	}
	return lines
}

// formatIngredients 按名称排序的配料表，如 "Refined Metals x1, Sulfur x2"
func formatIngredients(ingredients map[string]float64) string {
	names := make([]string, 0, len(ingredients))
	for name := range ingredients {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s x%.0f", name, ingredients[name]))
	}
	return strings.Join(parts, ", ")
}
