package systems

import (
	"image/color"
	"math"
	"sort"

	"github.com/gonewx/jovian/pkg/components"
	"github.com/gonewx/jovian/pkg/ecs"
	"github.com/gonewx/jovian/pkg/types"
	"github.com/gonewx/jovian/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// minBodyRadiusPx 天体投影后的最小绘制半径，远处的卫星缩成一个点而不是消失
	minBodyRadiusPx = 1.5

	// minPOIRadiusPx 兴趣点在原始缩放下的最小绘制半径，随缩放一起缩小
	minPOIRadiusPx = 4.0

	// orbitSegments 轨道线的折线段数
	orbitSegments = 96

	labelOffsetX = 4.0
	labelOffsetY = -14.0
)

var (
	orbitColor     = color.RGBA{R: 0x44, G: 0x44, B: 0x55, A: 0xff}
	labelColor     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	poiLabelColor  = color.RGBA{R: 0x88, G: 0xff, B: 0x88, A: 0xff}
	starfieldColor = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
)

// RenderItem 一个天体在本帧的投影结果
type RenderItem struct {
	ID     ecs.EntityID
	X, Y   float64 // 屏幕坐标
	Depth  float64
	Radius float64 // 像素半径
	Color  color.RGBA
	Kind   types.BodyKind

	// Label 需要绘制的标签文字，标签隐藏时为空
	Label string
}

// RenderSystem 把场景中的天体、轨道和标签投影到屏幕
//
// 绘制顺序由远到近，近处的天体覆盖远处的。
// 隐藏分组里的兴趣点、分组节点本身以及近裁剪面后的点都不绘制。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	scene         SceneReader

	labelFace    *text.GoTextFace
	poiLabelFace *text.GoTextFace

	// items 每帧复用，避免重复分配
	items []RenderItem
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, scene SceneReader) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		scene:         scene,
		items:         make([]RenderItem, 0, 64),
	}
}

// SetFonts 设置天体标签和兴趣点标签的字体，nil 表示不绘制该类标签
func (s *RenderSystem) SetFonts(label, poiLabel *text.GoTextFace) {
	s.labelFace = label
	s.poiLabelFace = poiLabel
}

// Collect 计算所有可见天体的投影，按深度由远到近排序
// 返回的切片在下次调用时被复用
func (s *RenderSystem) Collect(proj utils.Projection) []RenderItem {
	s.items = s.items[:0]

	for _, id := range ecs.GetEntitiesWith2[*components.CelestialBodyComponent, *components.TransformComponent](s.entityManager) {
		body, _ := ecs.GetComponent[*components.CelestialBodyComponent](s.entityManager, id)
		if body.Kind == types.BodyGroup || !NodeVisible(s.entityManager, id) {
			continue
		}
		world, err := s.scene.WorldPosition(id)
		if err != nil {
			continue
		}
		x, y, depth, ok := proj.WorldToScreen(world)
		if !ok {
			continue
		}

		scale := components.NeutralScale
		if sc, ok := ecs.GetComponent[*components.ScaleComponent](s.entityManager, id); ok {
			scale = sc.Scale
		}
		radius := proj.ProjectedRadius(body.BaseRadius*scale, depth)
		if body.Kind == types.BodyPOI {
			radius = math.Max(radius, minPOIRadiusPx*scale)
		}
		radius = math.Max(radius, minBodyRadiusPx)

		item := RenderItem{
			ID:     id,
			X:      x,
			Y:      y,
			Depth:  depth,
			Radius: radius,
			Color:  body.Color,
			Kind:   body.Kind,
		}
		if label, ok := ecs.GetComponent[*components.LabelComponent](s.entityManager, id); ok && label.Visible {
			item.Label = label.Text
		}
		s.items = append(s.items, item)
	}

	sort.SliceStable(s.items, func(i, j int) bool { return s.items[i].Depth > s.items[j].Depth })
	return s.items
}

// Draw 绘制天体和标签；showLabels 为 false 时只画天体
func (s *RenderSystem) Draw(screen *ebiten.Image, proj utils.Projection, showLabels bool) {
	items := s.Collect(proj)
	for _, item := range items {
		vector.DrawFilledCircle(screen, float32(item.X), float32(item.Y), float32(item.Radius), item.Color, true)
	}
	if !showLabels {
		return
	}
	for _, item := range items {
		if item.Label == "" {
			continue
		}
		face, clr := s.labelFace, labelColor
		if item.Kind == types.BodyPOI {
			face, clr = s.poiLabelFace, poiLabelColor
		}
		if face == nil {
			continue
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(item.X+item.Radius+labelOffsetX, item.Y+labelOffsetY)
		op.ColorScale.ScaleWithColor(clr)
		text.Draw(screen, item.Label, face, op)
	}
}

// DrawOrbits 绘制所有带轨道组件的节点的轨道线（绕父节点、位于 XZ 平面）
func (s *RenderSystem) DrawOrbits(screen *ebiten.Image, proj utils.Projection) {
	for _, id := range ecs.GetEntitiesWith2[*components.OrbitComponent, *components.TransformComponent](s.entityManager) {
		orbit, _ := ecs.GetComponent[*components.OrbitComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		center := utils.Vec3{}
		if transform.Parent != ecs.NoEntity {
			parentPos, err := s.scene.WorldPosition(transform.Parent)
			if err != nil {
				continue
			}
			center = parentPos
		}
		DrawOrbitRing(screen, proj, center, orbit.Radius)
	}
}

// DrawOrbitRing 以 center 为圆心在 XZ 平面画一个半径为 radius 的圆
// 跨过近裁剪面的线段直接跳过
func DrawOrbitRing(screen *ebiten.Image, proj utils.Projection, center utils.Vec3, radius float64) {
	var prevX, prevY float64
	prevOK := false
	for i := 0; i <= orbitSegments; i++ {
		angle := 2 * math.Pi * float64(i) / orbitSegments
		p := center.Add(utils.V3(radius*math.Cos(angle), 0, radius*math.Sin(angle)))
		x, y, _, ok := proj.WorldToScreen(p)
		if ok && prevOK {
			vector.StrokeLine(screen, float32(prevX), float32(prevY), float32(x), float32(y), 1, orbitColor, true)
		}
		prevX, prevY, prevOK = x, y, ok
	}
}

// DrawStarfield 绘制背景星空
// 星星离镜头很远，只取镜头朝向参与投影，平移时星空保持不动
func DrawStarfield(screen *ebiten.Image, proj utils.Projection, stars []utils.Vec3) {
	fixed := proj
	fixed.Target = proj.Target.Sub(proj.Position)
	fixed.Position = utils.Vec3{}
	for _, star := range stars {
		x, y, _, ok := fixed.WorldToScreen(star)
		if !ok || x < 0 || y < 0 || x > proj.Width || y > proj.Height {
			continue
		}
		vector.DrawFilledRect(screen, float32(x), float32(y), 1, 1, starfieldColor, false)
	}
}

// RigProjection 以镜头当前位姿构造屏幕投影，渲染与拾取共用
func RigProjection(rig *components.CameraRigComponent, width, height float64) utils.Projection {
	return utils.Projection{
		Position: rig.Position,
		Target:   rig.Target,
		Up:       rig.Up,
		FOV:      rig.FOV,
		Width:    width,
		Height:   height,
	}
}
