package entities

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/gonewx/jovian/pkg/components"
	"github.com/gonewx/jovian/pkg/config"
	"github.com/gonewx/jovian/pkg/ecs"
	"github.com/gonewx/jovian/pkg/systems"
	"github.com/gonewx/jovian/pkg/types"
	"github.com/gonewx/jovian/pkg/utils"
)

const (
	// poiSurfaceFactor 兴趣点距卫星中心的距离（卫星半径的倍数）
	poiSurfaceFactor = 1.05

	// 背景星空
	starfieldCount     = 2000
	starfieldMinRadius = 500.0
	starfieldMaxRadius = 2000.0
)

// 兴趣点颜色（随机二选一）
var poiColors = []color.RGBA{
	{R: 0x33, G: 0xff, B: 0x33, A: 0xff},
	{R: 0x33, G: 0xdd, B: 0xff, A: 0xff},
}

// StarSystem 构建完成的星系场景中各节点的 ID
type StarSystem struct {
	Sun    ecs.EntityID
	Anchor ecs.EntityID // 行星系锚点（行星和卫星的父节点）
	Planet ecs.EntityID

	// Moons 按配置顺序排列
	Moons       []ecs.EntityID
	MoonsByName map[string]ecs.EntityID

	// POIGroups 卫星 -> 兴趣点分组节点
	POIGroups map[ecs.EntityID]ecs.EntityID
	POIs      []ecs.EntityID

	// PlanetOrbitRadius 行星系锚点绕恒星的轨道半径（用于绘制轨道线）
	PlanetOrbitRadius float64

	// Stars 背景星空的点（世界坐标）
	Stars []utils.Vec3
}

// BuildStarSystem 按配置创建星系中的全部实体
//
// 参数:
//   - em: 实体管理器
//   - sys: 星系布局；Seed 为 0 时使用当前时间
//   - markets: 市场配置，用于标记有市场的卫星；可以为 nil
//
// 行星系锚点和卫星的初始轨道角度、兴趣点的表面位置都由随机数决定，
// 相同的 Seed 总是得到相同的场景。
func BuildStarSystem(em *ecs.EntityManager, sys *config.SystemConfig, markets *config.MarketConfig) (*StarSystem, error) {
	if sys == nil {
		return nil, fmt.Errorf("system config is nil")
	}
	if err := sys.Validate(); err != nil {
		return nil, fmt.Errorf("invalid system config: %w", err)
	}

	seed := sys.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ss := &StarSystem{
		MoonsByName:       make(map[string]ecs.EntityID, len(sys.Moons)),
		POIGroups:         make(map[ecs.EntityID]ecs.EntityID),
		PlanetOrbitRadius: sys.Planet.OrbitRadius,
	}

	// 恒星：不可拾取，没有标签
	ss.Sun = newBody(em, ecs.NoEntity, utils.Vec3{}, sys.Star, types.BodyStar)

	// 行星系锚点
	anchorAngle := rng.Float64() * 2 * math.Pi
	ss.Anchor = em.CreateEntity()
	ecs.AddComponent(em, ss.Anchor, &components.TransformComponent{
		Position: utils.V3(sys.Planet.OrbitRadius*math.Cos(anchorAngle), 0, sys.Planet.OrbitRadius*math.Sin(anchorAngle)),
	})
	ecs.AddComponent(em, ss.Anchor, &components.CelestialBodyComponent{
		Name: sys.Planet.Name,
		Kind: types.BodyGroup,
	})

	ss.Planet = newBody(em, ss.Anchor, utils.Vec3{}, sys.Planet.BodyConfig, types.BodyPlanet)
	addLabel(em, ss.Planet, sys.Planet.Name, false)
	addClickable(em, ss.Planet, 0)

	for _, moonCfg := range sys.Moons {
		orbit := &components.OrbitComponent{
			Radius: moonCfg.OrbitRadius,
			Angle:  rng.Float64() * 2 * math.Pi,
		}
		if moonCfg.OrbitalPeriod > 0 {
			orbit.AngularSpeed = 2 * math.Pi / moonCfg.OrbitalPeriod
		}

		moon := newBody(em, ss.Anchor, utils.Vec3{}, moonCfg.BodyConfig, types.BodyMoon)
		transform, _ := ecs.GetComponent[*components.TransformComponent](em, moon)
		systems.PlaceOnOrbit(transform, orbit)
		ecs.AddComponent(em, moon, orbit)
		addLabel(em, moon, moonCfg.Name, false)
		addClickable(em, moon, 0)

		if markets != nil && markets.HasMarket(moonCfg.Name) {
			body, _ := ecs.GetComponent[*components.CelestialBodyComponent](em, moon)
			body.HasMarket = true
		}

		ss.Moons = append(ss.Moons, moon)
		ss.MoonsByName[moonCfg.Name] = moon

		if moonCfg.POICount > 0 {
			group, pois := newPOIGroup(em, rng, moon, moonCfg)
			ss.POIGroups[moon] = group
			ss.POIs = append(ss.POIs, pois...)
		}
	}

	ss.Stars = newStarfield(rng, starfieldCount)

	log.Printf("[StarSystem] Built %s system: %d moons, %d POIs (seed %d)",
		sys.Planet.Name, len(ss.Moons), len(ss.POIs), seed)
	return ss, nil
}

// newPOIGroup 在卫星表面随机放置兴趣点，分组默认隐藏
func newPOIGroup(em *ecs.EntityManager, rng *rand.Rand, moon ecs.EntityID, moonCfg config.MoonConfig) (ecs.EntityID, []ecs.EntityID) {
	group := em.CreateEntity()
	ecs.AddComponent(em, group, &components.TransformComponent{Parent: moon})
	groupComp := &components.POIGroupComponent{Moon: moon}
	ecs.AddComponent(em, group, groupComp)

	for i := 0; i < moonCfg.POICount; i++ {
		// 球面均匀分布
		phi := math.Acos(-1 + 2*rng.Float64())
		theta := rng.Float64() * 2 * math.Pi
		name := fmt.Sprintf("%s POI %d", moonCfg.Name, i+1)

		poi := em.CreateEntity()
		ecs.AddComponent(em, poi, &components.TransformComponent{
			Position: utils.FromSpherical(moonCfg.Radius*poiSurfaceFactor, phi, theta),
			Parent:   group,
		})
		ecs.AddComponent(em, poi, &components.CelestialBodyComponent{
			Name:  name,
			Info:  fmt.Sprintf("Point of interest on %s.", moonCfg.Name),
			Kind:  types.BodyPOI,
			Color: poiColors[rng.Intn(len(poiColors))],
		})
		ecs.AddComponent(em, poi, &components.POIComponent{ParentMoon: moon})
		ecs.AddComponent(em, poi, &components.ScaleComponent{Scale: components.NeutralScale})
		addLabel(em, poi, name, true)
		addClickable(em, poi, 0)

		groupComp.POIs = append(groupComp.POIs, poi)
	}

	return group, groupComp.POIs
}

func newBody(em *ecs.EntityManager, parent ecs.EntityID, pos utils.Vec3, cfg config.BodyConfig, kind types.BodyKind) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransformComponent{Position: pos, Parent: parent})
	ecs.AddComponent(em, id, &components.CelestialBodyComponent{
		Name:       cfg.Name,
		Info:       cfg.Info,
		Kind:       kind,
		BaseRadius: cfg.Radius,
		Color:      cfg.RGBA(),
	})
	return id
}

func addLabel(em *ecs.EntityManager, id ecs.EntityID, text string, isPOI bool) {
	ecs.AddComponent(em, id, &components.LabelComponent{Text: text, IsPOI: isPOI})
}

func addClickable(em *ecs.EntityManager, id ecs.EntityID, pickRadius float64) {
	ecs.AddComponent(em, id, &components.ClickableComponent{PickRadius: pickRadius, IsEnabled: true})
}

// newStarfield 在球壳内随机生成星点
func newStarfield(rng *rand.Rand, count int) []utils.Vec3 {
	stars := make([]utils.Vec3, count)
	for i := range stars {
		r := starfieldMinRadius + rng.Float64()*(starfieldMaxRadius-starfieldMinRadius)
		phi := math.Acos(-1 + 2*rng.Float64())
		theta := rng.Float64() * 2 * math.Pi
		stars[i] = utils.FromSpherical(r, phi, theta)
	}
	return stars
}
