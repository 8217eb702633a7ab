package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gonewx/jovian/pkg/config"
	"github.com/gonewx/jovian/pkg/ecs"
	"github.com/gonewx/jovian/pkg/economy"
	"github.com/gonewx/jovian/pkg/entities"
)

var (
	dir    = flag.String("dir", "data", "配置目录（包含 camera.yaml / system.yaml / markets.yaml）")
	cycles = flag.Int("cycles", 0, "额外运行的经济周期数，用于检查价格是否稳定")
)

func main() {
	flag.Parse()

	cam, err := config.LoadCameraConfig(filepath.Join(*dir, "camera.yaml"))
	if err != nil {
		fail("camera.yaml", err)
	}
	fmt.Printf("✅ camera.yaml: lerpSpeed=%.3f timeout=%v focusedScale=%.2f\n",
		cam.LerpSpeed, cam.Timeout(), cam.FocusedScale)

	sys, err := config.LoadSystemConfig(filepath.Join(*dir, "system.yaml"))
	if err != nil {
		fail("system.yaml", err)
	}
	fmt.Printf("✅ system.yaml: %s + %d 颗卫星\n", sys.Planet.Name, len(sys.Moons))

	markets, err := config.LoadMarketConfig(filepath.Join(*dir, "markets.yaml"))
	if err != nil {
		fail("markets.yaml", err)
	}
	fmt.Printf("✅ markets.yaml: %d 个市场, %d 个配方\n", len(markets.Markets), len(markets.Recipes))

	for _, m := range markets.Markets {
		if _, ok := sys.FindMoon(m.Moon); !ok {
			fmt.Printf("❌ 市场 %q 对应的卫星不存在\n", m.Moon)
			os.Exit(1)
		}
	}

	// 不依赖窗口，直接构建一次场景
	em := ecs.NewEntityManager()
	star, err := entities.BuildStarSystem(em, sys, markets)
	if err != nil {
		fail("scene", err)
	}
	fmt.Printf("✅ 场景: %d 个实体, %d 个兴趣点\n", em.EntityCount(), len(star.POIs))

	if *cycles <= 0 {
		return
	}
	sim, err := economy.NewSimulator(markets, nil)
	if err != nil {
		fail("economy", err)
	}
	for i := 0; i < *cycles; i++ {
		sim.Step()
	}
	for _, m := range sim.Markets() {
		fmt.Printf("%s:\n", m.Moon)
		for _, c := range m.Companies {
			if p := c.Produces; p != nil {
				fmt.Printf("  %-24s sells %-16s stock=%-5d price=%.2f\n", c.Name, p.Resource, p.Stock(), p.CurrentPrice)
			}
			if d := c.Consumes; d != nil {
				fmt.Printf("  %-24s buys  %-16s demand=%-4d price=%.2f\n", c.Name, d.Resource, d.DemandAvailable(), d.CurrentPrice)
			}
		}
	}
}

func fail(what string, err error) {
	fmt.Printf("❌ %s: %v\n", what, err)
	os.Exit(1)
}
