package main

import (
	"flag"
	"log"

	"github.com/gonewx/jovian/pkg/app"
	"github.com/gonewx/jovian/pkg/config"
	"github.com/gonewx/jovian/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose   = flag.Bool("verbose", false, "显示详细调试信息")
	configDir = flag.String("config", "", "从指定目录读取 camera.yaml / system.yaml / markets.yaml（默认使用内置配置）")
	seed      = flag.Int64("seed", 0, "覆盖星系布局的随机种子（0 表示使用配置文件中的值）")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:   *verbose,
		ConfigDir: *configDir,
		Seed:      *seed,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.GameWindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
