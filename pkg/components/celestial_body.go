package components

import (
	"image/color"

	"github.com/gonewx/jovian/pkg/types"
)

// CelestialBodyComponent 天体（或兴趣点）的描述数据
type CelestialBodyComponent struct {
	Name string
	Info string // 面板显示的说明文字
	Kind types.BodyKind

	// BaseRadius 几何半径；为 0 时镜头取默认半径
	BaseRadius float64

	// HasMarket 该天体是否有交易市场（仅卫星）
	HasMarket bool

	Color color.RGBA
}
