package components

// ClickableComponent 标记节点可以被鼠标拾取（对应交互节点注册表）
// 定义了拾取半径和是否启用拾取
type ClickableComponent struct {
	PickRadius float64 // 世界空间拾取半径，投影到屏幕后参与命中测试
	IsEnabled  bool    // 是否可以被拾取
}
