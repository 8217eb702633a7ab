package types

// ViewState 镜头的聚焦层级
//
// 状态只能通过 ViewStateController 的请求改变，
// 是否正在过渡（IsTransitioning）是独立的记账字段，不是单独的状态。
type ViewState int

const (
	// ViewSystem 行星系全景
	ViewSystem ViewState = iota
	// ViewMoonFocus 聚焦某颗卫星
	ViewMoonFocus
	// ViewPOIFocus 聚焦卫星上的某个兴趣点
	ViewPOIFocus
)

// String 返回与状态面板一致的名称
func (s ViewState) String() string {
	switch s {
	case ViewSystem:
		return "SYSTEM"
	case ViewMoonFocus:
		return "MOON_FOCUS"
	case ViewPOIFocus:
		return "POI_FOCUS"
	default:
		return "UNKNOWN"
	}
}

// IsFocus 是否为需要聚焦对象的状态
func (s ViewState) IsFocus() bool {
	return s == ViewMoonFocus || s == ViewPOIFocus
}
