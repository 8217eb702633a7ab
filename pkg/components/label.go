package components

// LabelComponent 节点旁的文字标签
type LabelComponent struct {
	Text    string
	Visible bool
	IsPOI   bool // 兴趣点标签（字号更小，随分组显示）
}
