package systems

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFocusTarget 聚焦请求的目标为空或不是可聚焦的天体
	ErrInvalidFocusTarget = errors.New("invalid focus target")

	// ErrMissingParentMoon 兴趣点聚焦请求缺少所属卫星
	ErrMissingParentMoon = errors.New("point of interest has no parent moon")

	// ErrNodeNotFound 节点（或其父链上的节点）已不在场景中
	ErrNodeNotFound = errors.New("scene node not found")

	// ErrMalformedNode 节点数据无法用于计算位姿（缺少组件、非有限坐标、父链成环）
	ErrMalformedNode = errors.New("malformed scene node")
)

// FaultReason Force-End 的触发原因
type FaultReason string

const (
	FaultTimeout    FaultReason = "timeout"
	FaultObjectLost FaultReason = "object lost"
	FaultError      FaultReason = "error"
)

// TransitionFault 过渡过程中无法恢复的故障，交由 Force-End 处理
// 只用于日志上报，不会传播给每帧调用方
type TransitionFault struct {
	Reason FaultReason
	Err    error
}

func (f *TransitionFault) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("transition fault: %s", f.Reason)
	}
	return fmt.Sprintf("transition fault: %s: %v", f.Reason, f.Err)
}

func (f *TransitionFault) Unwrap() error {
	return f.Err
}

// faultFromError 按错误类型归类故障原因
func faultFromError(err error) *TransitionFault {
	if errors.Is(err, ErrNodeNotFound) {
		return &TransitionFault{Reason: FaultObjectLost, Err: err}
	}
	return &TransitionFault{Reason: FaultError, Err: err}
}
