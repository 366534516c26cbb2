// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决 narration / navigator / game 之间的循环引用
package types

// CueChannel 音效通道
// 每个通道同一时间只播放一个音效：在通道上开始新音效会停止并倒带旧音效
type CueChannel int

const (
	// CueNarration 旁白打字音效通道
	CueNarration CueChannel = iota
	// CueResult 答题结果音效通道（正确/错误提示音）
	CueResult
)

// String 返回通道的字符串表示
func (c CueChannel) String() string {
	switch c {
	case CueNarration:
		return "Narration"
	case CueResult:
		return "Result"
	default:
		return "Unknown"
	}
}
