// Package story 定义分支剧情的静态内容：节点、选项以及按 ID 查询的剧情表
//
// 剧情表在启动时从 YAML 加载一次，之后只读。
package story

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scoring 选项的判定标签
type Scoring int

const (
	// ScoringNone 普通分支，不参与答题判定
	ScoringNone Scoring = iota
	// ScoringCorrect 正确答案：播放成功提示音后跳转
	ScoringCorrect
	// ScoringIncorrect 错误答案：播放失败提示音并扣除一条命
	ScoringIncorrect
)

// String 返回判定标签的字符串表示（与 YAML 中的写法一致）
func (s Scoring) String() string {
	switch s {
	case ScoringCorrect:
		return "correct"
	case ScoringIncorrect:
		return "incorrect"
	default:
		return "none"
	}
}

// ParseScoring 解析判定标签，空字符串视为 ScoringNone
func ParseScoring(s string) (Scoring, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ScoringNone, nil
	case "correct":
		return ScoringCorrect, nil
	case "incorrect":
		return ScoringIncorrect, nil
	}
	return ScoringNone, fmt.Errorf("unknown scoring %q (expected correct, incorrect or none)", s)
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (s *Scoring) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseScoring(raw)
	if err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrInvalidStory, value.Line, err)
	}
	*s = parsed
	return nil
}

// MarshalYAML 实现 yaml.Marshaler
func (s Scoring) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// Option 玩家可选择的分支
type Option struct {
	Label   string  `yaml:"label"`             // 按钮文字
	Target  string  `yaml:"next"`              // 跳转目标节点 ID
	Scoring Scoring `yaml:"scoring,omitempty"` // 判定标签（可省略）
}

// Node 单个剧情节点
// Options 为空表示结局节点，玩家只能重新开始
type Node struct {
	ID      string   `yaml:"id"`
	Text    string   `yaml:"text"`
	Image   string   `yaml:"image"` // 图片资源引用（资源ID或 assets/ 路径）
	Options []Option `yaml:"options"`
}

// IsTerminal 是否为结局节点
func (n *Node) IsTerminal() bool {
	return len(n.Options) == 0
}
