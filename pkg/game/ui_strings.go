package game

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/decker502/storyplayer/pkg/embedded"
)

// 界面文本键
const (
	StringStartTitle    = "START_TITLE"
	StringStartBody     = "START_BODY"
	StringStartButton   = "START_BUTTON"
	StringGameOverTitle = "GAMEOVER_TITLE"
	StringGameOverBody  = "GAMEOVER_BODY"
	StringRetryButton   = "RETRY_BUTTON"
)

// UIStrings 界面文本管理器
// 从 data/strings.txt 加载标题、说明和按钮文字，支持通过键快速查询
type UIStrings struct {
	strings map[string]string // 键 -> 文本映射
}

// LoadUIStrings 从嵌入文件加载界面文本
//
// 文件格式：
//
//	[KEY]
//	文本内容
//	（可以有多行，直到下一个键或空行）
//
// 示例：
//
//	[START_TITLE]
//	The Night Shift
func LoadUIStrings(filePath string) (*UIStrings, error) {
	data, err := embedded.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open strings file %s: %w", filePath, err)
	}

	us, err := ParseUIStrings(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read strings file %s: %w", filePath, err)
	}
	return us, nil
}

// ParseUIStrings 解析 [KEY] / 文本 格式
func ParseUIStrings(data []byte) (*UIStrings, error) {
	us := &UIStrings{
		strings: make(map[string]string),
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	var currentKey string
	var lines []string
	flush := func() {
		if currentKey != "" && len(lines) > 0 {
			us.strings[currentKey] = strings.Join(lines, "\n")
		}
		lines = nil
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		// 空行结束当前值
		if trimmed == "" {
			flush()
			currentKey = ""
			continue
		}

		// 注释
		if strings.HasPrefix(trimmed, "#") {
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			flush()
			currentKey = strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			continue
		}

		if currentKey != "" {
			lines = append(lines, line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return us, nil
}

// GetString 根据键获取文本
// 键不存在时返回 "[key]"（用于调试）
func (us *UIStrings) GetString(key string) string {
	if us != nil {
		if text, ok := us.strings[key]; ok {
			return text
		}
	}
	return "[" + key + "]"
}

// Len 返回已加载的文本数量
func (us *UIStrings) Len() int {
	if us == nil {
		return 0
	}
	return len(us.strings)
}
