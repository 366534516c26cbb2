package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rivo/uniseg"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本（"\n" 强制换行）
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 优先在空格处断行
//   - 如果单词太长超过最大宽度，按字素强制断行
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if font == nil {
		return strings.Split(textStr, "\n")
	}
	return WrapTextFunc(textStr, func(s string) float64 {
		return MeasureTextWidth(s, font)
	}, maxWidth)
}

// WrapTextFunc 与 WrapText 相同，但使用自定义的宽度测量函数
func WrapTextFunc(textStr string, measure func(string) float64, maxWidth float64) []string {
	if textStr == "" || maxWidth <= 0 {
		return []string{textStr}
	}

	var lines []string
	for _, paragraph := range strings.Split(textStr, "\n") {
		lines = append(lines, wrapParagraph(paragraph, measure, maxWidth)...)
	}
	return lines
}

func wrapParagraph(paragraph string, measure func(string) float64, maxWidth float64) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	currentLine := ""
	for _, word := range words {
		testLine := word
		if currentLine != "" {
			testLine = currentLine + " " + word
		}
		if measure(testLine) <= maxWidth {
			currentLine = testLine
			continue
		}

		if currentLine != "" {
			lines = append(lines, currentLine)
			currentLine = ""
		}

		// 单词本身超宽：按字素拆分
		if measure(word) > maxWidth {
			pieces := breakWord(word, measure, maxWidth)
			lines = append(lines, pieces[:len(pieces)-1]...)
			currentLine = pieces[len(pieces)-1]
			continue
		}
		currentLine = word
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}

// breakWord 按字素拆分超宽单词，每段至少一个字素
func breakWord(word string, measure func(string) float64, maxWidth float64) []string {
	var pieces []string
	current := ""
	gr := uniseg.NewGraphemes(word)
	for gr.Next() {
		cluster := gr.Str()
		if current != "" && measure(current+cluster) > maxWidth {
			pieces = append(pieces, current)
			current = ""
		}
		current += cluster
	}
	return append(pieces, current)
}

// MeasureTextWidth 测量文本宽度
func MeasureTextWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}

	width, _ := text.Measure(textStr, font, 0)
	return width
}
