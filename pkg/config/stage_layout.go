package config

// 舞台布局常量
// 所有坐标均为逻辑屏幕坐标（Layout 返回的尺寸），Ebitengine 负责缩放到实际窗口

const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 960
	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 540
)

// 剧情图片区域（顶部，按 cover 方式铺满）
const (
	ImageAreaX      = 0.0
	ImageAreaY      = 0.0
	ImageAreaWidth  = float64(GameWindowWidth)
	ImageAreaHeight = 330.0
)

// 旁白文本框（图片下方）
const (
	NarrationBoxX       = 24.0
	NarrationBoxY       = 342.0
	NarrationBoxWidth   = float64(GameWindowWidth) - 48.0
	NarrationBoxHeight  = 112.0
	NarrationTextMargin = 16.0 // 文本与文本框边缘的距离
	NarrationLineHeight = 28.0 // 行高
)

// 选项按钮（文本框下方，从左到右排列，超出宽度时换行）
const (
	OptionButtonStartX  = 24.0
	OptionButtonStartY  = 466.0
	OptionButtonHeight  = 30.0
	OptionButtonPadding = 18.0 // 文字左右留白
	OptionButtonSpacing = 12.0 // 按钮间距
	OptionButtonMinW    = 96.0
)

// 生命值（右上角的红心）
const (
	HeartsX       = float64(GameWindowWidth) - 24.0 // 右对齐
	HeartsY       = 20.0
	HeartRadius   = 10.0
	HeartsSpacing = 28.0
)

// 开始界面
const (
	StartTitleY     = 150.0
	StartBodyY      = 230.0
	StartButtonW    = 220.0
	StartButtonH    = 48.0
	StartButtonY    = 360.0
	StartBodyWidth  = 640.0
	StartBodyLineH  = 30.0
	StartTitleScale = 1.6 // 标题字号相对正文字号的倍数
)

// OptionButtonWidth 根据文字宽度计算选项按钮宽度
func OptionButtonWidth(textWidth float64) float64 {
	w := textWidth + OptionButtonPadding*2
	if w < OptionButtonMinW {
		return OptionButtonMinW
	}
	return w
}

// LayoutOptionButtons 计算一组选项按钮的左上角坐标
// 按钮从左到右排列，超出屏幕宽度时换到下一行
//
// 参数：
//   - widths: 每个按钮的宽度
//
// 返回：
//   - [][2]float64: 每个按钮的 (x, y)
func LayoutOptionButtons(widths []float64) [][2]float64 {
	positions := make([][2]float64, 0, len(widths))
	x, y := OptionButtonStartX, OptionButtonStartY
	maxX := float64(GameWindowWidth) - OptionButtonStartX

	for _, w := range widths {
		if x > OptionButtonStartX && x+w > maxX {
			x = OptionButtonStartX
			y += OptionButtonHeight + OptionButtonSpacing
		}
		positions = append(positions, [2]float64{x, y})
		x += w + OptionButtonSpacing
	}
	return positions
}
