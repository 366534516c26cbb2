package config

import "image/color"

// 界面配色
// 没有资源图片时，所有界面元素都用这些纯色绘制

var (
	// BackgroundColor 屏幕底色
	BackgroundColor = color.RGBA{R: 18, G: 18, B: 24, A: 255}
	// PlaceholderColor 图片缺失时的占位面板
	PlaceholderColor = color.RGBA{R: 40, G: 44, B: 56, A: 255}
	// NarrationBoxColor 旁白文本框背景（半透明）
	NarrationBoxColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
	// NarrationTextColor 旁白文字颜色
	NarrationTextColor = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	// TitleTextColor 开始界面标题颜色
	TitleTextColor = color.RGBA{R: 255, G: 214, B: 120, A: 255}
	// StartOverlayColor 开始界面覆盖在背景图上的暗化层
	StartOverlayColor = color.RGBA{R: 0, G: 0, B: 0, A: 170}
)

// 按钮配色（按交互状态）
var (
	ButtonNormalColor   = color.RGBA{R: 52, G: 73, B: 94, A: 255}
	ButtonHoverColor    = color.RGBA{R: 72, G: 101, B: 130, A: 255}
	ButtonPressedColor  = color.RGBA{R: 36, G: 52, B: 68, A: 255}
	ButtonDisabledColor = color.RGBA{R: 70, G: 70, B: 70, A: 255}
	ButtonBorderColor   = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	ButtonTextColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// 生命值与受伤效果
var (
	HeartFullColor  = color.RGBA{R: 220, G: 40, B: 60, A: 255}
	HeartEmptyColor = color.RGBA{R: 80, G: 80, B: 80, A: 255}
	// DamageTintColor 受伤时整屏叠加的红色，透明度由 DamageTintAlpha 决定
	DamageTintColor = color.RGBA{R: 200, G: 0, B: 0, A: 255}
)

// DamageTintAlpha 各受伤等级对应的持续红色叠加透明度（索引为 types.DamageLevel）
var DamageTintAlpha = [...]float32{0, 0.06, 0.14, 0.24}

// DamageFlashDuration 扣除生命时的闪烁时长（秒）
const DamageFlashDuration = 0.6

// ImageFadeDuration 切换节点图片时的淡入时长（秒）
const ImageFadeDuration = 0.35
