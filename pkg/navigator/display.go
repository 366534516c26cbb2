package navigator

import "github.com/decker502/storyplayer/pkg/types"

// OptionView 渲染到界面上的一个选项按钮
type OptionView struct {
	Label      string
	OnActivate func() // 玩家点击按钮时调用
}

// Display 导航器使用的显示端
// 导航器只调用这些方法，不关心具体如何绘制
type Display interface {
	// SetImage 设置当前剧情图片
	SetImage(ref string)
	// RenderOptions 替换当前所有选项按钮，nil 或空列表表示清空
	RenderOptions(options []OptionView)
	// SetLivesDisplay 刷新生命值显示
	SetLivesDisplay(lives int)
	// SetDamageLevel 刷新受伤指示器
	SetDamageLevel(level types.DamageLevel)
	// ShowStartView 显示开始界面（标题和正文），隐藏剧情界面
	ShowStartView(title, body string)
	// ShowGameView 显示剧情界面，隐藏开始界面
	ShowGameView()
}

// Narrator 旁白播放端（由 narration.Player 实现）
type Narrator interface {
	Reveal(text string, onComplete func())
	Cancel()
}

// CuePlayer 结果音效播放端
type CuePlayer interface {
	PlayCue(channel types.CueChannel, ref string) error
}
