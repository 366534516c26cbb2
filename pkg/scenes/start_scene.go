package scenes

import (
	"github.com/decker502/storyplayer/pkg/components"
	"github.com/decker502/storyplayer/pkg/config"
	"github.com/decker502/storyplayer/pkg/entities"
	"github.com/decker502/storyplayer/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// StartScene 开始界面（首次启动和游戏结束后）
// 背景图 + 暗化层 + 标题 + 正文 + 开始按钮
type StartScene struct {
	stage *Stage
}

// OnEnter 重建开始按钮，并移除剧情界面的选项按钮
func (sc *StartScene) OnEnter() {
	s := sc.stage
	entities.DestroyButtons(s.entityManager, components.ButtonGroupOptions)
	entities.DestroyButtons(s.entityManager, components.ButtonGroupStart)
	label := s.cfg.StartLabel
	if s.played && s.cfg.RetryLabel != "" {
		label = s.cfg.RetryLabel
	}
	entities.NewStartButton(s.entityManager, s.cfg.ButtonFont, label, func() {
		if s.cfg.OnStart != nil {
			s.cfg.OnStart()
		}
	})
}

// Update 开始界面没有动画
func (sc *StartScene) Update(deltaTime float64) {}

// Draw 绘制开始界面
func (sc *StartScene) Draw(screen *ebiten.Image) {
	s := sc.stage
	w, h := float64(config.GameWindowWidth), float64(config.GameWindowHeight)

	if s.backdrop != nil {
		utils.DrawImageCover(screen, s.backdrop, 0, 0, w, h, 1)
	}
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), config.StartOverlayColor, false)

	if s.cfg.TitleFont != nil && s.startTitle != "" {
		op := &text.DrawOptions{}
		op.GeoM.Translate(w/2, config.StartTitleY)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		op.ColorScale.ScaleWithColor(config.TitleTextColor)
		text.Draw(screen, s.startTitle, s.cfg.TitleFont, op)
	}

	if s.cfg.BodyFont != nil && s.startBody != "" {
		lines := utils.WrapText(s.startBody, s.cfg.BodyFont, config.StartBodyWidth)
		for i, line := range lines {
			op := &text.DrawOptions{}
			op.GeoM.Translate(w/2, config.StartBodyY+float64(i)*config.StartBodyLineH)
			op.PrimaryAlign = text.AlignCenter
			op.ColorScale.ScaleWithColor(config.NarrationTextColor)
			text.Draw(screen, line, s.cfg.BodyFont, op)
		}
	}

	s.buttonRender.Draw(screen)
}
