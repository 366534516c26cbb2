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

// StoryScene 剧情界面
// 从上到下：节点图片、旁白文本框、选项按钮；右上角为红心，受伤时整屏泛红
type StoryScene struct {
	stage *Stage
}

// OnEnter 移除开始按钮
func (sc *StoryScene) OnEnter() {
	entities.DestroyButtons(sc.stage.entityManager, components.ButtonGroupStart)
}

// Update 推进图片淡入和受伤闪烁
func (sc *StoryScene) Update(deltaTime float64) {
	s := sc.stage
	s.imageAge += deltaTime
	if s.flashRemain > 0 {
		s.flashRemain = max(0, s.flashRemain-deltaTime)
	}
}

// Draw 绘制剧情界面
func (sc *StoryScene) Draw(screen *ebiten.Image) {
	sc.drawImage(screen)
	sc.drawNarration(screen)
	sc.stage.buttonRender.Draw(screen)
	sc.drawHearts(screen)
	sc.drawDamageOverlay(screen)
}

func (sc *StoryScene) drawImage(screen *ebiten.Image) {
	s := sc.stage
	if s.image == nil {
		vector.DrawFilledRect(screen, config.ImageAreaX, config.ImageAreaY,
			float32(config.ImageAreaWidth), float32(config.ImageAreaHeight), config.PlaceholderColor, false)
		return
	}

	alpha := utils.EaseOutCubic(utils.Clamp01(s.imageAge / config.ImageFadeDuration))
	utils.DrawImageCover(screen, s.image, config.ImageAreaX, config.ImageAreaY,
		config.ImageAreaWidth, config.ImageAreaHeight, float32(alpha))
}

func (sc *StoryScene) drawNarration(screen *ebiten.Image) {
	s := sc.stage
	vector.DrawFilledRect(screen, config.NarrationBoxX, config.NarrationBoxY,
		float32(config.NarrationBoxWidth), float32(config.NarrationBoxHeight), config.NarrationBoxColor, false)

	if s.cfg.BodyFont == nil {
		return
	}

	// 超出文本框的行只显示最后几行
	textHeight := config.NarrationBoxHeight - config.NarrationTextMargin*2
	maxLines := int(textHeight / config.NarrationLineHeight)
	lines := s.lines
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(config.NarrationBoxX+config.NarrationTextMargin,
			config.NarrationBoxY+config.NarrationTextMargin+float64(i)*config.NarrationLineHeight)
		op.ColorScale.ScaleWithColor(config.NarrationTextColor)
		text.Draw(screen, line, s.cfg.BodyFont, op)
	}
}

// drawHearts 从右向左绘制红心，已失去的生命显示为灰色
func (sc *StoryScene) drawHearts(screen *ebiten.Image) {
	s := sc.stage
	for i := 0; i < s.cfg.MaxLives; i++ {
		clr := config.HeartEmptyColor
		if i < s.lives {
			clr = config.HeartFullColor
		}
		cx := config.HeartsX - config.HeartRadius - float64(s.cfg.MaxLives-1-i)*config.HeartsSpacing
		drawHeart(screen, cx, config.HeartsY+config.HeartRadius, config.HeartRadius, clr)
	}
}

func (sc *StoryScene) drawDamageOverlay(screen *ebiten.Image) {
	s := sc.stage
	alpha := float32(0)
	if int(s.damage) < len(config.DamageTintAlpha) {
		alpha = config.DamageTintAlpha[s.damage]
	}
	if s.flashRemain > 0 {
		alpha += float32(utils.Lerp(0, 0.35, utils.EaseOutQuad(s.flashRemain/config.DamageFlashDuration)))
	}
	if alpha <= 0 {
		return
	}

	tint := config.DamageTintColor
	tint.A = uint8(255 * min(alpha, 1))
	// 预乘 alpha
	tint.R = uint8(float32(tint.R) * min(alpha, 1))
	tint.G = uint8(float32(tint.G) * min(alpha, 1))
	tint.B = uint8(float32(tint.B) * min(alpha, 1))
	vector.DrawFilledRect(screen, 0, 0, float32(config.GameWindowWidth), float32(config.GameWindowHeight), tint, false)
}
