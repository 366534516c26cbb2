package systems

import (
	"image/color"

	"github.com/decker502/storyplayer/pkg/components"
	"github.com/decker502/storyplayer/pkg/config"
	"github.com/decker502/storyplayer/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ButtonRenderSystem 按钮渲染系统
// 按钮用纯色矩形加边框绘制，文字居中
type ButtonRenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewButtonRenderSystem 创建按钮渲染系统
func NewButtonRenderSystem(em *ecs.EntityManager) *ButtonRenderSystem {
	return &ButtonRenderSystem{
		entityManager: em,
	}
}

// Draw 按创建顺序渲染所有按钮
func (s *ButtonRenderSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
		s.drawButton(screen, button, pos.X, pos.Y)
	}
}

func (s *ButtonRenderSystem) drawButton(screen *ebiten.Image, button *components.ButtonComponent, x, y float64) {
	fx, fy := float32(x), float32(y)
	fw, fh := float32(button.Width), float32(button.Height)

	vector.DrawFilledRect(screen, fx, fy, fw, fh, buttonFillColor(button.State), true)
	vector.StrokeRect(screen, fx, fy, fw, fh, 1.5, config.ButtonBorderColor, true)

	if button.Font == nil || button.Text == "" {
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x+button.Width/2, y+button.Height/2)
	op.PrimaryAlign = text.AlignCenter   // 水平居中
	op.SecondaryAlign = text.AlignCenter // 垂直居中
	op.ColorScale.ScaleWithColor(config.ButtonTextColor)
	if button.State == components.UIDisabled {
		op.ColorScale.ScaleAlpha(0.5)
	}
	text.Draw(screen, button.Text, button.Font, op)
}

// buttonFillColor 按交互状态选择填充色
func buttonFillColor(state components.UIState) color.Color {
	switch state {
	case components.UIHovered:
		return config.ButtonHoverColor
	case components.UIClicked:
		return config.ButtonPressedColor
	case components.UIDisabled:
		return config.ButtonDisabledColor
	default:
		return config.ButtonNormalColor
	}
}
