package entities

import (
	"github.com/decker502/storyplayer/pkg/components"
	"github.com/decker502/storyplayer/pkg/config"
	"github.com/decker502/storyplayer/pkg/ecs"
	"github.com/decker502/storyplayer/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// NewOptionButton 创建剧情选项按钮实体
// 宽度由文字宽度决定（见 config.OptionButtonWidth），高度固定
//
// 参数：
//   - em: 实体管理器
//   - font: 文字字体
//   - x, y: 按钮位置（屏幕坐标）
//   - label: 按钮文字
//   - onClick: 点击回调函数
func NewOptionButton(em *ecs.EntityManager, font *text.GoTextFace, x, y float64, label string, onClick func()) ecs.EntityID {
	return newButton(em, &components.ButtonComponent{
		Group:   components.ButtonGroupOptions,
		Text:    label,
		Font:    font,
		Width:   OptionButtonWidth(font, label),
		Height:  config.OptionButtonHeight,
		State:   components.UINormal,
		Enabled: true,
		OnClick: onClick,
	}, x, y)
}

// NewStartButton 创建开始界面按钮实体（水平居中）
func NewStartButton(em *ecs.EntityManager, font *text.GoTextFace, label string, onClick func()) ecs.EntityID {
	x := (float64(config.GameWindowWidth) - config.StartButtonW) / 2
	return newButton(em, &components.ButtonComponent{
		Group:   components.ButtonGroupStart,
		Text:    label,
		Font:    font,
		Width:   config.StartButtonW,
		Height:  config.StartButtonH,
		State:   components.UINormal,
		Enabled: true,
		OnClick: onClick,
	}, x, config.StartButtonY)
}

// OptionButtonWidth 计算选项按钮宽度
func OptionButtonWidth(font *text.GoTextFace, label string) float64 {
	return config.OptionButtonWidth(utils.MeasureTextWidth(label, font))
}

// DestroyButtons 标记指定组的所有按钮待删除
// 实体在下一次 RemoveMarkedEntities 时真正删除，调用方应立即清理以免被渲染
func DestroyButtons(em *ecs.EntityManager, group components.ButtonGroup) int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.ButtonComponent](em) {
		button, _ := ecs.GetComponent[*components.ButtonComponent](em, id)
		if button.Group == group {
			em.DestroyEntity(id)
			count++
		}
	}
	em.RemoveMarkedEntities()
	return count
}

func newButton(em *ecs.EntityManager, button *components.ButtonComponent, x, y float64) ecs.EntityID {
	entity := em.CreateEntity()
	ecs.AddComponent(em, entity, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, entity, button)
	return entity
}
