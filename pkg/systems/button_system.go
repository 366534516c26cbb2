package systems

import (
	"github.com/decker502/storyplayer/pkg/components"
	"github.com/decker502/storyplayer/pkg/ecs"
	"github.com/decker502/storyplayer/pkg/utils"
)

// ButtonSystem 按钮交互系统
// 负责处理按钮的悬停、按下、点击
//
// 职责：
//   - 检测指针悬停（更新按钮状态为 UIHovered）
//   - 检测指针释放（触发 OnClick 回调）
//   - 根据 Enabled 状态决定是否响应交互
//
// 每帧最多触发一个按钮：回调可能销毁并重建按钮（例如跳转到下一个剧情节点）
type ButtonSystem struct {
	entityManager *ecs.EntityManager
}

// NewButtonSystem 创建按钮交互系统
func NewButtonSystem(em *ecs.EntityManager) *ButtonSystem {
	return &ButtonSystem{
		entityManager: em,
	}
}

// Update 根据本帧输入更新按钮状态并触发回调
// 返回本帧是否有按钮被点击（调用方据此忽略同一次点击的其他处理）
func (s *ButtonSystem) Update(input utils.InputState) bool {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	var clicked *components.ButtonComponent
	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		// 禁用状态不响应交互
		if !button.Enabled {
			button.State = components.UIDisabled
			continue
		}

		isHovered := clicked == nil &&
			utils.PointInRect(float64(input.X), float64(input.Y), pos.X, pos.Y, button.Width, button.Height)

		switch {
		case !isHovered:
			button.State = components.UINormal
		case input.Pressed:
			button.State = components.UIClicked
		case input.JustReleased:
			button.State = components.UIHovered
			clicked = button
		default:
			button.State = components.UIHovered
		}
	}

	// 遍历结束后再执行回调，回调中增删按钮不影响本帧的状态更新
	if clicked != nil && clicked.OnClick != nil {
		clicked.OnClick()
	}
	return clicked != nil
}

// HoveredAny 指针是否悬停在任何可用按钮上（用于切换光标形状）
func (s *ButtonSystem) HoveredAny() bool {
	for _, entityID := range ecs.GetEntitiesWith1[*components.ButtonComponent](s.entityManager) {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		if button.Enabled && (button.State == components.UIHovered || button.State == components.UIClicked) {
			return true
		}
	}
	return false
}
