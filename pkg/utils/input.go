// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState 存储当前帧的指针输入状态
// 统一处理鼠标和触摸输入
type InputState struct {
	// X, Y 指针位置（触摸优先）
	X, Y int
	// Pressed 指针是否按住
	Pressed bool
	// JustReleased 指针是否在本帧刚释放（点击在释放时触发）
	JustReleased bool
	// JustPressed 指针是否在本帧刚按下
	JustPressed bool
	// IsTouching 是否为触摸输入
	IsTouching bool
}

// 保存最后一次触摸位置（触摸释放后 TouchPosition 不再可用）
var lastTouchX, lastTouchY int

// GetInputState 获取当前帧的输入状态
// 同时支持鼠标点击和触摸输入，优先检测触摸
// 每帧只应调用一次
func GetInputState() InputState {
	state := InputState{}

	// 触摸按下/按住
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		lastTouchX, lastTouchY = state.X, state.Y
		state.Pressed = true
		state.JustPressed = len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
		state.IsTouching = true
		return state
	}

	// 触摸刚释放：使用最后记录的位置
	if released := inpututil.AppendJustReleasedTouchIDs(nil); len(released) > 0 {
		state.X, state.Y = lastTouchX, lastTouchY
		state.JustReleased = true
		state.IsTouching = true
		return state
	}

	// 鼠标输入（桌面设备）
	state.X, state.Y = ebiten.CursorPosition()
	state.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	state.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	state.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	return state
}

// PointInRect 检测点是否在矩形内（包含边界）
func PointInRect(px, py, x, y, w, h float64) bool {
	return px >= x && px <= x+w && py >= y && py <= y+h
}
