package components

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ButtonGroup 区分按钮所属的界面，场景切换时按组清理
type ButtonGroup int

const (
	// ButtonGroupOptions 剧情节点的选项按钮
	ButtonGroupOptions ButtonGroup = iota
	// ButtonGroupStart 开始界面的按钮
	ButtonGroupStart
)

// ButtonComponent 按钮组件（ECS 架构）
// 纯数据组件：文字、尺寸、状态、回调
// 按钮用纯色矩形绘制，文字居中
type ButtonComponent struct {
	// Group 按钮所属界面
	Group ButtonGroup

	// Text 按钮上显示的文字
	Text string
	// Font 文字字体
	Font *text.GoTextFace

	// Width, Height 按钮尺寸（像素）
	Width  float64
	Height float64

	// State 当前交互状态（Normal/Hover/Clicked/Disabled）
	State UIState
	// Enabled 是否启用（禁用时不响应点击）
	Enabled bool

	// OnClick 点击回调函数（指针释放时触发）
	OnClick func()
}
