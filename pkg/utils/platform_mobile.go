//go:build mobile

package utils

// IsMobile 移动端构建（-tags mobile）始终返回 true
// 移动端没有窗口，F11 全屏切换被跳过
func IsMobile() bool {
	return true
}
