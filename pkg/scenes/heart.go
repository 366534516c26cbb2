package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawHeart 用两个圆和一个倒三角拼出红心，(cx, cy) 为中心，r 为半宽
// 倒三角用逐行收窄的矩形条绘制
func drawHeart(screen *ebiten.Image, cx, cy, r float64, clr color.Color) {
	lobe := float32(r * 0.55)
	x, y := float32(cx), float32(cy)
	vector.DrawFilledCircle(screen, x-lobe*0.8, y-lobe*0.4, lobe, clr, true)
	vector.DrawFilledCircle(screen, x+lobe*0.8, y-lobe*0.4, lobe, clr, true)

	top := y - lobe*0.4
	height := float32(r) + lobe*0.4
	halfWidth := float32(r) * 0.95
	const strip = 1.0
	for dy := float32(0); dy < height; dy += strip {
		w := halfWidth * (1 - dy/height)
		vector.DrawFilledRect(screen, x-w, top+dy, w*2, strip, clr, true)
	}
}
