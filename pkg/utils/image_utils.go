package utils

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// CoverFit 计算把 srcW×srcH 的图片"铺满"到 dstW×dstH 区域所需的缩放和偏移
// 等比缩放到刚好覆盖目标区域，超出部分居中裁掉
//
// 返回：
//   - scale: 缩放倍数
//   - offsetX, offsetY: 缩放后图片左上角相对目标区域左上角的偏移（≤ 0）
func CoverFit(srcW, srcH, dstW, dstH float64) (scale, offsetX, offsetY float64) {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return 1, 0, 0
	}

	scale = max(dstW/srcW, dstH/srcH)
	offsetX = (dstW - srcW*scale) / 2
	offsetY = (dstH - srcH*scale) / 2
	return scale, offsetX, offsetY
}

// DrawImageCover 把图片按 CoverFit 绘制到 screen 的 (x, y, w, h) 区域
// 超出区域的部分被裁剪
func DrawImageCover(screen, img *ebiten.Image, x, y, w, h float64, alpha float32) {
	if img == nil || w <= 0 || h <= 0 {
		return
	}

	bounds := img.Bounds()
	scale, ox, oy := CoverFit(float64(bounds.Dx()), float64(bounds.Dy()), w, h)

	// 绘制到目标区域对应的子图像上实现裁剪
	area := screen.SubImage(image.Rect(int(x), int(y), int(x+w), int(y+h))).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x+ox, y+oy)
	op.ColorScale.ScaleAlpha(alpha)
	op.Filter = ebiten.FilterLinear
	area.DrawImage(img, op)
}
