// Package term 在终端中绘制粒子场
//
// 每个字符单元显示上下两个像素（'▀'，前景色为上半像素，背景色为下半像素）。
// 粒子场的坐标使用虚拟像素：一个字符单元为 CellWidth × CellHeight 虚拟像素，
// 因此 150px 的连线半径在终端中与浏览器中的比例大致相同。
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/particlenet/internal/paint"
)

// 单元格与虚拟像素的换算
const (
	// CellWidth 一个字符单元的宽度（虚拟像素）
	CellWidth = 8
	// CellHeight 一个字符单元的高度（虚拟像素），终端字符大约是 1:2
	CellHeight = 16
	// PixelSize 一个终端像素（半个单元）的边长（虚拟像素）
	PixelSize = CellHeight / 2
)

// upperHalfBlock 上半块字符
const upperHalfBlock = '▀'

// Surface 实现 field.Surface，把圆和线段光栅化到终端像素缓冲
//
// 所有绘制都用 alpha 混合叠加到不透明的像素上，Flush 把缓冲写入 tcell.Screen。
type Surface struct {
	// Background 清屏颜色（按不透明处理）
	Background paint.Color

	cols, rows int
	pixels     []paint.Color // cols × rows*2，行优先
}

// NewSurface 创建终端绘制面
func NewSurface(background paint.Color) *Surface {
	background.A = 1
	return &Surface{Background: background}
}

// SetSize 按虚拟像素尺寸分配像素缓冲
func (s *Surface) SetSize(width, height int) {
	cols := ceilDiv(width, CellWidth)
	rows := ceilDiv(height, CellHeight)
	if cols == s.cols && rows == s.rows && s.pixels != nil {
		return
	}
	s.cols, s.rows = cols, rows
	s.pixels = make([]paint.Color, cols*rows*2)
	s.Clear()
}

// Cells 返回字符单元的列数和行数
func (s *Surface) Cells() (cols, rows int) {
	return s.cols, s.rows
}

// Clear 用背景色填充所有像素
func (s *Surface) Clear() {
	for i := range s.pixels {
		s.pixels[i] = s.Background
	}
}

// Pixel 返回终端像素 (px, py) 的颜色，越界返回背景色
func (s *Surface) Pixel(px, py int) paint.Color {
	if px < 0 || py < 0 || px >= s.cols || py >= s.rows*2 {
		return s.Background
	}
	return s.pixels[py*s.cols+px]
}

// blend 把 clr 叠加到终端像素 (px, py) 上
func (s *Surface) blend(px, py int, clr paint.Color) {
	if px < 0 || py < 0 || px >= s.cols || py >= s.rows*2 {
		return
	}
	i := py*s.cols + px
	s.pixels[i] = clr.Over(s.pixels[i])
}

// FillCircle 绘制实心圆；小于一个像素的圆至少占据圆心所在像素
func (s *Surface) FillCircle(x, y, radius float64, clr color.Color) {
	c := toPaint(clr)
	if c.A <= 0 {
		return
	}

	cx, cy := x/PixelSize, y/PixelSize
	r := radius / PixelSize
	centerX, centerY := int(math.Floor(cx)), int(math.Floor(cy))

	if r < 1 {
		s.blend(centerX, centerY, c)
		return
	}

	minX, maxX := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	minY, maxY := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			dx := float64(px) + 0.5 - cx
			dy := float64(py) + 0.5 - cy
			if dx*dx+dy*dy <= r*r {
				s.blend(px, py, c)
			}
		}
	}
}

// StrokeLine 用 DDA 绘制一个像素宽的线段（width 在终端分辨率下忽略）
func (s *Surface) StrokeLine(x1, y1, x2, y2, width float64, clr color.Color) {
	c := toPaint(clr)
	if c.A <= 0 {
		return
	}

	ax, ay := x1/PixelSize, y1/PixelSize
	bx, by := x2/PixelSize, y2/PixelSize
	steps := int(math.Ceil(math.Max(math.Abs(bx-ax), math.Abs(by-ay))))
	if steps == 0 {
		s.blend(int(math.Floor(ax)), int(math.Floor(ay)), c)
		return
	}

	dx := (bx - ax) / float64(steps)
	dy := (by - ay) / float64(steps)
	for i := 0; i <= steps; i++ {
		px := int(math.Floor(ax + dx*float64(i)))
		py := int(math.Floor(ay + dy*float64(i)))
		s.blend(px, py, c)
	}
}

// Flush 把像素缓冲写入屏幕并显示
func (s *Surface) Flush(screen tcell.Screen) {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			top := s.pixels[(row*2)*s.cols+col]
			bottom := s.pixels[(row*2+1)*s.cols+col]
			style := tcell.StyleDefault.
				Foreground(cellColor(top)).
				Background(cellColor(bottom))
			screen.SetContent(col, row, upperHalfBlock, nil, style)
		}
	}
	screen.Show()
}

// cellColor 转换为 tcell 真彩色
func cellColor(c paint.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// toPaint 把任意 color.Color 转换为非预乘的 paint.Color
func toPaint(clr color.Color) paint.Color {
	if c, ok := clr.(paint.Color); ok {
		return c
	}
	r, g, b, a := clr.RGBA()
	if a == 0 {
		return paint.Color{}
	}
	return paint.Color{
		R: uint8(r * 0xff / a),
		G: uint8(g * 0xff / a),
		B: uint8(b * 0xff / a),
		A: float64(a) / 0xffff,
	}
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
