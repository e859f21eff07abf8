// Package render 提供基于 Ebitengine 的绘制面实现
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface 实现 field.Surface，绘制到每帧绑定的 *ebiten.Image 上
//
// ebiten 的屏幕图像只在 Draw 回调中有效，因此每帧调用 Bind 绑定；
// 未绑定时所有绘制操作为空操作。
type EbitenSurface struct {
	target        *ebiten.Image
	width, height int

	// Background 清屏颜色，nil 或完全透明时清为透明
	Background color.Color
	// AntiAlias 是否开启抗锯齿
	AntiAlias bool
}

// NewEbitenSurface 创建绘制面
func NewEbitenSurface(background color.Color) *EbitenSurface {
	return &EbitenSurface{
		Background: background,
		AntiAlias:  true,
	}
}

// Bind 绑定当前帧的目标图像
func (s *EbitenSurface) Bind(target *ebiten.Image) {
	s.target = target
}

// Bound 是否已绑定目标图像
func (s *EbitenSurface) Bound() bool {
	return s.target != nil
}

// SetSize 记录逻辑尺寸；屏幕图像本身的尺寸由 Layout 决定
func (s *EbitenSurface) SetSize(width, height int) {
	s.width, s.height = width, height
}

// Size 返回最近一次 SetSize 的尺寸
func (s *EbitenSurface) Size() (width, height int) {
	return s.width, s.height
}

// Clear 清屏
func (s *EbitenSurface) Clear() {
	if s.target == nil {
		return
	}
	if s.Background == nil {
		s.target.Clear()
		return
	}
	if _, _, _, a := s.Background.RGBA(); a == 0 {
		s.target.Clear()
		return
	}
	s.target.Fill(s.Background)
}

// FillCircle 绘制实心圆
func (s *EbitenSurface) FillCircle(x, y, radius float64, clr color.Color) {
	if s.target == nil {
		return
	}
	vector.DrawFilledCircle(s.target, float32(x), float32(y), float32(radius), clr, s.AntiAlias)
}

// StrokeLine 绘制线段
func (s *EbitenSurface) StrokeLine(x1, y1, x2, y2, width float64, clr color.Color) {
	if s.target == nil {
		return
	}
	vector.StrokeLine(s.target, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), clr, s.AntiAlias)
}
