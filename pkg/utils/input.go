// Package utils 提供通用工具函数
package utils

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerTracker 跟踪指针（鼠标或触摸）位置，只在位置变化时报告
type PointerTracker struct {
	x, y  int
	known bool
}

// GetPointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func GetPointerPosition() (int, int) {
	// 检查触摸
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}

	// 返回鼠标位置
	return ebiten.CursorPosition()
}

// Poll 读取当前帧的指针位置
// 返回位置以及与上一帧相比是否移动过
func (t *PointerTracker) Poll() (x, y int, moved bool) {
	x, y = GetPointerPosition()
	return x, y, t.Observe(x, y)
}

// Observe 记录指针位置，返回是否与上次记录不同（首次记录视为移动）
func (t *PointerTracker) Observe(x, y int) bool {
	if t.known && t.x == x && t.y == y {
		return false
	}
	t.x, t.y = x, y
	t.known = true
	return true
}

// Position 返回最后记录的位置；从未记录时 ok 为 false
func (t *PointerTracker) Position() (x, y int, ok bool) {
	return t.x, t.y, t.known
}

// ScrollStep 键盘翻页时的滚动距离比例（相对于视口高度）
const ScrollStep = 0.9

// WheelLineHeight 滚轮每格对应的像素
const WheelLineHeight = 60.0

// GetScrollDelta 获取当前帧的纵向滚动量（像素，向下为正）
//
// 来源：鼠标滚轮、PageUp/PageDown、方向键、Home/End。
// Home/End 返回 ±Inf 以表示滚动到页面顶部/底部。
func GetScrollDelta(viewportHeight float64) float64 {
	_, wheelY := ebiten.Wheel()
	delta := -wheelY * WheelLineHeight

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		delta += viewportHeight * ScrollStep
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		delta -= viewportHeight * ScrollStep
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		delta += WheelLineHeight
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		delta -= WheelLineHeight
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		return math.Inf(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		return math.Inf(1)
	}

	return delta
}
