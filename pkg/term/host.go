package term

import (
	"log"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/particlenet/pkg/field"
	"github.com/decker502/particlenet/pkg/systems"
)

// 滚动距离（虚拟像素）
const (
	// WheelStep 滚轮每格
	WheelStep = 3 * CellHeight
	// PageStep 翻页时相对视口高度的比例
	PageStep = 0.9
)

// Host 把 tcell 事件转换为粒子场信号
//
// 视口以虚拟像素计：cols*CellWidth × rows*CellHeight。
// 区块可见性由虚拟页面观察器计算，Update 在每帧调用。
type Host struct {
	width, height float64

	pointerCol, pointerRow int
	pointerKnown           bool

	observer *systems.SectionObserver

	resize  field.Signal[func(width, height float64)]
	pointer field.Signal[func(x, y float64)]
	scroll  field.Signal[func()]
}

// NewHost 创建终端宿主
func NewHost(cols, rows int, observer *systems.SectionObserver) *Host {
	h := &Host{
		width:    float64(cols * CellWidth),
		height:   float64(rows * CellHeight),
		observer: observer,
	}
	observer.SetViewport(h.height)
	return h
}

// Viewport 实现 field.Host
func (h *Host) Viewport() (float64, float64) {
	return h.width, h.height
}

// OnResize 实现 field.Host
func (h *Host) OnResize(fn func(width, height float64)) func() {
	return h.resize.Add(fn)
}

// OnPointerMove 实现 field.Host
func (h *Host) OnPointerMove(fn func(x, y float64)) func() {
	return h.pointer.Add(fn)
}

// OnScroll 实现 field.Host
func (h *Host) OnScroll(fn func()) func() {
	return h.scroll.Add(fn)
}

// ObserveSections 实现 field.Host
func (h *Host) ObserveSections(ids []string, threshold float64, fn func(id string, visible bool)) func() {
	return h.observer.Observe(ids, threshold, fn)
}

// Listeners 返回当前注册的监听器数量
func (h *Host) Listeners() int {
	return h.resize.Len() + h.pointer.Len() + h.scroll.Len() + h.observer.Observers()
}

// Observer 返回虚拟页面观察器
func (h *Host) Observer() *systems.SectionObserver {
	return h.observer
}

// Update 更新区块可见性，每帧调用一次
func (h *Host) Update() {
	h.observer.Update()
}

// HandleEvent 处理一个 tcell 事件，返回事件是否被消费
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		h.Resize(cols, rows)
		return true

	case *tcell.EventMouse:
		col, row := ev.Position()
		buttons := ev.Buttons()
		switch {
		case buttons&tcell.WheelUp != 0:
			h.ScrollBy(-WheelStep)
		case buttons&tcell.WheelDown != 0:
			h.ScrollBy(WheelStep)
		}
		h.movePointer(col, row)
		return true

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyPgDn:
			h.ScrollBy(h.height * PageStep)
		case tcell.KeyPgUp:
			h.ScrollBy(-h.height * PageStep)
		case tcell.KeyDown:
			h.ScrollBy(WheelStep)
		case tcell.KeyUp:
			h.ScrollBy(-WheelStep)
		case tcell.KeyHome:
			h.ScrollBy(math.Inf(-1))
		case tcell.KeyEnd:
			h.ScrollBy(math.Inf(1))
		case tcell.KeyRune:
			if ev.Rune() != ' ' {
				return false
			}
			h.ScrollBy(h.height * PageStep)
		default:
			return false
		}
		return true
	}
	return false
}

// Resize 按新的单元格数更新视口，尺寸未变化时不产生信号
func (h *Host) Resize(cols, rows int) {
	width, height := float64(cols*CellWidth), float64(rows*CellHeight)
	if width == h.width && height == h.height {
		return
	}
	h.width, h.height = width, height
	h.observer.SetViewport(height)
	log.Printf("[Term] Resized to %dx%d cells", cols, rows)
	h.resize.Each(func(fn func(width, height float64)) { fn(width, height) })
}

// movePointer 指针位于单元格中心，同一单元格内移动不产生信号
func (h *Host) movePointer(col, row int) {
	if h.pointerKnown && col == h.pointerCol && row == h.pointerRow {
		return
	}
	h.pointerCol, h.pointerRow = col, row
	h.pointerKnown = true

	x := float64(col*CellWidth) + CellWidth/2
	y := float64(row*CellHeight) + CellHeight/2
	h.pointer.Each(func(fn func(x, y float64)) { fn(x, y) })
}

// ScrollBy 滚动虚拟页面；位置未变化时不产生信号
func (h *Host) ScrollBy(dy float64) {
	if dy == 0 || !h.observer.ScrollBy(dy) {
		return
	}
	h.scroll.Each(func(fn func()) { fn() })
}
