package app

import (
	"log"

	"github.com/decker502/particlenet/pkg/field"
	"github.com/decker502/particlenet/pkg/systems"
	"github.com/decker502/particlenet/pkg/utils"
)

// queuedEventKind 外部（浏览器桥接）事件类型
type queuedEventKind int

const (
	queuedScroll queuedEventKind = iota
	queuedPointer
	queuedSection
)

// queuedEvent 从其他 goroutine 投递、在帧 goroutine 中分发的事件
type queuedEvent struct {
	kind    queuedEventKind
	x, y    float64
	id      string
	visible bool
}

// eventQueueSize 事件队列容量，队列满时丢弃新事件
const eventQueueSize = 64

// EbitenHost 在 Ebitengine 游戏循环中实现 field.Host
//
// 所有回调都在 Update 所在的 goroutine 中分发：
//   - Layout 记录窗口尺寸，下一次 Dispatch 时触发 resize
//   - 指针、滚轮和翻页键由 Poll 读取
//   - 浏览器桥接的事件先进入队列，由 Dispatch 取出
//
// observer 为 nil 时（浏览器中，页面自己的 IntersectionObserver 负责区块可见性）
// 只分发桥接投递的区块事件。
type EbitenHost struct {
	width, height float64

	pendingWidth, pendingHeight float64
	resizePending               bool

	tracker     utils.PointerTracker
	pointerSeen bool

	observer *systems.SectionObserver
	events   chan queuedEvent

	resize   field.Signal[func(width, height float64)]
	pointer  field.Signal[func(x, y float64)]
	scroll   field.Signal[func()]
	sections field.Signal[func(id string, visible bool)]
}

// NewEbitenHost 创建宿主
//
// 参数:
//   - width, height: 初始视口尺寸
//   - observer: 虚拟页面的区块观察器，可为 nil
func NewEbitenHost(width, height float64, observer *systems.SectionObserver) *EbitenHost {
	if observer != nil {
		observer.SetViewport(height)
	}
	return &EbitenHost{
		width:    width,
		height:   height,
		observer: observer,
		events:   make(chan queuedEvent, eventQueueSize),
	}
}

// Viewport 实现 field.Host
func (h *EbitenHost) Viewport() (float64, float64) {
	return h.width, h.height
}

// OnResize 实现 field.Host
func (h *EbitenHost) OnResize(fn func(width, height float64)) func() {
	return h.resize.Add(fn)
}

// OnPointerMove 实现 field.Host
func (h *EbitenHost) OnPointerMove(fn func(x, y float64)) func() {
	return h.pointer.Add(fn)
}

// OnScroll 实现 field.Host
func (h *EbitenHost) OnScroll(fn func()) func() {
	return h.scroll.Add(fn)
}

// ObserveSections 实现 field.Host
//
// 回调同时接收虚拟页面观察器和浏览器桥接的区块事件。
func (h *EbitenHost) ObserveSections(ids []string, threshold float64, fn func(id string, visible bool)) func() {
	cancels := []func(){h.sections.Add(fn)}
	if h.observer != nil {
		cancels = append(cancels, h.observer.Observe(ids, threshold, fn))
	}
	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}

// Listeners 返回当前注册的监听器数量
func (h *EbitenHost) Listeners() int {
	return h.resize.Len() + h.pointer.Len() + h.scroll.Len() + h.sections.Len()
}

// Observer 返回虚拟页面观察器（可能为 nil）
func (h *EbitenHost) Observer() *systems.SectionObserver {
	return h.observer
}

// SetLayout 记录 Layout 回调报告的窗口尺寸
func (h *EbitenHost) SetLayout(width, height int) {
	w, hh := float64(width), float64(height)
	if w == h.width && hh == h.height {
		h.resizePending = false
		return
	}
	h.pendingWidth, h.pendingHeight = w, hh
	h.resizePending = true
}

// MovePointer 分发指针移动
func (h *EbitenHost) MovePointer(x, y float64) {
	h.pointer.Each(func(fn func(x, y float64)) { fn(x, y) })
}

// ScrollBy 滚动虚拟页面并分发滚动信号
//
// 有观察器时，滚动位置未变化（已到顶部/底部）不产生信号。
func (h *EbitenHost) ScrollBy(dy float64) {
	if dy == 0 {
		return
	}
	if h.observer != nil && !h.observer.ScrollBy(dy) {
		return
	}
	h.scroll.Each(func(fn func()) { fn() })
}

// Poll 读取本帧的输入并分发所有信号，在 Update 中每帧调用一次
func (h *EbitenHost) Poll() {
	// 第一次读取只记录位置：窗口刚打开时光标位置不代表用户移动
	if x, y, moved := h.tracker.Poll(); moved {
		if h.pointerSeen {
			h.MovePointer(float64(x), float64(y))
		}
		h.pointerSeen = true
	}

	h.ScrollBy(utils.GetScrollDelta(h.height))
	h.Dispatch()
}

// Dispatch 应用待处理的 resize、取出队列中的事件并更新区块观察器
func (h *EbitenHost) Dispatch() {
	if h.resizePending {
		h.resizePending = false
		h.width, h.height = h.pendingWidth, h.pendingHeight
		if h.observer != nil {
			h.observer.SetViewport(h.height)
		}
		log.Printf("[Host] Viewport resized to %.0fx%.0f", h.width, h.height)
		width, height := h.width, h.height
		h.resize.Each(func(fn func(width, height float64)) { fn(width, height) })
	}

	h.drain()

	if h.observer != nil {
		h.observer.Update()
	}
}

// drain 非阻塞地取出队列中的全部事件
func (h *EbitenHost) drain() {
	for {
		select {
		case ev := <-h.events:
			switch ev.kind {
			case queuedScroll:
				h.scroll.Each(func(fn func()) { fn() })
			case queuedPointer:
				h.MovePointer(ev.x, ev.y)
			case queuedSection:
				h.sections.Each(func(fn func(id string, visible bool)) { fn(ev.id, ev.visible) })
			}
		default:
			return
		}
	}
}

// enqueue 投递事件，队列满时丢弃
func (h *EbitenHost) enqueue(ev queuedEvent) {
	select {
	case h.events <- ev:
	default:
		log.Printf("[Host] Event queue full, dropping event %d", ev.kind)
	}
}

// QueueScroll 从任意 goroutine 投递一次滚动信号
func (h *EbitenHost) QueueScroll() {
	h.enqueue(queuedEvent{kind: queuedScroll})
}

// QueuePointer 从任意 goroutine 投递指针位置
func (h *EbitenHost) QueuePointer(x, y float64) {
	h.enqueue(queuedEvent{kind: queuedPointer, x: x, y: y})
}

// QueueSection 从任意 goroutine 投递区块可见性变化
func (h *EbitenHost) QueueSection(id string, visible bool) {
	h.enqueue(queuedEvent{kind: queuedSection, id: id, visible: visible})
}
