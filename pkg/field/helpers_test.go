package field

import (
	"image/color"
	"time"

	"github.com/decker502/particlenet/internal/paint"
)

// fakeHost 测试用 Host，记录注册的监听器并允许手动触发信号
type fakeHost struct {
	width, height float64

	resize   Signal[func(w, h float64)]
	pointer  Signal[func(x, y float64)]
	scroll   Signal[func()]
	sections Signal[func(id string, visible bool)]

	registrations   int
	observedIDs     []string
	observedAtRatio float64
}

func newFakeHost(width, height float64) *fakeHost {
	return &fakeHost{width: width, height: height}
}

func (h *fakeHost) Viewport() (float64, float64) {
	return h.width, h.height
}

func (h *fakeHost) OnResize(fn func(w, h float64)) func() {
	h.registrations++
	return h.resize.Add(fn)
}

func (h *fakeHost) OnPointerMove(fn func(x, y float64)) func() {
	h.registrations++
	return h.pointer.Add(fn)
}

func (h *fakeHost) OnScroll(fn func()) func() {
	h.registrations++
	return h.scroll.Add(fn)
}

func (h *fakeHost) ObserveSections(ids []string, threshold float64, fn func(id string, visible bool)) func() {
	h.registrations++
	h.observedIDs = ids
	h.observedAtRatio = threshold
	return h.sections.Add(fn)
}

func (h *fakeHost) active() int {
	return h.resize.Len() + h.pointer.Len() + h.scroll.Len() + h.sections.Len()
}

func (h *fakeHost) fireResize(width, height float64) {
	h.width, h.height = width, height
	h.resize.Each(func(fn func(w, h float64)) { fn(width, height) })
}

func (h *fakeHost) firePointer(x, y float64) {
	h.pointer.Each(func(fn func(x, y float64)) { fn(x, y) })
}

func (h *fakeHost) fireScroll() {
	h.scroll.Each(func(fn func()) { fn() })
}

func (h *fakeHost) fireSection(id string, visible bool) {
	h.sections.Each(func(fn func(id string, visible bool)) { fn(id, visible) })
}

type drawnCircle struct {
	x, y, r float64
	clr     paint.Color
}

type drawnLine struct {
	x1, y1, x2, y2, width float64
	clr                   paint.Color
}

// recordingSurface 记录所有绘制调用
type recordingSurface struct {
	width, height int
	sizes         int
	clears        int
	circles       []drawnCircle
	lines         []drawnLine
}

func (s *recordingSurface) SetSize(width, height int) {
	s.width, s.height = width, height
	s.sizes++
}

func (s *recordingSurface) Clear() {
	s.clears++
	s.circles = s.circles[:0]
	s.lines = s.lines[:0]
}

func (s *recordingSurface) FillCircle(x, y, r float64, clr color.Color) {
	s.circles = append(s.circles, drawnCircle{x: x, y: y, r: r, clr: clr.(paint.Color)})
}

func (s *recordingSurface) StrokeLine(x1, y1, x2, y2, width float64, clr color.Color) {
	s.lines = append(s.lines, drawnLine{x1: x1, y1: y1, x2: x2, y2: y2, width: width, clr: clr.(paint.Color)})
}

func (s *recordingSurface) drawCalls() int {
	return s.sizes + s.clears + len(s.circles) + len(s.lines)
}

// fakeClock 可手动推进的时钟
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
