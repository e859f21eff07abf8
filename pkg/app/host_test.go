package app

import (
	"testing"

	"github.com/decker502/particlenet/pkg/systems"
)

// newTestHost 两个 400px 区块，视口 400px
func newTestHost() *EbitenHost {
	observer := systems.NewSectionObserver([]systems.Section{
		{ID: "hero", Height: 400},
		{ID: "about", Height: 400},
	}, 400)
	return NewEbitenHost(800, 400, observer)
}

func TestHostResizeDispatchedOnce(t *testing.T) {
	h := newTestHost()

	var got [][2]float64
	h.OnResize(func(w, hh float64) { got = append(got, [2]float64{w, hh}) })

	// 尺寸未变化
	h.SetLayout(800, 400)
	h.Dispatch()
	if len(got) != 0 {
		t.Fatalf("unchanged layout dispatched resize: %v", got)
	}

	h.SetLayout(600, 300)
	h.Dispatch()
	h.Dispatch()
	if len(got) != 1 || got[0] != [2]float64{600, 300} {
		t.Fatalf("resize events: got %v, want [[600 300]]", got)
	}
	if w, hh := h.Viewport(); w != 600 || hh != 300 {
		t.Errorf("Viewport: got %vx%v, want 600x300", w, hh)
	}
}

func TestHostScrollMovesVirtualPage(t *testing.T) {
	h := newTestHost()

	scrolls := 0
	h.OnScroll(func() { scrolls++ })

	visible := map[string]bool{}
	h.ObserveSections([]string{"hero", "about"}, 0.3, func(id string, v bool) { visible[id] = v })

	h.Dispatch()
	if !visible["hero"] || visible["about"] {
		t.Fatalf("initial visibility: got %v, want hero only", visible)
	}

	h.ScrollBy(400)
	h.Dispatch()
	if scrolls != 1 {
		t.Errorf("scroll signals: got %d, want 1", scrolls)
	}
	if visible["hero"] || !visible["about"] {
		t.Errorf("after scroll: got %v, want about only", visible)
	}

	// 已到底部，不再产生滚动信号
	h.ScrollBy(100)
	if scrolls != 1 {
		t.Errorf("scroll past bottom should not signal, got %d", scrolls)
	}
}

func TestHostWithoutObserverAlwaysSignalsScroll(t *testing.T) {
	h := NewEbitenHost(800, 400, nil)

	scrolls := 0
	h.OnScroll(func() { scrolls++ })
	h.ScrollBy(50)
	h.ScrollBy(0)
	if scrolls != 1 {
		t.Errorf("scroll signals: got %d, want 1", scrolls)
	}
}

func TestHostQueuedEvents(t *testing.T) {
	h := NewEbitenHost(800, 400, nil)

	var pointer [2]float64
	scrolls := 0
	var sections []string
	h.OnPointerMove(func(x, y float64) { pointer = [2]float64{x, y} })
	h.OnScroll(func() { scrolls++ })
	h.ObserveSections([]string{"hero"}, 0.3, func(id string, v bool) {
		if v {
			sections = append(sections, id)
		}
	})

	h.QueuePointer(12, 34)
	h.QueueScroll()
	h.QueueSection("projects", true)

	// 投递的事件在 Dispatch 前不会分发
	if scrolls != 0 {
		t.Fatal("queued events dispatched before Dispatch")
	}

	h.Dispatch()
	if pointer != [2]float64{12, 34} {
		t.Errorf("pointer: got %v, want [12 34]", pointer)
	}
	if scrolls != 1 {
		t.Errorf("scrolls: got %d, want 1", scrolls)
	}
	if len(sections) != 1 || sections[0] != "projects" {
		t.Errorf("sections: got %v, want [projects]", sections)
	}
}

func TestHostQueueFullDropsEvents(t *testing.T) {
	h := NewEbitenHost(800, 400, nil)

	scrolls := 0
	h.OnScroll(func() { scrolls++ })
	for i := 0; i < eventQueueSize+10; i++ {
		h.QueueScroll()
	}
	h.Dispatch()
	if scrolls != eventQueueSize {
		t.Errorf("scrolls: got %d, want %d", scrolls, eventQueueSize)
	}
}

func TestHostObserveSectionsCancel(t *testing.T) {
	h := newTestHost()

	cancel := h.ObserveSections([]string{"hero"}, 0.3, func(string, bool) {})
	if h.Listeners() != 1 || h.Observer().Observers() != 1 {
		t.Fatalf("registrations: host %d, observer %d", h.Listeners(), h.Observer().Observers())
	}
	cancel()
	if h.Listeners() != 0 || h.Observer().Observers() != 0 {
		t.Errorf("after cancel: host %d, observer %d", h.Listeners(), h.Observer().Observers())
	}
}
