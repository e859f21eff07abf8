package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/particlenet/pkg/config"
	"github.com/decker502/particlenet/pkg/field"
	"github.com/decker502/particlenet/pkg/systems"
)

// newTestHost 10 × 5 单元格（80 × 80 虚拟像素），页面两个 80px 区块
func newTestHost() *Host {
	observer := systems.NewSectionObserver([]systems.Section{
		{ID: "hero", Height: 80},
		{ID: "about", Height: 80},
	}, 0)
	return NewHost(10, 5, observer)
}

func TestHostViewport(t *testing.T) {
	h := newTestHost()
	if w, hh := h.Viewport(); w != 80 || hh != 80 {
		t.Errorf("Viewport: got %vx%v, want 80x80", w, hh)
	}
}

func TestHostResizeEvent(t *testing.T) {
	h := newTestHost()

	var got [][2]float64
	h.OnResize(func(w, hh float64) { got = append(got, [2]float64{w, hh}) })

	h.HandleEvent(tcell.NewEventResize(10, 5)) // 未变化
	h.HandleEvent(tcell.NewEventResize(20, 10))

	if len(got) != 1 || got[0] != [2]float64{160, 160} {
		t.Errorf("resize events: got %v, want [[160 160]]", got)
	}
}

func TestHostPointerEvent(t *testing.T) {
	h := newTestHost()

	var moves [][2]float64
	h.OnPointerMove(func(x, y float64) { moves = append(moves, [2]float64{x, y}) })

	h.HandleEvent(tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone))
	h.HandleEvent(tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone))
	h.HandleEvent(tcell.NewEventMouse(4, 2, tcell.ButtonNone, tcell.ModNone))

	want := [][2]float64{{28, 40}, {36, 40}}
	if len(moves) != len(want) {
		t.Fatalf("pointer moves: got %v, want %v", moves, want)
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("move %d: got %v, want %v", i, moves[i], want[i])
		}
	}
}

func TestHostScrollEvents(t *testing.T) {
	tests := []struct {
		name   string
		event  tcell.Event
		scroll bool
		offset float64
	}{
		{"wheel down", tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone), true, WheelStep},
		{"wheel up at top", tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone), false, 0},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), true, 72},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), true, 72},
		{"end", tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone), true, 80},
		{"home at top", tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHost()
			scrolls := 0
			h.OnScroll(func() { scrolls++ })

			if !h.HandleEvent(tt.event) {
				t.Fatal("event should be handled")
			}
			if (scrolls == 1) != tt.scroll {
				t.Errorf("scroll signals: got %d, want signal=%v", scrolls, tt.scroll)
			}
			if got := h.Observer().Offset(); got != tt.offset {
				t.Errorf("offset: got %v, want %v", got, tt.offset)
			}
		})
	}
}

func TestHostIgnoresOtherKeys(t *testing.T) {
	h := newTestHost()
	if h.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Error("'x' should not be handled")
	}
	if h.HandleEvent(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)) {
		t.Error("Tab should not be handled")
	}
}

func TestHostSectionsAfterScroll(t *testing.T) {
	h := newTestHost()

	visible := map[string]bool{}
	cancel := h.ObserveSections([]string{"hero", "about"}, 0.3, func(id string, v bool) { visible[id] = v })

	h.Update()
	if !visible["hero"] || visible["about"] {
		t.Fatalf("initial: got %v, want hero only", visible)
	}

	h.ScrollBy(80)
	h.Update()
	if visible["hero"] || !visible["about"] {
		t.Errorf("after scroll: got %v, want about only", visible)
	}

	cancel()
	if h.Listeners() != 0 {
		t.Errorf("listeners after cancel: got %d", h.Listeners())
	}
}

// 配置中的区块不写 height 时也应能滚动到并切换主题
func TestHostSectionThemeWithDefaultHeights(t *testing.T) {
	cfg, err := config.ParseFieldConfig([]byte(`
themes:
  violet:
    particleColor: "rgba(180, 120, 255, 0.6)"
    linkColor: "rgba(180, 120, 255, 0.2)"
    speed: 0.3
sections:
  - id: hero
    theme: cyan
  - id: contact
    theme: violet
`))
	if err != nil {
		t.Fatalf("ParseFieldConfig() error: %v", err)
	}

	observer := systems.NewSectionObserver(systems.SectionsFromConfig(cfg), 0)
	h := NewHost(80, 40, observer)
	sim := field.NewSimulator(h, NewSurface(cfg.Background), cfg, field.WithSeed(1))
	defer sim.Dispose()

	for i := 0; i < 5; i++ {
		h.HandleEvent(tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone))
	}
	h.Update()

	got := sim.Settings()
	if got.ParticleColor.R != 180 || got.Speed != 0.3 {
		t.Errorf("settings after scrolling to contact: got %+v, want violet theme", got)
	}
}
