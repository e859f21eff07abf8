package term

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/particlenet/pkg/config"
	"github.com/decker502/particlenet/pkg/field"
	"github.com/decker502/particlenet/pkg/systems"
)

// FrameInterval 帧间隔（约 60 fps）
const FrameInterval = time.Second / 60

// ErrNoScreen Run 没有可用的屏幕
var ErrNoScreen = errors.New("term: screen is nil")

// Run 在已初始化的 screen 上运行粒子场，直到 ctx 取消或按下 Esc / Ctrl-C / q
//
// 快捷键：p 暂停/恢复，PgUp/PgDn/方向键/空格/Home/End 滚动虚拟页面。
// Run 不调用 screen.Fini()，由调用方负责；Fini 会让事件 goroutine 退出。
func Run(ctx context.Context, screen tcell.Screen, cfg *config.FieldConfig, opts ...field.Option) error {
	if screen == nil {
		return ErrNoScreen
	}
	if cfg == nil {
		cfg = config.DefaultFieldConfig()
	}

	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()

	cols, rows := screen.Size()
	observer := systems.NewSectionObserver(systems.SectionsFromConfig(cfg), 0)
	host := NewHost(cols, rows, observer)
	surface := NewSurface(cfg.Background)

	simulator := field.NewSimulator(host, surface, cfg, opts...)
	defer simulator.Dispose()

	// 事件 goroutine：PollEvent 阻塞，通过 channel 交给帧循环
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	log.Printf("[Term] Running on %dx%d cells", cols, rows)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[Term] Context done: %v", ctx.Err())
			return nil

		case ev := <-events:
			if isQuit(ev) {
				log.Printf("[Term] Quit requested")
				return nil
			}
			if isPauseToggle(ev) {
				if simulator.Running() {
					simulator.Stop()
				} else {
					simulator.Start()
				}
				continue
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
			host.HandleEvent(ev)

		case <-ticker.C:
			host.Update()
			simulator.Step()
			simulator.Render()
			surface.Flush(screen)
		}
	}
}

// isQuit Esc、Ctrl-C 或 q
func isQuit(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return key.Rune() == 'q'
	}
	return false
}

// isPauseToggle p
func isPauseToggle(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	return ok && key.Key() == tcell.KeyRune && key.Rune() == 'p'
}
