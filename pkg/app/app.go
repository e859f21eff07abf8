// Package app 提供粒子背景应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端、浏览器和移动端共用。
// 桌面端和浏览器通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/particlenet/pkg/config"
	"github.com/decker502/particlenet/pkg/field"
	"github.com/decker502/particlenet/pkg/game"
	"github.com/decker502/particlenet/pkg/render"
	"github.com/decker502/particlenet/pkg/systems"
)

// 默认窗口尺寸
const (
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 800
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Field 粒子场配置，nil 使用默认配置
	Field *config.FieldConfig
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// Settings 查看器偏好，nil 时使用内存中的默认设置
	Settings *game.SettingsManager
	// WindowWidth, WindowHeight 初始视口尺寸，0 使用默认值
	WindowWidth  int
	WindowHeight int
}

// App 是粒子背景应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	host      *EbitenHost
	surface   *render.EbitenSurface
	simulator *field.Simulator
	settings  *game.SettingsManager

	windowWidth, windowHeight int
	pendingWindowSizeReset    bool // 延迟设置窗口大小标志
	windowSizeResetCountdown  int  // 延迟帧数

	sectionThreshold float64

	releaseBridge func()
	stopped       bool
	verbose       bool
}

// NewApp 创建并初始化应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	fieldConfig := cfg.Field
	if fieldConfig == nil {
		fieldConfig = config.DefaultFieldConfig()
	}
	if err := fieldConfig.Validate(); err != nil {
		return nil, fmt.Errorf("粒子场配置无效: %w", err)
	}

	settings := cfg.Settings
	if settings == nil {
		var err error
		settings, err = game.NewSettingsManager(nil)
		if err != nil {
			return nil, fmt.Errorf("设置管理器初始化失败: %w", err)
		}
	}

	width, height := cfg.WindowWidth, cfg.WindowHeight
	if width <= 0 {
		width = DefaultWindowWidth
	}
	if height <= 0 {
		height = DefaultWindowHeight
	}

	// 浏览器中区块可见性来自页面，其他平台使用虚拟页面
	var observer *systems.SectionObserver
	if !bridgeEnabled {
		observer = systems.NewSectionObserver(systems.SectionsFromConfig(fieldConfig), float64(height))
	}
	host := NewEbitenHost(float64(width), float64(height), observer)
	surface := render.NewEbitenSurface(fieldConfig.Background)

	var opts []field.Option
	if cfg.Seed != 0 {
		opts = append(opts, field.WithSeed(cfg.Seed))
	}
	simulator := field.NewSimulator(host, surface, fieldConfig, opts...)

	if settings.GetSettings().Paused {
		simulator.Stop()
		log.Printf("[App] Starting paused (saved preference)")
	}

	log.Printf("[App] Initialized %dx%d, %d sections observed", width, height, len(fieldConfig.Sections))

	return &App{
		host:             host,
		surface:          surface,
		simulator:        simulator,
		settings:         settings,
		windowWidth:      width,
		windowHeight:     height,
		sectionThreshold: fieldConfig.SectionThreshold,
		releaseBridge:    installBridge(host, fieldConfig.SectionThreshold),
		verbose:          cfg.Verbose,
	}, nil
}

// Update 更新粒子场
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if a.stopped {
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.windowWidth, a.windowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.windowWidth, a.windowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	a.handleKeys()
	if a.stopped {
		return ebiten.Termination
	}

	a.host.Poll()
	a.simulator.Step()
	return nil
}

// handleKeys 处理快捷键：F11 全屏、P 暂停、D 统计信息、Esc 退出
func (a *App) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		a.ToggleStats()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.Stop()
	}
}

// toggleFullscreen 切换全屏并保存偏好
func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
	fullscreen := !a.settings.GetSettings().Fullscreen
	a.settings.Update(func(s *game.ViewerSettings) {
		s.Fullscreen = fullscreen
	})
}

// TogglePause 暂停或恢复动画，并保存偏好
func (a *App) TogglePause() {
	if a.simulator.Running() {
		a.simulator.Stop()
	} else {
		a.simulator.Start()
	}
	paused := !a.simulator.Running()
	a.settings.Update(func(s *game.ViewerSettings) {
		s.Paused = paused
	})
	log.Printf("[App] Paused: %v", paused)
}

// ToggleStats 显示或隐藏统计信息，并保存偏好
func (a *App) ToggleStats() {
	a.settings.Update(func(s *game.ViewerSettings) {
		s.ShowStats = !s.ShowStats
	})
}

// Stop 停止粒子场并注销全部监听器，下一次 Update 返回 ebiten.Termination
func (a *App) Stop() {
	if a.stopped {
		return
	}
	a.stopped = true
	a.simulator.Dispose()
	a.releaseBridge()
	log.Printf("[App] Stopped")
}

// Stopped 是否已停止
func (a *App) Stopped() bool {
	return a.stopped
}

// Draw 绘制粒子场
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.surface.Bind(screen)
	a.simulator.Render()
	a.surface.Bind(nil)

	if a.settings.GetSettings().ShowStats {
		ebitenutil.DebugPrint(screen, a.statsText())
	}
}

// statsText 统计信息叠加层的文本
func (a *App) statsText() string {
	width, height := a.simulator.Size()
	state := "running"
	if !a.simulator.Running() {
		state = "paused"
	}
	return fmt.Sprintf("TPS: %0.1f  FPS: %0.1f\nParticles: %d  %0.fx%0.f\nScroll x%0.2f  %s",
		ebiten.ActualTPS(), ebiten.ActualFPS(),
		len(a.simulator.Particles()), width, height,
		a.simulator.ScrollMultiplier(), state)
}

// Layout 返回逻辑屏幕尺寸
// 粒子场跟随窗口大小，尺寸变化在下一次 Update 中作为 resize 信号分发
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return a.windowWidth, a.windowHeight
	}
	a.host.SetLayout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Simulator 返回粒子场
func (a *App) Simulator() *field.Simulator {
	return a.simulator
}

// Host 返回宿主
func (a *App) Host() *EbitenHost {
	return a.host
}

// SectionThreshold 返回区块可见比例阈值（浏览器中通过 particleNet.threshold 交给页面）
func (a *App) SectionThreshold() float64 {
	return a.sectionThreshold
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
