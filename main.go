// Package main 是粒子网络背景的桌面端 / 浏览器入口
//
// Usage:
//
//	go run . [flags]
//	GOOS=js GOARCH=wasm go build -o web/static/particlenet.wasm .
//
// Flags:
//
//	--verbose          Enable verbose logging
//	--config <path>    Load field config from a yaml file instead of the embedded default
//	--seed <n>         Fixed random seed (0 = time based)
//
// Controls:
//
//	Mouse / Touch      - Pointer links
//	Wheel / PgUp/PgDn  - Scroll the virtual page (speed boost, section themes)
//	Home / End         - Jump to top / bottom
//	P                  - Pause / resume
//	D                  - Toggle stats overlay
//	F11                - Toggle fullscreen
//	Escape             - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/particlenet/pkg/app"
	"github.com/decker502/particlenet/pkg/config"
	"github.com/decker502/particlenet/pkg/embedded"
	"github.com/decker502/particlenet/pkg/game"
	"github.com/decker502/particlenet/pkg/utils"
)

// appName gdata 存储目录名
const appName = "particlenet"

// 手机视口（PARTICLENET_MOBILE_EMULATE=1 时使用）
const (
	mobileWindowWidth  = 390
	mobileWindowHeight = 844
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	configFlag  = flag.String("config", "", "Field config yaml (default: embedded data/field.yaml)")
	seedFlag    = flag.Int64("seed", 0, "Random seed for particle spawning (0 = time based)")
)

func main() {
	flag.Parse()

	// 配置日志输出
	if !*verboseFlag {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 初始化嵌入资源（必须在任何资源加载之前）
	embedded.Init(dataFS)

	fieldConfig, err := loadFieldConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	settings := openSettings()

	width, height := app.DefaultWindowWidth, app.DefaultWindowHeight
	if utils.IsMobile() {
		width, height = mobileWindowWidth, mobileWindowHeight
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:      *verboseFlag,
		Field:        fieldConfig,
		Seed:         *seedFlag,
		Settings:     settings,
		WindowWidth:  width,
		WindowHeight: height,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Particle Network")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(settings.GetSettings().Fullscreen)

	// Start the loop
	// This will call Update() and Draw() repeatedly until the window is closed or Esc is pressed
	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}

// loadFieldConfig 读取 --config 指定的文件，未指定时使用嵌入的默认配置
func loadFieldConfig(path string) (*config.FieldConfig, error) {
	if path != "" {
		return config.LoadFieldConfig(path)
	}
	return embedded.LoadFieldConfig()
}

// openSettings 打开偏好存储，失败时进入降级模式（仅内存）
func openSettings() *game.SettingsManager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[Main] Warning: %v", err)
	}
	manager, err := game.OpenStorage(appName)
	if err != nil {
		log.Printf("[Main] Warning: %v (preferences will not be saved)", err)
	}

	settings, err := game.NewSettingsManager(manager)
	if err != nil {
		log.Printf("[Main] Warning: %v", err)
	}
	return settings
}
