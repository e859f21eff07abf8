//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 手动构建：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.particlenet -o build/android/particlenet.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/ParticleNet.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/particlenet/pkg/app"
	"github.com/decker502/particlenet/pkg/embedded"
	"github.com/decker502/particlenet/pkg/game"
	"github.com/decker502/particlenet/pkg/utils"
)

func init() {
	// 初始化嵌入资源
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	fieldConfig, err := embedded.LoadFieldConfig()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	// Android 上 gdata 不会创建 saves 目录
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[Mobile] Warning: %v", err)
	}
	manager, err := game.OpenStorage("particlenet")
	if err != nil {
		log.Printf("[Mobile] Warning: %v (preferences will not be saved)", err)
	}
	settings, _ := game.NewSettingsManager(manager)

	// 创建应用，使用默认配置
	cfg := app.Config{
		Verbose:  true, // Enable verbose logging for debugging
		Field:    fieldConfig,
		Settings: settings,
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
