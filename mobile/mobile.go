//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。手动构建：
//
//	# Android
//	cp -r assets data mobile/ && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.storyplayer -o build/android/storyplayer.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	cp -r assets data mobile/ && ebitenmobile bind -target ios -tags mobile -o build/ios/StoryPlayer.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/storyplayer/pkg/app"
	"github.com/decker502/storyplayer/pkg/embedded"
	"github.com/decker502/storyplayer/pkg/utils"
)

func init() {
	// 初始化嵌入资源
	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(assetsFS, dataFS)

	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[Mobile] Warning: %v", err)
	}
	log.Printf("[Mobile] Storage path: %s", utils.GetStoragePath())
	storage, err := gdata.Open(gdata.Config{AppName: "storyplayer"})
	if err != nil {
		log.Printf("[Mobile] Warning: Failed to open settings storage: %v", err)
		storage = nil
	}

	cfg := app.Config{
		Verbose: true, // Enable verbose logging for debugging
		Storage: storage,
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
