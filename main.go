package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/storyplayer/pkg/app"
	"github.com/decker502/storyplayer/pkg/config"
	"github.com/decker502/storyplayer/pkg/embedded"
	"github.com/decker502/storyplayer/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"github.com/quasilyte/gdata/v2"
)

// appName 设置存储使用的应用名
const appName = "storyplayer"

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	start := flag.String("start", "", "从指定节点开始（调试用）")
	fullscreen := flag.Bool("fullscreen", false, "全屏启动")
	configPath := flag.String("config", app.DefaultConfigPath, "配置文件路径（data/ 开头）")
	flag.Parse()

	// .env 中的 STORY_* 变量会覆盖配置文件，文件不存在时忽略
	_ = godotenv.Load()

	embedded.Init(assetsFS, dataFS)

	storage := openStorage()

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		StartNode:  *start,
		Fullscreen: *fullscreen,
		Storage:    storage,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(gameApp.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(gameApp.Settings().Fullscreen)

	// This will call Update() and Draw() repeatedly until the window is closed
	runErr := ebiten.RunGame(gameApp)
	gameApp.Shutdown()
	if runErr != nil {
		log.Fatal(runErr)
	}
}

// openStorage 打开设置存储，失败时返回 nil（设置只保存在内存中）
func openStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[Main] Warning: %v", err)
	}
	storage, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Main] Warning: Failed to open settings storage: %v", err)
		return nil
	}
	return storage
}
