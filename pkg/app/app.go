// Package app 提供剧情播放器的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/storyplayer/pkg/config"
	"github.com/decker502/storyplayer/pkg/game"
	"github.com/decker502/storyplayer/pkg/narration"
	"github.com/decker502/storyplayer/pkg/navigator"
	"github.com/decker502/storyplayer/pkg/scenes"
	"github.com/decker502/storyplayer/pkg/story"
	"github.com/decker502/storyplayer/pkg/types"
	"github.com/decker502/storyplayer/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/quasilyte/gdata/v2"
)

// DefaultConfigPath 默认配置文件路径
const DefaultConfigPath = "data/config.yaml"

// sampleRate 音频上下文采样率
const sampleRate = 48000

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 配置文件路径，为空使用 DefaultConfigPath
	ConfigPath string
	// StartNode 覆盖起始节点（调试用），优先于配置文件
	StartNode string
	// Fullscreen 强制全屏启动（会写入设置）
	Fullscreen bool
	// Storage 设置存储，nil 时设置只保存在内存中
	Storage *gdata.Manager
	// Input 输入来源（测试用），nil 时读取真实的鼠标和触摸输入
	Input func() utils.InputState
}

// App 是剧情播放器的核心包装器，实现 ebiten.Game 接口
type App struct {
	gameConfig *config.GameConfig
	story      *story.Story

	resourceManager *game.ResourceManager
	audioManager    *game.AudioManager
	settingsManager *game.SettingsManager

	player    *narration.Player
	navigator *navigator.Navigator
	stage     *scenes.Stage

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 剧情内容不合法时返回包装了 story.ErrInvalidStory 的错误。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	gameConfig, err := config.LoadGameConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	st, err := loadStory(gameConfig, cfg.StartNode)
	if err != nil {
		return nil, err
	}

	// 音频上下文每个进程只能创建一次
	audioContext := audio.CurrentContext()
	if audioContext == nil {
		audioContext = audio.NewContext(sampleRate)
	}

	resourceManager := game.NewResourceManager(audioContext)
	if err := resourceManager.LoadResourceConfig(gameConfig.Resources); err != nil {
		return nil, fmt.Errorf("资源配置加载失败: %w", err)
	}
	// 缺失的资源不阻止启动：图片显示占位面板，音效播放失败只记录日志
	if err := resourceManager.LoadResourceGroup("story"); err != nil {
		log.Printf("[App] Warning: Some resources failed to preload: %v", err)
	}

	uiStrings, err := game.LoadUIStrings(gameConfig.Strings)
	if err != nil {
		log.Printf("[App] Warning: Failed to load UI strings: %v (showing keys)", err)
	}

	bodyFont, titleFont, buttonFont := loadFonts(resourceManager, gameConfig.Font)

	settingsManager := game.NewSettingsManager(cfg.Storage)
	if cfg.Fullscreen {
		settingsManager.SetFullscreen(true)
	}

	audioManager := game.NewAudioManager(resourceManager, settingsManager)
	audioManager.SetChannelVolume(types.CueNarration, gameConfig.Narration.CueVolume)
	audioManager.SetChannelVolume(types.CueResult, gameConfig.Result.CueVolume)
	log.Printf("[App] AudioManager initialized")

	a := &App{
		gameConfig:      gameConfig,
		story:           st,
		resourceManager: resourceManager,
		audioManager:    audioManager,
		settingsManager: settingsManager,
		verbose:         cfg.Verbose,
	}

	a.stage = scenes.NewStage(scenes.StageConfig{
		Images:     resourceManager,
		BodyFont:   bodyFont,
		TitleFont:  titleFont,
		ButtonFont: buttonFont,
		StartLabel: uiStrings.GetString(game.StringStartButton),
		RetryLabel: uiStrings.GetString(game.StringRetryButton),
		OnStart:    a.start,
		OnSkip:     a.skip,
		MaxLives:   gameConfig.Lives.Max,
		Input:      cfg.Input,
	})

	a.player = narration.NewPlayer(a.stage, audioManager, narration.Config{
		Interval: gameConfig.TypingInterval(),
		CueRef:   gameConfig.Narration.Cue,
		Cursor:   gameConfig.Narration.Cursor,
	})

	a.navigator = navigator.New(st, a.player, a.stage, audioManager, navigator.Config{
		MaxLives:   gameConfig.Lives.Max,
		SuccessCue: gameConfig.Result.SuccessCue,
		FailureCue: gameConfig.Result.FailureCue,
		Copy: navigator.Copy{
			StartTitle:    uiStrings.GetString(game.StringStartTitle),
			StartBody:     uiStrings.GetString(game.StringStartBody),
			GameOverTitle: uiStrings.GetString(game.StringGameOverTitle),
			GameOverBody:  uiStrings.GetString(game.StringGameOverBody),
		},
	})

	// 开始界面使用起始节点的图片作为背景
	a.stage.SetBackdrop(st.Start().Image)
	a.navigator.ShowTitle()

	log.Printf("[App] Loaded story %s (%d nodes, start=%s)", gameConfig.Story.Path, st.Len(), st.StartID())
	return a, nil
}

// loadStory 加载剧情并应用起始节点覆盖（命令行优先于配置文件）
func loadStory(gameConfig *config.GameConfig, startOverride string) (*story.Story, error) {
	st, err := story.Load(gameConfig.Story.Path)
	if err != nil {
		return nil, fmt.Errorf("剧情加载失败: %w", err)
	}

	start := startOverride
	if start == "" {
		start = gameConfig.Story.Start
	}
	if start == "" || start == st.StartID() {
		return st, nil
	}

	st, err = st.WithStart(start)
	if err != nil {
		return nil, fmt.Errorf("剧情加载失败: %w", err)
	}
	log.Printf("[App] Start node overridden: %s", start)
	return st, nil
}

// loadFonts 加载正文、标题、按钮字体
// 配置的字体加载失败时退回内置 Go 字体
func loadFonts(rm *game.ResourceManager, fontConfig config.FontConfig) (body, title, button *text.GoTextFace) {
	path := fontConfig.Path
	body, err := rm.LoadFont(path, fontConfig.Size)
	if err != nil {
		log.Printf("[App] Warning: Failed to load font %s: %v (using built-in font)", path, err)
		path = ""
		body, _ = rm.LoadFont(path, fontConfig.Size)
	}
	title, _ = rm.LoadFont(path, fontConfig.Size*config.StartTitleScale)
	button, _ = rm.LoadFont(path, fontConfig.Size*0.9)
	return body, title, button
}

// start 开始按钮回调
func (a *App) start() {
	if err := a.navigator.Start(); err != nil {
		log.Printf("[App] Error: Failed to start story: %v", err)
	}
}

// skip 点击旁白框时立即显示完整文本
func (a *App) skip() {
	a.player.Skip()
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏（移动端无窗口）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	// M 切换音效
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.ToggleSound()
	}

	a.tick(1.0 / float64(ebiten.TPS()))
	ebiten.SetCursorShape(a.stage.CursorShape())
	return nil
}

// tick 推进一帧：先处理点击，再推进打字机
func (a *App) tick(deltaTime float64) {
	a.stage.Update(deltaTime)
	a.player.Update(deltaTime)
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settingsManager.SetFullscreen(false)
	} else {
		ebiten.SetFullscreen(true)
		a.settingsManager.SetFullscreen(true)
	}
	a.saveSettings()
}

// ToggleSound 切换音效开关并保存设置，返回新状态
func (a *App) ToggleSound() bool {
	enabled := a.settingsManager.ToggleSound()
	a.audioManager.ApplySettings()
	a.saveSettings()
	log.Printf("[App] Sound enabled: %v", enabled)
	return enabled
}

func (a *App) saveSettings() {
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.stage.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Shutdown 停止所有音效并保存设置（游戏循环结束后调用）
func (a *App) Shutdown() {
	a.player.Cancel()
	a.audioManager.StopAll()
	a.saveSettings()
}

// Title 返回窗口标题
func (a *App) Title() string {
	return a.gameConfig.Title
}

// Settings 返回当前设置
func (a *App) Settings() *game.GameSettings {
	return a.settingsManager.GetSettings()
}

// Navigator 返回剧情导航器
func (a *App) Navigator() *navigator.Navigator {
	return a.navigator
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
