// Package scenes 实现剧情播放器的界面
//
// Stage 是导航器和旁白播放器的显示端：它保存当前图片、旁白文本、
// 生命值和选项按钮，并在开始界面和剧情界面之间切换。
package scenes

import (
	"log"

	"github.com/decker502/storyplayer/pkg/components"
	"github.com/decker502/storyplayer/pkg/config"
	"github.com/decker502/storyplayer/pkg/ecs"
	"github.com/decker502/storyplayer/pkg/entities"
	"github.com/decker502/storyplayer/pkg/game"
	"github.com/decker502/storyplayer/pkg/narration"
	"github.com/decker502/storyplayer/pkg/navigator"
	"github.com/decker502/storyplayer/pkg/systems"
	"github.com/decker502/storyplayer/pkg/types"
	"github.com/decker502/storyplayer/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 场景名称
const (
	SceneStart = "start"
	SceneStory = "story"
)

// ImageLoader 按资源引用加载图片（由 game.ResourceManager 实现）
type ImageLoader interface {
	LoadImage(ref string) (*ebiten.Image, error)
}

// StageConfig 创建 Stage 所需的依赖
type StageConfig struct {
	Images     ImageLoader             // 可为 nil（所有图片显示为占位面板）
	BodyFont   *text.GoTextFace        // 旁白和正文字体
	TitleFont  *text.GoTextFace        // 开始界面标题字体
	ButtonFont *text.GoTextFace        // 按钮字体
	StartLabel string                  // 开始按钮文字
	RetryLabel string                  // 游戏结束后的开始按钮文字，为空使用 StartLabel
	OnStart    func()                  // 点击开始按钮
	OnSkip     func()                  // 文字显示过程中点击旁白框
	MaxLives   int                     // 红心数量
	Input      func() utils.InputState // 输入来源，nil 时使用 utils.GetInputState
}

// Stage 剧情播放器的显示端
// 实现 narration.TextSink 和 navigator.Display
type Stage struct {
	cfg StageConfig

	entityManager *ecs.EntityManager
	buttonSystem  *systems.ButtonSystem
	buttonRender  *systems.ButtonRenderSystem
	sceneManager  *game.SceneManager

	// 剧情界面状态
	imageRef  string
	image     *ebiten.Image // nil 表示显示占位面板
	imageAge  float64       // 图片显示时长（秒），用于淡入
	narration string
	lines     []string // narration 按旁白框宽度换行后的结果

	lives       int
	damage      types.DamageLevel
	flashRemain float64 // 受伤闪烁剩余时间（秒）

	// 开始界面状态
	backdrop   *ebiten.Image
	startTitle string
	startBody  string
	played     bool // 进入过剧情界面
}

var (
	_ navigator.Display  = (*Stage)(nil)
	_ narration.TextSink = (*Stage)(nil)
)

// NewStage 创建显示端，初始显示开始界面（无文字）
func NewStage(cfg StageConfig) *Stage {
	if cfg.Input == nil {
		cfg.Input = utils.GetInputState
	}
	if cfg.MaxLives <= 0 {
		cfg.MaxLives = navigator.DefaultMaxLives
	}

	em := ecs.NewEntityManager()
	s := &Stage{
		cfg:           cfg,
		entityManager: em,
		buttonSystem:  systems.NewButtonSystem(em),
		buttonRender:  systems.NewButtonRenderSystem(em),
		sceneManager:  game.NewSceneManager(),
		lives:         cfg.MaxLives,
	}
	s.sceneManager.Register(SceneStart, &StartScene{stage: s})
	s.sceneManager.Register(SceneStory, &StoryScene{stage: s})
	s.sceneManager.Show(SceneStart)
	return s
}

// SetBackdrop 设置开始界面的背景图片（通常是起始节点的图片）
func (s *Stage) SetBackdrop(ref string) {
	s.backdrop = s.loadImage(ref)
}

// SetNarrationText 实现 narration.TextSink
func (s *Stage) SetNarrationText(txt string) {
	if txt == s.narration {
		return
	}
	s.narration = txt
	s.lines = utils.WrapText(txt, s.cfg.BodyFont, config.NarrationBoxWidth-config.NarrationTextMargin*2)
}

// SetImage 实现 navigator.Display
// 加载失败时记录日志并显示占位面板
func (s *Stage) SetImage(ref string) {
	s.imageRef = ref
	s.image = s.loadImage(ref)
	s.imageAge = 0
}

// RenderOptions 实现 navigator.Display
// 旧的选项按钮全部删除后按顺序创建新按钮
func (s *Stage) RenderOptions(options []navigator.OptionView) {
	entities.DestroyButtons(s.entityManager, components.ButtonGroupOptions)
	if len(options) == 0 {
		return
	}

	widths := make([]float64, len(options))
	for i, opt := range options {
		widths[i] = entities.OptionButtonWidth(s.cfg.ButtonFont, opt.Label)
	}
	positions := config.LayoutOptionButtons(widths)

	for i, opt := range options {
		entities.NewOptionButton(s.entityManager, s.cfg.ButtonFont, positions[i][0], positions[i][1], opt.Label, opt.OnActivate)
	}
}

// SetLivesDisplay 实现 navigator.Display
// 生命值减少时触发受伤闪烁
func (s *Stage) SetLivesDisplay(lives int) {
	if lives < s.lives {
		s.flashRemain = config.DamageFlashDuration
	}
	s.lives = lives
}

// SetDamageLevel 实现 navigator.Display
func (s *Stage) SetDamageLevel(level types.DamageLevel) {
	s.damage = level
}

// ShowStartView 实现 navigator.Display
func (s *Stage) ShowStartView(title, body string) {
	s.startTitle = title
	s.startBody = body
	s.flashRemain = 0
	s.sceneManager.Show(SceneStart)
}

// ShowGameView 实现 navigator.Display
func (s *Stage) ShowGameView() {
	s.played = true
	s.sceneManager.Show(SceneStory)
}

// CurrentScene 返回当前场景名称
func (s *Stage) CurrentScene() string {
	return s.sceneManager.CurrentName()
}

// Update 处理输入并推进界面动画
func (s *Stage) Update(deltaTime float64) {
	input := s.cfg.Input()

	if s.buttonSystem.Update(input) {
		return
	}

	if input.JustReleased && s.CurrentScene() == SceneStory &&
		utils.PointInRect(float64(input.X), float64(input.Y),
			config.NarrationBoxX, config.NarrationBoxY, config.NarrationBoxWidth, config.NarrationBoxHeight) {
		if s.cfg.OnSkip != nil {
			s.cfg.OnSkip()
		}
	}

	s.sceneManager.Update(deltaTime)
}

// Draw 绘制当前场景
func (s *Stage) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	s.sceneManager.Draw(screen)
}

// CursorShape 悬停在按钮上时使用手形光标
func (s *Stage) CursorShape() ebiten.CursorShapeType {
	if s.buttonSystem.HoveredAny() {
		return ebiten.CursorShapePointer
	}
	return ebiten.CursorShapeDefault
}

func (s *Stage) loadImage(ref string) *ebiten.Image {
	if ref == "" || s.cfg.Images == nil {
		return nil
	}
	img, err := s.cfg.Images.LoadImage(ref)
	if err != nil {
		log.Printf("[Stage] Warning: Failed to load image %s: %v (showing placeholder)", ref, err)
		return nil
	}
	return img
}
