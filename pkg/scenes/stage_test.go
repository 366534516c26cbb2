package scenes

import (
	"errors"
	"testing"

	"github.com/decker502/storyplayer/pkg/components"
	"github.com/decker502/storyplayer/pkg/config"
	"github.com/decker502/storyplayer/pkg/ecs"
	"github.com/decker502/storyplayer/pkg/navigator"
	"github.com/decker502/storyplayer/pkg/types"
	"github.com/decker502/storyplayer/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

type fakeImages struct {
	loaded []string
}

func (f *fakeImages) LoadImage(ref string) (*ebiten.Image, error) {
	f.loaded = append(f.loaded, ref)
	if ref == "IMAGE_MISSING" {
		return nil, errors.New("not found")
	}
	return ebiten.NewImage(8, 4), nil
}

// scriptedInput 每次调用返回下一帧的输入，用完后返回空输入
type scriptedInput struct {
	frames []utils.InputState
}

func (in *scriptedInput) next() utils.InputState {
	if len(in.frames) == 0 {
		return utils.InputState{X: -1, Y: -1}
	}
	frame := in.frames[0]
	in.frames = in.frames[1:]
	return frame
}

func click(x, y float64) utils.InputState {
	return utils.InputState{X: int(x), Y: int(y), JustReleased: true}
}

func newTestStage(t *testing.T) (*Stage, *scriptedInput, *int, *int) {
	t.Helper()
	input := &scriptedInput{}
	starts, skips := 0, 0
	s := NewStage(StageConfig{
		Images:     &fakeImages{},
		StartLabel: "Start",
		RetryLabel: "Try again",
		OnStart:    func() { starts++ },
		OnSkip:     func() { skips++ },
		MaxLives:   3,
		Input:      input.next,
	})
	return s, input, &starts, &skips
}

func buttonsIn(s *Stage, group components.ButtonGroup) []*components.ButtonComponent {
	var result []*components.ButtonComponent
	for _, id := range ecs.GetEntitiesWith1[*components.ButtonComponent](s.entityManager) {
		b, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
		if b.Group == group {
			result = append(result, b)
		}
	}
	return result
}

func TestStage_StartsOnStartView(t *testing.T) {
	s, input, starts, _ := newTestStage(t)

	if s.CurrentScene() != SceneStart {
		t.Fatalf("initial scene = %q, want start", s.CurrentScene())
	}
	if n := len(buttonsIn(s, components.ButtonGroupStart)); n != 1 {
		t.Fatalf("start buttons = %d, want 1", n)
	}

	// 点击开始按钮中心
	x := float64(config.GameWindowWidth) / 2
	y := config.StartButtonY + config.StartButtonH/2
	input.frames = []utils.InputState{click(x, y)}
	s.Update(1.0 / 60)

	if *starts != 1 {
		t.Errorf("OnStart called %d times, want 1", *starts)
	}
}

func TestStage_RetryLabelAfterPlay(t *testing.T) {
	s, _, _, _ := newTestStage(t)

	buttons := buttonsIn(s, components.ButtonGroupStart)
	if len(buttons) != 1 || buttons[0].Text != "Start" {
		t.Fatalf("initial start button = %+v, want Start", buttons)
	}

	s.ShowGameView()
	s.ShowStartView("Game over", "Try once more.")

	buttons = buttonsIn(s, components.ButtonGroupStart)
	if len(buttons) != 1 || buttons[0].Text != "Try again" {
		t.Errorf("start button after game over = %+v, want Try again", buttons)
	}
}

func TestStage_RenderOptions(t *testing.T) {
	s, input, _, _ := newTestStage(t)
	s.ShowGameView()

	if s.CurrentScene() != SceneStory {
		t.Fatalf("scene = %q, want story", s.CurrentScene())
	}
	if n := len(buttonsIn(s, components.ButtonGroupStart)); n != 0 {
		t.Errorf("start button should be removed in story view, got %d", n)
	}

	var chosen []string
	opts := []navigator.OptionView{
		{Label: "Left", OnActivate: func() { chosen = append(chosen, "Left") }},
		{Label: "Right", OnActivate: func() { chosen = append(chosen, "Right") }},
	}
	s.RenderOptions(opts)
	s.RenderOptions(opts) // 重复渲染只保留一组

	buttons := buttonsIn(s, components.ButtonGroupOptions)
	if len(buttons) != 2 || buttons[0].Text != "Left" || buttons[1].Text != "Right" {
		t.Fatalf("option buttons = %+v", buttons)
	}

	// 点击第二个按钮
	positions := config.LayoutOptionButtons([]float64{buttons[0].Width, buttons[1].Width})
	input.frames = []utils.InputState{click(positions[1][0]+5, positions[1][1]+5)}
	s.Update(1.0 / 60)
	if len(chosen) != 1 || chosen[0] != "Right" {
		t.Errorf("chosen = %v, want [Right]", chosen)
	}

	s.RenderOptions(nil)
	if n := len(buttonsIn(s, components.ButtonGroupOptions)); n != 0 {
		t.Errorf("RenderOptions(nil) left %d buttons", n)
	}
}

func TestStage_SkipOnNarrationClick(t *testing.T) {
	s, input, _, skips := newTestStage(t)

	// 开始界面点击旁白框区域不触发
	input.frames = []utils.InputState{click(config.NarrationBoxX+10, config.NarrationBoxY+10)}
	s.Update(1.0 / 60)
	if *skips != 0 {
		t.Fatal("skip should not fire on start view")
	}

	s.ShowGameView()
	input.frames = []utils.InputState{
		click(config.NarrationBoxX+10, config.NarrationBoxY+10),
		click(5, 5), // 图片区域
	}
	s.Update(1.0 / 60)
	s.Update(1.0 / 60)
	if *skips != 1 {
		t.Errorf("skips = %d, want 1", *skips)
	}
}

func TestStage_ShowStartViewClearsOptions(t *testing.T) {
	s, _, _, _ := newTestStage(t)
	s.ShowGameView()
	s.RenderOptions([]navigator.OptionView{{Label: "A"}})

	s.ShowStartView("Game Over", "Try again")
	if s.CurrentScene() != SceneStart {
		t.Fatal("expected start scene")
	}
	if s.startTitle != "Game Over" || s.startBody != "Try again" {
		t.Errorf("copy = %q / %q", s.startTitle, s.startBody)
	}
	if n := len(buttonsIn(s, components.ButtonGroupOptions)); n != 0 {
		t.Errorf("options left on start view: %d", n)
	}
	if n := len(buttonsIn(s, components.ButtonGroupStart)); n != 1 {
		t.Errorf("start buttons = %d, want 1", n)
	}
}

func TestStage_LivesAndDamage(t *testing.T) {
	s, _, _, _ := newTestStage(t)
	s.ShowGameView()

	s.SetLivesDisplay(3)
	if s.flashRemain != 0 {
		t.Error("no flash expected without losing a life")
	}
	s.SetLivesDisplay(2)
	s.SetDamageLevel(types.DamageMedium)
	if s.flashRemain != config.DamageFlashDuration {
		t.Errorf("flashRemain = %v, want %v", s.flashRemain, config.DamageFlashDuration)
	}
	if s.lives != 2 || s.damage != types.DamageMedium {
		t.Errorf("lives=%d damage=%v", s.lives, s.damage)
	}

	// 闪烁随时间结束
	for i := 0; i < 60; i++ {
		s.Update(1.0 / 60)
	}
	if s.flashRemain != 0 {
		t.Errorf("flash should have ended, remain %v", s.flashRemain)
	}
}

func TestStage_ImagesAndText(t *testing.T) {
	s, _, _, _ := newTestStage(t)
	images := s.cfg.Images.(*fakeImages)

	s.SetImage("IMAGE_HALLWAY")
	if s.image == nil || s.imageRef != "IMAGE_HALLWAY" {
		t.Error("image not loaded")
	}
	s.SetImage("IMAGE_MISSING")
	if s.image != nil {
		t.Error("missing image should fall back to placeholder")
	}
	s.SetBackdrop("IMAGE_HALLWAY")
	if s.backdrop == nil {
		t.Error("backdrop not loaded")
	}
	if len(images.loaded) != 3 {
		t.Errorf("loads = %v", images.loaded)
	}

	s.SetNarrationText("Hello|")
	if s.narration != "Hello|" || len(s.lines) != 1 {
		t.Errorf("narration = %q lines = %q", s.narration, s.lines)
	}

	// 两个界面都能绘制
	screen := ebiten.NewImage(config.GameWindowWidth, config.GameWindowHeight)
	s.Draw(screen)
	s.ShowGameView()
	s.SetDamageLevel(types.DamageHigh)
	s.Draw(screen)
}
