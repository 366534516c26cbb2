package app

import (
	"errors"
	"os"
	"testing"
	"testing/fstest"

	"github.com/decker502/storyplayer/pkg/embedded"
	"github.com/decker502/storyplayer/pkg/scenes"
	"github.com/decker502/storyplayer/pkg/story"
	"github.com/decker502/storyplayer/pkg/types"
	"github.com/decker502/storyplayer/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

func TestMain(m *testing.M) {
	// 音频上下文每个进程只能创建一次
	audio.NewContext(sampleRate)
	os.Exit(m.Run())
}

const testConfig = `
title: "Test"
story:
  path: data/story.yaml
narration:
  typingIntervalMs: 50
lives:
  max: 3
resources: data/resources.yaml
strings: data/strings.txt
`

const testStory = `
start: start
nodes:
  - id: start
    text: "Hello"
    image: IMAGE_INTRO
    options:
      - label: "Go"
        next: quiz1
  - id: quiz1
    text: "Which door?"
    options:
      - label: "A"
        next: quiz1
        scoring: incorrect
      - label: "B"
        next: ending
        scoring: correct
  - id: ending
    text: "The end."
`

const testResources = `
version: "1.0"
base_path: assets
groups:
  story:
    images:
      - id: IMAGE_INTRO
        path: images/intro
`

const testStrings = `[START_TITLE]
Test Story

[START_BUTTON]
Start
`

func setupFS(t *testing.T, storyYAML string) {
	t.Helper()
	embedded.Init(fstest.MapFS{}, fstest.MapFS{
		"data/config.yaml":    {Data: []byte(testConfig)},
		"data/story.yaml":     {Data: []byte(storyYAML)},
		"data/resources.yaml": {Data: []byte(testResources)},
		"data/strings.txt":    {Data: []byte(testStrings)},
	})
	t.Cleanup(func() { embedded.Init(nil, nil) })
}

func noInput() utils.InputState {
	return utils.InputState{}
}

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	cfg.Input = noInput
	a, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp error: %v", err)
	}
	return a
}

// runFrames 推进 n 帧（60 TPS）
func runFrames(a *App, n int) {
	for i := 0; i < n; i++ {
		a.tick(1.0 / 60)
	}
}

func TestNewApp(t *testing.T) {
	setupFS(t, testStory)
	a := newTestApp(t, Config{})

	if a.Title() != "Test" {
		t.Errorf("Title() = %q, want Test", a.Title())
	}
	if got := a.Navigator().CurrentNodeID(); got != "start" {
		t.Errorf("CurrentNodeID() = %q, want start", got)
	}
	if got := a.Navigator().Lives(); got != 3 {
		t.Errorf("Lives() = %d, want 3", got)
	}
	if got := a.stage.CurrentScene(); got != scenes.SceneStart {
		t.Errorf("initial scene = %q, want start", got)
	}
	if w, h := a.Layout(100, 100); w != 960 || h != 540 {
		t.Errorf("Layout() = %dx%d, want 960x540", w, h)
	}
}

func TestApp_StartAndReveal(t *testing.T) {
	setupFS(t, testStory)
	a := newTestApp(t, Config{})

	a.start()
	if got := a.stage.CurrentScene(); got != scenes.SceneStory {
		t.Fatalf("scene after start = %q, want story", got)
	}
	if !a.player.IsActive() {
		t.Fatal("narration should be revealing after start")
	}

	// "Hello" 5 个字符 × 50ms，一秒足够
	runFrames(a, 60)
	if a.player.IsActive() {
		t.Error("narration should be complete after one second")
	}
}

func TestApp_SkipCompletesReveal(t *testing.T) {
	setupFS(t, testStory)
	a := newTestApp(t, Config{})

	a.start()
	a.skip()
	if a.player.IsActive() {
		t.Error("skip should complete the reveal")
	}

	// 没有进行中的显示时 skip 不做任何事
	a.skip()
}

func TestApp_WrongAnswersEndInGameOver(t *testing.T) {
	setupFS(t, testStory)
	a := newTestApp(t, Config{})
	nav := a.Navigator()

	a.start()
	quiz, err := a.story.Lookup("quiz1")
	if err != nil {
		t.Fatal(err)
	}
	wrong := quiz.Options[0]

	if err := nav.GoTo("quiz1"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := nav.Select(wrong); err != nil {
			t.Fatalf("Select error: %v", err)
		}
	}

	if got := a.stage.CurrentScene(); got != scenes.SceneStart {
		t.Errorf("scene after game over = %q, want start", got)
	}
	if nav.Lives() != 3 || nav.CurrentNodeID() != "start" {
		t.Errorf("after game over lives=%d node=%q, want 3/start", nav.Lives(), nav.CurrentNodeID())
	}
}

func TestNewApp_StartOverride(t *testing.T) {
	setupFS(t, testStory)

	a := newTestApp(t, Config{StartNode: "quiz1"})
	if got := a.Navigator().CurrentNodeID(); got != "quiz1" {
		t.Errorf("CurrentNodeID() = %q, want quiz1", got)
	}

	_, err := NewApp(Config{StartNode: "missing", Input: noInput})
	if !errors.Is(err, story.ErrInvalidStory) {
		t.Errorf("unknown start override error = %v, want ErrInvalidStory", err)
	}
}

func TestNewApp_InvalidStory(t *testing.T) {
	setupFS(t, `
start: start
nodes:
  - id: start
    text: "Hello"
    options:
      - label: "Go"
        next: nowhere
`)

	_, err := NewApp(Config{Input: noInput})
	if !errors.Is(err, story.ErrInvalidStory) {
		t.Errorf("NewApp error = %v, want ErrInvalidStory", err)
	}
}

func TestApp_ToggleSound(t *testing.T) {
	setupFS(t, testStory)
	a := newTestApp(t, Config{})

	if !a.Settings().SoundEnabled {
		t.Fatal("sound should be enabled by default")
	}
	if a.ToggleSound() {
		t.Error("first toggle should disable sound")
	}
	if a.Settings().SoundEnabled {
		t.Error("settings should reflect disabled sound")
	}
	if !a.ToggleSound() {
		t.Error("second toggle should enable sound")
	}
}

func TestApp_FullscreenFlagPersistsInSettings(t *testing.T) {
	setupFS(t, testStory)
	a := newTestApp(t, Config{Fullscreen: true})

	if !a.Settings().Fullscreen {
		t.Error("Fullscreen flag should be stored in settings")
	}
	a.Shutdown()
}

// 使用仓库中实际发布的 data/ 和 assets/
func TestNewApp_BundledContent(t *testing.T) {
	root := os.DirFS("../..")
	embedded.Init(root, root)
	t.Cleanup(func() { embedded.Init(nil, nil) })

	a := newTestApp(t, Config{})

	if err := a.resourceManager.LoadResourceGroup("story"); err != nil {
		t.Errorf("bundled resources failed to load: %v", err)
	}
	for _, ref := range []string{
		a.gameConfig.Narration.Cue,
		a.gameConfig.Result.SuccessCue,
		a.gameConfig.Result.FailureCue,
	} {
		if _, err := a.resourceManager.LoadSoundEffect(ref); err != nil {
			t.Errorf("LoadSoundEffect(%s) error: %v", ref, err)
		}
	}
	for _, node := range a.story.Nodes() {
		if _, err := a.resourceManager.LoadImage(node.Image); err != nil {
			t.Errorf("node %s image %s: %v", node.ID, node.Image, err)
		}
	}

	a.start()
	if got := a.audioManager.ActiveCue(types.CueNarration); got != a.gameConfig.Narration.Cue {
		t.Errorf("narration cue = %q, want %q playing", got, a.gameConfig.Narration.Cue)
	}
}
