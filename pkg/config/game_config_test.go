package config

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/decker502/storyplayer/pkg/embedded"
)

func TestParseGameConfig(t *testing.T) {
	t.Run("部分字段覆盖默认值", func(t *testing.T) {
		data := `
title: "Haunted Library"
narration:
  typingIntervalMs: 30
lives:
  max: 5
`
		cfg, err := ParseGameConfig([]byte(data))
		if err != nil {
			t.Fatalf("ParseGameConfig failed: %v", err)
		}

		if cfg.Title != "Haunted Library" {
			t.Errorf("Title = %q", cfg.Title)
		}
		if cfg.TypingInterval() != 30*time.Millisecond {
			t.Errorf("TypingInterval() = %v, want 30ms", cfg.TypingInterval())
		}
		if cfg.Lives.Max != 5 {
			t.Errorf("Lives.Max = %d, want 5", cfg.Lives.Max)
		}
		// 未设置的字段保留默认值
		if cfg.Narration.Cursor != "|" {
			t.Errorf("Narration.Cursor = %q, want |", cfg.Narration.Cursor)
		}
		if cfg.Narration.CueVolume != 0.5 {
			t.Errorf("Narration.CueVolume = %v, want 0.5", cfg.Narration.CueVolume)
		}
		if cfg.Story.Path != "data/story.yaml" {
			t.Errorf("Story.Path = %q", cfg.Story.Path)
		}
	})

	t.Run("环境变量覆盖", func(t *testing.T) {
		t.Setenv("STORY_NARRATION_TYPING_INTERVAL_MS", "80")
		t.Setenv("STORY_STORY_START", "quiz1")
		t.Setenv("STORY_TITLE", "From Env")

		cfg, err := ParseGameConfig([]byte("title: \"From File\"\n"))
		if err != nil {
			t.Fatalf("ParseGameConfig failed: %v", err)
		}

		if cfg.Narration.TypingIntervalMs != 80 {
			t.Errorf("TypingIntervalMs = %d, want 80", cfg.Narration.TypingIntervalMs)
		}
		if cfg.Story.Start != "quiz1" {
			t.Errorf("Story.Start = %q, want quiz1", cfg.Story.Start)
		}
		if cfg.Title != "From Env" {
			t.Errorf("Title = %q, want From Env", cfg.Title)
		}
	})

	t.Run("非法配置", func(t *testing.T) {
		invalid := []string{
			"narration: {typingIntervalMs: 0}",
			"lives: {max: 0}",
			"narration: {cueVolume: 1.5}",
			"result: {cueVolume: -0.1}",
			"font: {size: 0}",
			"story: {path: \"\"}",
			"lives: [",
		}
		for _, data := range invalid {
			if _, err := ParseGameConfig([]byte(data)); err == nil {
				t.Errorf("ParseGameConfig(%q) expected error", data)
			}
		}
	})
}

func TestLoadGameConfig(t *testing.T) {
	embedded.Init(fstest.MapFS{}, fstest.MapFS{
		"data/config.yaml": {Data: []byte("lives: {max: 4}\n")},
	})

	cfg, err := LoadGameConfig("data/config.yaml")
	if err != nil {
		t.Fatalf("LoadGameConfig failed: %v", err)
	}
	if cfg.Lives.Max != 4 {
		t.Errorf("Lives.Max = %d, want 4", cfg.Lives.Max)
	}

	if _, err := LoadGameConfig("data/missing.yaml"); err == nil {
		t.Error("LoadGameConfig expected error for missing file")
	}
}

func TestLayoutOptionButtons(t *testing.T) {
	t.Run("单行排列", func(t *testing.T) {
		positions := LayoutOptionButtons([]float64{100, 150})
		if len(positions) != 2 {
			t.Fatalf("got %d positions, want 2", len(positions))
		}
		if positions[0] != [2]float64{OptionButtonStartX, OptionButtonStartY} {
			t.Errorf("first button at %v", positions[0])
		}
		wantX := OptionButtonStartX + 100 + OptionButtonSpacing
		if positions[1][0] != wantX || positions[1][1] != OptionButtonStartY {
			t.Errorf("second button at %v, want (%v, %v)", positions[1], wantX, OptionButtonStartY)
		}
	})

	t.Run("超宽换行", func(t *testing.T) {
		positions := LayoutOptionButtons([]float64{600, 600})
		if positions[1][0] != OptionButtonStartX {
			t.Errorf("wrapped button x = %v, want %v", positions[1][0], OptionButtonStartX)
		}
		wantY := OptionButtonStartY + OptionButtonHeight + OptionButtonSpacing
		if positions[1][1] != wantY {
			t.Errorf("wrapped button y = %v, want %v", positions[1][1], wantY)
		}
	})

	t.Run("最小宽度", func(t *testing.T) {
		if w := OptionButtonWidth(10); w != OptionButtonMinW {
			t.Errorf("OptionButtonWidth(10) = %v, want %v", w, OptionButtonMinW)
		}
		if w := OptionButtonWidth(200); w != 200+OptionButtonPadding*2 {
			t.Errorf("OptionButtonWidth(200) = %v", w)
		}
	})
}
