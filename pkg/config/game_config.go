package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/decker502/storyplayer/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 环境变量前缀，如 STORY_NARRATION_TYPING_INTERVAL_MS=30
const EnvPrefix = "STORY_"

// GameConfig 游戏配置（data/config.yaml）
//
// 加载顺序：YAML 默认值 → 环境变量覆盖（带 EnvPrefix 前缀）
type GameConfig struct {
	Title string `yaml:"title" env:"TITLE"` // 窗口标题

	Story     StoryConfig     `yaml:"story" envPrefix:"STORY_"`
	Narration NarrationConfig `yaml:"narration" envPrefix:"NARRATION_"`
	Lives     LivesConfig     `yaml:"lives" envPrefix:"LIVES_"`
	Result    ResultConfig    `yaml:"result" envPrefix:"RESULT_"`
	Font      FontConfig      `yaml:"font" envPrefix:"FONT_"`
	Resources string          `yaml:"resources" env:"RESOURCES"` // 资源配置文件路径
	Strings   string          `yaml:"strings" env:"STRINGS"`     // 界面文案文件路径
}

// StoryConfig 剧情内容配置
type StoryConfig struct {
	Path  string `yaml:"path" env:"PATH"`   // 剧情 YAML 路径（data/ 开头）
	Start string `yaml:"start" env:"START"` // 覆盖剧情文件中的起始节点（调试用），为空则使用文件中的设置
}

// NarrationConfig 打字机效果配置
type NarrationConfig struct {
	TypingIntervalMs int     `yaml:"typingIntervalMs" env:"TYPING_INTERVAL_MS"` // 每个字符的间隔（毫秒）
	Cursor           string  `yaml:"cursor" env:"CURSOR"`                       // 完成后追加的光标
	Cue              string  `yaml:"cue" env:"CUE"`                             // 打字音效资源ID
	CueVolume        float64 `yaml:"cueVolume" env:"CUE_VOLUME"`                // 打字音效音量 0.0 ~ 1.0
}

// LivesConfig 生命值配置
type LivesConfig struct {
	Max int `yaml:"max" env:"MAX"` // 最大生命数
}

// ResultConfig 答题结果音效配置
type ResultConfig struct {
	SuccessCue string  `yaml:"successCue" env:"SUCCESS_CUE"`
	FailureCue string  `yaml:"failureCue" env:"FAILURE_CUE"`
	CueVolume  float64 `yaml:"cueVolume" env:"CUE_VOLUME"`
}

// FontConfig 字体配置
type FontConfig struct {
	Path string  `yaml:"path" env:"PATH"` // TTF 路径（assets/ 开头），为空使用内置 Go 字体
	Size float64 `yaml:"size" env:"SIZE"` // 正文字号
}

// DefaultGameConfig 返回默认配置
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Title: "Story Player",
		Story: StoryConfig{
			Path: "data/story.yaml",
		},
		Narration: NarrationConfig{
			TypingIntervalMs: 50,
			Cursor:           "|",
			Cue:              "SOUND_TYPEWRITER",
			CueVolume:        0.5,
		},
		Lives: LivesConfig{
			Max: 3,
		},
		Result: ResultConfig{
			SuccessCue: "SOUND_CORRECT",
			FailureCue: "SOUND_WRONG",
			CueVolume:  0.8,
		},
		Font: FontConfig{
			Size: 20,
		},
		Resources: "data/resources.yaml",
		Strings:   "data/strings.txt",
	}
}

// TypingInterval 返回打字间隔
func (c *GameConfig) TypingInterval() time.Duration {
	return time.Duration(c.Narration.TypingIntervalMs) * time.Millisecond
}

// LoadGameConfig 从嵌入资源加载游戏配置并应用环境变量覆盖
//
// 参数：
//   - path: 配置文件路径（如 "data/config.yaml"）
//
// 返回：
//   - *GameConfig: 解析并校验后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config %s: %w", path, err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 解析配置数据，未出现的字段保留默认值
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := validateGameConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return cfg, nil
}

// validateGameConfig 验证配置的合法性
func validateGameConfig(cfg *GameConfig) error {
	if cfg.Story.Path == "" {
		return fmt.Errorf("story.path is required")
	}
	if cfg.Narration.TypingIntervalMs <= 0 {
		return fmt.Errorf("narration.typingIntervalMs must be positive, got %d", cfg.Narration.TypingIntervalMs)
	}
	if cfg.Lives.Max < 1 {
		return fmt.Errorf("lives.max must be at least 1, got %d", cfg.Lives.Max)
	}
	if cfg.Narration.CueVolume < 0 || cfg.Narration.CueVolume > 1 {
		return fmt.Errorf("narration.cueVolume must be within [0, 1], got %v", cfg.Narration.CueVolume)
	}
	if cfg.Result.CueVolume < 0 || cfg.Result.CueVolume > 1 {
		return fmt.Errorf("result.cueVolume must be within [0, 1], got %v", cfg.Result.CueVolume)
	}
	if cfg.Font.Size <= 0 {
		return fmt.Errorf("font.size must be positive, got %v", cfg.Font.Size)
	}
	return nil
}
