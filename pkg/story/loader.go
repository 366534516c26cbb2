package story

import (
	"errors"
	"fmt"

	"github.com/decker502/storyplayer/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// File 剧情 YAML 文件结构
//
// 示例：
//
//	start: intro
//	nodes:
//	  - id: intro
//	    text: "The lamp flickers."
//	    image: IMAGE_HALLWAY
//	    options:
//	      - label: "Open the door"
//	        next: door
//	        scoring: correct
type File struct {
	Start string `yaml:"start"`
	Nodes []Node `yaml:"nodes"`
}

// Parse 从 YAML 数据解析剧情表
// YAML 格式错误和内容错误都返回包装了 ErrInvalidStory 的错误
func Parse(data []byte) (*Story, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		if errors.Is(err, ErrInvalidStory) {
			return nil, fmt.Errorf("failed to parse story YAML: %w", err)
		}
		return nil, fmt.Errorf("%w: failed to parse story YAML: %w", ErrInvalidStory, err)
	}
	return New(file.Start, file.Nodes)
}

// Load 从嵌入资源加载剧情表
// path 必须以 "data/" 开头，如 "data/story.yaml"
func Load(path string) (*Story, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read story file %s: %w", path, err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load story %s: %w", path, err)
	}
	return s, nil
}
