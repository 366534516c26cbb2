package game

// ResourceConfig 资源配置（data/resources.yaml）
// 把剧情和配置中使用的资源ID映射到嵌入资源路径
//
// 结构：
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  story:
//	    images:
//	      - id: IMAGE_HALLWAY
//	        path: images/hallway.png
//	    sounds:
//	      - id: SOUND_TYPEWRITER
//	        path: sounds/typewriter.wav
type ResourceConfig struct {
	Version  string                   `yaml:"version"`
	BasePath string                   `yaml:"base_path"`
	Groups   map[string]ResourceGroup `yaml:"groups"`
}

// ResourceGroup 一组可以一起预加载的资源
type ResourceGroup struct {
	Images []ImageResource `yaml:"images"`
	Sounds []SoundResource `yaml:"sounds"`
	Fonts  []FontResource  `yaml:"fonts"`
}

// ImageResource 图片资源定义
// Path 省略扩展名时默认 .png
type ImageResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// SoundResource 音效资源定义
// Path 省略扩展名时默认 .wav
type SoundResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// FontResource 字体资源定义
type FontResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}
