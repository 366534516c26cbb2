package game

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log"
	"path"
	"strings"

	auaudio "github.com/decker502/storyplayer/internal/audio"
	"github.com/decker502/storyplayer/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
	"gopkg.in/yaml.v3"
)

// ErrResourceNotFound 资源ID未在资源配置中定义
var ErrResourceNotFound = errors.New("resource not found")

// ResourceManager is responsible for centralized management of game resources.
// It loads images, sound effects and fonts from the embedded file systems and
// caches them so that every resource is decoded only once.
//
// Resources are referenced either by ID (e.g. "IMAGE_HALLWAY", resolved through
// data/resources.yaml) or directly by path (e.g. "assets/images/hallway.png").
//
// Thread Safety Note:
// This implementation is NOT thread-safe. It is only used from the game loop.
//
// Usage:
//
//	audioContext := audio.NewContext(48000)
//	rm := NewResourceManager(audioContext)
//	if err := rm.LoadResourceConfig("data/resources.yaml"); err != nil {
//	    return err
//	}
//	img, err := rm.LoadImage("IMAGE_HALLWAY")
type ResourceManager struct {
	imageCache    map[string]*ebiten.Image    // resolved path -> Image
	audioCache    map[string]*audio.Player    // resolved path -> Player
	audioContext  *audio.Context              // Global audio context for decoding
	fontFaceCache map[string]*text.GoTextFace // "path@size" -> face
	fontSources   map[string]*text.GoTextFaceSource

	config      *ResourceConfig   // Parsed YAML configuration
	resourceMap map[string]string // Resource ID -> file path
}

// NewResourceManager creates a ResourceManager with empty caches.
// audioContext may be nil when no sound is needed (tools, tests).
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		imageCache:    make(map[string]*ebiten.Image),
		audioCache:    make(map[string]*audio.Player),
		audioContext:  audioContext,
		fontFaceCache: make(map[string]*text.GoTextFace),
		fontSources:   make(map[string]*text.GoTextFaceSource),
		resourceMap:   make(map[string]string),
	}
}

// LoadResourceConfig parses the resource configuration and builds the ID -> path map.
//
// Parameters:
//   - configPath: embedded path of the YAML file (e.g. "data/resources.yaml")
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := embedded.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}

	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse resource config %s: %w", configPath, err)
	}

	rm.config = &config
	rm.buildResourceMap()

	log.Printf("[ResourceManager] Loaded resource config %s (%d resources)", configPath, len(rm.resourceMap))
	return nil
}

// buildResourceMap constructs the ID -> full path mapping.
//
//	IMAGE_HALLWAY -> assets/images/hallway.png
//	SOUND_TYPEWRITER -> assets/sounds/typewriter.wav
func (rm *ResourceManager) buildResourceMap() {
	rm.resourceMap = make(map[string]string)
	if rm.config == nil {
		return
	}

	for _, group := range rm.config.Groups {
		for _, img := range group.Images {
			rm.resourceMap[img.ID] = withDefaultExt(path.Join(rm.config.BasePath, img.Path), ".png")
		}
		for _, sound := range group.Sounds {
			rm.resourceMap[sound.ID] = withDefaultExt(path.Join(rm.config.BasePath, sound.Path), ".wav")
		}
		for _, font := range group.Fonts {
			rm.resourceMap[font.ID] = path.Join(rm.config.BasePath, font.Path)
		}
	}
}

func withDefaultExt(p, ext string) string {
	if path.Ext(p) == "" {
		return p + ext
	}
	return p
}

// ResolvePath converts a resource reference to an embedded path.
// References starting with "assets/" or "data/" are returned as-is,
// everything else is looked up as a resource ID.
func (rm *ResourceManager) ResolvePath(ref string) (string, error) {
	if strings.HasPrefix(ref, "assets/") || strings.HasPrefix(ref, "data/") {
		return ref, nil
	}
	if p, ok := rm.resourceMap[ref]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: %s", ErrResourceNotFound, ref)
}

// LoadImage loads (and caches) an image by ID or path.
func (rm *ResourceManager) LoadImage(ref string) (*ebiten.Image, error) {
	p, err := rm.ResolvePath(ref)
	if err != nil {
		return nil, err
	}
	if cached, ok := rm.imageCache[p]; ok {
		return cached, nil
	}

	file, err := embedded.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", p, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", p, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[p] = ebitenImg
	return ebitenImg, nil
}

// GetImage returns a cached image, or nil if it has not been loaded.
func (rm *ResourceManager) GetImage(ref string) *ebiten.Image {
	p, err := rm.ResolvePath(ref)
	if err != nil {
		return nil
	}
	return rm.imageCache[p]
}

// LoadSoundEffect loads (and caches) a one-shot sound by ID or path.
// Supported formats: WAV (.wav), MP3 (.mp3), OGG Vorbis (.ogg), Sun audio (.au).
func (rm *ResourceManager) LoadSoundEffect(ref string) (*audio.Player, error) {
	if rm.audioContext == nil {
		return nil, fmt.Errorf("audio context not initialized")
	}

	p, err := rm.ResolvePath(ref)
	if err != nil {
		return nil, err
	}
	if cached, ok := rm.audioCache[p]; ok {
		return cached, nil
	}

	data, err := embedded.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read sound file %s: %w", p, err)
	}

	stream, err := rm.decodeSound(p, data)
	if err != nil {
		return nil, err
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", p, err)
	}

	rm.audioCache[p] = player
	return player, nil
}

// decodeSound 按扩展名解码音频，输出采样率与 audioContext 一致
func (rm *ResourceManager) decodeSound(p string, data []byte) (io.Reader, error) {
	sampleRate := rm.audioContext.SampleRate()
	reader := bytes.NewReader(data)

	switch ext := strings.ToLower(path.Ext(p)); ext {
	case ".wav":
		stream, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV sound %s: %w", p, err)
		}
		return stream, nil
	case ".mp3":
		stream, err := mp3.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 sound %s: %w", p, err)
		}
		return stream, nil
	case ".ogg":
		stream, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG sound %s: %w", p, err)
		}
		return stream, nil
	case ".au":
		stream, err := auaudio.DecodeAU(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode AU sound %s: %w", p, err)
		}
		if stream.SampleRate() == sampleRate {
			return stream, nil
		}
		return audio.Resample(stream, stream.Length(), stream.SampleRate(), sampleRate), nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, .ogg, .au)", ext)
	}
}

// LoadFont loads (and caches) a font face.
// An empty path selects the bundled Go Regular font.
//
// Parameters:
//   - fontPath: font ID or embedded path of a TTF/OTF file, or ""
//   - size: font size in pixels
func (rm *ResourceManager) LoadFont(fontPath string, size float64) (*text.GoTextFace, error) {
	key := fmt.Sprintf("%s@%.1f", fontPath, size)
	if face, ok := rm.fontFaceCache[key]; ok {
		return face, nil
	}

	source, err := rm.loadFontSource(fontPath)
	if err != nil {
		return nil, err
	}

	face := &text.GoTextFace{Source: source, Size: size}
	rm.fontFaceCache[key] = face
	return face, nil
}

func (rm *ResourceManager) loadFontSource(fontPath string) (*text.GoTextFaceSource, error) {
	if source, ok := rm.fontSources[fontPath]; ok {
		return source, nil
	}

	var data []byte
	if fontPath == "" {
		data = goregular.TTF
	} else {
		p, err := rm.ResolvePath(fontPath)
		if err != nil {
			return nil, err
		}
		if data, err = embedded.ReadFile(p); err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", p, err)
		}
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %q: %w", fontPath, err)
	}
	rm.fontSources[fontPath] = source
	return source, nil
}

// LoadResourceGroup preloads every image and sound of a group.
// Missing resources are collected into the returned error; the rest are still loaded.
func (rm *ResourceManager) LoadResourceGroup(groupName string) error {
	if rm.config == nil {
		return fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}
	group, ok := rm.config.Groups[groupName]
	if !ok {
		return fmt.Errorf("resource group not found: %s", groupName)
	}

	var errs []error
	for _, img := range group.Images {
		if _, err := rm.LoadImage(img.ID); err != nil {
			errs = append(errs, err)
		}
	}
	if rm.audioContext != nil {
		for _, sound := range group.Sounds {
			if _, err := rm.LoadSoundEffect(sound.ID); err != nil {
				errs = append(errs, err)
			}
		}
	}

	log.Printf("[ResourceManager] Preloaded group %s (%d images, %d sounds, %d failed)",
		groupName, len(group.Images), len(group.Sounds), len(errs))
	return errors.Join(errs...)
}
