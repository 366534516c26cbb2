package game

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
	"testing/fstest"

	"github.com/decker502/storyplayer/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// testAudioContext is shared by all tests; Ebitengine allows only one audio context per process.
var testAudioContext *audio.Context

func TestMain(m *testing.M) {
	testAudioContext = audio.NewContext(48000)
	os.Exit(m.Run())
}

const testResourcesYAML = `
version: "1.0"
base_path: assets
groups:
  story:
    images:
      - id: IMAGE_HALLWAY
        path: images/hallway
    sounds:
      - id: SOUND_TYPEWRITER
        path: sounds/typewriter
      - id: SOUND_MISSING
        path: sounds/missing.ogg
`

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// testWAV builds a 16-bit mono PCM WAV with the given number of silent samples.
func testWAV(samples int) []byte {
	var buf bytes.Buffer
	dataSize := samples * 2
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))     // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1))     // mono
	binary.Write(&buf, binary.LittleEndian, uint32(48000)) // sample rate
	binary.Write(&buf, binary.LittleEndian, uint32(96000)) // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(2))     // block align
	binary.Write(&buf, binary.LittleEndian, uint16(16))    // bits per sample
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}

func setupTestFS(t *testing.T) {
	t.Helper()
	assets := fstest.MapFS{
		"assets/images/hallway.png":     {Data: testPNG(t)},
		"assets/images/broken.png":      {Data: []byte("not a png")},
		"assets/sounds/typewriter.wav":  {Data: testWAV(480)},
		"assets/sounds/typewriter.flac": {Data: []byte("fLaC")},
	}
	data := fstest.MapFS{
		"data/resources.yaml": {Data: []byte(testResourcesYAML)},
		"data/bad.yaml":       {Data: []byte("groups: [")},
	}
	embedded.Init(assets, data)
	t.Cleanup(func() { embedded.Init(nil, nil) })
}

func newTestResourceManager(t *testing.T) *ResourceManager {
	t.Helper()
	setupTestFS(t)
	rm := NewResourceManager(testAudioContext)
	if err := rm.LoadResourceConfig("data/resources.yaml"); err != nil {
		t.Fatalf("LoadResourceConfig failed: %v", err)
	}
	return rm
}

func TestLoadResourceConfig(t *testing.T) {
	rm := newTestResourceManager(t)

	tests := []struct {
		ref  string
		want string
	}{
		{"IMAGE_HALLWAY", "assets/images/hallway.png"},
		{"SOUND_TYPEWRITER", "assets/sounds/typewriter.wav"},
		{"SOUND_MISSING", "assets/sounds/missing.ogg"},
		{"assets/images/other.png", "assets/images/other.png"},
		{"data/story.yaml", "data/story.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := rm.ResolvePath(tt.ref)
			if err != nil {
				t.Fatalf("ResolvePath(%q) error: %v", tt.ref, err)
			}
			if got != tt.want {
				t.Errorf("ResolvePath(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}

	if _, err := rm.ResolvePath("IMAGE_UNKNOWN"); !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("ResolvePath(unknown) error = %v, want ErrResourceNotFound", err)
	}
}

func TestLoadResourceConfig_Errors(t *testing.T) {
	setupTestFS(t)
	rm := NewResourceManager(testAudioContext)

	if err := rm.LoadResourceConfig("data/missing.yaml"); err == nil {
		t.Error("expected error for missing config")
	}
	if err := rm.LoadResourceConfig("data/bad.yaml"); err == nil {
		t.Error("expected error for malformed config")
	}
	if err := rm.LoadResourceGroup("story"); err == nil {
		t.Error("expected error when config not loaded")
	}
}

func TestLoadImage(t *testing.T) {
	rm := newTestResourceManager(t)

	img, err := rm.LoadImage("IMAGE_HALLWAY")
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != 4 || h != 2 {
		t.Errorf("image size = %dx%d, want 4x2", w, h)
	}

	// ID and path share one cache entry
	again, err := rm.LoadImage("assets/images/hallway.png")
	if err != nil {
		t.Fatalf("LoadImage by path failed: %v", err)
	}
	if again != img {
		t.Error("expected cached image instance")
	}
	if rm.GetImage("IMAGE_HALLWAY") != img {
		t.Error("GetImage returned different instance than LoadImage")
	}
}

func TestLoadImage_Errors(t *testing.T) {
	rm := newTestResourceManager(t)

	if _, err := rm.LoadImage("assets/images/nope.png"); err == nil {
		t.Error("expected error for missing image")
	}
	if _, err := rm.LoadImage("assets/images/broken.png"); err == nil {
		t.Error("expected error for invalid image data")
	}
	if rm.GetImage("assets/images/nope.png") != nil {
		t.Error("GetImage should return nil for unloaded image")
	}
}

func TestLoadSoundEffect(t *testing.T) {
	rm := newTestResourceManager(t)

	player, err := rm.LoadSoundEffect("SOUND_TYPEWRITER")
	if err != nil {
		t.Fatalf("LoadSoundEffect failed: %v", err)
	}
	again, err := rm.LoadSoundEffect("SOUND_TYPEWRITER")
	if err != nil {
		t.Fatalf("second LoadSoundEffect failed: %v", err)
	}
	if again != player {
		t.Error("expected cached player instance")
	}
}

func TestLoadSoundEffect_Errors(t *testing.T) {
	rm := newTestResourceManager(t)

	if _, err := rm.LoadSoundEffect("SOUND_MISSING"); err == nil {
		t.Error("expected error for missing sound file")
	}
	if _, err := rm.LoadSoundEffect("assets/sounds/typewriter.flac"); err == nil {
		t.Error("expected error for unsupported format")
	}

	noAudio := NewResourceManager(nil)
	if _, err := noAudio.LoadSoundEffect("assets/sounds/typewriter.wav"); err == nil {
		t.Error("expected error without audio context")
	}
}

func TestLoadFont(t *testing.T) {
	rm := newTestResourceManager(t)

	face, err := rm.LoadFont("", 20)
	if err != nil {
		t.Fatalf("LoadFont default failed: %v", err)
	}
	if face.Size != 20 {
		t.Errorf("face size = %v, want 20", face.Size)
	}

	same, _ := rm.LoadFont("", 20)
	if same != face {
		t.Error("expected cached face for same size")
	}
	bigger, _ := rm.LoadFont("", 32)
	if bigger == face || bigger.Source != face.Source {
		t.Error("expected new face sharing the same source")
	}

	if _, err := rm.LoadFont("assets/fonts/missing.ttf", 20); err == nil {
		t.Error("expected error for missing font file")
	}
}

func TestLoadResourceGroup(t *testing.T) {
	rm := newTestResourceManager(t)

	err := rm.LoadResourceGroup("story")
	if err == nil {
		t.Fatal("expected error for missing SOUND_MISSING")
	}
	if rm.GetImage("IMAGE_HALLWAY") == nil {
		t.Error("image should be loaded despite other failures")
	}

	if err := rm.LoadResourceGroup("unknown"); err == nil {
		t.Error("expected error for unknown group")
	}
}
