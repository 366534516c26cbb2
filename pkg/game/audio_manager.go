package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/storyplayer/pkg/types"
)

// ErrAudioPlaybackFailed 提示音无法加载或播放
// 调用方记录日志后忽略，不中断文字显示和剧情跳转
var ErrAudioPlaybackFailed = errors.New("audio playback failed")

// Playback 单个可播放音效
// *audio.Player 满足此接口
type Playback interface {
	Play()
	Pause()
	Rewind() error
	SetVolume(volume float64)
	IsPlaying() bool
}

// cueSlot 单个声道的当前状态
type cueSlot struct {
	ref    string
	player Playback
}

// AudioManager 音频管理器
// 职责：
//   - 按声道（叙述、结果）播放提示音，每个声道同一时间只有一个提示音
//   - 在同一声道开始新提示音时，停止并倒回旧的提示音
//   - 应用声道音量与 SettingsManager 中的音效音量
//
// 所有错误都包装为 ErrAudioPlaybackFailed
type AudioManager struct {
	load            func(ref string) (Playback, error) // 加载音效（通常为 ResourceManager.LoadSoundEffect）
	settingsManager *SettingsManager                   // 设置管理器（可为 nil）
	channelVolumes  map[types.CueChannel]float64
	slots           map[types.CueChannel]*cueSlot
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（用于加载音频文件）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return newAudioManager(func(ref string) (Playback, error) {
		player, err := rm.LoadSoundEffect(ref)
		if err != nil {
			return nil, err
		}
		return player, nil
	}, sm)
}

func newAudioManager(load func(ref string) (Playback, error), sm *SettingsManager) *AudioManager {
	return &AudioManager{
		load:            load,
		settingsManager: sm,
		channelVolumes:  make(map[types.CueChannel]float64),
		slots:           make(map[types.CueChannel]*cueSlot),
	}
}

// SetChannelVolume 设置声道固定音量（0.0 ~ 1.0）
// 未设置的声道使用 1.0
func (am *AudioManager) SetChannelVolume(channel types.CueChannel, volume float64) {
	am.channelVolumes[channel] = clampVolume(volume)
}

// PlayCue 在指定声道播放提示音
//
// 音效被禁用时什么也不做并返回 nil
//
// 参数：
//   - channel: 声道（types.CueNarration / types.CueResult）
//   - ref: 音效资源ID或路径
//
// 返回：
//   - error: 加载或倒回失败时返回包装了 ErrAudioPlaybackFailed 的错误
func (am *AudioManager) PlayCue(channel types.CueChannel, ref string) error {
	am.StopCue(channel)

	if !am.soundEnabled() {
		return nil
	}

	player, err := am.load(ref)
	if err != nil {
		return fmt.Errorf("%w: %s cue %s: %v", ErrAudioPlaybackFailed, channel, ref, err)
	}

	if err := player.Rewind(); err != nil {
		return fmt.Errorf("%w: rewind %s cue %s: %v", ErrAudioPlaybackFailed, channel, ref, err)
	}
	player.SetVolume(am.volumeFor(channel))
	player.Play()

	am.slots[channel] = &cueSlot{ref: ref, player: player}
	return nil
}

// StopCue 停止指定声道的提示音并倒回
// 声道空闲时什么也不做
func (am *AudioManager) StopCue(channel types.CueChannel) {
	slot, ok := am.slots[channel]
	if !ok {
		return
	}
	delete(am.slots, channel)

	slot.player.Pause()
	if err := slot.player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind %s cue %s: %v", channel, slot.ref, err)
	}
}

// StopAll 停止所有声道
func (am *AudioManager) StopAll() {
	for channel := range am.slots {
		am.StopCue(channel)
	}
}

// ActiveCue 返回声道当前的提示音资源引用，空闲时返回 ""
func (am *AudioManager) ActiveCue(channel types.CueChannel) string {
	if slot, ok := am.slots[channel]; ok {
		return slot.ref
	}
	return ""
}

// ApplySettings 把当前音量设置应用到正在播放的提示音
// 音效被关闭时停止所有声道
func (am *AudioManager) ApplySettings() {
	if !am.soundEnabled() {
		am.StopAll()
		return
	}
	for channel, slot := range am.slots {
		slot.player.SetVolume(am.volumeFor(channel))
	}
}

func (am *AudioManager) soundEnabled() bool {
	if am.settingsManager == nil {
		return true
	}
	return am.settingsManager.GetSettings().SoundEnabled
}

// volumeFor 声道音量 × 全局音效音量
func (am *AudioManager) volumeFor(channel types.CueChannel) float64 {
	volume, ok := am.channelVolumes[channel]
	if !ok {
		volume = 1.0
	}
	if am.settingsManager != nil {
		volume *= am.settingsManager.GetSettings().SoundVolume
	}
	return volume
}
