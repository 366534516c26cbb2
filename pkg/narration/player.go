// Package narration 实现旁白的打字机效果
//
// Player 按固定节奏逐字（按字素簇）把文本写到显示端，完成后追加光标并触发回调。
// 计时由游戏循环的 Update(dt) 驱动，没有独立的 goroutine。
package narration

import (
	"log"
	"strings"
	"time"

	"github.com/decker502/storyplayer/pkg/types"
	"github.com/rivo/uniseg"
)

const (
	// DefaultInterval 默认每个字符的显示间隔
	DefaultInterval = 50 * time.Millisecond
	// CursorMarker 文本显示完成后追加的光标
	CursorMarker = "|"
)

// TextSink 旁白文本显示端
type TextSink interface {
	// SetNarrationText 设置当前显示的旁白文本（整体替换）
	SetNarrationText(text string)
}

// CuePlayer 音效播放端
type CuePlayer interface {
	PlayCue(channel types.CueChannel, ref string) error
	StopCue(channel types.CueChannel)
}

// Config 打字机参数
type Config struct {
	Interval time.Duration // 每个字符的间隔，<=0 时使用 DefaultInterval
	CueRef   string        // 打字音效资源引用，为空则不播放
	Cursor   string        // 完成后追加的光标，为空时使用 CursorMarker
}

// Player 旁白播放器
//
// 状态机：Idle → Revealing → Idle
//   - Reveal: 取消进行中的播放后进入 Revealing
//   - Update: 每经过一个间隔显示一个字符，最后一个字符显示后回到 Idle 并触发回调
//   - Cancel: 回到 Idle，丢弃剩余字符和回调
//
// 注意：非线程安全，只能在游戏循环中调用
type Player struct {
	sink  TextSink
	audio CuePlayer // 可为 nil

	interval float64 // 秒
	cueRef   string
	cursor   string

	// 当前播放状态
	clusters   []string
	revealed   int
	shown      strings.Builder
	active     bool
	elapsed    float64
	onComplete func()
	generation uint64 // 每次 Reveal 递增，用于识别被取代的播放
}

// NewPlayer 创建旁白播放器
//
// 参数：
//   - sink: 文本显示端
//   - audio: 音效播放端（可为 nil，表示静音）
//   - cfg: 打字机参数
func NewPlayer(sink TextSink, audio CuePlayer, cfg Config) *Player {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	cursor := cfg.Cursor
	if cursor == "" {
		cursor = CursorMarker
	}

	return &Player{
		sink:     sink,
		audio:    audio,
		interval: interval.Seconds(),
		cueRef:   cfg.CueRef,
		cursor:   cursor,
	}
}

// SetInterval 修改打字节奏，对下一个字符立即生效
func (p *Player) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	p.interval = interval.Seconds()
}

// Interval 返回当前打字节奏
func (p *Player) Interval() time.Duration {
	return time.Duration(p.interval * float64(time.Second))
}

// IsActive 是否正在逐字显示
func (p *Player) IsActive() bool {
	return p.active
}

// Reveal 开始逐字显示 text，全部显示后调用 onComplete
//
// 进行中的播放会被立即取消，它的 onComplete 永远不会被调用。
// text 为空时 onComplete 在本次调用内同步触发。
func (p *Player) Reveal(text string, onComplete func()) {
	p.Cancel()

	p.generation++
	p.clusters = splitGraphemes(text)
	p.revealed = 0
	p.shown.Reset()
	p.elapsed = 0
	p.onComplete = onComplete
	p.active = true

	p.sink.SetNarrationText("")
	p.startCue()

	if len(p.clusters) == 0 {
		p.finish()
	}
}

// Update 推进计时器
// dt 为距上一帧的时间（秒）
func (p *Player) Update(dt float64) {
	if !p.active {
		return
	}

	p.elapsed += dt
	gen := p.generation
	// 回调中可能开始新的播放，generation 变化后停止消耗本帧剩余时间
	for p.active && p.generation == gen && p.elapsed >= p.interval {
		p.elapsed -= p.interval
		p.step()
	}
}

// Skip 立即显示剩余全部文本并完成
func (p *Player) Skip() {
	if !p.active {
		return
	}

	for p.revealed < len(p.clusters) {
		p.shown.WriteString(p.clusters[p.revealed])
		p.revealed++
	}
	p.sink.SetNarrationText(p.shown.String())
	p.finish()
}

// Cancel 取消当前播放（幂等）
// 停止打字音效，丢弃剩余字符和回调，已显示的文本保持不变
func (p *Player) Cancel() {
	if !p.active {
		return
	}

	p.active = false
	p.onComplete = nil
	p.clusters = nil
	p.stopCue()
}

// step 显示下一个字符，最后一个字符显示后完成
func (p *Player) step() {
	p.shown.WriteString(p.clusters[p.revealed])
	p.revealed++
	p.sink.SetNarrationText(p.shown.String())

	if p.revealed >= len(p.clusters) {
		p.finish()
	}
}

// finish 结束播放：停止音效、追加光标、触发回调
// 先清空状态再调用回调，回调中可以安全地开始新的播放
func (p *Player) finish() {
	p.active = false
	p.stopCue()
	p.sink.SetNarrationText(p.shown.String() + p.cursor)

	callback := p.onComplete
	p.onComplete = nil
	p.clusters = nil

	if callback != nil {
		callback()
	}
}

func (p *Player) startCue() {
	if p.audio == nil || p.cueRef == "" {
		return
	}
	if err := p.audio.PlayCue(types.CueNarration, p.cueRef); err != nil {
		// 音效失败不影响文字显示
		log.Printf("[NarrationPlayer] Warning: typing cue failed: %v", err)
	}
}

func (p *Player) stopCue() {
	if p.audio == nil {
		return
	}
	p.audio.StopCue(types.CueNarration)
}

// splitGraphemes 按用户感知的字符（字素簇）拆分文本
// 组合字符、韩文音节和 emoji 不会被拆开
func splitGraphemes(text string) []string {
	if text == "" {
		return nil
	}

	clusters := make([]string, 0, len(text))
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	return clusters
}
