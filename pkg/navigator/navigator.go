// Package navigator 实现剧情导航：节点跳转、答题判定、生命值与游戏结束流程
package navigator

import (
	"fmt"
	"log"

	"github.com/decker502/storyplayer/pkg/story"
	"github.com/decker502/storyplayer/pkg/types"
	"github.com/google/uuid"
)

// DefaultMaxLives 默认最大生命数
const DefaultMaxLives = 3

// Copy 开始界面和游戏结束界面的文案
type Copy struct {
	StartTitle    string
	StartBody     string
	GameOverTitle string
	GameOverBody  string
}

// Config 导航器参数
type Config struct {
	MaxLives   int    // <=0 时使用 DefaultMaxLives
	SuccessCue string // 答对提示音资源引用，为空则不播放
	FailureCue string // 答错提示音资源引用，为空则不播放
	Copy       Copy
}

// Navigator 剧情导航器
//
// 一局游戏对应一个实例。所有方法只能在游戏循环中调用（单线程）。
//
// 状态：
//   - currentNodeID: 当前显示的节点
//   - lives: 剩余生命，始终在 [0, maxLives] 范围内
//   - sessionID: 每次从开始界面进入游戏时重新生成，仅用于日志
type Navigator struct {
	story    *story.Story
	narrator Narrator
	display  Display
	audio    CuePlayer // 可为 nil

	maxLives   int
	successCue string
	failureCue string
	copy       Copy

	currentNodeID string
	lives         int
	sessionID     string
}

// New 创建剧情导航器
//
// 参数：
//   - s: 剧情表
//   - narrator: 旁白播放器
//   - display: 显示端
//   - audio: 结果音效播放端（可为 nil）
//   - cfg: 导航参数
func New(s *story.Story, narrator Narrator, display Display, audio CuePlayer, cfg Config) *Navigator {
	maxLives := cfg.MaxLives
	if maxLives <= 0 {
		maxLives = DefaultMaxLives
	}

	return &Navigator{
		story:         s,
		narrator:      narrator,
		display:       display,
		audio:         audio,
		maxLives:      maxLives,
		successCue:    cfg.SuccessCue,
		failureCue:    cfg.FailureCue,
		copy:          cfg.Copy,
		currentNodeID: s.StartID(),
		lives:         maxLives,
	}
}

// Lives 返回剩余生命
func (n *Navigator) Lives() int {
	return n.lives
}

// MaxLives 返回最大生命
func (n *Navigator) MaxLives() int {
	return n.maxLives
}

// CurrentNodeID 返回当前节点 ID
func (n *Navigator) CurrentNodeID() string {
	return n.currentNodeID
}

// SessionID 返回当前游玩会话 ID（未开始时为空）
func (n *Navigator) SessionID() string {
	return n.sessionID
}

// ShowTitle 显示开始界面（启动时调用）
func (n *Navigator) ShowTitle() {
	n.display.ShowStartView(n.copy.StartTitle, n.copy.StartBody)
	n.refreshLives()
}

// Start 从开始界面进入游戏，显示起始节点
func (n *Navigator) Start() error {
	n.sessionID = uuid.NewString()
	log.Printf("[Navigator] Session %s started", n.sessionID)

	n.display.ShowGameView()
	return n.GoTo(n.story.StartID())
}

// GoTo 显示指定节点
//
// 步骤：
//  1. 起始节点：生命值重置为最大值并刷新显示
//  2. 立即更新图片（不等待文字显示）
//  3. 清空旧的选项按钮
//  4. 逐字显示文本，完成后按顺序渲染选项（结局节点不渲染）
//
// 节点不存在时返回包装了 story.ErrNodeNotFound 的错误，界面保持不变
func (n *Navigator) GoTo(nodeID string) error {
	node, err := n.story.Lookup(nodeID)
	if err != nil {
		log.Printf("[Navigator] Error: %v", err)
		return fmt.Errorf("navigate to %q: %w", nodeID, err)
	}

	if nodeID == n.story.StartID() {
		n.lives = n.maxLives
		n.refreshLives()
	}

	n.currentNodeID = nodeID
	n.display.SetImage(node.Image)
	n.display.RenderOptions(nil)

	log.Printf("[Navigator] Showing node %s (lives: %d/%d)", nodeID, n.lives, n.maxLives)

	n.narrator.Reveal(node.Text, func() {
		n.renderOptions(node)
	})
	return nil
}

// Select 处理玩家选择的选项
//
//   - ScoringNone: 直接跳转
//   - ScoringCorrect: 播放成功提示音后跳转
//   - ScoringIncorrect: 播放失败提示音，扣一条命；生命归零时进入游戏结束，否则跳转
func (n *Navigator) Select(opt story.Option) error {
	switch opt.Scoring {
	case story.ScoringCorrect:
		n.playResultCue(n.successCue)

	case story.ScoringIncorrect:
		n.playResultCue(n.failureCue)
		n.loseLife()
		if n.lives == 0 {
			n.GameOver()
			return nil
		}
	}

	return n.GoTo(opt.Target)
}

// GameOver 结束本局游戏
// 停止旁白，显示带游戏结束文案的开始界面，生命值和当前节点重置
// 玩家再次点击开始按钮时调用 Start()
func (n *Navigator) GameOver() {
	log.Printf("[Navigator] Session %s: game over at node %s", n.sessionID, n.currentNodeID)

	n.narrator.Cancel()
	n.display.RenderOptions(nil)
	n.display.ShowStartView(n.copy.GameOverTitle, n.copy.GameOverBody)

	n.lives = n.maxLives
	n.refreshLives()
	n.currentNodeID = n.story.StartID()
	n.sessionID = ""
}

// loseLife 扣除一条命（不低于 0）并刷新显示
func (n *Navigator) loseLife() {
	if n.lives > 0 {
		n.lives--
	}
	n.refreshLives()
	log.Printf("[Navigator] Wrong answer, lives left: %d", n.lives)
}

// refreshLives 刷新生命值和受伤指示器
func (n *Navigator) refreshLives() {
	n.display.SetLivesDisplay(n.lives)
	n.display.SetDamageLevel(types.DamageLevelFor(n.lives, n.maxLives))
}

// renderOptions 旁白完成后渲染节点的选项
func (n *Navigator) renderOptions(node *story.Node) {
	if node.IsTerminal() {
		log.Printf("[Navigator] Reached ending %s", node.ID)
		return
	}

	views := make([]OptionView, 0, len(node.Options))
	for _, opt := range node.Options {
		views = append(views, OptionView{
			Label: opt.Label,
			OnActivate: func() {
				if err := n.Select(opt); err != nil {
					log.Printf("[Navigator] Warning: option %q failed: %v", opt.Label, err)
				}
			},
		})
	}
	n.display.RenderOptions(views)
}

func (n *Navigator) playResultCue(ref string) {
	if n.audio == nil || ref == "" {
		return
	}
	if err := n.audio.PlayCue(types.CueResult, ref); err != nil {
		log.Printf("[Navigator] Warning: result cue failed: %v", err)
	}
}
