package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	scenes       map[string]Scene // 已注册的场景（名称 -> 场景）
	currentName  string
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use Register and Show to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		scenes: make(map[string]Scene),
	}
}

// Register 注册具名场景
func (sm *SceneManager) Register(name string, scene Scene) {
	sm.scenes[name] = scene
}

// Show 切换到已注册的具名场景
// 名称未注册时记录错误并保持当前场景
func (sm *SceneManager) Show(name string) bool {
	scene, ok := sm.scenes[name]
	if !ok {
		log.Printf("[SceneManager] 错误: 场景未注册: %s", name)
		return false
	}
	sm.SwitchTo(scene)
	sm.currentName = name
	return true
}

// SwitchTo changes the active scene to the provided scene.
// Scenes implementing Enterable get OnEnter called, even when re-entered.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
	sm.currentName = ""
	if e, ok := scene.(Enterable); ok {
		e.OnEnter()
	}
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentName 返回通过 Show 切换的场景名称，直接 SwitchTo 时为空
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
