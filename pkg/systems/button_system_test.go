package systems

import (
	"testing"

	"github.com/decker502/storyplayer/pkg/components"
	"github.com/decker502/storyplayer/pkg/ecs"
	"github.com/decker502/storyplayer/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

func addButton(em *ecs.EntityManager, x, y float64, onClick func()) *components.ButtonComponent {
	id := em.CreateEntity()
	button := &components.ButtonComponent{
		Width:   100,
		Height:  30,
		Enabled: true,
		OnClick: onClick,
	}
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, button)
	return button
}

func TestButtonSystem_States(t *testing.T) {
	em := ecs.NewEntityManager()
	button := addButton(em, 10, 10, nil)
	s := NewButtonSystem(em)

	tests := []struct {
		name  string
		input utils.InputState
		want  components.UIState
	}{
		{"outside", utils.InputState{X: 500, Y: 500}, components.UINormal},
		{"hover", utils.InputState{X: 20, Y: 20}, components.UIHovered},
		{"pressed", utils.InputState{X: 20, Y: 20, Pressed: true}, components.UIClicked},
		{"pressed outside", utils.InputState{X: 200, Y: 20, Pressed: true}, components.UINormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if s.Update(tt.input) {
				t.Error("no click expected")
			}
			if button.State != tt.want {
				t.Errorf("state = %v, want %v", button.State, tt.want)
			}
		})
	}
}

func TestButtonSystem_ClickOnRelease(t *testing.T) {
	em := ecs.NewEntityManager()
	clicks := 0
	addButton(em, 10, 10, func() { clicks++ })
	s := NewButtonSystem(em)

	s.Update(utils.InputState{X: 20, Y: 20, Pressed: true, JustPressed: true})
	if clicks != 0 {
		t.Fatal("click should fire on release, not press")
	}
	if !s.Update(utils.InputState{X: 20, Y: 20, JustReleased: true}) {
		t.Error("Update should report the click")
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if !s.HoveredAny() {
		t.Error("button should be hovered after release")
	}

	// 在按钮外释放不触发
	s.Update(utils.InputState{X: 300, Y: 20, JustReleased: true})
	if clicks != 1 {
		t.Errorf("clicks = %d after release outside, want 1", clicks)
	}
	if s.HoveredAny() {
		t.Error("no button should be hovered")
	}
}

func TestButtonSystem_Disabled(t *testing.T) {
	em := ecs.NewEntityManager()
	clicked := false
	button := addButton(em, 10, 10, func() { clicked = true })
	button.Enabled = false

	NewButtonSystem(em).Update(utils.InputState{X: 20, Y: 20, JustReleased: true})
	if clicked || button.State != components.UIDisabled {
		t.Errorf("disabled button reacted: clicked=%v state=%v", clicked, button.State)
	}
}

// 回调里销毁所有按钮并创建新按钮（跳转到下一个节点）
func TestButtonSystem_CallbackRebuildsButtons(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewButtonSystem(em)

	var rebuilt *components.ButtonComponent
	secondClicks := 0
	addButton(em, 10, 10, func() {
		for _, id := range ecs.GetEntitiesWith1[*components.ButtonComponent](em) {
			em.DestroyEntity(id)
		}
		em.RemoveMarkedEntities()
		rebuilt = addButton(em, 10, 10, func() { secondClicks++ })
	})
	// 重叠的第二个按钮：同一次点击只触发第一个
	addButton(em, 10, 10, func() { secondClicks++ })

	s.Update(utils.InputState{X: 20, Y: 20, JustReleased: true})
	if rebuilt == nil {
		t.Fatal("first button callback not called")
	}
	if secondClicks != 0 {
		t.Errorf("one release triggered %d extra clicks", secondClicks)
	}
	if rebuilt.State != components.UINormal {
		t.Error("new button should start in normal state")
	}
}

func TestButtonRenderSystem_Draw(t *testing.T) {
	em := ecs.NewEntityManager()
	addButton(em, 10, 10, nil).State = components.UIHovered
	addButton(em, 10, 50, nil).State = components.UIDisabled

	screen := ebiten.NewImage(200, 100)
	NewButtonRenderSystem(em).Draw(screen)
}
