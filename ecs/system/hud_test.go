package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
)

func TestEnsureHUDStartsOnMainCanvas(t *testing.T) {
	w := ecs.NewWorld()
	hud := EnsureHUD(w)
	assert.True(t, hud.Canvases[component.CanvasMain])
	assert.Same(t, hud, EnsureHUD(w))
	assert.Equal(t, 1, ecs.Count(w, component.HUDComponent.Kind()))
}

func TestWorldUIWrites(t *testing.T) {
	w := ecs.NewWorld()
	ui := NewWorldUI(w, 0)

	ui.SetHeartsVisible(1, -2)
	ui.SetHeartsVisible(2, 3)
	ui.SetLifeText(0, 2)
	ui.ShowCanvas(component.CanvasWin, true)
	ui.ShowCanvas(component.CanvasMain, false)
	ui.SetWorldVisible(false)
	ui.SetPodVisible(2, true)
	ui.ShowComputerScreen(1)
	ui.ShowDialogue(2, "Hm.")
	ui.Celebrate()

	hud := EnsureHUD(w)
	assert.Equal(t, [component.PodCount]int{0, 0, 3}, hud.Hearts)
	assert.Equal(t, 2, hud.Lives[0])
	assert.True(t, hud.Canvases[component.CanvasWin])
	assert.False(t, hud.Canvases[component.CanvasMain])
	assert.True(t, hud.WorldHidden)
	assert.Equal(t, [component.PodCount]bool{false, false, true}, hud.PodVisible)
	assert.Equal(t, [component.PodCount]bool{false, true, false}, hud.ComputerScreens)
	assert.Equal(t, "Hm.", hud.Dialogue)
	assert.Equal(t, 2, hud.DialogueOwner)
	assert.Equal(t, defaultDialogueSeconds, hud.DialogueTimer)
	assert.Equal(t, confettiSeconds, hud.Confetti)
}

func TestWorldUIRoomLight(t *testing.T) {
	lvl := newTestLevel(t)
	ui := NewWorldUI(lvl.w, 1)
	for room := 0; room < component.PodCount; room++ {
		ui.SetRoomLight(room, true)
	}

	ui.SetRoomLight(1, false)

	ecs.ForEach(lvl.w, component.RoomLightComponent.Kind(), func(_ ecs.Entity, light *component.RoomLight) {
		assert.Equal(t, light.Room != 1, light.On, "room %d", light.Room)
	})
}

func TestWorldUIRejectsBadIndex(t *testing.T) {
	ui := NewWorldUI(ecs.NewWorld(), 1)
	assert.Panics(t, func() { ui.SetLifeText(component.PodCount, 1) })
	assert.Panics(t, func() { ui.ShowDialogue(-1, "x") })
}

func TestHUDSystemExpiresTimedElements(t *testing.T) {
	w := ecs.NewWorld()
	ui := NewWorldUI(w, 1)
	ui.ShowDialogue(0, "Hm, hm.")
	ui.Celebrate()

	step(w, 3, 0.25, NewHUDSystem())
	hud := EnsureHUD(w)
	assert.Equal(t, "Hm, hm.", hud.Dialogue)
	assert.InDelta(t, 0.25, hud.DialogueTimer, 1e-9)

	step(w, 1, 0.25, NewHUDSystem())
	assert.Empty(t, hud.Dialogue)
	assert.Zero(t, hud.DialogueTimer)
	assert.InDelta(t, confettiSeconds-1, hud.Confetti, 1e-9)

	step(w, 20, 0.25, NewHUDSystem())
	assert.Zero(t, hud.Confetti)
}
