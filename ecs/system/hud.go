package system

import (
	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
)

const (
	defaultDialogueSeconds = 3.0
	confettiSeconds        = 4.0
)

// UISink accepts presentation commands. Visibility set here never changes
// who receives input.
type UISink interface {
	SetHeartsVisible(pod, count int)
	SetLifeText(char, lives int)
	ShowCanvas(id component.Canvas, visible bool)
	ShowDialogue(char int, text string)
	SetWorldVisible(visible bool)
	SetPodVisible(pod int, visible bool)
	SetRoomLight(room int, on bool)
	ShowComputerScreen(pod int)
	Celebrate()
}

// WorldUI writes UI commands into the HUD component read by the renderer.
type WorldUI struct {
	w               *ecs.World
	dialogueSeconds float64
}

func NewWorldUI(w *ecs.World, dialogueSeconds float64) *WorldUI {
	if dialogueSeconds <= 0 {
		dialogueSeconds = defaultDialogueSeconds
	}
	return &WorldUI{w: w, dialogueSeconds: dialogueSeconds}
}

func (u *WorldUI) hud() *component.HUD {
	return EnsureHUD(u.w)
}

// EnsureHUD returns the world's HUD, creating it with the main canvas shown.
func EnsureHUD(w *ecs.World) *component.HUD {
	ent, ok := ecs.First(w, component.HUDComponent.Kind())
	if !ok {
		ent = ecs.CreateEntity(w)
		_ = ecs.Add(w, ent, component.HUDComponent.Kind(), &component.HUD{
			Canvases: map[component.Canvas]bool{component.CanvasMain: true},
		})
	}
	hud := ecs.MustGet(w, ent, component.HUDComponent.Kind())
	if hud.Canvases == nil {
		hud.Canvases = map[component.Canvas]bool{component.CanvasMain: true}
	}
	return hud
}

func (u *WorldUI) SetHeartsVisible(pod, count int) {
	if count < 0 {
		count = 0
	}
	u.hud().Hearts[mustIndex(pod)] = count
}

func (u *WorldUI) SetLifeText(char, lives int) {
	u.hud().Lives[mustIndex(char)] = lives
}

func (u *WorldUI) ShowCanvas(id component.Canvas, visible bool) {
	u.hud().Canvases[id] = visible
}

func (u *WorldUI) ShowDialogue(char int, text string) {
	hud := u.hud()
	hud.Dialogue = text
	hud.DialogueOwner = mustIndex(char)
	hud.DialogueTimer = u.dialogueSeconds
}

func (u *WorldUI) SetWorldVisible(visible bool) {
	u.hud().WorldHidden = !visible
}

func (u *WorldUI) SetPodVisible(pod int, visible bool) {
	u.hud().PodVisible[mustIndex(pod)] = visible
}

func (u *WorldUI) SetRoomLight(room int, on bool) {
	mustIndex(room)
	ecs.ForEach(u.w, component.RoomLightComponent.Kind(), func(_ ecs.Entity, light *component.RoomLight) {
		if light.Room == room {
			light.On = on
		}
	})
}

func (u *WorldUI) ShowComputerScreen(pod int) {
	u.hud().ComputerScreens[mustIndex(pod)] = true
}

func (u *WorldUI) Celebrate() {
	u.hud().Confetti = confettiSeconds
}

// HUDSystem expires timed HUD elements.
type HUDSystem struct{}

func NewHUDSystem() *HUDSystem {
	return &HUDSystem{}
}

func (s *HUDSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	ecs.ForEach(w, component.HUDComponent.Kind(), func(_ ecs.Entity, hud *component.HUD) {
		if hud.DialogueTimer > 0 {
			hud.DialogueTimer -= dt
			if hud.DialogueTimer <= 0 {
				hud.DialogueTimer = 0
				hud.Dialogue = ""
			}
		}
		if hud.Confetti > 0 {
			hud.Confetti -= dt
			if hud.Confetti < 0 {
				hud.Confetti = 0
			}
		}
	})
}

type nopUI struct{}

func (nopUI) SetHeartsVisible(int, int) {}
func (nopUI) SetLifeText(int, int) {}
func (nopUI) ShowCanvas(component.Canvas, bool) {}
func (nopUI) ShowDialogue(int, string) {}
func (nopUI) SetWorldVisible(bool) {}
func (nopUI) SetPodVisible(int, bool) {}
func (nopUI) SetRoomLight(int, bool) {}
func (nopUI) ShowComputerScreen(int) {}
func (nopUI) Celebrate() {}
