package system

import (
	"github.com/milk9111/podescape/common"
	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
)

// CharacterSystem walks the characters that accept input, publishes their
// life counters and reports each character's death once.
type CharacterSystem struct {
	ui UISink
}

func NewCharacterSystem(ui UISink) *CharacterSystem {
	if ui == nil {
		ui = nopUI{}
	}
	return &CharacterSystem{ui: ui}
}

func (s *CharacterSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	terminal := false
	if _, state, ok := levelState(w); ok {
		terminal = state.Phase.Terminal()
	}
	dt := w.DeltaTime()

	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Character, tr *component.Transform) {
		if c.InteractCooldown > 0 {
			c.InteractCooldown -= dt
			if c.InteractCooldown < 0 {
				c.InteractCooldown = 0
			}
		}

		c.Walking = false
		if terminal || c.AtExit || !c.CanMove() {
			return
		}
		in, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			return
		}
		dx := axis(in.MoveX)
		if dx == 0 {
			return
		}
		tr.X = common.Clamp(tr.X+dx*c.WalkSpeed*dt, c.MinX, c.MaxX)
		c.Walking = true
		c.FacingRight = dx > 0
	})

	forEachCharacter(w, func(_ ecs.Entity, c *component.Character) {
		s.ui.SetLifeText(c.Index, c.Lives())
		if c.ConsumeDeath() {
			w.Events().Push(ecs.Event{Kind: ecs.EventCharacterDied, Index: c.Index})
		}
	})
}
