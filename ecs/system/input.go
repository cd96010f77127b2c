package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
)

const stickDeadzone = 0.2

// InputSystem samples keyboard and gamepad state into the Input of every
// active character. Inactive characters get a zeroed Input.
type InputSystem struct {
	debug bool
}

func NewInputSystem(debug bool) *InputSystem {
	return &InputSystem{debug: debug}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	up := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	down := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	interact := inpututil.IsKeyJustPressed(ebiten.KeyE) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	skip := i.debug && inpututil.IsKeyJustPressed(ebiten.KeyL)
	restart := inpututil.IsKeyJustPressed(ebiten.KeyR)

	moveX, moveY := 0.0, 0.0
	if left {
		moveX -= 1
	}
	if right {
		moveX += 1
	}
	if up {
		moveY += 1
	}
	if down {
		moveY -= 1
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(lx) > stickDeadzone {
			moveX = lx
		}
		// Stick y grows downwards; the world's grows upwards.
		if math.Abs(ly) > stickDeadzone {
			moveY = -ly
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft) {
			moveX = -1
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight) {
			moveX = 1
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop) {
			moveY = 1
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom) {
			moveY = -1
		}

		interact = interact || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		restart = restart || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}

	ApplyInput(w, component.Input{MoveX: moveX, MoveY: moveY, Interact: interact, SkipPressed: skip})
	if restart {
		RequestRestart(w, "restart key")
	}
}

// ApplyInput copies in to every active character and clears the rest.
func ApplyInput(w *ecs.World, in component.Input) {
	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.InputComponent.Kind(), func(_ ecs.Entity, c *component.Character, input *component.Input) {
		if c.Active {
			*input = in
			return
		}
		*input = component.Input{}
	})
}
