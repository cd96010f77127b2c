package entity

import (
	"fmt"

	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
	"github.com/milk9111/podescape/prefabs"
)

// NewCharacter creates character index with its room props: computer, bed,
// locked door, exit door and room light.
func NewCharacter(w *ecs.World, index int, spec prefabs.CharacterSpec, tuning prefabs.TuningSpec) (ecs.Entity, error) {
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.TransformComponent.Kind(), &component.Transform{X: spec.Start.X, Y: spec.Start.Y}); err != nil {
		return 0, fmt.Errorf("character %d: add transform: %w", index, err)
	}
	if err := ecs.Add(w, ent, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("character %d: add input: %w", index, err)
	}
	if err := ecs.Add(w, ent, component.CharacterComponent.Kind(), &component.Character{
		Index:         index,
		Role:          component.Role(index),
		LivesLeft:     tuning.StartingLives,
		StartingLives: tuning.StartingLives,
		WalkSpeed:     tuning.WalkSpeed,
		MinX:          spec.Bounds.Min,
		MaxX:          spec.Bounds.Max,
		Width:         tuning.CharacterSize.X,
		Height:        tuning.CharacterSize.Y,
		FacingRight:   true,
		ClampMinX:     spec.CameraClamp.Min,
		ClampMaxX:     spec.CameraClamp.Max,
	}); err != nil {
		return 0, fmt.Errorf("character %d: add character: %w", index, err)
	}

	props := []struct {
		kind    component.TriggerKind
		rect    prefabs.RectSpec
		enabled bool
	}{
		{component.TriggerComputer, spec.Computer, true},
		{component.TriggerBed, spec.Bed, true},
		{component.TriggerDoor, spec.Door, true},
		{component.TriggerExitDoor, spec.Exit, false},
	}
	for _, p := range props {
		if p.rect.W <= 0 || p.rect.H <= 0 {
			continue
		}
		if _, err := newTrigger(w, p.kind, index, p.rect, p.enabled); err != nil {
			return 0, fmt.Errorf("character %d: %w", index, err)
		}
	}

	light := ecs.CreateEntity(w)
	if err := ecs.Add(w, light, component.RoomLightComponent.Kind(), &component.RoomLight{Room: index}); err != nil {
		return 0, fmt.Errorf("character %d: add room light: %w", index, err)
	}

	return ent, nil
}

func newTrigger(w *ecs.World, kind component.TriggerKind, owner int, rect prefabs.RectSpec, enabled bool) (ecs.Entity, error) {
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.TransformComponent.Kind(), &component.Transform{X: rect.X, Y: rect.Y}); err != nil {
		return 0, fmt.Errorf("%s: add transform: %w", kind, err)
	}
	if err := ecs.Add(w, ent, component.TriggerComponent.Kind(), &component.Trigger{
		Kind:    kind,
		Owner:   owner,
		Enabled: enabled,
		Width:   rect.W,
		Height:  rect.H,
	}); err != nil {
		return 0, fmt.Errorf("%s: add trigger: %w", kind, err)
	}
	return ent, nil
}
