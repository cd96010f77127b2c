package entity

import (
	"fmt"

	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
	"github.com/milk9111/podescape/prefabs"
)

// NewPod creates pod index with its hazard walls and goal tile.
func NewPod(w *ecs.World, index int, spec prefabs.PodSpec, tuning prefabs.TuningSpec) (ecs.Entity, error) {
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.PodComponent.Kind(), &component.Pod{
		Index:        index,
		Health:       tuning.PodHealth,
		MaxHealth:    tuning.PodHealth,
		StartX:       spec.Start.X,
		StartY:       spec.Start.Y,
		X:            spec.Start.X,
		Y:            spec.Start.Y,
		OriginX:      spec.Origin.X,
		OriginY:      spec.Origin.Y,
		Width:        spec.Width,
		Height:       spec.Height,
		Size:         tuning.PodPlayerSize,
		StepSize:     tuning.StepSize,
		StepInterval: tuning.StepInterval,
	}); err != nil {
		return 0, fmt.Errorf("pod %d: add pod: %w", index, err)
	}

	for i, h := range spec.Hazards {
		hazard := ecs.CreateEntity(w)
		if err := ecs.Add(w, hazard, component.HazardComponent.Kind(), &component.Hazard{
			Pod:     index,
			Width:   h.W,
			Height:  h.H,
			OffsetX: h.X,
			OffsetY: h.Y,
		}); err != nil {
			return 0, fmt.Errorf("pod %d: add hazard %d: %w", index, i, err)
		}
	}

	goal := ecs.CreateEntity(w)
	if err := ecs.Add(w, goal, component.TriggerComponent.Kind(), &component.Trigger{
		Kind:    component.TriggerWinDoor,
		Owner:   index,
		Enabled: true,
		Width:   spec.Goal.W,
		Height:  spec.Goal.H,
		OffsetX: spec.Goal.X,
		OffsetY: spec.Goal.Y,
	}); err != nil {
		return 0, fmt.Errorf("pod %d: add goal: %w", index, err)
	}

	return ent, nil
}
