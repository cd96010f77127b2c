package entity

import (
	"fmt"

	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
	"github.com/milk9111/podescape/prefabs"
)

// NewCamera creates the world camera. first is the character the camera
// settles on; intro, when non-zero, is panned to first.
func NewCamera(w *ecs.World, spec prefabs.CameraSpec, first, intro ecs.Entity) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}

	cam := &component.Camera{
		X:           spec.Start.X,
		Y:           spec.Start.Y,
		OffsetX:     spec.Offset.X,
		OffsetY:     spec.Offset.Y,
		FollowSpeed: spec.FollowSpeed,
		OrthoSize:   spec.OrthoSize,
		FirstTarget: uint64(first),
	}
	if intro != 0 {
		cam.IntroTarget = uint64(intro)
		cam.IntroThreshold = spec.IntroThreshold
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), cam); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}

	return camera, nil
}

func newMarker[T any](w *ecs.World, name string, x, y float64, handle component.ComponentHandle[T], tag *T) (ecs.Entity, error) {
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("%s: add transform: %w", name, err)
	}
	if err := ecs.Add(w, ent, handle.Kind(), tag); err != nil {
		return 0, fmt.Errorf("%s: add tag: %w", name, err)
	}
	return ent, nil
}
