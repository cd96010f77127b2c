package system

import (
	"fmt"

	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
)

// mustIndex panics on a pod or character index outside the fixed set. An
// out-of-range index is a wiring bug and is never clamped.
func mustIndex(i int) int {
	if i < 0 || i >= component.PodCount {
		panic(fmt.Sprintf("system: index %d out of range [0,%d)", i, component.PodCount))
	}
	return i
}

func levelState(w *ecs.World) (ecs.Entity, *component.LevelState, bool) {
	ent, ok := ecs.First(w, component.LevelStateComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	state, ok := ecs.Get(w, ent, component.LevelStateComponent.Kind())
	return ent, state, ok
}

func characterAt(w *ecs.World, i int) (ecs.Entity, *component.Character, bool) {
	mustIndex(i)
	var (
		found ecs.Entity
		char  *component.Character
	)
	ecs.ForEach(w, component.CharacterComponent.Kind(), func(e ecs.Entity, c *component.Character) {
		if char == nil && c.Index == i {
			found, char = e, c
		}
	})
	return found, char, char != nil
}

func podAt(w *ecs.World, i int) (ecs.Entity, *component.Pod, bool) {
	mustIndex(i)
	var (
		found ecs.Entity
		pod   *component.Pod
	)
	ecs.ForEach(w, component.PodComponent.Kind(), func(e ecs.Entity, p *component.Pod) {
		if pod == nil && p.Index == i {
			found, pod = e, p
		}
	})
	return found, pod, pod != nil
}

func forEachCharacter(w *ecs.World, fn func(ecs.Entity, *component.Character)) {
	ecs.ForEach(w, component.CharacterComponent.Kind(), fn)
}

func forEachPod(w *ecs.World, fn func(ecs.Entity, *component.Pod)) {
	ecs.ForEach(w, component.PodComponent.Kind(), fn)
}

func firstTagged[T any](w *ecs.World, handle component.ComponentHandle[T]) ecs.Entity {
	ent, _ := ecs.First(w, handle.Kind())
	return ent
}
