package system

import (
	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
)

// Schedule runs fn once delay seconds of world time have passed. Calls can
// not be cancelled; fn must check for itself whether it still applies.
func Schedule(w *ecs.World, delay float64, name string, fn func()) ecs.Entity {
	if w == nil || fn == nil {
		return 0
	}
	if delay < 0 {
		delay = 0
	}
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.ScheduledCallComponent.Kind(), &component.ScheduledCall{
		Name:      name,
		Remaining: delay,
		Run:       fn,
	})
	return ent
}

// TimerSystem counts down scheduled calls and runs the ones that are due.
type TimerSystem struct{}

func NewTimerSystem() *TimerSystem {
	return &TimerSystem{}
}

func (s *TimerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.DeltaTime()
	ecs.ForEach(w, component.ScheduledCallComponent.Kind(), func(e ecs.Entity, call *component.ScheduledCall) {
		call.Remaining -= dt
		if call.Remaining > 0 {
			return
		}

		run := call.Run
		ecs.DestroyEntity(w, e)
		if run != nil {
			run()
		}
	})
}

// Pending returns how many scheduled calls have not fired yet.
func Pending(w *ecs.World) int {
	return ecs.Count(w, component.ScheduledCallComponent.Kind())
}
