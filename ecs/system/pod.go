package system

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
)

const axisDeadzone = 0.2

// PodSystem resolves hazard hits and goal contacts for the pod mini-games
// and reports exhaustion to the level controller.
type PodSystem struct {
	ui       UISink
	audio    AudioSink
	cooldown float64
	debug    bool
	log      zerolog.Logger
}

// NewPodSystem builds the pod system. cooldown is how long every pod stays
// frozen after a hit. With debug set, the skip key beats the pod on screen.
func NewPodSystem(ui UISink, audio AudioSink, cooldown float64, debug bool, log zerolog.Logger) *PodSystem {
	if ui == nil {
		ui = nopUI{}
	}
	if audio == nil {
		audio = nopAudio{}
	}
	return &PodSystem{
		ui:       ui,
		audio:    audio,
		cooldown: cooldown,
		debug:    debug,
		log:      log.With().Str("system", "pod").Logger(),
	}
}

func (s *PodSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.DeltaTime()
	forEachPod(w, func(_ ecs.Entity, pod *component.Pod) {
		if !pod.Frozen {
			return
		}
		pod.Cooldown -= dt
		if pod.Cooldown <= 0 {
			pod.Unfreeze()
		}
	})

	events := w.Events()
	events.Each(ecs.EventHazardContact, func(ev ecs.Event) {
		s.hit(w, ev.Index)
	})
	events.Each(ecs.EventTriggerEnter, func(ev ecs.Event) {
		if ev.Trigger == component.TriggerWinDoor {
			s.reachGoal(w, ev.Index)
		}
	})

	if s.debug {
		forEachPod(w, func(_ ecs.Entity, pod *component.Pod) {
			if in, ok := ownerInput(w, pod.Index); ok && in.SkipPressed && pod.Visible {
				s.log.Debug().Int("pod", pod.Index).Msg("skip")
				w.Events().Push(ecs.Event{Kind: ecs.EventExitMinigame, Index: pod.Index, Success: true})
			}
		})
	}

	forEachPod(w, func(_ ecs.Entity, pod *component.Pod) {
		if !pod.Visible || !pod.IsExhausted() || pod.Escalated {
			return
		}
		pod.Escalated = true
		w.Events().Push(ecs.Event{Kind: ecs.EventExitMinigame, Index: pod.Index, Success: false})
	})
}

// hit applies one hazard contact to pod i. Every pod goes back to its start
// and freezes for the cooldown.
func (s *PodSystem) hit(w *ecs.World, i int) {
	_, pod, ok := podAt(w, i)
	if !ok || !pod.ProcessHazardContact() {
		return
	}
	s.ui.SetHeartsVisible(i, pod.Health)
	s.audio.PlaySound(SoundHitWall, 0.2, 1)
	s.log.Debug().Int("pod", i).Int("health", pod.Health).Msg("hazard hit")

	forEachPod(w, func(_ ecs.Entity, p *component.Pod) {
		p.ResetToStart()
		p.Freeze(s.cooldown)
	})
}

func (s *PodSystem) reachGoal(w *ecs.World, i int) {
	_, pod, ok := podAt(w, i)
	if !ok || !pod.Playable() {
		return
	}
	w.Events().Push(ecs.Event{Kind: ecs.EventExitMinigame, Index: i, Success: true})
}

// PodMovementSystem steps the visible pod's player one tile at a time while
// a direction is held. Horizontal input wins over vertical.
type PodMovementSystem struct{}

func NewPodMovementSystem() *PodMovementSystem {
	return &PodMovementSystem{}
}

func (s *PodMovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.DeltaTime()
	forEachPod(w, func(_ ecs.Entity, pod *component.Pod) {
		if pod.StepTimer > 0 {
			pod.StepTimer -= dt
		}
		if !pod.Playable() {
			return
		}
		in, ok := ownerInput(w, pod.Index)
		if !ok {
			return
		}
		dx, dy := axis(in.MoveX), axis(in.MoveY)
		if dx == 0 && dy == 0 {
			return
		}
		if pod.StepTimer > 0 {
			return
		}

		if dx != 0 {
			pod.X += dx * pod.StepSize
		} else {
			pod.Y += dy * pod.StepSize
		}
		pod.StepTimer = pod.StepInterval
	})
}

func ownerInput(w *ecs.World, i int) (*component.Input, bool) {
	ent, _, ok := characterAt(w, i)
	if !ok {
		return nil, false
	}
	return ecs.Get(w, ent, component.InputComponent.Kind())
}

func axis(v float64) float64 {
	switch {
	case v > axisDeadzone:
		return 1
	case v < -axisDeadzone:
		return -1
	default:
		return 0
	}
}
