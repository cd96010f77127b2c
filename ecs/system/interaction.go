package system

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
)

const defaultInteractCooldown = 4.0

// Reaction is what a character says and sounds like when poking at a bed or
// a locked door.
type Reaction struct {
	Sound string
	Pitch float64
	Delay float64
	Text  string
}

// Reactor decides the reaction of a character to an interactable.
type Reactor interface {
	React(kind component.TriggerKind, character int) (Reaction, bool, error)
}

// InteractionSystem turns interaction hits into level requests and
// reactions. Reactions are gated by the character's interaction cooldown.
type InteractionSystem struct {
	reactor  Reactor
	audio    AudioSink
	ui       UISink
	cooldown float64
	log      zerolog.Logger
}

func NewInteractionSystem(reactor Reactor, audio AudioSink, ui UISink, cooldown float64, log zerolog.Logger) *InteractionSystem {
	if audio == nil {
		audio = nopAudio{}
	}
	if ui == nil {
		ui = nopUI{}
	}
	if cooldown <= 0 {
		cooldown = defaultInteractCooldown
	}
	return &InteractionSystem{
		reactor:  reactor,
		audio:    audio,
		ui:       ui,
		cooldown: cooldown,
		log:      log.With().Str("system", "interaction").Logger(),
	}
}

func (s *InteractionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	w.Events().Each(ecs.EventTriggerEnter, func(ev ecs.Event) {
		switch ev.Trigger {
		case component.TriggerComputer:
			w.Events().Push(ecs.Event{Kind: ecs.EventEnterMinigame, Index: ev.Index})
		case component.TriggerBed, component.TriggerDoor:
			s.react(w, ev.Index, ev.Trigger)
		}
	})
}

func (s *InteractionSystem) react(w *ecs.World, i int, kind component.TriggerKind) {
	_, char, ok := characterAt(w, i)
	if !ok || char.InteractCooldown > 0 || s.reactor == nil {
		return
	}

	r, ok, err := s.reactor.React(kind, i)
	if err != nil {
		s.log.Warn().Err(err).Stringer("kind", kind).Int("character", i).Msg("reaction script")
		return
	}
	if !ok {
		return
	}

	char.InteractCooldown = s.cooldown
	if r.Sound != "" {
		s.audio.PlaySound(r.Sound, r.Delay, r.Pitch)
	}
	if r.Text != "" {
		s.ui.ShowDialogue(i, r.Text)
	}
}
