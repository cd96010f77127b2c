package ecs

import (
	"fmt"

	"github.com/milk9111/podescape/ecs/component"
)

// EventKind identifies what an Event reports.
type EventKind int

const (
	// EventHazardContact: a pod's player overlaps a hazard this tick.
	EventHazardContact EventKind = iota + 1
	// EventTriggerEnter: a pod player or character touched a trigger.
	EventTriggerEnter
	// EventEnterMinigame: a character asks to sit at its pod's computer.
	EventEnterMinigame
	// EventExitMinigame: a pod finished, successfully or by exhaustion.
	EventExitMinigame
	// EventCharacterDied: a character's lives reached zero.
	EventCharacterDied
)

func (k EventKind) String() string {
	switch k {
	case EventHazardContact:
		return "hazard_contact"
	case EventTriggerEnter:
		return "trigger_enter"
	case EventEnterMinigame:
		return "enter_minigame"
	case EventExitMinigame:
		return "exit_minigame"
	case EventCharacterDied:
		return "character_died"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a typed gameplay event. Index is the pod or character index the
// event concerns; the two always coincide in this game.
type Event struct {
	Kind    EventKind
	Index   int
	Trigger component.TriggerKind
	Success bool
}

// EventQueue collects events raised during one tick. Systems later in the
// schedule observe events raised earlier in the same tick; the queue is
// flushed when the tick ends.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Each calls fn for every queued event of kind, in raise order, including
// events pushed by fn itself.
func (q *EventQueue) Each(kind EventKind, fn func(Event)) {
	if q == nil || fn == nil {
		return
	}
	for i := 0; i < len(q.items); i++ {
		if q.items[i].Kind == kind {
			fn(q.items[i])
		}
	}
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
