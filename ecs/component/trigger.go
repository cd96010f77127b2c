package component

// TriggerKind identifies the kind of a trigger volume.
type TriggerKind int

const (
	TriggerNone TriggerKind = iota
	// TriggerWinDoor is the goal tile inside a pod mini-game.
	TriggerWinDoor
	TriggerComputer
	TriggerBed
	TriggerDoor
	// TriggerExitDoor is a room's exit, enabled by the unify sequence.
	TriggerExitDoor
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerWinDoor:
		return "win_door"
	case TriggerComputer:
		return "computer"
	case TriggerBed:
		return "bed"
	case TriggerDoor:
		return "door"
	case TriggerExitDoor:
		return "exit_door"
	default:
		return "none"
	}
}

// Interactable reports whether the kind is found by interaction rays rather
// than by overlap.
func (k TriggerKind) Interactable() bool {
	return k == TriggerComputer || k == TriggerBed || k == TriggerDoor
}

// Trigger is a sensor volume. Owner is the pod/character index it belongs
// to. Disabled triggers are ignored by contact queries. Room triggers are
// centered on the entity transform plus offset; win doors have no transform
// and use the pod-local OffsetX/OffsetY as their bottom-left corner.
type Trigger struct {
	Kind    TriggerKind
	Owner   int
	Enabled bool
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
}

var TriggerComponent = NewComponent[Trigger]()
