package component

import "fmt"

// PhaseKind is the coarse progression state of a level attempt.
type PhaseKind int

const (
	PhaseExploration PhaseKind = iota
	PhaseMinigame
	PhaseWon
	PhaseLost
)

// LevelPhase is the single progression value of a level. Pod is only
// meaningful while Kind is PhaseMinigame.
type LevelPhase struct {
	Kind PhaseKind
	Pod  int
}

func Exploration() LevelPhase { return LevelPhase{Kind: PhaseExploration} }

func Minigame(pod int) LevelPhase { return LevelPhase{Kind: PhaseMinigame, Pod: pod} }

func Won() LevelPhase { return LevelPhase{Kind: PhaseWon} }

func Lost() LevelPhase { return LevelPhase{Kind: PhaseLost} }

// Terminal reports whether no further gameplay transitions are accepted.
func (p LevelPhase) Terminal() bool {
	return p.Kind == PhaseWon || p.Kind == PhaseLost
}

// InMinigame reports whether the phase is the mini-game of pod.
func (p LevelPhase) InMinigame(pod int) bool {
	return p.Kind == PhaseMinigame && p.Pod == pod
}

func (p LevelPhase) String() string {
	switch p.Kind {
	case PhaseExploration:
		return "exploration"
	case PhaseMinigame:
		return fmt.Sprintf("minigame(%d)", p.Pod)
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return fmt.Sprintf("phase(%d)", int(p.Kind))
	}
}

// LevelState is owned exclusively by the level system. Generation changes on
// every transition so deferred callbacks can tell whether the state they
// were scheduled for still holds.
type LevelState struct {
	Phase         LevelPhase
	Generation    uint64
	DoorsUnlocked [PodCount]bool
	Unified       bool
	GameOverFired bool
	WinFired      bool
	// Loser is the character whose last life ended the attempt, -1 otherwise.
	Loser int
}

var LevelStateComponent = NewComponent[LevelState]()
