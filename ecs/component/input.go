package component

// Input stores per-tick input state for an active character. The pod owned
// by the character reads the same state while its mini-game is on screen.
type Input struct {
	MoveX       float64
	MoveY       float64
	Interact    bool
	SkipPressed bool
}

var InputComponent = NewComponent[Input]()
