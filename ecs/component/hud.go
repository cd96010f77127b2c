package component

// Canvas identifies a HUD overlay.
type Canvas string

const (
	CanvasMain     Canvas = "main"
	CanvasHearts   Canvas = "hearts"
	CanvasWin      Canvas = "win"
	CanvasGameOver Canvas = "game_over"
)

// HUD is presentation state written through the UI sink and read by the
// renderer. Nothing in gameplay reads it back.
type HUD struct {
	Hearts      [PodCount]int
	Lives       [PodCount]int
	Canvases    map[Canvas]bool
	WorldHidden bool
	PodVisible  [PodCount]bool
	// ComputerScreens lights a pod's computer after its character lost.
	ComputerScreens [PodCount]bool

	Dialogue      string
	DialogueOwner int
	DialogueTimer float64

	Confetti float64
}

var HUDComponent = NewComponent[HUD]()
