package component

// PodCount is the number of pods, and therefore characters, in a level.
const PodCount = 3

// Role identifies a character by the room it lives in.
type Role int

const (
	RoleLeft Role = iota
	RoleCenter
	RoleRight
)

func (r Role) String() string {
	switch r {
	case RoleLeft:
		return "left"
	case RoleCenter:
		return "center"
	case RoleRight:
		return "right"
	default:
		return "unknown"
	}
}

// Character is the overworld agent of one pod.
//
// Active is the level controller's choice of which characters receive input.
// InputLocked freezes movement while a mini-game is on screen without
// changing who is active.
type Character struct {
	Index int
	Role  Role

	LivesLeft     int
	StartingLives int

	Active                 bool
	InputLocked            bool
	HasEnteredMinigameOnce bool
	DeathInitiated         bool
	AtExit                 bool

	WalkSpeed   float64
	MinX        float64
	MaxX        float64
	Width       float64
	Height      float64
	Walking     bool
	FacingRight bool
	Faded       bool

	// Camera clamp applied while this character is the camera target.
	ClampMinX float64
	ClampMaxX float64

	InteractCooldown float64
}

// LoseLife spends one life. Lives never go below zero.
func (c *Character) LoseLife() {
	if c.LivesLeft > 0 {
		c.LivesLeft--
	}
}

// Lives returns the remaining lives.
func (c *Character) Lives() int {
	return c.LivesLeft
}

// CanMove reports whether the character accepts movement input.
func (c *Character) CanMove() bool {
	return c.Active && !c.InputLocked
}

// ConsumeDeath reports true exactly once after the lives run out.
func (c *Character) ConsumeDeath() bool {
	if c.LivesLeft > 0 || c.DeathInitiated {
		return false
	}
	c.DeathInitiated = true
	return true
}

var CharacterComponent = NewComponent[Character]()
