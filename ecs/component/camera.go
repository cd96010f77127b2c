package component

// Camera is the single world camera. Target holds an ecs.Entity (0 for no
// target); the component package cannot import ecs.
type Camera struct {
	X       float64
	Y       float64
	OffsetX float64
	OffsetY float64

	Target      uint64
	FollowSpeed float64
	VelX        float64
	VelY        float64

	OrthoSize  float64
	ZoomTarget float64
	ZoomSpeed  float64
	ZoomingOut bool

	// Intro pan: until the camera drops below IntroThreshold it follows
	// IntroTarget, then it hands over to FirstTarget.
	Initialized    bool
	IntroTarget    uint64
	IntroThreshold float64
	FirstTarget    uint64
}

var CameraComponent = NewComponent[Camera]()
