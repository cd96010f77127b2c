package component

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// WinPointTag marks the point the camera rises to after a win.
type WinPointTag struct {
	Shown bool
}

var WinPointTagComponent = NewComponent[WinPointTag]()

// OverviewTag marks where the camera jumps for the unify sequence.
type OverviewTag struct {
	ZoomSize  float64
	ZoomSpeed float64
}

var OverviewTagComponent = NewComponent[OverviewTag]()

type IntroPointTag struct{}

var IntroPointTagComponent = NewComponent[IntroPointTag]()
