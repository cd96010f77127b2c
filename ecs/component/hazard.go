package component

// Hazard is a wall tile inside a pod. Bounds are pod-local, bottom-left
// origin.
type Hazard struct {
	Pod     int
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
}

var HazardComponent = NewComponent[Hazard]()
