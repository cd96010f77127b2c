package common

// Logical screen size. The window scales this to whatever it is resized to.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)
