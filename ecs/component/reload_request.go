package component

// ReloadRequest asks the game loop to throw the world away and build the
// level again once the tick ends. Reason ends up in the log.
type ReloadRequest struct {
	Reason string
}

var ReloadRequestComponent = NewComponent[ReloadRequest]()
