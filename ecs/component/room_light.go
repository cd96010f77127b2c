package component

// RoomLight is the light of one pod room, switched on once its mini-game is
// beaten.
type RoomLight struct {
	Room int
	On   bool
}

var RoomLightComponent = NewComponent[RoomLight]()
