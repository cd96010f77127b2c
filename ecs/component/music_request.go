package component

// MusicRequest asks for Track to become the only song playing. The song that
// is playing fades out over Fade seconds first. An empty Track fades to
// silence.
type MusicRequest struct {
	Track string
	Fade  float64
}

var MusicRequestComponent = NewComponent[MusicRequest]()
