package component

// Track is the playback surface the music and sound systems drive. An
// ebiten *audio.Player satisfies it.
type Track interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	SetVolume(volume float64)
}

// MusicPlayer is the music state of a world. It lives on its own entity and
// is carried into the next world on restart.
type MusicPlayer struct {
	// Tracks holds every song opened so far, by name.
	Tracks  map[string]Track
	Current string
	Volume  float64

	// Switching is set while Current fades out towards Next.
	Switching bool
	Next      string
	FadeRate  float64
}

// Clone copies the player. Opened tracks are shared, not reopened.
func (p *MusicPlayer) Clone() *MusicPlayer {
	if p == nil {
		return nil
	}
	out := *p
	out.Tracks = make(map[string]Track, len(p.Tracks))
	for name, t := range p.Tracks {
		out.Tracks[name] = t
	}
	return &out
}

var MusicPlayerComponent = NewComponent[MusicPlayer]()
