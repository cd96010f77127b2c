package component

// SoundRequest is a one-shot sound effect. The sound system waits Delay
// seconds, then plays ID at Pitch. Stop requests halt every playing instance
// of ID instead.
type SoundRequest struct {
	ID    string
	Delay float64
	Pitch float64
	Stop  bool
}

var SoundRequestComponent = NewComponent[SoundRequest]()

// SoundBank tracks the sound effects currently playing, keyed by sound id,
// so stop requests can reach them.
type SoundBank struct {
	Playing map[string][]Track
}

var SoundBankComponent = NewComponent[SoundBank]()
