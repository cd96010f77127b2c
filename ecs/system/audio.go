package system

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
)

// Sound effect ids issued by gameplay. Bed and door reactions come from the
// reaction script instead.
const (
	SoundKeyboard      = "keyboard"
	SoundBeatLevel     = "beat_level"
	SoundHitWall       = "hit_wall"
	SoundElevatorDoors = "elevator_doors"
	SoundElevator      = "elevator"
	SoundScreenOff     = "screen_off"
	SoundCheer         = "cheer"
)

// AudioSink accepts fire-and-forget audio commands. Nothing waits for
// playback to finish.
type AudioSink interface {
	PlaySound(id string, delay, pitch float64)
	StopSound(id string)
	SwitchMusic(track string, fade float64)
	StopMusic()
}

// TrackLoader opens a playable track. Pitch 1 is the recorded pitch.
type TrackLoader func(name string, pitch float64) (component.Track, error)

// WorldAudio turns audio commands into request entities that the sound and
// music systems consume later in the tick.
type WorldAudio struct {
	w *ecs.World
}

func NewWorldAudio(w *ecs.World) *WorldAudio {
	return &WorldAudio{w: w}
}

func (a *WorldAudio) PlaySound(id string, delay, pitch float64) {
	if a == nil || a.w == nil || id == "" {
		return
	}
	if pitch <= 0 {
		pitch = 1
	}
	ent := ecs.CreateEntity(a.w)
	_ = ecs.Add(a.w, ent, component.SoundRequestComponent.Kind(), &component.SoundRequest{ID: id, Delay: delay, Pitch: pitch})
}

func (a *WorldAudio) StopSound(id string) {
	if a == nil || a.w == nil || id == "" {
		return
	}
	ent := ecs.CreateEntity(a.w)
	_ = ecs.Add(a.w, ent, component.SoundRequestComponent.Kind(), &component.SoundRequest{ID: id, Stop: true})
}

func (a *WorldAudio) SwitchMusic(track string, fade float64) {
	if a == nil {
		return
	}
	RequestMusic(a.w, track, fade)
}

func (a *WorldAudio) StopMusic() {
	if a == nil {
		return
	}
	RequestMusic(a.w, "", defaultMusicFade)
}

// SoundSystem plays due sound requests and applies stop requests.
type SoundSystem struct {
	load TrackLoader
	log  zerolog.Logger
}

func NewSoundSystem(load TrackLoader, log zerolog.Logger) *SoundSystem {
	return &SoundSystem{load: load, log: log.With().Str("system", "sound").Logger()}
}

func (s *SoundSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	bank := s.bank(w)
	dt := w.DeltaTime()
	ecs.ForEach(w, component.SoundRequestComponent.Kind(), func(e ecs.Entity, req *component.SoundRequest) {
		if req.Stop {
			ecs.DestroyEntity(w, e)
			for _, t := range bank.Playing[req.ID] {
				if t.IsPlaying() {
					t.Pause()
				}
			}
			delete(bank.Playing, req.ID)
			return
		}

		req.Delay -= dt
		if req.Delay > 0 {
			return
		}
		ecs.DestroyEntity(w, e)
		s.play(bank, req.ID, req.Pitch)
	})
}

func (s *SoundSystem) play(bank *component.SoundBank, id string, pitch float64) {
	if s.load == nil {
		return
	}
	track, err := s.load(id, pitch)
	if err != nil {
		s.log.Warn().Err(err).Str("sound", id).Msg("load sound")
		return
	}

	live := bank.Playing[id][:0]
	for _, t := range bank.Playing[id] {
		if t.IsPlaying() {
			live = append(live, t)
		}
	}
	_ = track.Rewind()
	track.Play()
	bank.Playing[id] = append(live, track)
}

func (s *SoundSystem) bank(w *ecs.World) *component.SoundBank {
	ent, ok := ecs.First(w, component.SoundBankComponent.Kind())
	if !ok {
		ent = ecs.CreateEntity(w)
		_ = ecs.Add(w, ent, component.SoundBankComponent.Kind(), &component.SoundBank{})
	}
	bank := ecs.MustGet(w, ent, component.SoundBankComponent.Kind())
	if bank.Playing == nil {
		bank.Playing = make(map[string][]component.Track)
	}
	return bank
}

type nopAudio struct{}

func (nopAudio) PlaySound(string, float64, float64) {}
func (nopAudio) StopSound(string) {}
func (nopAudio) SwitchMusic(string, float64) {}
func (nopAudio) StopMusic() {}
