package system

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
)

const defaultMusicFade = 0.5

// RequestMusic asks the music system to switch to track, fading the current
// song out over fade seconds. An empty track stops the music.
func RequestMusic(w *ecs.World, track string, fade float64) {
	if w == nil {
		return
	}
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.MusicRequestComponent.Kind(), &component.MusicRequest{
		Track: strings.TrimSpace(track),
		Fade:  fade,
	})
}

// MusicSystem keeps at most one song playing and loops it. Only the latest
// request of a tick counts.
type MusicSystem struct {
	load TrackLoader
	log  zerolog.Logger
}

func NewMusicSystem(load TrackLoader, log zerolog.Logger) *MusicSystem {
	return &MusicSystem{load: load, log: log.With().Str("system", "music").Logger()}
}

func (s *MusicSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var (
		req   component.MusicRequest
		fresh bool
	)
	ecs.ForEach(w, component.MusicRequestComponent.Kind(), func(e ecs.Entity, r *component.MusicRequest) {
		req, fresh = *r, true
		ecs.DestroyEntity(w, e)
	})

	player := s.player(w)
	if fresh {
		s.apply(player, req)
	}

	if player.Switching {
		s.fade(player, w.DeltaTime())
		return
	}

	// Songs loop by starting over once they end.
	if t := player.Tracks[player.Current]; t != nil && !t.IsPlaying() {
		_ = t.Rewind()
		t.Play()
	}
}

func (s *MusicSystem) player(w *ecs.World) *component.MusicPlayer {
	ent, ok := ecs.First(w, component.MusicPlayerComponent.Kind())
	if !ok {
		ent = ecs.CreateEntity(w)
		_ = ecs.Add(w, ent, component.MusicPlayerComponent.Kind(), &component.MusicPlayer{})
	}
	player := ecs.MustGet(w, ent, component.MusicPlayerComponent.Kind())
	if player.Tracks == nil {
		player.Tracks = make(map[string]component.Track)
	}
	return player
}

func (s *MusicSystem) apply(player *component.MusicPlayer, req component.MusicRequest) {
	current := player.Tracks[player.Current]

	// Asking for the song that is already on keeps it going, and cancels a
	// fade that was heading elsewhere.
	if req.Track != "" && req.Track == player.Current && current != nil {
		player.Switching = false
		player.Next = ""
		player.Volume = 1
		current.SetVolume(1)
		if !current.IsPlaying() {
			current.Play()
		}
		return
	}

	if current == nil {
		player.Current = ""
		s.start(player, req.Track)
		return
	}

	fade := req.Fade
	if fade <= 0 {
		fade = defaultMusicFade
	}
	player.Switching = true
	player.Next = req.Track
	player.FadeRate = player.Volume / fade
}

func (s *MusicSystem) fade(player *component.MusicPlayer, dt float64) {
	current := player.Tracks[player.Current]
	if current != nil {
		player.Volume -= player.FadeRate * dt
		if player.Volume > 0 {
			current.SetVolume(player.Volume)
			return
		}
		current.SetVolume(0)
		current.Pause()
		_ = current.Rewind()
	}

	next := player.Next
	player.Switching = false
	player.Next = ""
	player.FadeRate = 0
	player.Current = ""
	player.Volume = 0
	s.start(player, next)
}

func (s *MusicSystem) start(player *component.MusicPlayer, track string) {
	if track == "" {
		return
	}
	t, err := s.open(player, track)
	if err != nil {
		s.log.Warn().Err(err).Str("track", track).Msg("load music")
		return
	}
	player.Current = track
	player.Volume = 1
	_ = t.Rewind()
	t.SetVolume(1)
	t.Play()
}

func (s *MusicSystem) open(player *component.MusicPlayer, track string) (component.Track, error) {
	if t, ok := player.Tracks[track]; ok && t != nil {
		return t, nil
	}
	if s.load == nil {
		return nil, fmt.Errorf("music: no track loader")
	}
	t, err := s.load(track, 1)
	if err != nil {
		return nil, fmt.Errorf("music: load %q: %w", track, err)
	}
	player.Tracks[track] = t
	return t, nil
}
