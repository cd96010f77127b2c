package entity

import (
	"fmt"

	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
)

// NewMusicPlayer adds the world's music player. A non-nil carry is copied in
// so the song playing before a restart keeps playing.
func NewMusicPlayer(w *ecs.World, carry *component.MusicPlayer) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("music player: world is nil")
	}
	player := carry.Clone()
	if player == nil {
		player = &component.MusicPlayer{}
	}

	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.MusicPlayerComponent.Kind(), player); err != nil {
		return 0, fmt.Errorf("music player: %w", err)
	}
	return ent, nil
}
