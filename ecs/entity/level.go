package entity

import (
	"fmt"

	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
	"github.com/milk9111/podescape/ecs/system"
	"github.com/milk9111/podescape/prefabs"
)

// Level holds the handles of the entities a level is built from.
type Level struct {
	State      ecs.Entity
	Camera     ecs.Entity
	Characters [component.PodCount]ecs.Entity
	Pods       [component.PodCount]ecs.Entity
	WinPoint   ecs.Entity
	Overview   ecs.Entity
	IntroPoint ecs.Entity
}

// BuildLevel creates every entity of a level attempt from its spec. The
// world must be empty apart from carried-over audio state.
func BuildLevel(w *ecs.World, spec *prefabs.LevelSpec) (*Level, error) {
	if w == nil || spec == nil {
		return nil, fmt.Errorf("level: world and spec are required")
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}

	lvl := &Level{State: ecs.CreateEntity(w)}
	if err := ecs.Add(w, lvl.State, component.LevelStateComponent.Kind(), &component.LevelState{
		Phase: component.Exploration(),
		Loser: -1,
	}); err != nil {
		return nil, fmt.Errorf("level: add state: %w", err)
	}

	for _, cs := range spec.Characters {
		index, err := prefabs.ParseRole(cs.Role)
		if err != nil {
			return nil, fmt.Errorf("level: %w", err)
		}
		ent, err := NewCharacter(w, index, cs, spec.Tuning)
		if err != nil {
			return nil, fmt.Errorf("level: %w", err)
		}
		lvl.Characters[index] = ent
	}

	for i, ps := range spec.Pods {
		ent, err := NewPod(w, i, ps, spec.Tuning)
		if err != nil {
			return nil, fmt.Errorf("level: %w", err)
		}
		lvl.Pods[i] = ent
	}

	var err error
	cam := spec.Camera
	if lvl.WinPoint, err = newMarker(w, "win point", cam.WinPoint.X, cam.WinPoint.Y, component.WinPointTagComponent, &component.WinPointTag{}); err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	if lvl.Overview, err = newMarker(w, "overview", cam.Overview.X, cam.Overview.Y, component.OverviewTagComponent, &component.OverviewTag{
		ZoomSize:  cam.OverviewSize,
		ZoomSpeed: cam.ZoomSpeed,
	}); err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	if cam.IntroPoint != nil {
		if lvl.IntroPoint, err = newMarker(w, "intro point", cam.IntroPoint.X, cam.IntroPoint.Y, component.IntroPointTagComponent, &component.IntroPointTag{}); err != nil {
			return nil, fmt.Errorf("level: %w", err)
		}
	}
	if lvl.Camera, err = NewCamera(w, cam, lvl.Characters[0], lvl.IntroPoint); err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}

	system.EnsureHUD(w)
	return lvl, nil
}

// Tuning extracts the level controller's constants from a spec.
func Tuning(spec *prefabs.LevelSpec) system.LevelTuning {
	t := system.DefaultLevelTuning()
	if spec == nil {
		return t
	}
	m := spec.Music
	if m.Standard != "" {
		t.StandardMusic = m.Standard
	}
	for i := 0; i < len(m.Monitor) && i < component.PodCount; i++ {
		t.MonitorMusic[i] = m.Monitor[i]
	}
	if m.Win != "" {
		t.WinMusic = m.Win
	}
	if m.Lose != "" {
		t.LoseMusic = m.Lose
	}
	if m.Fade > 0 {
		t.MusicFade = m.Fade
	}

	q := spec.Sequences
	t.EntryFreeze = q.EntryFreeze
	t.GameOverDelay = q.GameOverDelay
	t.WinCheerDelay = q.WinCheerDelay
	t.WinMusicDelay = q.WinMusicDelay
	t.ElevatorSoundDuration = q.ElevatorSoundDuration
	if spec.Camera.LoseSize > 0 {
		t.LoseZoom = spec.Camera.LoseSize
	}
	return t
}
