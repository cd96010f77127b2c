package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
	"github.com/milk9111/podescape/ecs/system"
	"github.com/milk9111/podescape/prefabs"
)

func loadDefault(t *testing.T) *prefabs.LevelSpec {
	t.Helper()
	spec, err := prefabs.LoadLevelSpec(prefabs.DefaultLevel)
	require.NoError(t, err)
	return spec
}

func TestBuildLevel(t *testing.T) {
	w := ecs.NewWorld()
	lvl, err := BuildLevel(w, loadDefault(t))
	require.NoError(t, err)

	assert.Equal(t, component.PodCount, ecs.Count(w, component.CharacterComponent.Kind()))
	assert.Equal(t, component.PodCount, ecs.Count(w, component.PodComponent.Kind()))
	assert.Equal(t, component.PodCount, ecs.Count(w, component.RoomLightComponent.Kind()))
	assert.Equal(t, 22, ecs.Count(w, component.HazardComponent.Kind()))
	assert.Equal(t, 1, ecs.Count(w, component.HUDComponent.Kind()))

	state := ecs.MustGet(w, lvl.State, component.LevelStateComponent.Kind())
	assert.Equal(t, component.Exploration(), state.Phase)
	assert.Equal(t, -1, state.Loser)

	for i, ent := range lvl.Characters {
		c := ecs.MustGet(w, ent, component.CharacterComponent.Kind())
		assert.Equal(t, i, c.Index)
		assert.Equal(t, 3, c.Lives())
		assert.False(t, c.Active, "the level system picks who is active")
	}

	kinds := map[component.TriggerKind]int{}
	ecs.ForEach(w, component.TriggerComponent.Kind(), func(_ ecs.Entity, tr *component.Trigger) {
		kinds[tr.Kind]++
		if tr.Kind == component.TriggerExitDoor {
			assert.False(t, tr.Enabled, "exit doors open only after unifying")
		}
	})
	for _, kind := range []component.TriggerKind{
		component.TriggerComputer, component.TriggerBed, component.TriggerDoor,
		component.TriggerExitDoor, component.TriggerWinDoor,
	} {
		assert.Equal(t, component.PodCount, kinds[kind], kind.String())
	}

	cam := ecs.MustGet(w, lvl.Camera, component.CameraComponent.Kind())
	assert.Equal(t, uint64(lvl.Characters[0]), cam.FirstTarget)
	assert.NotZero(t, lvl.IntroPoint)
	assert.Equal(t, uint64(lvl.IntroPoint), cam.IntroTarget)
	assert.False(t, cam.Initialized)

	overview := ecs.MustGet(w, lvl.Overview, component.OverviewTagComponent.Kind())
	assert.Equal(t, 9.0, overview.ZoomSize)
}

func TestBuildLevelWithoutIntro(t *testing.T) {
	spec := loadDefault(t)
	spec.Camera.IntroPoint = nil

	w := ecs.NewWorld()
	lvl, err := BuildLevel(w, spec)
	require.NoError(t, err)
	assert.Zero(t, lvl.IntroPoint)
	assert.Zero(t, ecs.MustGet(w, lvl.Camera, component.CameraComponent.Kind()).IntroTarget)
}

func TestBuildLevelRejects(t *testing.T) {
	_, err := BuildLevel(nil, loadDefault(t))
	assert.Error(t, err)

	_, err = BuildLevel(ecs.NewWorld(), nil)
	assert.Error(t, err)

	spec := loadDefault(t)
	spec.Pods = spec.Pods[:1]
	_, err = BuildLevel(ecs.NewWorld(), spec)
	assert.True(t, errors.Is(err, prefabs.ErrInvalidSpec), "got %v", err)
}

func TestTuning(t *testing.T) {
	assert.Equal(t, system.DefaultLevelTuning(), Tuning(nil))

	spec := loadDefault(t)
	spec.Music.Win = "fanfare"
	spec.Music.Monitor = []string{"a", "b", "c"}
	spec.Sequences.EntryFreeze = 0.5
	spec.Camera.LoseSize = 3

	got := Tuning(spec)
	assert.Equal(t, "fanfare", got.WinMusic)
	assert.Equal(t, [component.PodCount]string{"a", "b", "c"}, got.MonitorMusic)
	assert.Equal(t, 0.5, got.EntryFreeze)
	assert.Equal(t, 3.0, got.LoseZoom)
	assert.Equal(t, "standard", got.StandardMusic)
}

func TestNewMusicPlayerCarriesState(t *testing.T) {
	carry := &component.MusicPlayer{
		Current: "standard",
		Volume:  1,
		Tracks:  map[string]component.Track{"standard": nil},
	}

	w := ecs.NewWorld()
	ent, err := NewMusicPlayer(w, carry)
	require.NoError(t, err)
	got := ecs.MustGet(w, ent, component.MusicPlayerComponent.Kind())
	assert.Equal(t, "standard", got.Current)
	assert.NotSame(t, carry, got)

	delete(got.Tracks, "standard")
	assert.Contains(t, carry.Tracks, "standard", "the carried map is copied")

	_, err = NewMusicPlayer(nil, nil)
	assert.Error(t, err)
}
