package system

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
)

const tick = 1.0 / 60

func TestLevelStartActivatesFirstCharacter(t *testing.T) {
	h := newLevelHarness(t)

	assert.Equal(t, component.Exploration(), h.levelState().Phase)
	assert.True(t, h.char(0).Active)
	assert.False(t, h.char(1).Active)
	assert.False(t, h.char(2).Active)
	assert.Equal(t, [component.PodCount]int{3, 3, 3}, h.ui.lives)
	assert.True(t, h.ui.canvases[component.CanvasMain])
	assert.Equal(t, "standard", h.audio.lastMusic())
	assert.Equal(t, ecs.Entity(0), h.camera.target, "start leaves the camera to its intro pan")
}

func TestEnterMinigame(t *testing.T) {
	tests := []struct {
		name  string
		setup func(h *levelHarness)
		pod   int
		want  bool
	}{
		{name: "active_character", pod: 0, want: true},
		{name: "inactive_character", pod: 1, want: false},
		{
			name:  "already_entered",
			setup: func(h *levelHarness) { h.char(0).HasEnteredMinigameOnce = true },
			pod:   0,
			want:  false,
		},
		{
			name:  "door_already_unlocked",
			setup: func(h *levelHarness) { h.levelState().DoorsUnlocked[0] = true },
			pod:   0,
			want:  false,
		},
		{
			name:  "terminal_phase",
			setup: func(h *levelHarness) { h.levelState().Phase = component.Won() },
			pod:   0,
			want:  false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newLevelHarness(t)
			if tc.setup != nil {
				tc.setup(h)
			}
			before := h.levelState().Phase

			got := h.sys.EnterMinigame(h.w, tc.pod)
			require.Equal(t, tc.want, got)
			if !tc.want {
				assert.Equal(t, before, h.levelState().Phase)
				assert.False(t, h.pod(tc.pod).Visible)
				return
			}

			assert.Equal(t, component.Minigame(tc.pod), h.levelState().Phase)
			pod := h.pod(tc.pod)
			assert.True(t, pod.Visible)
			assert.True(t, pod.Frozen)
			assert.Equal(t, DefaultLevelTuning().EntryFreeze, pod.Cooldown)
			for i := 0; i < component.PodCount; i++ {
				assert.True(t, h.char(i).InputLocked, "character %d input", i)
			}
			assert.True(t, h.ui.podVisible[tc.pod])
			assert.False(t, h.ui.worldVisible)
			assert.True(t, h.ui.canvases[component.CanvasHearts])
			assert.Equal(t, 3, h.ui.hearts[tc.pod])
			assert.Equal(t, "monitor_0", h.audio.lastMusic())
			assert.Equal(t, 1, h.audio.played(SoundKeyboard))
		})
	}
}

func TestEnterMinigameRefusedWhileAnotherIsOpen(t *testing.T) {
	h := newLevelHarness(t)
	require.True(t, h.sys.EnterMinigame(h.w, 0))
	h.char(0).HasEnteredMinigameOnce = false

	assert.False(t, h.sys.EnterMinigame(h.w, 0))
	assert.Equal(t, component.Minigame(0), h.levelState().Phase)
}

func TestExitMinigameSuccessHandsOver(t *testing.T) {
	h := newLevelHarness(t)
	h.beat(t, 0)

	state := h.levelState()
	assert.Equal(t, component.Exploration(), state.Phase)
	assert.True(t, state.DoorsUnlocked[0])
	assert.False(t, state.Unified)
	assert.True(t, h.ui.lights[0])
	assert.False(t, h.pod(0).Visible)
	assert.False(t, h.ui.podVisible[0])
	assert.True(t, h.ui.worldVisible)

	assert.False(t, h.char(0).Active)
	assert.True(t, h.char(1).Active)
	assert.Equal(t, h.chars[1], h.camera.target)
	for i := 0; i < component.PodCount; i++ {
		assert.False(t, h.char(i).InputLocked, "character %d input", i)
	}
	assert.Equal(t, 1, h.audio.played(SoundBeatLevel))
}

func TestExitMinigameRefusedOutsideItsMinigame(t *testing.T) {
	h := newLevelHarness(t)

	assert.False(t, h.sys.ExitMinigame(h.w, 0, true))
	assert.False(t, h.levelState().DoorsUnlocked[0])

	require.True(t, h.sys.EnterMinigame(h.w, 0))
	assert.False(t, h.sys.ExitMinigame(h.w, 1, true))
	assert.Equal(t, component.Minigame(0), h.levelState().Phase)
}

func TestHappyPathUnifiesThenWins(t *testing.T) {
	h := newLevelHarness(t)
	for i := 0; i < component.PodCount; i++ {
		h.beat(t, i)
	}

	state := h.levelState()
	require.True(t, state.Unified)
	assert.Equal(t, [component.PodCount]bool{true, true, true}, state.DoorsUnlocked)
	for i := 0; i < component.PodCount; i++ {
		assert.True(t, h.char(i).Active, "character %d active", i)
	}
	ecs.ForEach(h.w, component.TriggerComponent.Kind(), func(_ ecs.Entity, tr *component.Trigger) {
		if tr.Kind == component.TriggerExitDoor {
			assert.True(t, tr.Enabled, "exit door %d", tr.Owner)
		}
	})
	assert.Equal(t, ecs.Entity(0), h.camera.target)
	assert.Equal(t, 1, h.camera.teleports)
	assert.Equal(t, 9.0, h.camera.zoomOut)
	assert.Equal(t, 1, h.audio.played(SoundElevatorDoors))

	for i := 0; i < component.PodCount; i++ {
		require.True(t, h.sys.ReachExit(h.w, i), "ReachExit(%d)", i)
	}
	require.True(t, h.sys.AllDoorsEntered(h.w))

	step(h.w, 1, tick, h.sys)
	assert.Equal(t, component.Won(), h.levelState().Phase)
	assert.Equal(t, 0.2, h.camera.follow)
	assert.Equal(t, h.winPoint, h.camera.target)
	assert.True(t, h.ui.canvases[component.CanvasWin])
	for i := 0; i < component.PodCount; i++ {
		assert.True(t, h.char(i).Faded)
	}

	step(h.w, 1, 4, h.sys, NewTimerSystem())
	assert.Contains(t, h.audio.stopped, SoundElevator)
	assert.Equal(t, 1, h.audio.played(SoundCheer))
	assert.Equal(t, 1, h.ui.celebrations)
	assert.Equal(t, "win", h.audio.lastMusic())
	assert.Zero(t, Pending(h.w))
}

func TestWinRunsOnce(t *testing.T) {
	h := newLevelHarness(t)

	require.True(t, h.sys.Win(h.w))
	assert.False(t, h.sys.Win(h.w))
	assert.Equal(t, 0.2, h.camera.follow)
	assert.Equal(t, 1, h.audio.played(SoundElevator))
}

func TestUnifyOnce(t *testing.T) {
	h := newLevelHarness(t)
	for i := 0; i < component.PodCount; i++ {
		h.beat(t, i)
	}
	state := h.levelState()
	gen := state.Generation
	stops := h.audio.stops

	assert.False(t, h.sys.ExitMinigame(h.w, 2, true))
	assert.True(t, state.Unified)
	assert.Equal(t, gen, state.Generation)
	assert.Equal(t, component.Exploration(), state.Phase)
	assert.Equal(t, 1, h.audio.played(SoundElevatorDoors))
	assert.Equal(t, component.PodCount, h.audio.played(SoundBeatLevel))
	assert.Equal(t, 1, h.camera.teleports)
	assert.Equal(t, stops, h.audio.stops)
}

func TestReachExitNeedsUnify(t *testing.T) {
	h := newLevelHarness(t)

	assert.False(t, h.sys.ReachExit(h.w, 0))
	assert.False(t, h.char(0).AtExit)
	assert.False(t, h.sys.AllDoorsEntered(h.w))
}

func TestLoseLife(t *testing.T) {
	h := newLevelHarness(t)
	h.fail(t, 0)

	c := h.char(0)
	assert.Equal(t, 2, c.Lives())
	assert.False(t, c.HasEnteredMinigameOnce)
	assert.True(t, c.Active)
	assert.Equal(t, component.Exploration(), h.levelState().Phase)

	pod := h.pod(0)
	assert.False(t, pod.Visible)
	assert.Equal(t, pod.MaxHealth, pod.Health)
	assert.Equal(t, 2, h.ui.lives[0])
	assert.Equal(t, "standard", h.audio.lastMusic())

	assert.True(t, h.sys.EnterMinigame(h.w, 0), "a failed pod can be entered again")
}

func TestGameOver(t *testing.T) {
	h := newLevelHarness(t)
	for i := 0; i < 3; i++ {
		h.fail(t, 0)
	}

	state := h.levelState()
	require.Equal(t, component.Lost(), state.Phase)
	assert.True(t, state.GameOverFired)
	assert.Equal(t, 0, state.Loser)
	assert.Zero(t, h.char(0).Lives())
	assert.Equal(t, h.chars[0], h.camera.target)
	assert.Equal(t, DefaultLevelTuning().LoseZoom, h.camera.zoom)
	assert.Equal(t, []int{0}, h.ui.screens)
	for i := 0; i < component.PodCount; i++ {
		assert.False(t, h.char(i).Active, "character %d active", i)
	}

	assert.False(t, h.sys.GameOver(h.w, 0))
	assert.False(t, h.sys.Win(h.w))
	assert.False(t, h.sys.EnterMinigame(h.w, 0))
	assert.False(t, h.sys.LoseLife(h.w, 1))
	assert.Equal(t, 3, h.char(1).Lives())

	step(h.w, 1, 2.5, NewCharacterSystem(h.ui), h.sys, NewTimerSystem())
	assert.True(t, h.ui.canvases[component.CanvasGameOver])
	assert.False(t, h.ui.canvases[component.CanvasMain])
	assert.Equal(t, "lose", h.audio.lastMusic())
	assert.Equal(t, component.Lost(), h.levelState().Phase)
}

func TestLivesNeverGoNegative(t *testing.T) {
	h := newLevelHarness(t)
	h.char(0).LivesLeft = 1
	h.fail(t, 0)
	require.Equal(t, component.Lost(), h.levelState().Phase)

	h.char(0).LoseLife()
	assert.Zero(t, h.char(0).Lives())
	assert.False(t, h.char(0).ConsumeDeath())
}

func TestScheduledCallsDropWhenStale(t *testing.T) {
	tests := []struct {
		name   string
		change func(h *levelHarness)
		want   bool
	}{
		{name: "unchanged", change: func(*levelHarness) {}, want: true},
		{name: "phase_changed", change: func(h *levelHarness) { h.sys.EnterMinigame(h.w, 0) }, want: false},
		{name: "game_over", change: func(h *levelHarness) { h.sys.GameOver(h.w, 1) }, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newLevelHarness(t)
			fired := false
			h.sys.schedule(h.w, 1, "probe", func() { fired = true })

			tc.change(h)
			step(h.w, 1, 2.5, NewTimerSystem())

			assert.Equal(t, tc.want, fired)
			assert.Zero(t, Pending(h.w))
		})
	}
}

func TestLevelUpdateDispatchesEvents(t *testing.T) {
	h := newLevelHarness(t)

	step(h.w, 1, tick, push(ecs.Event{Kind: ecs.EventEnterMinigame, Index: 0}), h.sys)
	require.Equal(t, component.Minigame(0), h.levelState().Phase)

	step(h.w, 1, tick, push(ecs.Event{Kind: ecs.EventExitMinigame, Index: 0, Success: true}), h.sys)
	assert.True(t, h.levelState().DoorsUnlocked[0])

	// Stale duplicates of an already handled event change nothing.
	gen := h.levelState().Generation
	step(h.w, 1, tick, push(ecs.Event{Kind: ecs.EventExitMinigame, Index: 0, Success: false}), h.sys)
	assert.Equal(t, gen, h.levelState().Generation)
	assert.Equal(t, 3, h.char(0).Lives())

	step(h.w, 1, tick, push(ecs.Event{Kind: ecs.EventCharacterDied, Index: 1}), h.sys)
	assert.Equal(t, component.Lost(), h.levelState().Phase)
}

func TestExhaustionCostsExactlyOneLife(t *testing.T) {
	h := newLevelHarness(t)
	require.True(t, h.sys.EnterMinigame(h.w, 0))
	pod := h.pod(0)
	pod.Unfreeze()
	pod.Health = 0

	pods := NewPodSystem(h.ui, h.audio, 0.5, false, zerolog.Nop())
	step(h.w, 10, tick, pods, h.sys)

	assert.Equal(t, 2, h.char(0).Lives())
	assert.Equal(t, component.Exploration(), h.levelState().Phase)
}

func TestNilCollaboratorsAreTolerated(t *testing.T) {
	lvl := newTestLevel(t)
	sys := NewLevelSystem(nil, nil, nil, DefaultLevelTuning(), zerolog.Nop())
	sys.Start(lvl.w)

	assert.True(t, sys.EnterMinigame(lvl.w, 0))
	assert.True(t, sys.ExitMinigame(lvl.w, 0, true))
}

func TestOutOfRangeIndexPanics(t *testing.T) {
	h := newLevelHarness(t)
	assert.Panics(t, func() { h.sys.EnterMinigame(h.w, component.PodCount) })
	assert.Panics(t, func() { h.sys.LoseLife(h.w, -1) })
}

// exhaust enters pod i and feeds it a hazard contact every tick until the
// level leaves Minigame(i). It returns how many failed exits the pod system
// reported and how long it took.
func (h *levelHarness) exhaust(t *testing.T, i int) (int, float64) {
	t.Helper()
	require.True(t, h.sys.EnterMinigame(h.w, i), "EnterMinigame(%d)", i)

	exits := 0
	hazards := systemFunc(func(w *ecs.World) {
		if h.levelState().Phase == component.Minigame(i) {
			w.Events().Push(ecs.Event{Kind: ecs.EventHazardContact, Index: i})
		}
	})
	count := systemFunc(func(w *ecs.World) {
		w.Events().Each(ecs.EventExitMinigame, func(ev ecs.Event) {
			if ev.Index == i && !ev.Success {
				exits++
			}
		})
	})
	s := ecs.NewScheduler(hazards, NewPodSystem(h.ui, h.audio, 0.5, false, zerolog.Nop()), count, h.sys)

	elapsed := 0.0
	for n := 0; n < 600 && h.levelState().Phase == component.Minigame(i); n++ {
		s.Update(h.w, tick)
		elapsed += tick
	}
	require.NotEqual(t, component.Minigame(i), h.levelState().Phase, "pod %d never ran out of health", i)
	return exits, elapsed
}

func TestHazardsExhaustPodThroughCooldown(t *testing.T) {
	h := newLevelHarness(t)

	exits, elapsed := h.exhaust(t, 0)

	assert.Equal(t, 1, exits)
	assert.Greater(t, elapsed, DefaultLevelTuning().EntryFreeze+0.5, "hits only land between cooldowns")
	assert.Equal(t, component.Exploration(), h.levelState().Phase)
	assert.Equal(t, 2, h.char(0).Lives())
	assert.Equal(t, 3, h.pod(0).Health)
	assert.False(t, h.pod(0).Visible)
	assert.Equal(t, 3, h.ui.hearts[0])
	assert.Equal(t, 4, h.audio.played(SoundHitWall), "three hits and the lost life")
}

func TestThirdExhaustionOfCenterCharacterLoses(t *testing.T) {
	h := newLevelHarness(t)
	h.beat(t, 0)
	require.True(t, h.char(1).Active)

	for n := 0; n < 3; n++ {
		exits, _ := h.exhaust(t, 1)
		require.Equal(t, 1, exits, "attempt %d", n)
	}

	state := h.levelState()
	require.Equal(t, component.Lost(), state.Phase)
	assert.Equal(t, 1, state.Loser)
	assert.Zero(t, h.char(1).Lives())
	assert.Equal(t, h.chars[1], h.camera.target)

	tr := ecs.MustGet(h.w, h.chars[1], component.TransformComponent.Kind())
	x, y := tr.X, tr.Y
	h.input(1).MoveX = 1
	step(h.w, 30, tick, NewCharacterSystem(h.ui), NewPodMovementSystem(), h.sys)
	assert.Equal(t, x, tr.X)
	assert.Equal(t, y, tr.Y)
	assert.Equal(t, component.Lost(), h.levelState().Phase)
}
