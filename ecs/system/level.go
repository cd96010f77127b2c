package system

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
)

// LevelTuning holds the level controller's sequencing constants.
type LevelTuning struct {
	StandardMusic string
	MonitorMusic  [component.PodCount]string
	WinMusic      string
	LoseMusic     string
	MusicFade     float64

	// EntryFreeze keeps a freshly shown pod still for a moment.
	EntryFreeze           float64
	GameOverDelay         float64
	WinCheerDelay         float64
	WinMusicDelay         float64
	ElevatorSoundDuration float64
	LoseZoom              float64
}

func DefaultLevelTuning() LevelTuning {
	return LevelTuning{
		StandardMusic:         "standard",
		MonitorMusic:          [component.PodCount]string{"monitor_0", "monitor_1", "monitor_2"},
		WinMusic:              "win",
		LoseMusic:             "lose",
		MusicFade:             0.1,
		EntryFreeze:           1,
		GameOverDelay:         2,
		WinCheerDelay:         3.5,
		WinMusicDelay:         3.5,
		ElevatorSoundDuration: 3,
		LoseZoom:              2,
	}
}

// LevelSystem owns the level phase. It is the only writer of LevelState and
// of Character.Active.
type LevelSystem struct {
	camera CameraDirector
	audio  AudioSink
	ui     UISink
	tuning LevelTuning
	log    zerolog.Logger
}

func NewLevelSystem(camera CameraDirector, audio AudioSink, ui UISink, tuning LevelTuning, log zerolog.Logger) *LevelSystem {
	if camera == nil {
		camera = &WorldCamera{}
	}
	if audio == nil {
		audio = nopAudio{}
	}
	if ui == nil {
		ui = nopUI{}
	}
	return &LevelSystem{
		camera: camera,
		audio:  audio,
		ui:     ui,
		tuning: tuning,
		log:    log.With().Str("system", "level").Logger(),
	}
}

// Start puts a freshly built level into exploration with character 0 in
// control. The camera is left to its intro pan.
func (s *LevelSystem) Start(w *ecs.World) {
	_, state, ok := levelState(w)
	if !ok {
		return
	}
	state.Phase = component.Exploration()
	state.Loser = -1
	state.Generation++

	s.activateCharacter(w, 0, false)
	forEachCharacter(w, func(_ ecs.Entity, c *component.Character) {
		s.ui.SetLifeText(c.Index, c.Lives())
	})
	s.ui.ShowCanvas(component.CanvasMain, true)
	s.ui.ShowCanvas(component.CanvasHearts, false)
	s.ui.SetWorldVisible(true)
	s.audio.SwitchMusic(s.tuning.StandardMusic, s.tuning.MusicFade)
}

func (s *LevelSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if _, _, ok := levelState(w); !ok {
		return
	}

	events := w.Events()
	events.Each(ecs.EventEnterMinigame, func(ev ecs.Event) {
		s.EnterMinigame(w, ev.Index)
	})
	events.Each(ecs.EventExitMinigame, func(ev ecs.Event) {
		s.ExitMinigame(w, ev.Index, ev.Success)
	})
	events.Each(ecs.EventCharacterDied, func(ev ecs.Event) {
		s.GameOver(w, ev.Index)
	})
	events.Each(ecs.EventTriggerEnter, func(ev ecs.Event) {
		if ev.Trigger == component.TriggerExitDoor {
			s.ReachExit(w, ev.Index)
		}
	})

	if s.AllDoorsEntered(w) {
		s.Win(w)
	}
}

// EnterMinigame seats character i at its pod's computer.
func (s *LevelSystem) EnterMinigame(w *ecs.World, i int) bool {
	mustIndex(i)
	_, state, ok := levelState(w)
	if !ok {
		return false
	}
	if state.Phase.Kind != component.PhaseExploration {
		s.drop(state, "enter_minigame", i)
		return false
	}
	_, char, ok := characterAt(w, i)
	if !ok || !char.Active || char.HasEnteredMinigameOnce || state.DoorsUnlocked[i] {
		s.drop(state, "enter_minigame", i)
		return false
	}

	char.HasEnteredMinigameOnce = true
	s.transition(state, component.Minigame(i))

	forEachCharacter(w, func(_ ecs.Entity, c *component.Character) {
		c.InputLocked = true
		c.Walking = false
	})
	forEachPod(w, func(_ ecs.Entity, p *component.Pod) {
		p.RefillHealth()
	})
	if _, pod, ok := podAt(w, i); ok {
		pod.ResetToStart()
		pod.Visible = true
		pod.Unfreeze()
		pod.Freeze(s.tuning.EntryFreeze)
		s.ui.SetHeartsVisible(i, pod.Health)
	}

	s.ui.ShowCanvas(component.CanvasHearts, true)
	s.ui.SetPodVisible(i, true)
	s.ui.SetWorldVisible(false)
	s.camera.SetTarget(0)
	s.audio.SwitchMusic(s.tuning.MonitorMusic[i], s.tuning.MusicFade)
	s.audio.PlaySound(SoundKeyboard, 0, 1)

	s.log.Info().Int("pod", i).Msg("enter minigame")
	return true
}

// ExitMinigame closes pod i's mini-game. Success unlocks the pod's door and
// hands control to the next character; failure costs a life.
func (s *LevelSystem) ExitMinigame(w *ecs.World, i int, success bool) bool {
	mustIndex(i)
	_, state, ok := levelState(w)
	if !ok {
		return false
	}
	if !state.Phase.InMinigame(i) {
		s.drop(state, "exit_minigame", i)
		return false
	}

	s.closeMinigame(w, i)
	s.transition(state, component.Exploration())

	if !success {
		s.log.Info().Int("pod", i).Msg("pod exhausted")
		s.LoseLife(w, i)
		return true
	}

	state.DoorsUnlocked[i] = true
	s.audio.PlaySound(SoundBeatLevel, 0.1, 1)
	s.ui.SetRoomLight(i, true)
	s.log.Info().Int("pod", i).Msg("pod beaten")

	if i < component.PodCount-1 {
		s.activateCharacter(w, i+1, true)
		return true
	}
	if allUnlocked(state) {
		s.unify(w, state)
	}
	return true
}

// LoseLife costs character i one life and resets its pod. Running out of
// lives ends the attempt.
func (s *LevelSystem) LoseLife(w *ecs.World, i int) bool {
	mustIndex(i)
	_, state, ok := levelState(w)
	if !ok {
		return false
	}
	if state.Phase.Terminal() {
		s.drop(state, "lose_life", i)
		return false
	}
	_, char, ok := characterAt(w, i)
	if !ok {
		return false
	}

	if state.Phase.InMinigame(i) {
		s.closeMinigame(w, i)
		s.transition(state, component.Exploration())
	}

	char.LoseLife()
	char.HasEnteredMinigameOnce = false
	if _, pod, ok := podAt(w, i); ok {
		pod.RefillHealth()
		pod.ResetToStart()
		pod.Unfreeze()
		pod.Visible = false
		s.ui.SetHeartsVisible(i, pod.Health)
	}

	s.ui.SetLifeText(i, char.Lives())
	s.audio.PlaySound(SoundHitWall, 0.2, 1)
	s.audio.SwitchMusic(s.tuning.StandardMusic, s.tuning.MusicFade)
	s.log.Info().Int("character", i).Int("lives", char.Lives()).Msg("life lost")

	if char.ConsumeDeath() {
		s.GameOver(w, i)
	}
	return true
}

// GameOver ends the attempt on character i's loss. It runs at most once.
func (s *LevelSystem) GameOver(w *ecs.World, i int) bool {
	mustIndex(i)
	_, state, ok := levelState(w)
	if !ok {
		return false
	}
	if state.GameOverFired || state.Phase.Terminal() {
		s.drop(state, "game_over", i)
		return false
	}
	state.GameOverFired = true
	state.Loser = i

	if state.Phase.Kind == component.PhaseMinigame {
		s.closeMinigame(w, state.Phase.Pod)
	}
	s.transition(state, component.Lost())

	forEachCharacter(w, func(_ ecs.Entity, c *component.Character) {
		c.Active = false
		c.Walking = false
		c.DeathInitiated = c.DeathInitiated || c.Index == i
	})

	if ent, _, ok := characterAt(w, i); ok {
		s.camera.SetTarget(ent)
	}
	s.camera.SetZoom(s.tuning.LoseZoom)
	s.ui.ShowComputerScreen(i)
	s.audio.PlaySound(SoundScreenOff, 0.2, 1)
	s.audio.StopMusic()

	s.schedule(w, s.tuning.GameOverDelay, "game_over_screen", func() {
		s.audio.SwitchMusic(s.tuning.LoseMusic, 0.2)
		s.ui.ShowCanvas(component.CanvasMain, false)
		s.ui.ShowCanvas(component.CanvasGameOver, true)
		s.audio.PlaySound(SoundScreenOff, 0.2, 0.8)
	})

	s.log.Info().Int("character", i).Msg("game over")
	return true
}

// ReachExit takes character i out through its exit door once the
// characters are unified.
func (s *LevelSystem) ReachExit(w *ecs.World, i int) bool {
	mustIndex(i)
	_, state, ok := levelState(w)
	if !ok {
		return false
	}
	if state.Phase.Kind != component.PhaseExploration || !state.Unified {
		s.drop(state, "reach_exit", i)
		return false
	}
	_, char, ok := characterAt(w, i)
	if !ok || !char.Active || char.AtExit {
		return false
	}
	char.Active = false
	char.Walking = false
	char.AtExit = true
	s.log.Info().Int("character", i).Msg("character left through exit")
	return true
}

// AllDoorsEntered reports whether every character has left through its
// exit after the unify sequence.
func (s *LevelSystem) AllDoorsEntered(w *ecs.World) bool {
	_, state, ok := levelState(w)
	if !ok || state.Phase.Kind != component.PhaseExploration || !state.Unified {
		return false
	}
	count := 0
	all := true
	forEachCharacter(w, func(_ ecs.Entity, c *component.Character) {
		count++
		if c.Active || !c.AtExit {
			all = false
		}
	})
	return all && count == component.PodCount
}

// Win ends the attempt in victory. It runs at most once.
func (s *LevelSystem) Win(w *ecs.World) bool {
	_, state, ok := levelState(w)
	if !ok {
		return false
	}
	if state.WinFired || state.Phase.Terminal() {
		s.drop(state, "win", -1)
		return false
	}
	state.WinFired = true
	s.transition(state, component.Won())

	s.audio.PlaySound(SoundElevator, 0, 1)
	s.schedule(w, s.tuning.ElevatorSoundDuration, "stop_elevator", func() {
		s.audio.StopSound(SoundElevator)
	})

	winPoint := firstTagged(w, component.WinPointTagComponent)
	if tag, ok := ecs.Get(w, winPoint, component.WinPointTagComponent.Kind()); ok {
		tag.Shown = true
	}
	s.camera.SetFollowSpeed(s.camera.FollowSpeed() / 2)
	s.camera.SetTarget(winPoint)

	forEachCharacter(w, func(_ ecs.Entity, c *component.Character) {
		c.Active = false
		c.Walking = false
		c.Faded = true
	})
	s.ui.ShowCanvas(component.CanvasWin, true)
	s.audio.StopMusic()

	s.schedule(w, s.tuning.WinCheerDelay, "win_cheer", func() {
		s.audio.PlaySound(SoundCheer, 0.2, 1.2)
		s.ui.Celebrate()
	})
	s.schedule(w, s.tuning.WinMusicDelay, "win_music", func() {
		s.audio.SwitchMusic(s.tuning.WinMusic, 0.2)
	})

	s.log.Info().Msg("level won")
	return true
}

func (s *LevelSystem) unify(w *ecs.World, state *component.LevelState) {
	if state.Unified {
		return
	}
	state.Unified = true
	state.Generation++

	forEachCharacter(w, func(_ ecs.Entity, c *component.Character) {
		c.Active = true
		c.InputLocked = false
	})

	s.camera.SetTarget(0)
	overview := firstTagged(w, component.OverviewTagComponent)
	if tr, ok := ecs.Get(w, overview, component.TransformComponent.Kind()); ok {
		s.camera.TeleportTo(tr.X, tr.Y)
	}
	if tag, ok := ecs.Get(w, overview, component.OverviewTagComponent.Kind()); ok {
		s.camera.RequestZoomOut(tag.ZoomSize, tag.ZoomSpeed)
	}

	ecs.ForEach(w, component.TriggerComponent.Kind(), func(_ ecs.Entity, t *component.Trigger) {
		if t.Kind == component.TriggerExitDoor {
			t.Enabled = true
		}
	})

	s.audio.PlaySound(SoundElevatorDoors, 0.2, 1)
	s.audio.StopMusic()
	s.log.Info().Msg("characters unified")
}

func (s *LevelSystem) activateCharacter(w *ecs.World, i int, moveCamera bool) {
	mustIndex(i)
	forEachCharacter(w, func(_ ecs.Entity, c *component.Character) {
		c.Active = c.Index == i
		if !c.Active {
			c.Walking = false
		}
	})
	if moveCamera {
		if ent, _, ok := characterAt(w, i); ok {
			s.camera.SetTarget(ent)
		}
	}
	s.audio.SwitchMusic(s.tuning.StandardMusic, s.tuning.MusicFade)
}

func (s *LevelSystem) closeMinigame(w *ecs.World, i int) {
	if _, pod, ok := podAt(w, i); ok {
		pod.Visible = false
	}
	forEachCharacter(w, func(_ ecs.Entity, c *component.Character) {
		c.InputLocked = false
	})
	s.ui.SetPodVisible(i, false)
	s.ui.SetWorldVisible(true)
	s.ui.ShowCanvas(component.CanvasHearts, false)
}

func (s *LevelSystem) transition(state *component.LevelState, next component.LevelPhase) {
	s.log.Debug().Stringer("from", state.Phase).Stringer("to", next).Msg("phase")
	state.Phase = next
	state.Generation++
}

// schedule defers fn and drops it if the level has moved on by the time it
// fires.
func (s *LevelSystem) schedule(w *ecs.World, delay float64, name string, fn func()) {
	_, state, ok := levelState(w)
	if !ok {
		return
	}
	gen := state.Generation
	Schedule(w, delay, name, func() {
		_, cur, ok := levelState(w)
		if !ok || cur.Generation != gen {
			s.log.Debug().Str("call", name).Msg("drop stale scheduled call")
			return
		}
		fn()
	})
}

func (s *LevelSystem) drop(state *component.LevelState, op string, i int) {
	s.log.Debug().Str("op", op).Int("index", i).Stringer("phase", state.Phase).Msg("drop stale event")
}

func allUnlocked(state *component.LevelState) bool {
	for _, ok := range state.DoorsUnlocked {
		if !ok {
			return false
		}
	}
	return true
}
