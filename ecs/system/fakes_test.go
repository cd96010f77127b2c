package system

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
)

type soundCall struct {
	id    string
	delay float64
	pitch float64
}

type fakeAudio struct {
	sounds  []soundCall
	stopped []string
	music   []string
	stops   int
}

func (a *fakeAudio) PlaySound(id string, delay, pitch float64) {
	a.sounds = append(a.sounds, soundCall{id: id, delay: delay, pitch: pitch})
}

func (a *fakeAudio) StopSound(id string) { a.stopped = append(a.stopped, id) }

func (a *fakeAudio) SwitchMusic(track string, _ float64) { a.music = append(a.music, track) }

func (a *fakeAudio) StopMusic() { a.stops++ }

func (a *fakeAudio) played(id string) int {
	n := 0
	for _, s := range a.sounds {
		if s.id == id {
			n++
		}
	}
	return n
}

func (a *fakeAudio) lastMusic() string {
	if len(a.music) == 0 {
		return ""
	}
	return a.music[len(a.music)-1]
}

type fakeUI struct {
	hearts       [component.PodCount]int
	lives        [component.PodCount]int
	canvases     map[component.Canvas]bool
	dialogues    []string
	worldVisible bool
	podVisible   [component.PodCount]bool
	lights       [component.PodCount]bool
	screens      []int
	celebrations int
}

func newFakeUI() *fakeUI {
	return &fakeUI{canvases: map[component.Canvas]bool{}, worldVisible: true}
}

func (u *fakeUI) SetHeartsVisible(pod, count int) { u.hearts[pod] = count }

func (u *fakeUI) SetLifeText(char, lives int) { u.lives[char] = lives }

func (u *fakeUI) ShowCanvas(id component.Canvas, visible bool) { u.canvases[id] = visible }

func (u *fakeUI) ShowDialogue(_ int, text string) { u.dialogues = append(u.dialogues, text) }

func (u *fakeUI) SetWorldVisible(visible bool) { u.worldVisible = visible }

func (u *fakeUI) SetPodVisible(pod int, visible bool) { u.podVisible[pod] = visible }

func (u *fakeUI) SetRoomLight(room int, on bool) { u.lights[room] = on }

func (u *fakeUI) ShowComputerScreen(pod int) { u.screens = append(u.screens, pod) }

func (u *fakeUI) Celebrate() { u.celebrations++ }

type fakeCamera struct {
	target    ecs.Entity
	follow    float64
	zoom      float64
	zoomOut   float64
	teleports int
}

func (c *fakeCamera) SetTarget(target ecs.Entity) { c.target = target }

func (c *fakeCamera) Target() ecs.Entity { return c.target }

func (c *fakeCamera) RequestZoomOut(size, _ float64) { c.zoomOut = size }

func (c *fakeCamera) SetZoom(size float64) { c.zoom = size }

func (c *fakeCamera) SetFollowSpeed(v float64) { c.follow = v }

func (c *fakeCamera) FollowSpeed() float64 { return c.follow }

func (c *fakeCamera) TeleportTo(float64, float64) { c.teleports++ }

// systemFunc adapts a function to ecs.System.
type systemFunc func(w *ecs.World)

func (f systemFunc) Update(w *ecs.World) { f(w) }

// eventRecorder keeps every event seen at its point in the schedule.
type eventRecorder struct {
	events []ecs.Event
}

func (r *eventRecorder) Update(w *ecs.World) {
	r.events = append(r.events, w.Events().Drain()...)
}

func (r *eventRecorder) count(kind ecs.EventKind) int {
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func push(events ...ecs.Event) systemFunc {
	return func(w *ecs.World) {
		for _, ev := range events {
			w.Events().Push(ev)
		}
	}
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, h component.ComponentHandle[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, h.Kind(), v); err != nil {
		t.Fatalf("add %T: %v", v, err)
	}
}

type testLevel struct {
	w        *ecs.World
	state    ecs.Entity
	chars    [component.PodCount]ecs.Entity
	pods     [component.PodCount]ecs.Entity
	camera   ecs.Entity
	winPoint ecs.Entity
	overview ecs.Entity
}

// newTestLevel builds three rooms side by side, each with a character, an
// exit door and a pod. Pods are 8x6 with one hazard column at x=4 and the
// goal in the top right corner.
func newTestLevel(t *testing.T) *testLevel {
	t.Helper()
	w := ecs.NewWorld()
	lvl := &testLevel{w: w}

	lvl.state = ecs.CreateEntity(w)
	mustAdd(t, w, lvl.state, component.LevelStateComponent, &component.LevelState{Phase: component.Exploration(), Loser: -1})

	for i := 0; i < component.PodCount; i++ {
		x := float64(i-1) * 13

		c := ecs.CreateEntity(w)
		mustAdd(t, w, c, component.TransformComponent, &component.Transform{X: x})
		mustAdd(t, w, c, component.InputComponent, &component.Input{})
		mustAdd(t, w, c, component.CharacterComponent, &component.Character{
			Index:         i,
			Role:          component.Role(i),
			LivesLeft:     3,
			StartingLives: 3,
			WalkSpeed:     3,
			MinX:          x - 3,
			MaxX:          x + 3,
			Width:         0.8,
			Height:        1.6,
			FacingRight:   true,
			ClampMinX:     x - 1,
			ClampMaxX:     x + 1,
		})
		lvl.chars[i] = c

		exit := ecs.CreateEntity(w)
		mustAdd(t, w, exit, component.TransformComponent, &component.Transform{X: x + 2.5, Y: 1})
		mustAdd(t, w, exit, component.TriggerComponent, &component.Trigger{Kind: component.TriggerExitDoor, Owner: i, Width: 1, Height: 2})

		light := ecs.CreateEntity(w)
		mustAdd(t, w, light, component.RoomLightComponent, &component.RoomLight{Room: i})

		p := ecs.CreateEntity(w)
		mustAdd(t, w, p, component.PodComponent, &component.Pod{
			Index:        i,
			Health:       3,
			MaxHealth:    3,
			StartX:       0.5,
			StartY:       0.5,
			X:            0.5,
			Y:            0.5,
			OriginX:      float64(i+1) * 100,
			Width:        8,
			Height:       6,
			Size:         0.2,
			StepSize:     0.25,
			StepInterval: 0.12,
		})
		lvl.pods[i] = p

		hazard := ecs.CreateEntity(w)
		mustAdd(t, w, hazard, component.HazardComponent, &component.Hazard{Pod: i, Width: 1, Height: 4, OffsetX: 4})

		goal := ecs.CreateEntity(w)
		mustAdd(t, w, goal, component.TriggerComponent, &component.Trigger{Kind: component.TriggerWinDoor, Owner: i, Enabled: true, Width: 1, Height: 1, OffsetX: 7, OffsetY: 5})
	}

	lvl.camera = ecs.CreateEntity(w)
	mustAdd(t, w, lvl.camera, component.CameraComponent, &component.Camera{FollowSpeed: 0.4, OrthoSize: 5, Initialized: true, OffsetY: 1.5})
	mustAdd(t, w, lvl.camera, component.CameraTagComponent, &component.CameraTag{})

	lvl.winPoint = ecs.CreateEntity(w)
	mustAdd(t, w, lvl.winPoint, component.TransformComponent, &component.Transform{Y: 14})
	mustAdd(t, w, lvl.winPoint, component.WinPointTagComponent, &component.WinPointTag{})

	lvl.overview = ecs.CreateEntity(w)
	mustAdd(t, w, lvl.overview, component.TransformComponent, &component.Transform{Y: 3})
	mustAdd(t, w, lvl.overview, component.OverviewTagComponent, &component.OverviewTag{ZoomSize: 9, ZoomSpeed: 1.5})

	return lvl
}

func (l *testLevel) levelState() *component.LevelState {
	return ecs.MustGet(l.w, l.state, component.LevelStateComponent.Kind())
}

func (l *testLevel) char(i int) *component.Character {
	return ecs.MustGet(l.w, l.chars[i], component.CharacterComponent.Kind())
}

func (l *testLevel) pod(i int) *component.Pod {
	return ecs.MustGet(l.w, l.pods[i], component.PodComponent.Kind())
}

func (l *testLevel) input(i int) *component.Input {
	return ecs.MustGet(l.w, l.chars[i], component.InputComponent.Kind())
}

// step runs systems for n ticks of dt seconds.
func step(w *ecs.World, n int, dt float64, systems ...ecs.System) {
	s := ecs.NewScheduler(systems...)
	for i := 0; i < n; i++ {
		s.Update(w, dt)
	}
}

type levelHarness struct {
	*testLevel
	sys    *LevelSystem
	audio  *fakeAudio
	ui     *fakeUI
	camera *fakeCamera
}

func newLevelHarness(t *testing.T) *levelHarness {
	t.Helper()
	h := &levelHarness{
		testLevel: newTestLevel(t),
		audio:     &fakeAudio{},
		ui:        newFakeUI(),
		camera:    &fakeCamera{follow: 0.4},
	}
	h.sys = NewLevelSystem(h.camera, h.audio, h.ui, DefaultLevelTuning(), zerolog.Nop())
	h.sys.Start(h.w)
	return h
}

// beat plays pod i to a successful end.
func (h *levelHarness) beat(t *testing.T, i int) {
	t.Helper()
	if !h.sys.EnterMinigame(h.w, i) {
		t.Fatalf("EnterMinigame(%d) refused in phase %s", i, h.levelState().Phase)
	}
	if !h.sys.ExitMinigame(h.w, i, true) {
		t.Fatalf("ExitMinigame(%d, true) refused in phase %s", i, h.levelState().Phase)
	}
}

// fail enters pod i and exhausts it.
func (h *levelHarness) fail(t *testing.T, i int) {
	t.Helper()
	if !h.sys.EnterMinigame(h.w, i) {
		t.Fatalf("EnterMinigame(%d) refused in phase %s", i, h.levelState().Phase)
	}
	if !h.sys.ExitMinigame(h.w, i, false) {
		t.Fatalf("ExitMinigame(%d, false) refused in phase %s", i, h.levelState().Phase)
	}
}
