package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/milk9111/podescape/assets"
	"github.com/milk9111/podescape/common"
	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
	"github.com/milk9111/podescape/ecs/entity"
	"github.com/milk9111/podescape/ecs/system"
	"github.com/milk9111/podescape/prefabs"
)

// Game owns one level attempt at a time. A restart throws the world away
// and builds a fresh one; only music playback survives it.
type Game struct {
	cfg     Config
	log     zerolog.Logger
	sounds  *assets.Library
	watcher *prefabs.Watcher

	world     *ecs.World
	scheduler *ecs.Scheduler
	hud       *HUD
	renderer  *Renderer
	attempts  int
}

func NewGame(cfg Config, log zerolog.Logger) (*Game, error) {
	g := &Game{
		cfg:      cfg,
		log:      log,
		sounds:   assets.NewLibrary(assets.Context(), assets.SoundDir),
		renderer: NewRenderer(),
	}
	g.hud = NewHUD(func() {
		system.RequestRestart(g.world, "restart button")
	})

	if cfg.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Warn().Err(err).Msg("prefab watcher disabled")
		} else {
			g.watcher = w
		}
	}

	if err := g.load(nil); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

// load builds a new world from the level spec. music carries playback state
// over from the previous world and may be nil.
func (g *Game) load(music *component.MusicPlayer) error {
	spec, err := prefabs.LoadLevelSpec(g.cfg.Level)
	if err != nil {
		return err
	}
	script, err := system.LoadReactionScript(spec.ReactionScript)
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	if _, err := entity.NewMusicPlayer(w, music); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if _, err := entity.BuildLevel(w, spec); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	t := spec.Tuning
	audio := system.NewWorldAudio(w)
	ui := system.NewWorldUI(w, t.DialogueSeconds)
	level := system.NewLevelSystem(system.NewCameraDirector(w), audio, ui, entity.Tuning(spec), g.log)

	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(g.cfg.Debug),
		system.NewCharacterSystem(ui),
		system.NewPodMovementSystem(),
		system.NewContactSystem(t.InteractDistance, g.log),
		system.NewPodSystem(ui, audio, t.HazardCooldown, g.cfg.Debug, g.log),
		system.NewInteractionSystem(script, audio, ui, t.InteractCooldown, g.log),
		level,
		system.NewTimerSystem(),
		system.NewCameraSystem(),
		system.NewHUDSystem(),
		system.NewSoundSystem(g.sounds.Load, g.log),
		system.NewMusicSystem(g.sounds.Load, g.log),
	)
	level.Start(w)

	g.world = w
	g.attempts++
	g.log.Info().Str("level", spec.Name).Int("attempt", g.attempts).Msg("level started")
	return nil
}

func (g *Game) restart(reason string) {
	var music *component.MusicPlayer
	if ent, ok := ecs.First(g.world, component.MusicPlayerComponent.Kind()); ok {
		music = ecs.MustGet(g.world, ent, component.MusicPlayerComponent.Kind())
	}

	g.log.Info().Str("reason", reason).Msg("restart")
	if err := g.load(music); err != nil {
		// Keep playing the current world; a broken edit should not end the
		// session.
		g.log.Error().Err(err).Msg("restart failed")
		ecs.ForEach(g.world, component.ReloadRequestComponent.Kind(), func(e ecs.Entity, _ *component.ReloadRequest) {
			ecs.DestroyEntity(g.world, e)
		})
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.scheduler.Update(g.world, 1/float64(ebiten.TPS()))
	g.hud.Update(g.world)

	if g.watcher != nil {
		if err := g.watcher.Err(); err != nil {
			g.log.Warn().Err(err).Msg("prefab watcher")
		}
		if paths, ok := g.watcher.Poll(); ok {
			system.RequestRestart(g.world, "changed "+strings.Join(paths, ", "))
		}
	}
	if reason := system.RestartRequested(g.world); reason != "" {
		g.restart(reason)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen)
	g.hud.Draw(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
