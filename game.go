package main

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/dustbunnies/common"
	"github.com/milk9111/dustbunnies/ecs"
	"github.com/milk9111/dustbunnies/ecs/component"
	"github.com/milk9111/dustbunnies/ecs/entity"
	"github.com/milk9111/dustbunnies/ecs/system"
	"github.com/milk9111/dustbunnies/prefabs"
	"github.com/milk9111/dustbunnies/settings"
	"github.com/rs/zerolog/log"
)

type Game struct {
	world      *ecs.World
	level      *entity.Level
	controller *system.Controller
	input      *system.InputSystem
	render     *system.RenderSystem

	settings     *settings.Manager
	watcher      *prefabs.Watcher
	playerPrefab string

	paused  bool
	pauseUI *ebitenui.UI
	debug   bool
}

func NewGame(levelName string, debug bool) (*Game, error) {
	spec, err := prefabs.LoadLevelSpec(levelName)
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	lvl, err := entity.LoadLevelToWorld(w, spec)
	if err != nil {
		return nil, err
	}
	// Scripted input is for headless runs; the window drives the player.
	ecs.Remove(w, lvl.Player, component.InputScriptComponent.Kind())

	g := &Game{
		world:        w,
		level:        lvl,
		settings:     settings.Open(),
		playerPrefab: spec.Player,
		debug:        debug,
	}
	g.input = system.NewInputSystem(g.settings)

	physics := system.NewPhysicsSystem()
	g.controller = system.NewController(w, lvl.Player, system.ControllerOptions{
		Input:    g.input,
		Physics:  physics,
		Capturer: system.CaptureFunc(captureCursor),
	})
	g.render = system.NewRenderSystem(physics)
	g.pauseUI = NewPauseUI(g)

	if debug {
		g.controller.Camera().OnStateChange = func(e ecs.Entity, from, to component.CameraMode) {
			log.Debug().
				Str("entity", e.String()).
				Uint64("tick", w.Tick()).
				Stringer("from", from).
				Stringer("to", to).
				Msg("camera mode")
		}

		watcher, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Warn().Err(err).Str("dir", prefabs.Dir).Msg("prefab hot reload disabled")
		} else {
			g.watcher = watcher
		}
	}

	return g, nil
}

func captureCursor() {
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
}

func (g *Game) Update() error {
	if system.PausePressed() {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.reloadTuning()

	g.controller.OnTick(common.TickDuration)
	g.controller.OnLateTick(common.TickDuration)
	return nil
}

func (g *Game) setPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	if paused {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		return
	}
	captureCursor()
	g.input.Reset()
	if err := g.settings.Save(); err != nil {
		log.Error().Err(err).Msg("failed to save settings")
	}
}

// reloadTuning re-applies the player prefab's tuning when it changes on disk.
func (g *Game) reloadTuning() {
	if g.watcher == nil {
		return
	}
	if !slices.Contains(g.watcher.Poll(), filepath.Base(g.playerPrefab)) {
		return
	}

	p, tuning, err := entity.LoadPlayerTuning(g.playerPrefab)
	if err != nil {
		log.Error().Err(err).Str("prefab", g.playerPrefab).Msg("hot reload failed")
		return
	}
	if cur, ok := ecs.Get(g.world, g.level.Player, component.PlayerComponent.Kind()); ok {
		p.YawSpeed, p.PitchSpeed = cur.YawSpeed, cur.PitchSpeed
		*cur = p
	}
	g.controller.Camera().ApplyTuning(g.world, g.level.Player, tuning)
	log.Info().Str("prefab", g.playerPrefab).Msg("tuning reloaded")
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Warn().Err(err).Msg("close prefab watcher")
		}
	}
}

func (g *Game) sensitivityLabel() string {
	return fmt.Sprintf("Sensitivity %.1f", g.settings.Look().Sensitivity)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
