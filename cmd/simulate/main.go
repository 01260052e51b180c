// Command simulate runs the first-person rig headless: it loads a level,
// feeds the player from a tengo input script for a fixed number of ticks and
// prints where the camera ended up.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/milk9111/dustbunnies/common"
	"github.com/milk9111/dustbunnies/ecs"
	"github.com/milk9111/dustbunnies/ecs/component"
	"github.com/milk9111/dustbunnies/ecs/entity"
	"github.com/milk9111/dustbunnies/ecs/system"
	"github.com/milk9111/dustbunnies/prefabs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type options struct {
	level   string
	player  string
	script  string
	ticks   int
	dt      float64
	verbose bool
}

type transition struct {
	Tick     uint64
	From, To component.CameraMode
}

type result struct {
	Transitions []transition
	Mode        component.CameraMode
	Transform   component.Transform
	Head        component.Head
	FOV         float64
}

func main() {
	opts := options{}

	rootCmd := &cobra.Command{
		Use:           "simulate",
		Short:         "Run the player rig headless against a level and input script",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), opts.verbose)
			res, err := run(opts)
			if err != nil {
				return err
			}
			report(cmd.OutOrStdout(), res)
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.level, "level", "desk_room.yaml", "level file in prefabs/")
	flags.StringVar(&opts.player, "player", "", "player prefab, overrides the level's")
	flags.StringVar(&opts.script, "script", "", "tengo input script, overrides the level's")
	flags.IntVar(&opts.ticks, "ticks", 360, "number of ticks to run")
	flags.Float64Var(&opts.dt, "dt", common.TickDuration, "seconds per tick")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "simulate:", err)
		os.Exit(1)
	}
}

func setupLogging(out io.Writer, verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}).
		With().
		Timestamp().
		Logger()
}

func run(opts options) (*result, error) {
	if opts.ticks < 0 {
		return nil, fmt.Errorf("ticks must not be negative")
	}
	if opts.dt <= 0 {
		return nil, fmt.Errorf("dt must be positive")
	}

	spec, err := prefabs.LoadLevelSpec(opts.level)
	if err != nil {
		return nil, err
	}
	if opts.player != "" {
		spec.Player = opts.player
	}

	w := ecs.NewWorld()
	lvl, err := entity.LoadLevelToWorld(w, spec)
	if err != nil {
		return nil, err
	}
	if opts.script != "" {
		if err := ecs.Add(w, lvl.Player, component.InputScriptComponent.Kind(), &component.InputScript{Path: opts.script}); err != nil {
			return nil, err
		}
	}
	if !ecs.Has(w, lvl.Player, component.InputScriptComponent.Kind()) {
		return nil, fmt.Errorf("level %q has no input script; pass --script", spec.Name)
	}

	ctrl := system.NewController(w, lvl.Player, system.ControllerOptions{
		Input:   system.NewInputScriptSystem(),
		Physics: system.NewPhysicsSystem(),
	})

	res := &result{}
	ctrl.Camera().OnStateChange = func(e ecs.Entity, from, to component.CameraMode) {
		res.Transitions = append(res.Transitions, transition{Tick: w.Tick(), From: from, To: to})
		log.Info().
			Uint64("tick", w.Tick()).
			Stringer("from", from).
			Stringer("to", to).
			Msg("camera")
	}

	for i := 0; i < opts.ticks; i++ {
		ctrl.Step(opts.dt)
	}

	res.Mode = ctrl.Mode()
	if tr, ok := ecs.Get(w, lvl.Player, component.TransformComponent.Kind()); ok {
		res.Transform = *tr
	}
	if head, ok := ecs.Get(w, lvl.Player, component.HeadComponent.Kind()); ok {
		res.Head = *head
	}
	if lens, ok := ecs.Get(w, lvl.Player, component.LensComponent.Kind()); ok {
		res.FOV = lens.FOV
	}
	return res, nil
}

func report(out io.Writer, res *result) {
	p := res.Transform.Position
	fmt.Fprintf(out, "mode:        %s\n", res.Mode)
	fmt.Fprintf(out, "position:    %.3f %.3f %.3f\n", p.X(), p.Y(), p.Z())
	fmt.Fprintf(out, "yaw:         %.2f\n", res.Transform.Yaw)
	fmt.Fprintf(out, "head pitch:  %.2f\n", res.Head.Pitch)
	fmt.Fprintf(out, "head roll:   %.2f\n", res.Head.Roll)
	fmt.Fprintf(out, "fov:         %.2f\n", res.FOV)
	look := res.Head.LookDirection(res.Transform)
	fmt.Fprintf(out, "look:        %.3f %.3f %.3f\n", look.X(), look.Y(), look.Z())
	fmt.Fprintf(out, "transitions: %d\n", len(res.Transitions))
}
