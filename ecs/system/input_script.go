package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/dustbunnies/ecs"
	"github.com/milk9111/dustbunnies/ecs/component"
	"github.com/milk9111/dustbunnies/prefabs"
	"github.com/rs/zerolog/log"
)

var scriptInputs = []string{"tick", "time", "dt"}

var scriptOutputs = []string{"move_x", "move_z", "look_x", "look_y", "look_left", "look_right"}

type inputScriptRuntime struct {
	path     string
	compiled *tengo.Compiled
	failed   bool
}

// InputScriptSystem fills Input from a tengo script once per tick. The
// script reads tick, time and dt and assigns any of move_x, move_z, look_x,
// look_y, look_left and look_right; unassigned outputs read as zero.
type InputScriptSystem struct {
	cache map[ecs.Entity]*inputScriptRuntime
}

func NewInputScriptSystem() *InputScriptSystem {
	return &InputScriptSystem{cache: map[ecs.Entity]*inputScriptRuntime{}}
}

func (is *InputScriptSystem) Update(w *ecs.World) {
	if is == nil || w == nil {
		return
	}

	ecs.ForEach2(w,
		component.InputScriptComponent.Kind(),
		component.InputComponent.Kind(),
		func(e ecs.Entity, sc *component.InputScript, in *component.Input) {
			rt, err := is.runtime(e, sc)
			if err != nil {
				log.Error().Err(err).Str("entity", e.String()).Str("script", sc.Path).Msg("input script disabled")
				return
			}
			if rt.failed {
				return
			}
			if err := rt.run(w, in); err != nil {
				rt.failed = true
				log.Error().Err(err).Str("entity", e.String()).Str("script", sc.Path).Msg("input script failed")
			}
		})
}

func (is *InputScriptSystem) runtime(e ecs.Entity, sc *component.InputScript) (*inputScriptRuntime, error) {
	if is.cache == nil {
		is.cache = map[ecs.Entity]*inputScriptRuntime{}
	}
	if rt, ok := is.cache[e]; ok && rt.path == sc.Path {
		return rt, nil
	}

	src := sc.Source
	if len(src) == 0 {
		data, err := prefabs.LoadScript(sc.Path)
		if err != nil {
			is.cache[e] = &inputScriptRuntime{path: sc.Path, failed: true}
			return nil, fmt.Errorf("input script %q: %w", sc.Path, err)
		}
		src = data
	}

	compiled, err := compileInputScript(src)
	if err != nil {
		is.cache[e] = &inputScriptRuntime{path: sc.Path, failed: true}
		return nil, fmt.Errorf("input script %q: %w", sc.Path, err)
	}

	rt := &inputScriptRuntime{path: sc.Path, compiled: compiled}
	is.cache[e] = rt
	return rt, nil
}

func compileInputScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	_ = script.Add("tick", 0)
	_ = script.Add("time", 0.0)
	_ = script.Add("dt", 0.0)
	for _, name := range scriptOutputs[:4] {
		_ = script.Add(name, 0.0)
	}
	_ = script.Add("look_left", false)
	_ = script.Add("look_right", false)

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

func (rt *inputScriptRuntime) run(w *ecs.World, in *component.Input) error {
	c := rt.compiled
	if c == nil {
		return fmt.Errorf("nil script runtime")
	}

	inputs := []any{int64(w.Tick()), w.Time(), w.DeltaTime()}
	for i, name := range scriptInputs {
		if err := c.Set(name, inputs[i]); err != nil {
			return err
		}
	}
	for _, name := range scriptOutputs[:4] {
		if err := c.Set(name, 0.0); err != nil {
			return err
		}
	}
	if err := c.Set("look_left", false); err != nil {
		return err
	}
	if err := c.Set("look_right", false); err != nil {
		return err
	}

	if err := c.Run(); err != nil {
		return err
	}

	in.MoveX = c.Get("move_x").Float()
	in.MoveZ = c.Get("move_z").Float()
	in.LookX = c.Get("look_x").Float()
	in.LookY = c.Get("look_y").Float()
	in.SetLookButtons(c.Get("look_left").Bool(), c.Get("look_right").Bool())
	return nil
}
