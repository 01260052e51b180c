package entity

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/dustbunnies/ecs"
	"github.com/milk9111/dustbunnies/ecs/component"
	"github.com/milk9111/dustbunnies/prefabs"
	"github.com/milk9111/dustbunnies/tween"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":    addPlayerTag,
	"transform":     addTransform,
	"head":          addHead,
	"lens":          addLens,
	"input":         addInput,
	"player":        addPlayer,
	"camera_rig":    addCameraRig,
	"physics_body":  addPhysicsBody,
	"zone_tag":      addZoneTag,
	"overlook_zone": addOverlookZone,
	"wall":          addWall,
	"input_script":  addInputScript,
}

var componentBuildOrder = []string{
	"player_tag",
	"transform",
	"head",
	"lens",
	"input",
	"player",
	"camera_rig",
	"physics_body",
	"zone_tag",
	"overlook_zone",
	"wall",
	"input_script",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, names)
	}

	return e, nil
}

// SetEntityTransform places e, creating its transform if needed.
func SetEntityTransform(w *ecs.World, e ecs.Entity, pos mgl64.Vec3, yaw float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.Position = pos
	t.Yaw = yaw
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addZoneTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ZoneTagComponent.Kind(), &component.ZoneTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: mgl64.Vec3{spec.X, spec.Y, spec.Z},
		Yaw:      spec.Yaw,
	})
}

type headSpec = prefabs.HeadComponentSpec

func addHead(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[headSpec](raw)
	if err != nil {
		return fmt.Errorf("decode head spec: %w", err)
	}
	return ecs.Add(w, e, component.HeadComponent.Kind(), &component.Head{
		LocalPosition: mgl64.Vec3{spec.X, spec.Y, spec.Z},
		Pitch:         spec.Pitch,
		Roll:          spec.Roll,
	})
}

func addLens(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LensComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode lens spec: %w", err)
	}
	if spec.FOV <= 0 {
		spec.FOV = 60
	}
	return ecs.Add(w, e, component.LensComponent.Kind(), &component.Lens{FOV: spec.FOV})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	p := PlayerFromSpec(spec)
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &p)
}

// PlayerFromSpec fills unset fields from component.DefaultPlayer.
func PlayerFromSpec(spec prefabs.PlayerComponentSpec) component.Player {
	p := component.DefaultPlayer()
	setFloat(&p.Speed, spec.Speed)
	setFloat(&p.RotationSpeed, spec.RotationSpeed)
	setFloat(&p.LookSmoothing, spec.LookSmoothing)
	setFloat(&p.PitchMin, spec.PitchMin)
	setFloat(&p.PitchMax, spec.PitchMax)
	if p.PitchMin > p.PitchMax {
		p.PitchMin, p.PitchMax = p.PitchMax, p.PitchMin
	}
	return p
}

type cameraRigSpec = prefabs.CameraRigComponentSpec

func addCameraRig(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraRigSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera rig spec: %w", err)
	}
	tuning, err := CameraTuningFromSpec(spec)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.CameraRigComponent.Kind(), &component.CameraRig{Tuning: tuning})
}

// CameraTuningFromSpec fills unset fields from component.DefaultCameraTuning.
func CameraTuningFromSpec(spec prefabs.CameraRigComponentSpec) (component.CameraTuning, error) {
	t := component.DefaultCameraTuning()

	o := spec.Overhead
	setFloat(&t.Overhead.ForwardOffset, o.ForwardOffset)
	setFloat(&t.Overhead.DownAngle, o.DownAngle)
	setFloat(&t.Overhead.FOVReduction, o.FOVReduction)
	setFloat(&t.Overhead.EnterAngle, o.EnterAngle)
	setFloat(&t.Overhead.ExitMouseYThreshold, o.ExitMouseYThreshold)
	if err := applyTweenSpec(&t.Overhead.Tween, o.Tween); err != nil {
		return t, fmt.Errorf("overhead tween: %w", err)
	}

	l := spec.LookAround
	setFloat(&t.LookAround.TiltAngle, l.TiltAngle)
	setFloat(&t.LookAround.SideOffset, l.SideOffset)
	setFloat(&t.LookAround.FOVReduction, l.FOVReduction)
	if err := applyTweenSpec(&t.LookAround.Tween, l.Tween); err != nil {
		return t, fmt.Errorf("look around tween: %w", err)
	}

	if err := applyTweenSpec(&t.ReturnFree, spec.ReturnFree); err != nil {
		return t, fmt.Errorf("return tween: %w", err)
	}
	return t, nil
}

func applyTweenSpec(dst *component.TweenTuning, spec prefabs.TweenSpec) error {
	setFloat(&dst.Duration, spec.Duration)
	if spec.Ease == "" {
		return nil
	}
	ease, err := tween.ParseEase(spec.Ease)
	if err != nil {
		return err
	}
	dst.Ease = ease
	return nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if !spec.Static && spec.Mass == 0 {
		spec.Mass = 1
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius:   spec.Radius,
		Width:    spec.Width,
		Depth:    spec.Depth,
		Mass:     spec.Mass,
		Friction: spec.Friction,
		Static:   spec.Static,
	})
}

type overlookZoneSpec = prefabs.OverlookZoneComponentSpec

func addOverlookZone(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[overlookZoneSpec](raw)
	if err != nil {
		return fmt.Errorf("decode overlook zone spec: %w", err)
	}
	zone := component.OverlookZone{
		Name:     spec.Name,
		MinAngle: spec.MinAngle,
		MaxAngle: spec.MaxAngle,
		Width:    spec.Width,
		Depth:    spec.Depth,
	}
	warnZone(zone)
	return ecs.Add(w, e, component.OverlookZoneComponent.Kind(), &zone)
}

func addWall(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.WallComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode wall spec: %w", err)
	}
	if err := ecs.Add(w, e, component.WallTagComponent.Kind(), &component.WallTag{}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.WallComponent.Kind(), &component.Wall{
		X1: spec.X1, Z1: spec.Z1,
		X2: spec.X2, Z2: spec.Z2,
		Radius: spec.Radius,
	})
}

func addInputScript(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.InputScriptComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode input script spec: %w", err)
	}
	if spec.Path == "" {
		return fmt.Errorf("input script: path is required")
	}
	return ecs.Add(w, e, component.InputScriptComponent.Kind(), &component.InputScript{Path: spec.Path})
}
