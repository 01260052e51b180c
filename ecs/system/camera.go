package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/dustbunnies/common"
	"github.com/milk9111/dustbunnies/ecs"
	"github.com/milk9111/dustbunnies/ecs/component"
	"github.com/milk9111/dustbunnies/tween"
	"github.com/rs/zerolog/log"
)

// cameraContext is the per-call view handed to camera states.
type cameraContext struct {
	sys   *CameraSystem
	w     *ecs.World
	e     ecs.Entity
	rig   *component.CameraRig
	head  *component.Head
	body  *component.Transform
	input *component.Input
}

// CameraSystem runs the head state machine: look-around on input edges,
// overhead lock inside faced zones, and the tweened return to free look.
type CameraSystem struct {
	animator *tween.Animator

	// OnStateChange, when set, is called after every mode transition.
	OnStateChange func(e ecs.Entity, from, to component.CameraMode)
}

func NewCameraSystem(animator *tween.Animator) *CameraSystem {
	if animator == nil {
		animator = tween.NewAnimator()
	}
	return &CameraSystem{animator: animator}
}

// Animator returns the animator transitions are submitted to.
func (cs *CameraSystem) Animator() *tween.Animator {
	if cs == nil {
		return nil
	}
	return cs.animator
}

// Start captures the baseline pose from the head and lens and derives the
// locked-pose targets. It only captures once per rig.
func (cs *CameraSystem) Start(w *ecs.World, e ecs.Entity) {
	rig, ok := ecs.Get(w, e, component.CameraRigComponent.Kind())
	if !ok || rig.Started {
		return
	}
	head, ok := ecs.Get(w, e, component.HeadComponent.Kind())
	if !ok {
		return
	}

	rig.Baseline = component.Pose{
		LocalPosition: head.LocalPosition,
		Pitch:         common.Fold180(head.Pitch),
		Roll:          common.Fold180(head.Roll),
	}
	if lens, ok := ecs.Get(w, e, component.LensComponent.Kind()); ok {
		rig.Baseline.FOV = lens.FOV
	}
	rig.Started = true
	rig.Mode = component.CameraFree
	rig.ComputeTargets()
	warnTuning(e, rig.Tuning)

	log.Debug().
		Str("entity", e.String()).
		Float64("fov", rig.Baseline.FOV).
		Msg("camera rig started")
}

// ApplyTuning swaps the rig's tuning and recomputes targets from the
// existing baseline. The baseline is never re-captured.
func (cs *CameraSystem) ApplyTuning(w *ecs.World, e ecs.Entity, tuning component.CameraTuning) {
	rig, ok := ecs.Get(w, e, component.CameraRigComponent.Kind())
	if !ok {
		return
	}
	rig.Tuning = tuning
	rig.ComputeTargets()
	warnTuning(e, tuning)
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.CameraRigComponent.Kind(), func(e ecs.Entity, rig *component.CameraRig) {
		if !rig.Started {
			cs.Start(w, e)
		}
		ctx, ok := cs.context(w, e)
		if !ok {
			return
		}
		stateFor(rig.Mode).HandleInput(ctx)
	})

	for _, evt := range w.Events().DrainType(ecs.EventZoneContact) {
		contact, ok := evt.Data.(ecs.ZoneContact)
		if !ok {
			continue
		}
		zone, ok := ecs.Get(w, contact.Zone, component.OverlookZoneComponent.Kind())
		if !ok {
			continue
		}
		cs.CollideWithZone(w, contact.Player, *zone, contact.Exiting)
	}
}

// OnZoneStay evaluates a zone the player still overlaps this tick.
func (cs *CameraSystem) OnZoneStay(w *ecs.World, e ecs.Entity, zone component.OverlookZone) {
	cs.CollideWithZone(w, e, zone, false)
}

// OnZoneExit evaluates a zone the player just left.
func (cs *CameraSystem) OnZoneExit(w *ecs.World, e ecs.Entity, zone component.OverlookZone) {
	cs.CollideWithZone(w, e, zone, true)
}

func (cs *CameraSystem) CollideWithZone(w *ecs.World, e ecs.Entity, zone component.OverlookZone, exiting bool) {
	if cs == nil {
		return
	}
	ctx, ok := cs.context(w, e)
	if !ok {
		return
	}
	stateFor(ctx.rig.Mode).HandleZone(ctx, zone, exiting)
}

func (cs *CameraSystem) context(w *ecs.World, e ecs.Entity) (*cameraContext, bool) {
	rig, ok := ecs.Get(w, e, component.CameraRigComponent.Kind())
	if !ok {
		return nil, false
	}
	head, ok := ecs.Get(w, e, component.HeadComponent.Kind())
	if !ok {
		return nil, false
	}
	body, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return nil, false
	}
	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	return &cameraContext{sys: cs, w: w, e: e, rig: rig, head: head, body: body, input: in}, true
}

func (cs *CameraSystem) SetFree(w *ecs.World, e ecs.Entity) {
	rig, ok := ecs.Get(w, e, component.CameraRigComponent.Kind())
	if !ok {
		return
	}
	from := rig.Mode
	rig.Mode = component.CameraFree
	rig.ActiveTween = 0
	if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
		p.PitchSpeed = 0
	}
	cs.changed(e, from, rig.Mode)
}

func (cs *CameraSystem) SetLockedOverhead(w *ecs.World, e ecs.Entity) {
	rig, ok := ecs.Get(w, e, component.CameraRigComponent.Kind())
	if !ok {
		return
	}
	from := rig.Mode
	rig.Mode = component.CameraLockedOverhead
	rig.MouseYIntegrator = 0

	t := rig.Tuning.Overhead
	rig.ActiveTween = cs.animate(w, e, poseTarget{
		position: rig.OverheadPosition,
		pitch:    t.DownAngle,
		fov:      rig.Baseline.FOV - t.FOVReduction,
	}, t.Tween, nil)
	cs.changed(e, from, rig.Mode)
}

func (cs *CameraSystem) SetReturnFree(w *ecs.World, e ecs.Entity) {
	rig, ok := ecs.Get(w, e, component.CameraRigComponent.Kind())
	if !ok {
		return
	}
	from := rig.Mode
	rig.Mode = component.CameraReturnFree

	base := rig.Baseline
	roll := base.Roll
	var handle tween.Handle
	handle = cs.animate(w, e, poseTarget{
		position: base.LocalPosition,
		pitch:    base.Pitch,
		roll:     &roll,
		fov:      base.FOV,
	}, rig.Tuning.ReturnFree, func() {
		cs.finishReturn(w, e, handle)
	})
	rig.ActiveTween = handle
	cs.changed(e, from, rig.Mode)
}

func (cs *CameraSystem) SetLookAroundLeft(w *ecs.World, e ecs.Entity) {
	cs.setLookAround(w, e, true)
}

func (cs *CameraSystem) SetLookAroundRight(w *ecs.World, e ecs.Entity) {
	cs.setLookAround(w, e, false)
}

func (cs *CameraSystem) setLookAround(w *ecs.World, e ecs.Entity, left bool) {
	rig, ok := ecs.Get(w, e, component.CameraRigComponent.Kind())
	if !ok {
		return
	}
	from := rig.Mode
	t := rig.Tuning.LookAround

	target := poseTarget{fov: rig.Baseline.FOV - t.FOVReduction}
	roll := t.TiltAngle
	if left {
		rig.Mode = component.CameraLockedLookAroundLeft
		target.position = rig.LookLeftPosition
	} else {
		rig.Mode = component.CameraLockedLookAroundRight
		target.position = rig.LookRightPosition
		roll = -roll
	}
	target.roll = &roll

	rig.ActiveTween = cs.animate(w, e, target, t.Tween, nil)
	cs.changed(e, from, rig.Mode)
}

// finishReturn completes ReturnFree, unless another transition has since
// taken over the rig.
func (cs *CameraSystem) finishReturn(w *ecs.World, e ecs.Entity, h tween.Handle) {
	rig, ok := ecs.Get(w, e, component.CameraRigComponent.Kind())
	if !ok {
		return
	}
	if rig.Mode != component.CameraReturnFree || rig.ActiveTween != h {
		log.Debug().
			Str("entity", e.String()).
			Stringer("mode", rig.Mode).
			Msg("stale return completion ignored")
		return
	}
	cs.SetFree(w, e)
}

func (cs *CameraSystem) changed(e ecs.Entity, from, to component.CameraMode) {
	log.Debug().
		Str("entity", e.String()).
		Stringer("from", from).
		Stringer("to", to).
		Msg("camera mode changed")
	if cs.OnStateChange != nil {
		cs.OnStateChange(e, from, to)
	}
}

// poseTarget is where a transition should leave the head. A nil roll leaves
// roll alone.
type poseTarget struct {
	position mgl64.Vec3
	pitch    float64
	roll     *float64
	fov      float64
}

const (
	chanPosX  = "head.pos.x"
	chanPosY  = "head.pos.y"
	chanPosZ  = "head.pos.z"
	chanPitch = "head.pitch"
	chanRoll  = "head.roll"
	chanFOV   = "lens.fov"
)

// animate submits one grouped request moving the head and lens to target.
// Apply funcs look the components up again so they never hold stale pointers
// into component storage.
func (cs *CameraSystem) animate(w *ecs.World, e ecs.Entity, target poseTarget, tuning component.TweenTuning, done func()) tween.Handle {
	head, ok := ecs.Get(w, e, component.HeadComponent.Kind())
	if !ok {
		return 0
	}

	withHead := func(set func(h *component.Head, v float64)) func(float64) {
		return func(v float64) {
			if h, ok := ecs.Get(w, e, component.HeadComponent.Kind()); ok {
				set(h, v)
			}
		}
	}
	key := func(name string) string { return e.String() + "/" + name }

	channels := []tween.Channel{
		{Key: key(chanPosX), From: head.LocalPosition.X(), To: target.position.X(),
			Apply: withHead(func(h *component.Head, v float64) { h.LocalPosition[0] = v })},
		{Key: key(chanPosY), From: head.LocalPosition.Y(), To: target.position.Y(),
			Apply: withHead(func(h *component.Head, v float64) { h.LocalPosition[1] = v })},
		{Key: key(chanPosZ), From: head.LocalPosition.Z(), To: target.position.Z(),
			Apply: withHead(func(h *component.Head, v float64) { h.LocalPosition[2] = v })},
		{Key: key(chanPitch), From: common.Fold180(head.Pitch), To: target.pitch,
			Apply: withHead(func(h *component.Head, v float64) { h.Pitch = v })},
	}
	if target.roll != nil {
		channels = append(channels, tween.Channel{
			Key: key(chanRoll), From: common.Fold180(head.Roll), To: *target.roll,
			Apply: withHead(func(h *component.Head, v float64) { h.Roll = v }),
		})
	}
	if lens, ok := ecs.Get(w, e, component.LensComponent.Kind()); ok {
		channels = append(channels, tween.Channel{
			Key: key(chanFOV), From: lens.FOV, To: target.fov,
			Apply: func(v float64) {
				if l, ok := ecs.Get(w, e, component.LensComponent.Kind()); ok {
					l.FOV = v
				}
			},
		})
	}

	return cs.animator.Submit(tween.Request{
		Channels:   channels,
		Duration:   tuning.Duration,
		Ease:       tuning.Ease,
		OnComplete: done,
	})
}

func warnTuning(e ecs.Entity, t component.CameraTuning) {
	if t.Overhead.EnterAngle < 0 || t.Overhead.EnterAngle >= 90 {
		log.Warn().
			Str("entity", e.String()).
			Float64("enter_angle", t.Overhead.EnterAngle).
			Msg("overhead enter angle outside [0,90); overhead lock may never engage")
	}
}
