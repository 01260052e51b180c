package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/dustbunnies/common"
	"github.com/milk9111/dustbunnies/ecs"
	"github.com/milk9111/dustbunnies/ecs/component"
)

// Mover applies a world-space velocity to an entity for the current tick.
type Mover interface {
	Move(w *ecs.World, e ecs.Entity, velocity mgl64.Vec3)
}

// DirectMover integrates velocity straight into the transform with no
// collision. Used when no physics system is attached.
type DirectMover struct{}

func (DirectMover) Move(w *ecs.World, e ecs.Entity, velocity mgl64.Vec3) {
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	tr.Position = tr.Position.Add(velocity.Mul(w.DeltaTime()))
}

// LocomotionSystem turns raw move axes into a fixed-speed move along the
// body's facing and applies smoothed horizontal look as body yaw.
type LocomotionSystem struct {
	mover Mover
}

func NewLocomotionSystem(mover Mover) *LocomotionSystem {
	if mover == nil {
		mover = DirectMover{}
	}
	return &LocomotionSystem{mover: mover}
}

func (ls *LocomotionSystem) Update(w *ecs.World) {
	if ls == nil || w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach3(w,
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
		component.PlayerComponent.Kind(),
		func(e ecs.Entity, in *component.Input, tr *component.Transform, p *component.Player) {
			dir := tr.TransformDirection(mgl64.Vec3{in.MoveX, 0, in.MoveZ})
			if dir.Len() > 0 {
				dir = dir.Normalize()
			}
			ls.mover.Move(w, e, dir.Mul(p.Speed))

			p.YawSpeed = common.SmoothToward(p.YawSpeed, in.LookX*p.RotationSpeed, p.LookSmoothing, dt)
			tr.Yaw = common.Wrap360(tr.Yaw + p.YawSpeed)
		})
}
