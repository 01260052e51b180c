package system

import (
	"github.com/milk9111/dustbunnies/common"
	"github.com/milk9111/dustbunnies/ecs"
	"github.com/milk9111/dustbunnies/ecs/component"
)

// FreeLookSystem pitches the head from vertical look input. It runs in the
// late phase so it sees the frame's final body orientation, and only while
// the rig is Free.
type FreeLookSystem struct{}

func NewFreeLookSystem() *FreeLookSystem {
	return &FreeLookSystem{}
}

func (fs *FreeLookSystem) LateUpdate(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach3(w,
		component.CameraRigComponent.Kind(),
		component.HeadComponent.Kind(),
		component.PlayerComponent.Kind(),
		func(e ecs.Entity, rig *component.CameraRig, head *component.Head, p *component.Player) {
			if rig.Mode != component.CameraFree {
				return
			}
			lookY := 0.0
			if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
				lookY = in.LookY
			}
			p.PitchSpeed = common.SmoothToward(p.PitchSpeed, lookY*p.RotationSpeed, p.LookSmoothing, dt)
			head.Pitch = common.RestrictAngle(head.Pitch-p.PitchSpeed, p.PitchMin, p.PitchMax)
		})
}
