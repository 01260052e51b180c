package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/dustbunnies/ecs"
	"github.com/milk9111/dustbunnies/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWalker(t *testing.T, yaw float64, in component.Input) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	p := component.DefaultPlayer()
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Yaw: yaw}))
	require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &in))
	require.NoError(t, ecs.Add(w, e, component.PlayerComponent.Kind(), &p))
	return w, e
}

func TestLocomotionMovesAlongFacing(t *testing.T) {
	tests := []struct {
		name string
		yaw  float64
		in   component.Input
		want mgl64.Vec3
	}{
		{"forward_at_zero", 0, component.Input{MoveZ: 1}, mgl64.Vec3{0, 0, 1}},
		{"forward_at_90", 90, component.Input{MoveZ: 1}, mgl64.Vec3{1, 0, 0}},
		{"strafe_at_90", 90, component.Input{MoveX: 1}, mgl64.Vec3{0, 0, -1}},
		{"diagonal_is_normalised", 0, component.Input{MoveX: 1, MoveZ: 1}, mgl64.Vec3{0.70710678, 0, 0.70710678}},
		{"idle", 45, component.Input{}, mgl64.Vec3{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, e := newWalker(t, tc.yaw, tc.in)
			w.BeginTick(0.1)
			NewLocomotionSystem(nil).Update(w)

			tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
			require.True(t, ok)
			for i := 0; i < 3; i++ {
				assert.InDelta(t, tc.want[i], tr.Position[i], 1e-6, "axis %d", i)
			}
		})
	}
}

func TestLocomotionSmoothsYaw(t *testing.T) {
	w, e := newWalker(t, 90, component.Input{LookX: 1})
	sys := NewLocomotionSystem(nil)

	w.BeginTick(0.05)
	sys.Update(w)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	assert.InDelta(t, 1.0, p.YawSpeed, 1e-9)
	assert.InDelta(t, 91.0, tr.Yaw, 1e-9)

	w.BeginTick(0.05)
	sys.Update(w)
	assert.InDelta(t, 1.5, p.YawSpeed, 1e-9)
	assert.InDelta(t, 92.5, tr.Yaw, 1e-9)
}

func TestLocomotionWrapsYaw(t *testing.T) {
	w, e := newWalker(t, 359.5, component.Input{LookX: 1})
	w.BeginTick(1)
	NewLocomotionSystem(nil).Update(w)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.InDelta(t, 1.5, tr.Yaw, 1e-9)
}

func TestFreeLookPitchClamped(t *testing.T) {
	w, e := newWalker(t, 0, component.Input{LookY: -10})
	require.NoError(t, ecs.Add(w, e, component.HeadComponent.Kind(), &component.Head{}))
	require.NoError(t, ecs.Add(w, e, component.CameraRigComponent.Kind(), &component.CameraRig{}))

	sys := NewFreeLookSystem()
	for i := 0; i < 10; i++ {
		w.BeginTick(1)
		sys.LateUpdate(w)
	}

	head, _ := ecs.Get(w, e, component.HeadComponent.Kind())
	assert.InDelta(t, 85.0, head.Pitch, 1e-9)
}

func TestFreeLookOnlyInFree(t *testing.T) {
	w, e := newWalker(t, 0, component.Input{LookY: 1})
	require.NoError(t, ecs.Add(w, e, component.HeadComponent.Kind(), &component.Head{Pitch: 20}))
	require.NoError(t, ecs.Add(w, e, component.CameraRigComponent.Kind(), &component.CameraRig{Mode: component.CameraLockedOverhead}))

	w.BeginTick(1)
	NewFreeLookSystem().LateUpdate(w)

	head, _ := ecs.Get(w, e, component.HeadComponent.Kind())
	assert.Equal(t, 20.0, head.Pitch)
}
