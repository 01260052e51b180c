package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/dustbunnies/ecs"
	"github.com/milk9111/dustbunnies/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addPhysicsPlayer(t *testing.T, w *ecs.World, pos mgl64.Vec3) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}))
	require.NoError(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: 0.3, Mass: 1}))
	return e
}

func addPhysicsZone(t *testing.T, w *ecs.World, x, z float64, zone component.OverlookZone) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.ZoneTagComponent.Kind(), &component.ZoneTag{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: mgl64.Vec3{x, 0, z}}))
	require.NoError(t, ecs.Add(w, e, component.OverlookZoneComponent.Kind(), &zone))
	require.NoError(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{}))
	return e
}

func addPhysicsWall(t *testing.T, w *ecs.World, wall component.Wall) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.WallTagComponent.Kind(), &component.WallTag{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}))
	require.NoError(t, ecs.Add(w, e, component.WallComponent.Kind(), &wall))
	require.NoError(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{}))
	return e
}

func TestPhysicsZoneStayAndExit(t *testing.T) {
	w := ecs.NewWorld()
	player := addPhysicsPlayer(t, w, mgl64.Vec3{0, 1, 0})
	zone := addPhysicsZone(t, w, 3, 0, component.OverlookZone{MinAngle: 70, MaxAngle: 110, Width: 2, Depth: 2})

	ps := NewPhysicsSystem()
	var stays, exits int
	lastStayTick, exitTick := 0, 0
	for tick := 1; tick <= 40; tick++ {
		w.BeginTick(testDT)
		ps.Move(w, player, mgl64.Vec3{10, 0, 0})
		ps.Update(w)
		for _, evt := range w.Events().DrainType(ecs.EventZoneContact) {
			contact := evt.Data.(ecs.ZoneContact)
			assert.Equal(t, player, contact.Player)
			assert.Equal(t, zone, contact.Zone)
			if contact.Exiting {
				exits++
				exitTick = tick
			} else {
				stays++
				lastStayTick = tick
			}
		}
		w.EndTick()
	}

	assert.Greater(t, stays, 5)
	assert.Equal(t, 1, exits)
	assert.Greater(t, exitTick, lastStayTick)
	assert.False(t, ps.Overlapping(player, zone))

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	assert.Greater(t, tr.Position.X(), 5.0)
	assert.InDelta(t, 1.0, tr.Position.Y(), 1e-9, "height is untouched")
}

func TestPhysicsWallBlocksPlayer(t *testing.T) {
	w := ecs.NewWorld()
	player := addPhysicsPlayer(t, w, mgl64.Vec3{})
	addPhysicsWall(t, w, component.Wall{X1: 2, Z1: -5, X2: 2, Z2: 5, Radius: 0.05})

	ps := NewPhysicsSystem()
	for tick := 0; tick < 60; tick++ {
		w.BeginTick(testDT)
		ps.Move(w, player, mgl64.Vec3{5, 0, 0})
		ps.Update(w)
		w.EndTick()
	}

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	assert.Less(t, tr.Position.X(), 2.0)
	assert.Greater(t, tr.Position.X(), 1.0)
}

func TestPhysicsStopsWithoutMove(t *testing.T) {
	w := ecs.NewWorld()
	player := addPhysicsPlayer(t, w, mgl64.Vec3{})
	ps := NewPhysicsSystem()

	w.BeginTick(testDT)
	ps.Move(w, player, mgl64.Vec3{0, 0, 6})
	ps.Update(w)
	w.EndTick()

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	z := tr.Position.Z()
	assert.InDelta(t, 0.1, z, 1e-6)

	w.BeginTick(testDT)
	ps.Update(w)
	w.EndTick()
	assert.InDelta(t, z, tr.Position.Z(), 1e-9)
}

func TestPhysicsForgetsDestroyedZone(t *testing.T) {
	w := ecs.NewWorld()
	player := addPhysicsPlayer(t, w, mgl64.Vec3{})
	zone := addPhysicsZone(t, w, 0, 0, component.OverlookZone{Width: 2, Depth: 2})

	ps := NewPhysicsSystem()
	w.BeginTick(testDT)
	ps.Update(w)
	w.EndTick()
	require.True(t, ps.Overlapping(player, zone))

	ecs.DestroyEntity(w, zone)
	w.BeginTick(testDT)
	ps.Update(w)
	assert.False(t, ps.Overlapping(player, zone))
	for _, evt := range w.Events().Drain() {
		assert.True(t, evt.Data.(ecs.ZoneContact).Exiting)
	}
	w.EndTick()
}

func TestControllerWalksThroughZone(t *testing.T) {
	w := ecs.NewWorld()
	player := addPhysicsPlayer(t, w, mgl64.Vec3{0, 0, 0})
	p := component.DefaultPlayer()
	require.NoError(t, ecs.Add(w, player, component.HeadComponent.Kind(), &component.Head{LocalPosition: mgl64.Vec3{0, 1.6, 0}, Pitch: 50}))
	require.NoError(t, ecs.Add(w, player, component.LensComponent.Kind(), &component.Lens{FOV: 60}))
	require.NoError(t, ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{MoveZ: 1}))
	require.NoError(t, ecs.Add(w, player, component.PlayerComponent.Kind(), &p))
	require.NoError(t, ecs.Add(w, player, component.CameraRigComponent.Kind(), &component.CameraRig{Tuning: component.DefaultCameraTuning()}))
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	tr.Yaw = 90

	addPhysicsZone(t, w, 3, 0, component.OverlookZone{MinAngle: 70, MaxAngle: 110, Width: 2, Depth: 2})

	captured := 0
	c := NewController(w, player, ControllerOptions{
		Physics:  NewPhysicsSystem(),
		Capturer: CaptureFunc(func() { captured++ }),
	})
	var seen []transition
	c.Camera().OnStateChange = func(_ ecs.Entity, from, to component.CameraMode) {
		seen = append(seen, transition{from, to})
	}

	for i := 0; i < 150; i++ {
		c.Step(testDT)
	}

	assert.Equal(t, 1, captured)
	assert.Equal(t, []transition{
		{component.CameraFree, component.CameraLockedOverhead},
		{component.CameraLockedOverhead, component.CameraReturnFree},
		{component.CameraReturnFree, component.CameraFree},
	}, seen)
	assert.Equal(t, component.CameraFree, c.Mode())
	head, _ := ecs.Get(w, player, component.HeadComponent.Kind())
	assert.InDelta(t, 50.0, head.Pitch, 1e-9)
	assert.Greater(t, tr.Position.X(), 20.0)
}
