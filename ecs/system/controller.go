package system

import (
	"github.com/milk9111/dustbunnies/ecs"
	"github.com/milk9111/dustbunnies/ecs/component"
	"github.com/milk9111/dustbunnies/tween"
	"github.com/rs/zerolog/log"
)

// TickHandler is what a game host drives every frame.
type TickHandler interface {
	Start()
	OnTick(dt float64)
	OnLateTick(dt float64)
	OnZoneOverlap(zone component.OverlookZone, exiting bool)
}

// InputCapturer grabs the pointer for mouse look. Headless hosts pass nil.
type InputCapturer interface {
	Capture()
}

// CaptureFunc adapts a plain func to InputCapturer.
type CaptureFunc func()

func (f CaptureFunc) Capture() {
	if f != nil {
		f()
	}
}

type ControllerOptions struct {
	// Input fills the player's Input component. Nil leaves it to the host.
	Input ecs.System
	// Physics moves the player and reports zones. Nil integrates moves
	// directly and zones only arrive through OnZoneOverlap.
	Physics  *PhysicsSystem
	Capturer InputCapturer
	Animator *tween.Animator
}

// Controller wires the player systems into the two frame phases: input,
// locomotion, physics, camera and tweens on update, free look on late.
type Controller struct {
	world  *ecs.World
	player ecs.Entity

	scheduler  *ecs.Scheduler
	camera     *CameraSystem
	locomotion *LocomotionSystem
	physics    *PhysicsSystem
	animator   *tween.Animator
	capturer   InputCapturer

	started bool
}

var _ TickHandler = (*Controller)(nil)

func NewController(w *ecs.World, player ecs.Entity, opts ControllerOptions) *Controller {
	animator := opts.Animator
	if animator == nil {
		animator = tween.NewAnimator()
	}

	var mover Mover = DirectMover{}
	if opts.Physics != nil {
		mover = opts.Physics
	}

	c := &Controller{
		world:      w,
		player:     player,
		scheduler:  ecs.NewScheduler(),
		camera:     NewCameraSystem(animator),
		locomotion: NewLocomotionSystem(mover),
		physics:    opts.Physics,
		animator:   animator,
		capturer:   opts.Capturer,
	}

	if opts.Input != nil {
		c.scheduler.Add(opts.Input)
	}
	c.scheduler.Add(c.locomotion)
	if c.physics != nil {
		c.scheduler.Add(c.physics)
	}
	c.scheduler.Add(c.camera)
	c.scheduler.Add(NewTweenSystem(animator))
	c.scheduler.AddLate(NewFreeLookSystem())

	return c
}

// Start captures the pointer and the rig's baseline. Calling it again is a
// no-op.
func (c *Controller) Start() {
	if c == nil || c.started {
		return
	}
	c.started = true
	if c.capturer != nil {
		c.capturer.Capture()
	}
	c.camera.Start(c.world, c.player)
	log.Info().Str("player", c.player.String()).Msg("controller started")
}

func (c *Controller) OnTick(dt float64) {
	if c == nil || c.world == nil {
		return
	}
	if !c.started {
		c.Start()
	}
	c.world.BeginTick(dt)
	c.scheduler.Update(c.world)
}

// OnLateTick runs the late phase with the clock set by the preceding OnTick
// and closes the frame.
func (c *Controller) OnLateTick(dt float64) {
	if c == nil || c.world == nil {
		return
	}
	c.scheduler.LateUpdate(c.world)
	c.world.EndTick()
}

// Step runs both phases of one frame.
func (c *Controller) Step(dt float64) {
	c.OnTick(dt)
	c.OnLateTick(dt)
}

// OnZoneOverlap lets a host with its own trigger volumes feed zone contacts
// straight to the camera.
func (c *Controller) OnZoneOverlap(zone component.OverlookZone, exiting bool) {
	if c == nil {
		return
	}
	c.camera.CollideWithZone(c.world, c.player, zone, exiting)
}

func (c *Controller) World() *ecs.World {
	return c.world
}

func (c *Controller) Player() ecs.Entity {
	return c.player
}

func (c *Controller) Camera() *CameraSystem {
	return c.camera
}

func (c *Controller) Physics() *PhysicsSystem {
	return c.physics
}

func (c *Controller) Animator() *tween.Animator {
	return c.animator
}

// Mode returns the player's current camera mode.
func (c *Controller) Mode() component.CameraMode {
	if rig, ok := ecs.Get(c.world, c.player, component.CameraRigComponent.Kind()); ok {
		return rig.Mode
	}
	return component.CameraFree
}
