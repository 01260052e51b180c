package system

import (
	"github.com/milk9111/dustbunnies/common"
	"github.com/milk9111/dustbunnies/ecs/component"
)

// cameraState owns the input and zone reactions of one camera mode. Entry
// actions live on CameraSystem's setters so hosts can force a mode.
type cameraState interface {
	Mode() component.CameraMode
	HandleInput(ctx *cameraContext)
	HandleZone(ctx *cameraContext, zone component.OverlookZone, exiting bool)
}

// Camera state singletons (avoid allocations on transitions).
var (
	cameraStateFree       cameraState = freeCamState{}
	cameraStateOverhead   cameraState = overheadCamState{}
	cameraStateReturnFree cameraState = returnFreeCamState{}
	cameraStateLookLeft   cameraState = lookAroundCamState{left: true}
	cameraStateLookRight  cameraState = lookAroundCamState{left: false}
)

func stateFor(mode component.CameraMode) cameraState {
	switch mode {
	case component.CameraLockedOverhead:
		return cameraStateOverhead
	case component.CameraReturnFree:
		return cameraStateReturnFree
	case component.CameraLockedLookAroundLeft:
		return cameraStateLookLeft
	case component.CameraLockedLookAroundRight:
		return cameraStateLookRight
	default:
		return cameraStateFree
	}
}

type freeCamState struct{}

type overheadCamState struct{}

type returnFreeCamState struct{}

type lookAroundCamState struct {
	left bool
}

func (freeCamState) Mode() component.CameraMode { return component.CameraFree }
func (freeCamState) HandleInput(ctx *cameraContext) {
	if ctx.input == nil {
		return
	}
	if ctx.input.LookLeftPressed {
		ctx.sys.SetLookAroundLeft(ctx.w, ctx.e)
		return
	}
	if ctx.input.LookRightPressed {
		ctx.sys.SetLookAroundRight(ctx.w, ctx.e)
	}
}
func (freeCamState) HandleZone(ctx *cameraContext, zone component.OverlookZone, exiting bool) {
	if exiting {
		return
	}
	if !common.AngleInRange(ctx.body.Yaw, zone.MinAngle, zone.MaxAngle) {
		return
	}
	pitch := common.Fold180(ctx.head.Pitch)
	if pitch > ctx.rig.Tuning.Overhead.EnterAngle && pitch < 90 {
		ctx.sys.SetLockedOverhead(ctx.w, ctx.e)
	}
}

func (overheadCamState) Mode() component.CameraMode { return component.CameraLockedOverhead }
func (overheadCamState) HandleInput(ctx *cameraContext) {}
func (overheadCamState) HandleZone(ctx *cameraContext, zone component.OverlookZone, exiting bool) {
	lookY := 0.0
	if ctx.input != nil {
		lookY = ctx.input.LookY
	}
	ctx.rig.MouseYIntegrator += ctx.w.DeltaTime() * lookY
	if ctx.rig.MouseYIntegrator > ctx.rig.Tuning.Overhead.ExitMouseYThreshold ||
		!common.AngleInRange(ctx.body.Yaw, zone.MinAngle, zone.MaxAngle) ||
		exiting {
		ctx.sys.SetReturnFree(ctx.w, ctx.e)
	}
}

// ReturnFree ignores look input and zones; only its tween completion moves
// the rig on.
func (returnFreeCamState) Mode() component.CameraMode { return component.CameraReturnFree }
func (returnFreeCamState) HandleInput(ctx *cameraContext) {}
func (returnFreeCamState) HandleZone(ctx *cameraContext, zone component.OverlookZone, exiting bool) {
}

func (s lookAroundCamState) Mode() component.CameraMode {
	if s.left {
		return component.CameraLockedLookAroundLeft
	}
	return component.CameraLockedLookAroundRight
}
func (s lookAroundCamState) HandleInput(ctx *cameraContext) {
	if ctx.input == nil {
		return
	}
	if (s.left && ctx.input.LookLeftReleased) || (!s.left && ctx.input.LookRightReleased) {
		ctx.sys.SetReturnFree(ctx.w, ctx.e)
	}
}
func (lookAroundCamState) HandleZone(ctx *cameraContext, zone component.OverlookZone, exiting bool) {
}
