package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/dustbunnies/tween"
)

// CameraMode is the head behaviour currently in charge of the camera.
type CameraMode int

const (
	CameraFree CameraMode = iota
	CameraLockedOverhead
	CameraReturnFree
	CameraLockedLookAroundLeft
	CameraLockedLookAroundRight
)

func (m CameraMode) String() string {
	switch m {
	case CameraFree:
		return "free"
	case CameraLockedOverhead:
		return "locked_overhead"
	case CameraReturnFree:
		return "return_free"
	case CameraLockedLookAroundLeft:
		return "locked_look_around_left"
	case CameraLockedLookAroundRight:
		return "locked_look_around_right"
	default:
		return "unknown"
	}
}

// Pose is a full camera placement relative to the body.
type Pose struct {
	LocalPosition mgl64.Vec3
	Pitch         float64
	Roll          float64
	FOV           float64
}

// TweenTuning describes one transition animation.
type TweenTuning struct {
	Duration float64
	Ease     tween.Ease
}

type OverheadTuning struct {
	ForwardOffset       float64
	DownAngle           float64
	FOVReduction        float64
	EnterAngle          float64
	ExitMouseYThreshold float64
	Tween               TweenTuning
}

type LookAroundTuning struct {
	TiltAngle    float64
	SideOffset   float64
	FOVReduction float64
	Tween        TweenTuning
}

type CameraTuning struct {
	Overhead   OverheadTuning
	LookAround LookAroundTuning
	ReturnFree TweenTuning
}

// CameraRig is the camera state machine's data. Baseline is captured once
// when the rig starts and is the restore target for ReturnFree.
type CameraRig struct {
	Mode   CameraMode
	Tuning CameraTuning

	Started  bool
	Baseline Pose

	OverheadPosition  mgl64.Vec3
	LookLeftPosition  mgl64.Vec3
	LookRightPosition mgl64.Vec3

	MouseYIntegrator float64
	ActiveTween      tween.Handle
}

// ComputeTargets derives the locked-pose positions from the baseline.
func (r *CameraRig) ComputeTargets() {
	base := r.Baseline.LocalPosition
	r.OverheadPosition = base.Add(mgl64.Vec3{0, 0, r.Tuning.Overhead.ForwardOffset})
	r.LookLeftPosition = base.Add(mgl64.Vec3{-r.Tuning.LookAround.SideOffset, 0, 0})
	r.LookRightPosition = base.Add(mgl64.Vec3{r.Tuning.LookAround.SideOffset, 0, 0})
}

var CameraRigComponent = NewComponent[CameraRig]()

// DefaultCameraTuning returns the stock rig tuning.
func DefaultCameraTuning() CameraTuning {
	return CameraTuning{
		Overhead: OverheadTuning{
			ForwardOffset:       0.3,
			DownAngle:           60,
			FOVReduction:        10,
			EnterAngle:          35,
			ExitMouseYThreshold: 0.1,
			Tween:               TweenTuning{Duration: 1, Ease: tween.InOutQuad},
		},
		LookAround: LookAroundTuning{
			TiltAngle:    15,
			SideOffset:   0.2,
			FOVReduction: 5,
			Tween:        TweenTuning{Duration: 0.5, Ease: tween.InOutQuad},
		},
		ReturnFree: TweenTuning{Duration: 1, Ease: tween.InOutQuad},
	}
}
