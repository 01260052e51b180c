package component

import "github.com/go-gl/mathgl/mgl64"

// Head is the camera mount, local to the body. Orientation is kept as three
// scalars in degrees; Pitch is positive looking down, Roll positive tilting
// left. Yaw is relative to the body and the rig leaves it at zero.
type Head struct {
	LocalPosition mgl64.Vec3
	Pitch         float64
	Yaw           float64
	Roll          float64
}

// Rotation converts the head angles into a quaternion for hosts that want
// one. Order is yaw, then pitch, then roll.
func (h Head) Rotation() mgl64.Quat {
	return mgl64.AnglesToQuat(
		mgl64.DegToRad(h.Yaw),
		mgl64.DegToRad(h.Pitch),
		mgl64.DegToRad(h.Roll),
		mgl64.YXZ,
	)
}

// LookDirection is the world-space unit vector the head faces when mounted
// on body.
func (h Head) LookDirection(body Transform) mgl64.Vec3 {
	return body.TransformDirection(h.Rotation().Rotate(mgl64.Vec3{0, 0, 1}))
}

// Up is the world-space up vector of the head, showing roll.
func (h Head) Up(body Transform) mgl64.Vec3 {
	return body.TransformDirection(h.Rotation().Rotate(mgl64.Vec3{0, 1, 0}))
}

var HeadComponent = NewComponent[Head]()

// Lens holds the camera projection the rig animates.
type Lens struct {
	FOV float64
}

var LensComponent = NewComponent[Lens]()
