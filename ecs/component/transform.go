package component

import "github.com/go-gl/mathgl/mgl64"

// Transform places a body in the world. Y is up; Yaw is degrees about Y,
// with 0 facing +Z and 90 facing +X.
type Transform struct {
	Position mgl64.Vec3
	Yaw      float64
}

// TransformDirection rotates a body-local vector into world space.
func (t Transform) TransformDirection(local mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Rotate3DY(mgl64.DegToRad(t.Yaw)).Mul3x1(local)
}

var TransformComponent = NewComponent[Transform]()
