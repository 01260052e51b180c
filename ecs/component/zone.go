package component

// OverlookZone is a trigger volume the camera can lock onto. MinAngle and
// MaxAngle bound the body yaw, in degrees, for which the zone counts as
// faced; the window wraps through 0 when MinAngle > MaxAngle.
type OverlookZone struct {
	Name     string
	MinAngle float64
	MaxAngle float64
	Width    float64
	Depth    float64
}

var OverlookZoneComponent = NewComponent[OverlookZone]()

// Wall is a static line obstacle on the ground plane.
type Wall struct {
	X1, Z1 float64
	X2, Z2 float64
	Radius float64
}

var WallComponent = NewComponent[Wall]()
