package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration. The
// ground plane maps world X to cp X and world Z to cp Y.
type PhysicsBody struct {
	Body     *cp.Body
	Shape    *cp.Shape
	Radius   float64
	Width    float64
	Depth    float64
	Mass     float64
	Friction float64
	Static   bool
	Sensor   bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
