package component

// Input stores per-frame input state for an entity. Axes are raw samples;
// look deltas are in host units per tick.
type Input struct {
	MoveX float64
	MoveZ float64
	LookX float64
	LookY float64

	LookLeft         bool
	LookLeftPressed  bool
	LookLeftReleased bool

	LookRight         bool
	LookRightPressed  bool
	LookRightReleased bool
}

// SetLookButtons updates held state and derives this frame's edges from the
// previous held state.
func (in *Input) SetLookButtons(left, right bool) {
	in.LookLeftPressed = left && !in.LookLeft
	in.LookLeftReleased = !left && in.LookLeft
	in.LookRightPressed = right && !in.LookRight
	in.LookRightReleased = !right && in.LookRight
	in.LookLeft = left
	in.LookRight = right
}

var InputComponent = NewComponent[Input]()
