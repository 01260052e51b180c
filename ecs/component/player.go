package component

// Player holds locomotion and look tuning plus the smoothed look speeds that
// carry over between ticks.
type Player struct {
	Speed         float64
	RotationSpeed float64
	LookSmoothing float64
	PitchMin      float64
	PitchMax      float64

	YawSpeed   float64
	PitchSpeed float64
}

var PlayerComponent = NewComponent[Player]()

func DefaultPlayer() Player {
	return Player{
		Speed:         10,
		RotationSpeed: 2,
		LookSmoothing: 10,
		PitchMin:      -85,
		PitchMax:      85,
	}
}
