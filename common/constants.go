package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TickRate is the fixed update rate of both hosts.
	TickRate = 60
	// TickDuration is the fixed delta time handed to systems, in seconds.
	TickDuration = 1.0 / TickRate
)
