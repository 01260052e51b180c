package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp01 limits t to [0, 1].
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// SmoothToward moves current toward target by a rate scaled with the tick
// duration. The blend factor saturates at 1 so a long tick snaps to target.
func SmoothToward(current, target, rate, dt float64) float64 {
	return Lerp(current, target, Clamp01(dt*rate))
}

// Wrap360 maps any angle in degrees into [0, 360).
func Wrap360(angle float64) float64 {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a -= 360
	}
	return a
}

// Fold180 maps any angle in degrees into (-180, 180].
func Fold180(angle float64) float64 {
	a := Wrap360(angle)
	if a > 180 {
		a -= 360
	}
	return a
}

// RestrictAngle folds angle into (-180, 180] and then clamps it to
// [min, max]. Folding first keeps a head pitched at 350 degrees from being
// read as pitched far downward.
func RestrictAngle(angle, min, max float64) float64 {
	a := Fold180(angle)
	if a > max {
		a = max
	}
	if a < min {
		a = min
	}
	return a
}

// AngleInRange reports whether angle lies inside the circular window
// [min, max]. When min is greater than max after wrapping, the window passes
// through 0. A window whose ends wrap to the same value accepts every angle.
func AngleInRange(angle, min, max float64) bool {
	a := Wrap360(angle)
	lo := Wrap360(min)
	hi := Wrap360(max)

	if lo < hi {
		return a >= lo && a <= hi
	}
	return a >= lo || a <= hi
}
