package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAngleInRange(t *testing.T) {
	tests := []struct {
		name     string
		angle    float64
		min, max float64
		want     bool
	}{
		{"inside_plain", 90, 70, 110, true},
		{"lower_edge", 70, 70, 110, true},
		{"upper_edge", 110, 70, 110, true},
		{"outside_plain", 200, 70, 110, false},
		{"negative_angle_in_wrapping_window", -10, 350, 10, true},
		{"wrapping_window_high_side", 355, 350, 10, true},
		{"wrapping_window_low_side", 5, 350, 10, true},
		{"wrapping_window_outside", 180, 350, 10, false},
		{"large_angle", 450, 70, 110, true},
		{"very_negative_angle", -630, 70, 110, true},
		{"negative_bounds", 0, -20, 20, true},
		{"negative_bounds_outside", 90, -20, 20, false},
		{"zero_width_window_is_everything", 123, 45, 45, true},
		{"full_turn_window_is_everything", 123, 0, 360, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AngleInRange(tc.angle, tc.min, tc.max))
		})
	}
}

func TestRestrictAngle(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  float64
	}{
		{"within", 30, 30},
		{"clamp_high", 120, 85},
		{"clamp_low", -120, -85},
		{"wrapped_up", 350, -10},
		{"wrapped_down", -350, 10},
		{"multiple_turns", 725, 5},
		{"half_turn", 180, 85},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, RestrictAngle(tc.angle, -85, 85), 1e-9)
		})
	}
}

func TestRestrictAngleIdempotent(t *testing.T) {
	for a := -1080.0; a <= 1080.0; a += 7.5 {
		once := RestrictAngle(a, -85, 85)
		twice := RestrictAngle(once, -85, 85)
		assert.InDelta(t, once, twice, 1e-9, "angle %v", a)
	}
}

func TestFold180(t *testing.T) {
	assert.InDelta(t, 180.0, Fold180(180), 1e-9)
	assert.InDelta(t, 180.0, Fold180(-180), 1e-9)
	assert.InDelta(t, -90.0, Fold180(270), 1e-9)
	assert.InDelta(t, 0.0, Fold180(360), 1e-9)
}

func TestSmoothToward(t *testing.T) {
	assert.InDelta(t, 5.0, SmoothToward(0, 10, 10, 0.05), 1e-9)
	assert.InDelta(t, 10.0, SmoothToward(0, 10, 10, 1), 1e-9, "blend factor saturates")
	assert.InDelta(t, 0.0, SmoothToward(0, 10, 10, 0), 1e-9)
}
