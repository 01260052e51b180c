package component

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "component %d of %v", i, got)
	}
}

func TestHeadRotation(t *testing.T) {
	sin := func(d float64) float64 { return math.Sin(mgl64.DegToRad(d)) }
	cos := func(d float64) float64 { return math.Cos(mgl64.DegToRad(d)) }

	tests := []struct {
		name        string
		head        Head
		forward, up mgl64.Vec3
	}{
		{"level", Head{}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 0}},
		{"pitch down", Head{Pitch: 30}, mgl64.Vec3{0, -0.5, cos(30)}, mgl64.Vec3{0, cos(30), 0.5}},
		{"roll", Head{Roll: 15}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{-sin(15), cos(15), 0}},
		{
			"pitch and roll",
			Head{Pitch: 50, Roll: 15},
			mgl64.Vec3{0, -sin(50), cos(50)},
			mgl64.Vec3{-sin(15), cos(15) * cos(50), cos(15) * sin(50)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.head.Rotation()
			assert.InDelta(t, 1.0, q.Len(), 1e-9)
			assertVec(t, tt.forward, q.Rotate(mgl64.Vec3{0, 0, 1}))
			assertVec(t, tt.up, q.Rotate(mgl64.Vec3{0, 1, 0}))
		})
	}
}

func TestHeadLookDirectionFollowsBody(t *testing.T) {
	head := Head{Pitch: 50}
	body := Transform{Yaw: 90}
	assertVec(t, mgl64.Vec3{math.Cos(mgl64.DegToRad(50)), -math.Sin(mgl64.DegToRad(50)), 0}, head.LookDirection(body))
	assertVec(t, mgl64.Vec3{math.Sin(mgl64.DegToRad(50)), math.Cos(mgl64.DegToRad(50)), 0}, head.Up(body))
}
