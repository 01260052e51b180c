package main

import (
	"bytes"
	"testing"

	"github.com/milk9111/dustbunnies/common"
	"github.com/milk9111/dustbunnies/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOptions() options {
	return options{level: "desk_room.yaml", ticks: 360, dt: common.TickDuration}
}

func TestRunDeskRoom(t *testing.T) {
	res, err := run(defaultOptions())
	require.NoError(t, err)

	modes := make([][2]component.CameraMode, 0, len(res.Transitions))
	for _, tr := range res.Transitions {
		modes = append(modes, [2]component.CameraMode{tr.From, tr.To})
	}
	assert.Equal(t, [][2]component.CameraMode{
		{component.CameraFree, component.CameraLockedOverhead},
		{component.CameraLockedOverhead, component.CameraReturnFree},
		{component.CameraReturnFree, component.CameraFree},
		{component.CameraFree, component.CameraLockedLookAroundLeft},
		{component.CameraLockedLookAroundLeft, component.CameraReturnFree},
		{component.CameraReturnFree, component.CameraFree},
	}, modes)

	for i := 1; i < len(res.Transitions); i++ {
		assert.Greater(t, res.Transitions[i].Tick, res.Transitions[i-1].Tick)
	}

	assert.Equal(t, component.CameraFree, res.Mode)
	assert.InDelta(t, 60.0, res.FOV, 1e-6)
	assert.InDelta(t, 0.0, res.Head.Roll, 1e-6)
	assert.Greater(t, res.Transform.Position.X(), 2.0)
}

func TestRunRejectsBadOptions(t *testing.T) {
	opts := defaultOptions()
	opts.dt = 0
	_, err := run(opts)
	assert.Error(t, err)

	opts = defaultOptions()
	opts.level = "missing.yaml"
	_, err = run(opts)
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	opts := defaultOptions()
	opts.ticks = 0
	res, err := run(opts)
	require.NoError(t, err)

	var out bytes.Buffer
	report(&out, res)
	assert.Contains(t, out.String(), "mode:        free")
	assert.Contains(t, out.String(), "transitions: 0")
	// spawned facing +X with a level head
	assert.Contains(t, out.String(), "look:        1.000 0.000 0.000")
}
