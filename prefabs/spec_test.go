package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLevelSpec(t *testing.T) {
	spec, err := LoadLevelSpec("desk_room.yaml")
	require.NoError(t, err)

	assert.Equal(t, "desk_room", spec.Name)
	assert.Equal(t, "player.yaml", spec.Player)
	assert.Equal(t, 90.0, spec.Spawn.Yaw)
	require.Len(t, spec.Zones, 1)
	require.NotNil(t, spec.Zones[0].MinAngle)
	assert.Equal(t, 70.0, *spec.Zones[0].MinAngle)
	require.NotNil(t, spec.Script)
	assert.Equal(t, "peek_desk.tengo", spec.Script.Path)
}

func TestLoadSpecErrors(t *testing.T) {
	_, err := LoadLevelSpec("missing.yaml")
	assert.ErrorContains(t, err, "prefabs: load missing.yaml")
}

func TestDecodeComponentSpec(t *testing.T) {
	raw := map[string]any{"speed": 4, "pitch_max": 60.5}
	spec, err := DecodeComponentSpec[PlayerComponentSpec](raw)
	require.NoError(t, err)
	require.NotNil(t, spec.Speed)
	assert.Equal(t, 4.0, *spec.Speed)
	assert.Equal(t, 60.5, *spec.PitchMax)
	assert.Nil(t, spec.RotationSpeed)

	empty, err := DecodeComponentSpec[PlayerComponentSpec](nil)
	require.NoError(t, err)
	assert.Nil(t, empty.Speed)
}

func TestCleanScriptPath(t *testing.T) {
	for _, in := range []string{"peek_desk.tengo", "scripts/peek_desk.tengo", "prefabs/scripts/peek_desk.tengo"} {
		assert.Equal(t, "scripts/peek_desk.tengo", cleanScriptPath(in), in)
	}
	data, err := LoadScript("prefabs/scripts/peek_desk.tengo")
	require.NoError(t, err)
	assert.Contains(t, string(data), "move_z")
}

func TestLoadPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "player.yaml"), []byte("name: from_disk\n"), 0o644))
	spec, err := LoadEntityBuildSpec("player.yaml")
	require.NoError(t, err)
	assert.Equal(t, "from_disk", spec.Name)

	_, ok := ModTime("player.yaml")
	assert.True(t, ok)

	spec, err = LoadEntityBuildSpec("zone.yaml")
	require.NoError(t, err)
	assert.Equal(t, "overlook_zone", spec.Name)
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "player.yaml"), []byte("name: p\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, "player.yaml", name)
	case <-time.After(2 * time.Second):
		t.Fatal("no watcher event")
	}
}
