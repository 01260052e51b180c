package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/dustbunnies/ecs"
	"github.com/milk9111/dustbunnies/ecs/component"
	"github.com/milk9111/dustbunnies/prefabs"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "player.yaml")
}

func NewPlayerAt(w *ecs.World, prefab string, pos mgl64.Vec3, yaw float64) (ecs.Entity, error) {
	if prefab == "" {
		prefab = "player.yaml"
	}
	entity, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, pos, yaw); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return entity, nil
}

// LoadPlayerTuning reads the movement and camera tuning out of a player
// prefab without building an entity. Hosts use it to hot reload tuning.
func LoadPlayerTuning(prefab string) (component.Player, component.CameraTuning, error) {
	spec, err := prefabs.LoadEntityBuildSpec(prefab)
	if err != nil {
		return component.Player{}, component.CameraTuning{}, err
	}
	ps, err := prefabs.DecodeComponentSpec[playerSpec](spec.Components["player"])
	if err != nil {
		return component.Player{}, component.CameraTuning{}, fmt.Errorf("player: decode player spec: %w", err)
	}
	rs, err := prefabs.DecodeComponentSpec[cameraRigSpec](spec.Components["camera_rig"])
	if err != nil {
		return component.Player{}, component.CameraTuning{}, fmt.Errorf("player: decode camera rig spec: %w", err)
	}
	tuning, err := CameraTuningFromSpec(rs)
	if err != nil {
		return component.Player{}, component.CameraTuning{}, fmt.Errorf("player: %w", err)
	}
	return PlayerFromSpec(ps), tuning, nil
}
