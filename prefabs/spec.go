package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LevelSpec lays out a room: where the player spawns, the walls that block
// it and the overlook zones the camera reacts to.
type LevelSpec struct {
	Name   string      `yaml:"name"`
	Player string      `yaml:"player"`
	Spawn  SpawnSpec   `yaml:"spawn"`
	Walls  []WallSpec  `yaml:"walls"`
	Zones  []ZoneSpec  `yaml:"zones"`
	Script *ScriptSpec `yaml:"script"`
}

type SpawnSpec struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

type WallSpec struct {
	X1     float64 `yaml:"x1"`
	Z1     float64 `yaml:"z1"`
	X2     float64 `yaml:"x2"`
	Z2     float64 `yaml:"z2"`
	Radius float64 `yaml:"radius"`
}

type ZoneSpec struct {
	Name     string   `yaml:"name"`
	X        float64  `yaml:"x"`
	Z        float64  `yaml:"z"`
	Width    float64  `yaml:"width"`
	Depth    float64  `yaml:"depth"`
	MinAngle *float64 `yaml:"min_angle"`
	MaxAngle *float64 `yaml:"max_angle"`
}

// ScriptSpec names a default input script for headless runs of the level.
type ScriptSpec struct {
	Path string `yaml:"path"`
}

func LoadLevelSpec(filename string) (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Player == "" {
		spec.Player = "player.yaml"
	}
	return &spec, nil
}
