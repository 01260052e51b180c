package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/dustbunnies/common"
	"github.com/milk9111/dustbunnies/ecs"
	"github.com/milk9111/dustbunnies/ecs/component"
	"github.com/milk9111/dustbunnies/prefabs"
	"github.com/rs/zerolog/log"
)

// Level holds the entities a level spec produced.
type Level struct {
	Name   string
	Player ecs.Entity
	Walls  []ecs.Entity
	Zones  []ecs.Entity
}

// LoadLevel reads a level file and builds it into w.
func LoadLevel(w *ecs.World, filename string) (*Level, error) {
	spec, err := prefabs.LoadLevelSpec(filename)
	if err != nil {
		return nil, err
	}
	return LoadLevelToWorld(w, spec)
}

// LoadLevelToWorld spawns the player, walls and zones of spec. Walls and
// zones start from the wall.yaml and zone.yaml prefabs; level fields that are
// set override the prefab values.
func LoadLevelToWorld(w *ecs.World, spec *prefabs.LevelSpec) (*Level, error) {
	if spec == nil {
		return nil, fmt.Errorf("level: spec is nil")
	}
	lvl := &Level{Name: spec.Name}

	player, err := NewPlayerAt(w, spec.Player, mgl64.Vec3{spec.Spawn.X, spec.Spawn.Y, spec.Spawn.Z}, spec.Spawn.Yaw)
	if err != nil {
		return nil, fmt.Errorf("level %q: player: %w", spec.Name, err)
	}
	lvl.Player = player

	if spec.Script != nil && spec.Script.Path != "" {
		if err := ecs.Add(w, player, component.InputScriptComponent.Kind(), &component.InputScript{Path: spec.Script.Path}); err != nil {
			return nil, fmt.Errorf("level %q: script: %w", spec.Name, err)
		}
	}

	for i, ws := range spec.Walls {
		e, err := BuildEntity(w, "wall.yaml")
		if err != nil {
			return nil, fmt.Errorf("level %q: wall %d: %w", spec.Name, i, err)
		}
		wall, _ := ecs.Get(w, e, component.WallComponent.Kind())
		wall.X1, wall.Z1, wall.X2, wall.Z2 = ws.X1, ws.Z1, ws.X2, ws.Z2
		if ws.Radius > 0 {
			wall.Radius = ws.Radius
		}
		lvl.Walls = append(lvl.Walls, e)
	}

	for i, zs := range spec.Zones {
		e, err := BuildEntity(w, "zone.yaml")
		if err != nil {
			return nil, fmt.Errorf("level %q: zone %d: %w", spec.Name, i, err)
		}
		if err := SetEntityTransform(w, e, mgl64.Vec3{zs.X, 0, zs.Z}, 0); err != nil {
			return nil, fmt.Errorf("level %q: zone %d: %w", spec.Name, i, err)
		}
		zone, _ := ecs.Get(w, e, component.OverlookZoneComponent.Kind())
		zone.Name = zs.Name
		if zs.Width > 0 {
			zone.Width = zs.Width
		}
		if zs.Depth > 0 {
			zone.Depth = zs.Depth
		}
		setFloat(&zone.MinAngle, zs.MinAngle)
		setFloat(&zone.MaxAngle, zs.MaxAngle)
		warnZone(*zone)
		lvl.Zones = append(lvl.Zones, e)
	}

	log.Info().
		Str("level_name", spec.Name).
		Int("walls", len(lvl.Walls)).
		Int("zones", len(lvl.Zones)).
		Msg("level loaded")
	return lvl, nil
}

func warnZone(zone component.OverlookZone) {
	if common.Wrap360(zone.MinAngle) == common.Wrap360(zone.MaxAngle) {
		log.Warn().
			Str("zone", zone.Name).
			Float64("min_angle", zone.MinAngle).
			Float64("max_angle", zone.MaxAngle).
			Msg("zone window is degenerate and matches every yaw")
	}
}
