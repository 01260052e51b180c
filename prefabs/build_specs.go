package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is a prefab file: a name plus raw component specs keyed by
// registry name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-decodes one raw component map into its typed spec.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

type HeadComponentSpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Pitch float64 `yaml:"pitch"`
	Roll  float64 `yaml:"roll"`
}

type LensComponentSpec struct {
	FOV float64 `yaml:"fov"`
}

// PlayerComponentSpec uses pointers where zero is a legal value that differs
// from the default.
type PlayerComponentSpec struct {
	Speed         *float64 `yaml:"speed"`
	RotationSpeed *float64 `yaml:"rotation_speed"`
	LookSmoothing *float64 `yaml:"look_smoothing"`
	PitchMin      *float64 `yaml:"pitch_min"`
	PitchMax      *float64 `yaml:"pitch_max"`
}

type TweenSpec struct {
	Duration *float64 `yaml:"duration"`
	Ease     string   `yaml:"ease"`
}

type OverheadSpec struct {
	ForwardOffset       *float64  `yaml:"forward_offset"`
	DownAngle           *float64  `yaml:"down_angle"`
	FOVReduction        *float64  `yaml:"fov_reduction"`
	EnterAngle          *float64  `yaml:"enter_angle"`
	ExitMouseYThreshold *float64  `yaml:"exit_mouse_y_threshold"`
	Tween               TweenSpec `yaml:"tween"`
}

type LookAroundSpec struct {
	TiltAngle    *float64  `yaml:"tilt_angle"`
	SideOffset   *float64  `yaml:"side_offset"`
	FOVReduction *float64  `yaml:"fov_reduction"`
	Tween        TweenSpec `yaml:"tween"`
}

type CameraRigComponentSpec struct {
	Overhead   OverheadSpec   `yaml:"overhead"`
	LookAround LookAroundSpec `yaml:"look_around"`
	ReturnFree TweenSpec      `yaml:"return_free"`
}

type PhysicsBodyComponentSpec struct {
	Radius   float64 `yaml:"radius"`
	Width    float64 `yaml:"width"`
	Depth    float64 `yaml:"depth"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
	Static   bool    `yaml:"static"`
}

type OverlookZoneComponentSpec struct {
	Name     string  `yaml:"name"`
	MinAngle float64 `yaml:"min_angle"`
	MaxAngle float64 `yaml:"max_angle"`
	Width    float64 `yaml:"width"`
	Depth    float64 `yaml:"depth"`
}

type WallComponentSpec struct {
	X1     float64 `yaml:"x1"`
	Z1     float64 `yaml:"z1"`
	X2     float64 `yaml:"x2"`
	Z2     float64 `yaml:"z2"`
	Radius float64 `yaml:"radius"`
}

type InputScriptComponentSpec struct {
	Path string `yaml:"path"`
}
