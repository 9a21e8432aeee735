package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

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

type PlayerComponentSpec struct {
	MoveSpeed float64 `yaml:"move_speed"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Image string `yaml:"image"`
	// FrameW and FrameH select the first frame of a fixed-grid sheet.
	FrameW        int     `yaml:"frame_w"`
	FrameH        int     `yaml:"frame_h"`
	DisplayWidth  float64 `yaml:"display_width"`
	DisplayHeight float64 `yaml:"display_height"`
	OriginX       float64 `yaml:"origin_x"`
	OriginY       float64 `yaml:"origin_y"`
	CenterOrigin  bool    `yaml:"center_origin"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type CameraComponentSpec struct {
	TargetName    string `yaml:"target_name"`
	ClampToBounds *bool  `yaml:"clamp_to_bounds"`
}

type AnimationDefComponentSpec struct {
	Frames []int   `yaml:"frames"`
	FPS    float64 `yaml:"fps"`
	Loop   bool    `yaml:"loop"`
}

type AnimationComponentSpec struct {
	Sheet   string                               `yaml:"sheet"`
	FrameW  int                                  `yaml:"frame_w"`
	FrameH  int                                  `yaml:"frame_h"`
	Defs    map[string]AnimationDefComponentSpec `yaml:"defs"`
	Current string                               `yaml:"current"`
	Playing bool                                 `yaml:"playing"`
}

// PhysicsBodyComponentSpec sizes the hit-box in sprite frame pixels; the
// physics system scales it by the entity's display scale.
type PhysicsBodyComponentSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Mass    float64 `yaml:"mass"`
}

type ColliderComponentSpec struct {
	Layers []string `yaml:"layers"`
}
