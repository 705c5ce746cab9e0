package config

// StageConfig is the root config for stage YAML files.
type StageConfig struct {
	ID     string          `yaml:"id"`
	Name   string          `yaml:"name"`
	Size   StageSizeConfig `yaml:"size"`
	Spawn  PositionConfig  `yaml:"spawn"`
	Bodies []BodyConfig    `yaml:"bodies"`
}

// StageSizeConfig is the stage extent in pixels.
type StageSizeConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PositionConfig is a point in pixels.
type PositionConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// BodyConfig describes one static rectangle of level geometry.
// Kind is one of "solid", "oneway", "hazard".
type BodyConfig struct {
	Kind   string  `yaml:"kind"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}
