package physics

import (
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/zeuphys/internal/core/geom"
)

// Config holds the stepping parameters of a World.
type Config struct {
	// SubStep is the fixed duration the engine is advanced by, in seconds.
	SubStep            float64     `json:"sub_step" yaml:"sub_step"`
	VelocityIterations int         `json:"velocity_iterations" yaml:"velocity_iterations"`
	PositionIterations int         `json:"position_iterations" yaml:"position_iterations"`
	Gravity            geom.Vector `json:"gravity" yaml:"gravity"`
	// MaxSubSteps caps the sub-steps run by a single Update; 0 disables the cap.
	// Accumulated time beyond the cap is dropped.
	MaxSubSteps int `json:"max_sub_steps,omitempty" yaml:"max_sub_steps,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		SubStep:            1.0 / 120.0,
		VelocityIterations: 8,
		PositionIterations: 3,
	}
}

func (c Config) Validate() error {
	if !(c.SubStep > 0) || math.IsInf(c.SubStep, 0) {
		return fmt.Errorf("%w: sub_step must be positive, got %g", ErrInvalidConfig, c.SubStep)
	}
	if c.VelocityIterations < 1 || c.PositionIterations < 1 {
		return fmt.Errorf("%w: solver iterations must be at least 1", ErrInvalidConfig)
	}
	if c.MaxSubSteps < 0 {
		return fmt.Errorf("%w: max_sub_steps must not be negative", ErrInvalidConfig)
	}
	if !c.Gravity.IsFinite() {
		return fmt.Errorf("%w: gravity must be finite", ErrInvalidConfig)
	}
	return nil
}

// LoadConfigYAML decodes a Config, keeping defaults for absent keys.
func LoadConfigYAML(r io.Reader) (Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("decode world config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
