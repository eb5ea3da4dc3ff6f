// Package scenario describes a world and its contents in YAML and builds it
// on a physics.World. Constraints refer to entities by name.
package scenario

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/zeuphys/internal/core/geom"
	"github.com/zeusync/zeuphys/internal/core/shape"
	"github.com/zeusync/zeuphys/internal/core/systems/physics"
)

type File struct {
	World       physics.Config   `yaml:"world"`
	Entities    []EntitySpec     `yaml:"entities"`
	Constraints []ConstraintSpec `yaml:"constraints,omitempty"`
}

type EntitySpec struct {
	Name            string      `yaml:"name"`
	Fixed           bool        `yaml:"fixed,omitempty"`
	RotationFixed   bool        `yaml:"rotation_fixed,omitempty"`
	Bullet          bool        `yaml:"bullet,omitempty"`
	Position        geom.Vector `yaml:"position,omitempty"`
	Angle           float64     `yaml:"angle,omitempty"`
	Velocity        geom.Vector `yaml:"velocity,omitempty"`
	AngularVelocity float64     `yaml:"angular_velocity,omitempty"`
	LinearDamping   float64     `yaml:"linear_damping,omitempty"`
	AngularDamping  float64     `yaml:"angular_damping,omitempty"`
	GravityScale    *float64    `yaml:"gravity_scale,omitempty"`
	Parts           []PartSpec  `yaml:"parts,omitempty"`
}

type PartSpec struct {
	Shape       ShapeSpec `yaml:"shape"`
	Friction    float64   `yaml:"friction,omitempty"`
	Restitution float64   `yaml:"restitution,omitempty"`
	Density     *float64  `yaml:"density,omitempty"`
	Ghost       bool      `yaml:"ghost,omitempty"`
	Signature   *uint16   `yaml:"signature,omitempty"`
	Effect      *uint16   `yaml:"effect,omitempty"`
	Group       int16     `yaml:"group,omitempty"`
}

// ShapeSpec selects a shape by Type: circle (radius, center), box (width,
// height), polygon (points) or polyline (points, closed).
type ShapeSpec struct {
	Type   string        `yaml:"type"`
	Radius float64       `yaml:"radius,omitempty"`
	Center geom.Vector   `yaml:"center,omitempty"`
	Width  float64       `yaml:"width,omitempty"`
	Height float64       `yaml:"height,omitempty"`
	Points []geom.Vector `yaml:"points,omitempty"`
	Closed bool          `yaml:"closed,omitempty"`
}

type LimitSpec struct {
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`
}

type MotorSpec struct {
	Speed     float64 `yaml:"speed"`
	MaxEffort float64 `yaml:"max_effort"`
}

// ConstraintSpec describes one constraint. Fields that do not apply to Kind
// are ignored. A present Limit or Motor is enabled.
type ConstraintSpec struct {
	Name              string       `yaml:"name,omitempty"`
	Kind              string       `yaml:"kind"`
	First             string       `yaml:"first"`
	Second            string       `yaml:"second,omitempty"`
	InternalCollision bool         `yaml:"internal_collision,omitempty"`
	FirstAnchor       geom.Vector  `yaml:"first_anchor,omitempty"`
	SecondAnchor      geom.Vector  `yaml:"second_anchor,omitempty"`
	Axis              *geom.Vector `yaml:"axis,omitempty"`
	ReferenceAngle    float64      `yaml:"reference_angle,omitempty"`
	Length            *float64     `yaml:"length,omitempty"`
	MaxLength         *float64     `yaml:"max_length,omitempty"`
	Frequency         *float64     `yaml:"frequency,omitempty"`
	Damping           *float64     `yaml:"damping,omitempty"`
	Limit             *LimitSpec   `yaml:"limit,omitempty"`
	Motor             *MotorSpec   `yaml:"motor,omitempty"`
	Point             *geom.Vector `yaml:"point,omitempty"`
	MaxForce          float64      `yaml:"max_force,omitempty"`
}

// Load decodes a scenario. Absent world keys keep physics.DefaultConfig values.
func Load(r io.Reader) (*File, error) {
	f := File{World: physics.DefaultConfig()}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return &f, nil
}

// Validate checks everything that can be checked without a world: config,
// names, references, shape parameters and constraint kinds.
func (f *File) Validate() error {
	if err := f.World.Validate(); err != nil {
		return err
	}
	names := make(map[string]struct{}, len(f.Entities))
	for i, e := range f.Entities {
		if e.Name == "" {
			return fmt.Errorf("%w: entity #%d has no name", ErrInvalidScenario, i)
		}
		if _, dup := names[e.Name]; dup {
			return fmt.Errorf("%w: entity %q", ErrDuplicateName, e.Name)
		}
		names[e.Name] = struct{}{}
		for j, p := range e.Parts {
			if _, err := p.Shape.build(); err != nil {
				return fmt.Errorf("entity %q part #%d: %w", e.Name, j, err)
			}
		}
	}

	constraints := make(map[string]struct{}, len(f.Constraints))
	for i, c := range f.Constraints {
		label := c.label(i)
		kind, err := physics.ParseKind(c.Kind)
		if err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		if c.Name != "" {
			if _, dup := constraints[c.Name]; dup {
				return fmt.Errorf("%w: constraint %q", ErrDuplicateName, c.Name)
			}
			constraints[c.Name] = struct{}{}
		}
		refs := []string{c.First}
		if kind != physics.KindPoint || c.Second != "" {
			refs = append(refs, c.Second)
		}
		for _, ref := range refs {
			if _, ok := names[ref]; !ok {
				return fmt.Errorf("%s: %w %q", label, ErrUnknownEntity, ref)
			}
		}
	}
	return nil
}

func (c ConstraintSpec) label(i int) string {
	if c.Name != "" {
		return fmt.Sprintf("constraint %q", c.Name)
	}
	return fmt.Sprintf("constraint #%d", i)
}

func (s ShapeSpec) build() (shape.Shape, error) {
	switch s.Type {
	case "circle":
		c, err := shape.NewCircle(s.Radius, s.Center)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "box":
		b, err := shape.NewBox(s.Width, s.Height)
		if err != nil {
			return nil, err
		}
		return b, nil
	case "polygon":
		p, err := shape.NewPolygon(s.Points...)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "polyline":
		p, err := shape.NewPolyline(s.Closed, s.Points...)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, s.Type)
	}
}
