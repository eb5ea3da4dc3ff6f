package scenario

import (
	"errors"
	"fmt"

	"github.com/zeusync/zeuphys/internal/core/geom"
	"github.com/zeusync/zeuphys/internal/core/systems/physics"
)

// Scene is the set of objects a File produced on a world.
type Scene struct {
	entities    map[string]*physics.Entity
	constraints map[string]physics.Constraint
	all         []physics.Constraint
}

func (s *Scene) Entity(name string) (*physics.Entity, bool) {
	e, ok := s.entities[name]
	return e, ok
}

func (s *Scene) Constraint(name string) (physics.Constraint, bool) {
	c, ok := s.constraints[name]
	return c, ok
}

// Constraints lists every constraint built, named or not, in file order.
func (s *Scene) Constraints() []physics.Constraint { return s.all }

// Instantiate creates a world from f.World and builds the scene on it.
func (f *File) Instantiate(opts ...physics.Option) (*physics.World, *Scene, error) {
	if err := f.Validate(); err != nil {
		return nil, nil, err
	}
	w, err := physics.NewWorld(append([]physics.Option{physics.WithConfig(f.World)}, opts...)...)
	if err != nil {
		return nil, nil, err
	}
	s, err := f.Build(w)
	if err != nil {
		return nil, nil, err
	}
	return w, s, nil
}

// Build validates f and creates its entities and constraints on w. The world
// config in f is not applied. On failure every entity created so far is
// destroyed again.
func (f *File) Build(w *physics.World) (*Scene, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	s := &Scene{
		entities:    make(map[string]*physics.Entity, len(f.Entities)),
		constraints: make(map[string]physics.Constraint),
	}
	if err := s.build(f, w); err != nil {
		for _, e := range s.entities {
			err = errors.Join(err, e.Destroy())
		}
		return nil, err
	}
	return s, nil
}

func (s *Scene) build(f *File, w *physics.World) error {
	for _, spec := range f.Entities {
		e, err := buildEntity(w, spec)
		if e != nil {
			s.entities[spec.Name] = e
		}
		if err != nil {
			return fmt.Errorf("entity %q: %w", spec.Name, err)
		}
	}
	for i, spec := range f.Constraints {
		c, err := s.buildConstraint(w, spec)
		if err != nil {
			return fmt.Errorf("%s: %w", spec.label(i), err)
		}
		s.all = append(s.all, c)
		if spec.Name != "" {
			s.constraints[spec.Name] = c
		}
	}
	return nil
}

func buildEntity(w *physics.World, spec EntitySpec) (*physics.Entity, error) {
	b := w.CreateEntityBuilder().
		SetFixed(spec.Fixed).
		SetRotationFixed(spec.RotationFixed).
		SetBullet(spec.Bullet).
		SetPosition(spec.Position).
		SetAngularPosition(spec.Angle).
		SetVelocity(spec.Velocity).
		SetAngularVelocity(spec.AngularVelocity).
		SetLinearDamping(spec.LinearDamping).
		SetAngularDamping(spec.AngularDamping)
	if spec.GravityScale != nil {
		b.SetGravityScale(*spec.GravityScale)
	}
	e, err := b.Build()
	if err != nil {
		return nil, err
	}
	for i, p := range spec.Parts {
		if err := buildPart(e, p); err != nil {
			return e, fmt.Errorf("part #%d: %w", i, err)
		}
	}
	return e, nil
}

func buildPart(e *physics.Entity, spec PartSpec) error {
	sh, err := spec.Shape.build()
	if err != nil {
		return err
	}
	b := e.CreatePartBuilder().
		SetShape(sh).
		SetGhost(spec.Ghost).
		SetFriction(spec.Friction).
		SetRestitution(spec.Restitution).
		SetCollisionGroup(spec.Group)
	if spec.Density != nil {
		b.SetDensity(*spec.Density)
	}
	if spec.Signature != nil {
		b.SetCollisionSignature(*spec.Signature)
	}
	if spec.Effect != nil {
		b.SetCollisionEffect(*spec.Effect)
	}
	_, err = b.Build()
	return err
}

type endpoints interface {
	SetFirstEntity(e *physics.Entity)
	SetSecondEntity(e *physics.Entity)
	SetInternalCollision(collide bool)
}

type anchored interface {
	SetFirstAnchor(v geom.Vector)
	SetSecondAnchor(v geom.Vector)
}

type sprung interface {
	SetFrequency(hz float64)
	SetDamping(ratio float64)
}

func (s *Scene) prepare(b endpoints, spec ConstraintSpec) {
	b.SetFirstEntity(s.entities[spec.First])
	if spec.Second != "" {
		b.SetSecondEntity(s.entities[spec.Second])
	}
	b.SetInternalCollision(spec.InternalCollision)
	if a, ok := b.(anchored); ok {
		a.SetFirstAnchor(spec.FirstAnchor)
		a.SetSecondAnchor(spec.SecondAnchor)
	}
	if sp, ok := b.(sprung); ok {
		if spec.Frequency != nil {
			sp.SetFrequency(*spec.Frequency)
		}
		if spec.Damping != nil {
			sp.SetDamping(*spec.Damping)
		}
	}
}

func (s *Scene) buildConstraint(w *physics.World, spec ConstraintSpec) (physics.Constraint, error) {
	kind, err := physics.ParseKind(spec.Kind)
	if err != nil {
		return nil, err
	}

	switch kind {
	case physics.KindDistance:
		b := w.CreateDistanceConstraintBuilder()
		s.prepare(b, spec)
		if spec.Length != nil {
			b.SetReferenceLength(*spec.Length)
		}
		return b.Build()

	case physics.KindPoint:
		b := w.CreatePointConstraintBuilder()
		s.prepare(b, spec)
		point := s.entities[spec.First].Position()
		if spec.Point != nil {
			point = *spec.Point
		}
		b.SetPoint(point)
		b.SetMaxForce(spec.MaxForce)
		return b.Build()

	case physics.KindPrismatic:
		b := w.CreatePrismaticConstraintBuilder()
		s.prepare(b, spec)
		if spec.Axis != nil {
			b.SetFirstAxis(*spec.Axis)
		}
		b.SetReferenceAngle(spec.ReferenceAngle)
		if spec.Limit != nil {
			b.SetLimitEnabled(true)
			b.SetTranslationLimits(spec.Limit.Lower, spec.Limit.Upper)
		}
		if spec.Motor != nil {
			b.SetMotorEnabled(true)
			b.SetMotorSpeed(spec.Motor.Speed)
			b.SetMotorMaxForce(spec.Motor.MaxEffort)
		}
		return b.Build()

	case physics.KindRevolute:
		b := w.CreateRevoluteConstraintBuilder()
		s.prepare(b, spec)
		b.SetReferenceAngle(spec.ReferenceAngle)
		if spec.Limit != nil {
			b.SetLimitEnabled(true)
			b.SetAngleLimits(spec.Limit.Lower, spec.Limit.Upper)
		}
		if spec.Motor != nil {
			b.SetMotorEnabled(true)
			b.SetMotorSpeed(spec.Motor.Speed)
			b.SetMotorMaxTorque(spec.Motor.MaxEffort)
		}
		return b.Build()

	case physics.KindRope:
		b := w.CreateRopeConstraintBuilder()
		s.prepare(b, spec)
		if spec.MaxLength != nil {
			b.SetMaxLength(*spec.MaxLength)
		}
		return b.Build()

	case physics.KindWeld:
		b := w.CreateWeldConstraintBuilder()
		s.prepare(b, spec)
		b.SetReferenceAngle(spec.ReferenceAngle)
		return b.Build()

	case physics.KindWheel:
		b := w.CreateWheelConstraintBuilder()
		s.prepare(b, spec)
		if spec.Axis != nil {
			b.SetFirstAxis(*spec.Axis)
		}
		if spec.Motor != nil {
			b.SetMotorEnabled(true)
			b.SetMotorSpeed(spec.Motor.Speed)
			b.SetMotorMaxTorque(spec.Motor.MaxEffort)
		}
		return b.Build()
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidScenario, kind)
}
