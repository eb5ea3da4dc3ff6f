package physics

import (
	"fmt"

	"github.com/ByteArena/box2d"

	"github.com/zeusync/zeuphys/internal/core/geom"
)

// PointConstraintBuilder drags the first entity toward a world-space point,
// such as a pointer position. The entity is grabbed where the initial point
// lies; moving the point with SetPoint pulls that spot along. The second
// entity is ignored.
type PointConstraintBuilder struct {
	constraintBuilder

	point     geom.Vector
	maxForce  float64
	frequency float64
	damping   float64
}

func (w *World) CreatePointConstraintBuilder() *PointConstraintBuilder {
	return &PointConstraintBuilder{
		constraintBuilder: constraintBuilder{world: w},
		frequency:         5,
		damping:           0.7,
	}
}

func (b *PointConstraintBuilder) SetPoint(p geom.Vector)    { b.point = p }
func (b *PointConstraintBuilder) SetMaxForce(force float64) { b.maxForce = force }
func (b *PointConstraintBuilder) SetFrequency(hz float64)   { b.frequency = hz }
func (b *PointConstraintBuilder) SetDamping(ratio float64)  { b.damping = ratio }

func checkForce(name string, f float64) error {
	if !(f >= 0) || !isFinite(f) {
		return fmt.Errorf("%w: %s must be non-negative, got %g", ErrInvalidArgument, name, f)
	}
	return nil
}

func (b *PointConstraintBuilder) Build() (*PointConstraint, error) {
	if err := b.checkEntity(b.first, "first entity"); err != nil {
		return nil, err
	}
	if !b.point.IsFinite() {
		return nil, fmt.Errorf("%w: target %s", ErrInvalidArgument, b.point)
	}
	if err := checkForce("max force", b.maxForce); err != nil {
		return nil, err
	}
	if err := checkSpring(b.frequency, b.damping); err != nil {
		return nil, err
	}
	if err := b.world.checkUnlocked("build point constraint"); err != nil {
		return nil, err
	}

	c := &PointConstraint{
		constraint: constraint{kind: KindPoint},
		point:      b.point,
		maxForce:   b.maxForce,
		frequency:  b.frequency,
		damping:    b.damping,
	}
	def := box2d.MakeB2MouseJointDef()
	def.BodyA = b.world.anchorBody()
	def.BodyB = b.first.body
	def.CollideConnected = b.internalCollision
	def.UserData = c
	def.Target = toB2(b.point)
	def.MaxForce = b.maxForce
	def.FrequencyHz = b.frequency
	def.DampingRatio = b.damping

	joint, err := jointAs[*box2d.B2MouseJoint](b.world, b.world.engine.CreateJoint(&def))
	if err != nil {
		return nil, err
	}
	c.mouseJoint = joint
	b.created(&c.constraint, joint)
	return c, nil
}

type PointConstraint struct {
	constraint
	mouseJoint *box2d.B2MouseJoint

	point     geom.Vector
	maxForce  float64
	frequency float64
	damping   float64
}

// FirstEntity is the dragged entity.
func (c *PointConstraint) FirstEntity() *Entity {
	if c.world == nil {
		return nil
	}
	return entityOf(c.joint.GetBodyB())
}

// SecondEntity is always nil: the target is a point, not an entity.
func (c *PointConstraint) SecondEntity() *Entity { return nil }

func (c *PointConstraint) Point() geom.Vector { return c.point }
func (c *PointConstraint) MaxForce() float64  { return c.maxForce }
func (c *PointConstraint) Frequency() float64 { return c.frequency }
func (c *PointConstraint) Damping() float64   { return c.damping }

// SetPoint moves the target and wakes the dragged entity.
func (c *PointConstraint) SetPoint(p geom.Vector) error {
	if err := c.check(); err != nil {
		return err
	}
	if !p.IsFinite() {
		return fmt.Errorf("%w: target %s", ErrInvalidArgument, p)
	}
	c.point = p
	c.mouseJoint.SetTarget(toB2(p))
	return nil
}

func (c *PointConstraint) SetMaxForce(force float64) error {
	if err := c.check(); err != nil {
		return err
	}
	if err := checkForce("max force", force); err != nil {
		return err
	}
	c.maxForce = force
	c.mouseJoint.SetMaxForce(force)
	return nil
}

func (c *PointConstraint) SetFrequency(hz float64) error {
	if err := c.check(); err != nil {
		return err
	}
	if err := checkSpring(hz, c.damping); err != nil {
		return err
	}
	c.frequency = hz
	c.mouseJoint.SetFrequency(hz)
	return nil
}

func (c *PointConstraint) SetDamping(ratio float64) error {
	if err := c.check(); err != nil {
		return err
	}
	if err := checkSpring(c.frequency, ratio); err != nil {
		return err
	}
	c.damping = ratio
	c.mouseJoint.SetDampingRatio(ratio)
	return nil
}
