package physics

import (
	"fmt"

	"github.com/ByteArena/box2d"

	"github.com/zeusync/zeuphys/internal/core/geom"
)

// DistanceConstraintBuilder keeps two anchors at a reference length, optionally
// through a spring. Anchors are in the local frame of their entity.
type DistanceConstraintBuilder struct {
	constraintBuilder

	firstAnchor  geom.Vector
	secondAnchor geom.Vector
	length       float64
	frequency    float64
	damping      float64
}

func (w *World) CreateDistanceConstraintBuilder() *DistanceConstraintBuilder {
	return &DistanceConstraintBuilder{
		constraintBuilder: constraintBuilder{world: w},
		length:            1,
	}
}

func (b *DistanceConstraintBuilder) SetFirstAnchor(v geom.Vector)  { b.firstAnchor = v }
func (b *DistanceConstraintBuilder) SetSecondAnchor(v geom.Vector) { b.secondAnchor = v }
func (b *DistanceConstraintBuilder) SetReferenceLength(l float64)  { b.length = l }

// SetFrequency sets the spring frequency in hertz; zero makes the link rigid.
func (b *DistanceConstraintBuilder) SetFrequency(hz float64)  { b.frequency = hz }
func (b *DistanceConstraintBuilder) SetDamping(ratio float64) { b.damping = ratio }

func checkLength(name string, l float64) error {
	if !(l > 0) || !isFinite(l) {
		return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidArgument, name, l)
	}
	return nil
}

func (b *DistanceConstraintBuilder) Build() (*DistanceConstraint, error) {
	if err := b.checkPair(); err != nil {
		return nil, err
	}
	if err := checkAnchors(b.firstAnchor, b.secondAnchor); err != nil {
		return nil, err
	}
	if err := checkLength("reference length", b.length); err != nil {
		return nil, err
	}
	if err := checkSpring(b.frequency, b.damping); err != nil {
		return nil, err
	}
	if err := b.world.checkUnlocked("build distance constraint"); err != nil {
		return nil, err
	}

	c := &DistanceConstraint{
		constraint:   constraint{kind: KindDistance},
		firstAnchor:  b.firstAnchor,
		secondAnchor: b.secondAnchor,
		length:       b.length,
		frequency:    b.frequency,
		damping:      b.damping,
	}
	def := box2d.MakeB2DistanceJointDef()
	b.fill(&def.B2JointDef, c)
	def.LocalAnchorA = toB2(b.firstAnchor)
	def.LocalAnchorB = toB2(b.secondAnchor)
	def.Length = b.length
	def.FrequencyHz = b.frequency
	def.DampingRatio = b.damping

	joint, err := jointAs[*box2d.B2DistanceJoint](b.world, b.world.engine.CreateJoint(&def))
	if err != nil {
		return nil, err
	}
	c.distanceJoint = joint
	b.created(&c.constraint, joint)
	return c, nil
}

type DistanceConstraint struct {
	constraint
	distanceJoint *box2d.B2DistanceJoint

	firstAnchor  geom.Vector
	secondAnchor geom.Vector
	length       float64
	frequency    float64
	damping      float64
}

func (c *DistanceConstraint) FirstAnchor() geom.Vector  { return c.firstAnchor }
func (c *DistanceConstraint) SecondAnchor() geom.Vector { return c.secondAnchor }
func (c *DistanceConstraint) ReferenceLength() float64  { return c.length }
func (c *DistanceConstraint) Frequency() float64        { return c.frequency }
func (c *DistanceConstraint) Damping() float64          { return c.damping }

func (c *DistanceConstraint) SetReferenceLength(l float64) error {
	if err := c.check(); err != nil {
		return err
	}
	if err := checkLength("reference length", l); err != nil {
		return err
	}
	c.length = l
	c.distanceJoint.SetLength(l)
	return nil
}

func (c *DistanceConstraint) SetFrequency(hz float64) error {
	if err := c.check(); err != nil {
		return err
	}
	if err := checkSpring(hz, c.damping); err != nil {
		return err
	}
	c.frequency = hz
	c.distanceJoint.SetFrequency(hz)
	return nil
}

func (c *DistanceConstraint) SetDamping(ratio float64) error {
	if err := c.check(); err != nil {
		return err
	}
	if err := checkSpring(c.frequency, ratio); err != nil {
		return err
	}
	c.damping = ratio
	c.distanceJoint.SetDampingRatio(ratio)
	return nil
}
