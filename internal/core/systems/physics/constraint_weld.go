package physics

import (
	"github.com/ByteArena/box2d"

	"github.com/zeusync/zeuphys/internal/core/geom"
)

// WeldConstraintBuilder glues two entities together. A non-zero frequency
// softens the weld into a spring.
type WeldConstraintBuilder struct {
	constraintBuilder

	firstAnchor    geom.Vector
	secondAnchor   geom.Vector
	referenceAngle float64
	frequency      float64
	damping        float64
}

func (w *World) CreateWeldConstraintBuilder() *WeldConstraintBuilder {
	return &WeldConstraintBuilder{constraintBuilder: constraintBuilder{world: w}}
}

func (b *WeldConstraintBuilder) SetFirstAnchor(v geom.Vector)    { b.firstAnchor = v }
func (b *WeldConstraintBuilder) SetSecondAnchor(v geom.Vector)   { b.secondAnchor = v }
func (b *WeldConstraintBuilder) SetReferenceAngle(angle float64) { b.referenceAngle = angle }
func (b *WeldConstraintBuilder) SetFrequency(hz float64)         { b.frequency = hz }
func (b *WeldConstraintBuilder) SetDamping(ratio float64)        { b.damping = ratio }

func (b *WeldConstraintBuilder) Build() (*WeldConstraint, error) {
	if err := b.checkPair(); err != nil {
		return nil, err
	}
	if err := checkAnchors(b.firstAnchor, b.secondAnchor); err != nil {
		return nil, err
	}
	if err := checkFinite("reference angle", b.referenceAngle); err != nil {
		return nil, err
	}
	if err := checkSpring(b.frequency, b.damping); err != nil {
		return nil, err
	}
	if err := b.world.checkUnlocked("build weld constraint"); err != nil {
		return nil, err
	}

	c := &WeldConstraint{
		constraint:     constraint{kind: KindWeld},
		firstAnchor:    b.firstAnchor,
		secondAnchor:   b.secondAnchor,
		referenceAngle: b.referenceAngle,
		frequency:      b.frequency,
		damping:        b.damping,
	}
	def := box2d.MakeB2WeldJointDef()
	b.fill(&def.B2JointDef, c)
	def.LocalAnchorA = toB2(b.firstAnchor)
	def.LocalAnchorB = toB2(b.secondAnchor)
	def.ReferenceAngle = b.referenceAngle
	def.FrequencyHz = b.frequency
	def.DampingRatio = b.damping

	joint, err := jointAs[*box2d.B2WeldJoint](b.world, b.world.engine.CreateJoint(&def))
	if err != nil {
		return nil, err
	}
	c.weldJoint = joint
	b.created(&c.constraint, joint)
	return c, nil
}

type WeldConstraint struct {
	constraint
	weldJoint *box2d.B2WeldJoint

	firstAnchor    geom.Vector
	secondAnchor   geom.Vector
	referenceAngle float64
	frequency      float64
	damping        float64
}

func (c *WeldConstraint) FirstAnchor() geom.Vector  { return c.firstAnchor }
func (c *WeldConstraint) SecondAnchor() geom.Vector { return c.secondAnchor }
func (c *WeldConstraint) ReferenceAngle() float64   { return c.referenceAngle }
func (c *WeldConstraint) Frequency() float64        { return c.frequency }
func (c *WeldConstraint) Damping() float64          { return c.damping }

func (c *WeldConstraint) SetFrequency(hz float64) error {
	if err := c.check(); err != nil {
		return err
	}
	if err := checkSpring(hz, c.damping); err != nil {
		return err
	}
	c.frequency = hz
	c.weldJoint.SetFrequency(hz)
	return nil
}

func (c *WeldConstraint) SetDamping(ratio float64) error {
	if err := c.check(); err != nil {
		return err
	}
	if err := checkSpring(c.frequency, ratio); err != nil {
		return err
	}
	c.damping = ratio
	c.weldJoint.SetDampingRatio(ratio)
	return nil
}
