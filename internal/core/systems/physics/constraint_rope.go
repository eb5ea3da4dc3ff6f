package physics

import (
	"github.com/ByteArena/box2d"

	"github.com/zeusync/zeuphys/internal/core/geom"
)

// RopeConstraintBuilder bounds the distance between two anchors from above.
// The rope never pushes.
type RopeConstraintBuilder struct {
	constraintBuilder

	firstAnchor  geom.Vector
	secondAnchor geom.Vector
	maxLength    float64
}

func (w *World) CreateRopeConstraintBuilder() *RopeConstraintBuilder {
	return &RopeConstraintBuilder{
		constraintBuilder: constraintBuilder{world: w},
		maxLength:         1,
	}
}

func (b *RopeConstraintBuilder) SetFirstAnchor(v geom.Vector)  { b.firstAnchor = v }
func (b *RopeConstraintBuilder) SetSecondAnchor(v geom.Vector) { b.secondAnchor = v }
func (b *RopeConstraintBuilder) SetMaxLength(l float64)        { b.maxLength = l }

func (b *RopeConstraintBuilder) Build() (*RopeConstraint, error) {
	if err := b.checkPair(); err != nil {
		return nil, err
	}
	if err := checkAnchors(b.firstAnchor, b.secondAnchor); err != nil {
		return nil, err
	}
	if err := checkLength("max length", b.maxLength); err != nil {
		return nil, err
	}
	if err := b.world.checkUnlocked("build rope constraint"); err != nil {
		return nil, err
	}

	c := &RopeConstraint{
		constraint:   constraint{kind: KindRope},
		firstAnchor:  b.firstAnchor,
		secondAnchor: b.secondAnchor,
		maxLength:    b.maxLength,
	}
	def := box2d.MakeB2RopeJointDef()
	b.fill(&def.B2JointDef, c)
	def.LocalAnchorA = toB2(b.firstAnchor)
	def.LocalAnchorB = toB2(b.secondAnchor)
	def.MaxLength = b.maxLength

	joint, err := jointAs[*box2d.B2RopeJoint](b.world, b.world.engine.CreateJoint(&def))
	if err != nil {
		return nil, err
	}
	c.ropeJoint = joint
	b.created(&c.constraint, joint)
	return c, nil
}

type RopeConstraint struct {
	constraint
	ropeJoint *box2d.B2RopeJoint

	firstAnchor  geom.Vector
	secondAnchor geom.Vector
	maxLength    float64
}

func (c *RopeConstraint) FirstAnchor() geom.Vector  { return c.firstAnchor }
func (c *RopeConstraint) SecondAnchor() geom.Vector { return c.secondAnchor }
func (c *RopeConstraint) MaxLength() float64        { return c.maxLength }

func (c *RopeConstraint) SetMaxLength(l float64) error {
	if err := c.check(); err != nil {
		return err
	}
	if err := checkLength("max length", l); err != nil {
		return err
	}
	c.maxLength = l
	c.ropeJoint.SetMaxLength(l)
	return nil
}
