package physics

import (
	"github.com/ByteArena/box2d"

	"github.com/zeusync/zeuphys/internal/core/geom"
)

// PrismaticConstraintBuilder lets the second entity slide along an axis fixed
// on the first one, without relative rotation.
type PrismaticConstraintBuilder struct {
	constraintBuilder

	firstAnchor    geom.Vector
	secondAnchor   geom.Vector
	axis           geom.Vector
	referenceAngle float64
	limit          Limit
	motor          Motor
}

func (w *World) CreatePrismaticConstraintBuilder() *PrismaticConstraintBuilder {
	return &PrismaticConstraintBuilder{
		constraintBuilder: constraintBuilder{world: w},
		axis:              geom.UnitX,
	}
}

func (b *PrismaticConstraintBuilder) SetFirstAnchor(v geom.Vector)  { b.firstAnchor = v }
func (b *PrismaticConstraintBuilder) SetSecondAnchor(v geom.Vector) { b.secondAnchor = v }

// SetFirstAxis sets the sliding direction in the first entity's frame.
func (b *PrismaticConstraintBuilder) SetFirstAxis(axis geom.Vector) { b.axis = axis }

func (b *PrismaticConstraintBuilder) SetReferenceAngle(angle float64) { b.referenceAngle = angle }
func (b *PrismaticConstraintBuilder) SetLimitEnabled(enabled bool)    { b.limit.Enabled = enabled }

func (b *PrismaticConstraintBuilder) SetTranslationLimits(lower, upper float64) {
	b.limit.Lower, b.limit.Upper = lower, upper
}

func (b *PrismaticConstraintBuilder) SetMotorEnabled(enabled bool)   { b.motor.Enabled = enabled }
func (b *PrismaticConstraintBuilder) SetMotorSpeed(speed float64)    { b.motor.Speed = speed }
func (b *PrismaticConstraintBuilder) SetMotorMaxForce(force float64) { b.motor.MaxEffort = force }

func (b *PrismaticConstraintBuilder) Build() (*PrismaticConstraint, error) {
	if err := b.checkPair(); err != nil {
		return nil, err
	}
	if err := checkAnchors(b.firstAnchor, b.secondAnchor); err != nil {
		return nil, err
	}
	if err := checkAxis(b.axis); err != nil {
		return nil, err
	}
	if err := checkFinite("reference angle", b.referenceAngle); err != nil {
		return nil, err
	}
	if err := b.limit.validate(); err != nil {
		return nil, err
	}
	if err := b.motor.validate(); err != nil {
		return nil, err
	}
	if err := b.world.checkUnlocked("build prismatic constraint"); err != nil {
		return nil, err
	}

	c := &PrismaticConstraint{
		constraint:     constraint{kind: KindPrismatic},
		firstAnchor:    b.firstAnchor,
		secondAnchor:   b.secondAnchor,
		axis:           b.axis.Normalized(),
		referenceAngle: b.referenceAngle,
		limit:          b.limit,
	}
	def := box2d.MakeB2PrismaticJointDef()
	b.fill(&def.B2JointDef, c)
	def.LocalAnchorA = toB2(b.firstAnchor)
	def.LocalAnchorB = toB2(b.secondAnchor)
	def.LocalAxisA = toB2(c.axis)
	def.ReferenceAngle = b.referenceAngle
	def.EnableLimit = b.limit.Enabled
	def.LowerTranslation = b.limit.Lower
	def.UpperTranslation = b.limit.Upper
	def.EnableMotor = b.motor.Enabled
	def.MotorSpeed = b.motor.Speed
	def.MaxMotorForce = b.motor.MaxEffort

	joint, err := jointAs[*box2d.B2PrismaticJoint](b.world, b.world.engine.CreateJoint(&def))
	if err != nil {
		return nil, err
	}
	c.prismaticJoint = joint
	c.motorized = motorized{motor: b.motor, engine: joint, setMax: joint.SetMaxMotorForce}
	b.created(&c.constraint, joint)
	return c, nil
}

type PrismaticConstraint struct {
	constraint
	motorized
	prismaticJoint *box2d.B2PrismaticJoint

	firstAnchor    geom.Vector
	secondAnchor   geom.Vector
	axis           geom.Vector
	referenceAngle float64
	limit          Limit
}

func (c *PrismaticConstraint) FirstAnchor() geom.Vector       { return c.firstAnchor }
func (c *PrismaticConstraint) SecondAnchor() geom.Vector      { return c.secondAnchor }
func (c *PrismaticConstraint) FirstAxis() geom.Vector         { return c.axis }
func (c *PrismaticConstraint) ReferenceAngle() float64        { return c.referenceAngle }
func (c *PrismaticConstraint) IsLimitEnabled() bool           { return c.limit.Enabled }
func (c *PrismaticConstraint) LowerTranslationLimit() float64 { return c.limit.Lower }
func (c *PrismaticConstraint) UpperTranslationLimit() float64 { return c.limit.Upper }

func (c *PrismaticConstraint) SetLimitEnabled(enabled bool) error {
	if err := c.check(); err != nil {
		return err
	}
	c.limit.Enabled = enabled
	c.prismaticJoint.EnableLimit(enabled)
	return nil
}

func (c *PrismaticConstraint) SetMotorEnabled(enabled bool) error {
	if err := c.check(); err != nil {
		return err
	}
	c.setEnabled(enabled)
	return nil
}

func (c *PrismaticConstraint) SetMotorSpeed(speed float64) error {
	if err := c.check(); err != nil {
		return err
	}
	return c.setSpeed(speed)
}

func (c *PrismaticConstraint) SetMotorMaxForce(force float64) error {
	if err := c.check(); err != nil {
		return err
	}
	return c.setMaxEffort(force)
}
