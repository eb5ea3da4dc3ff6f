package physics

import (
	"github.com/ByteArena/box2d"

	"github.com/zeusync/zeuphys/internal/core/geom"
)

// RevoluteConstraintBuilder pins two entities at a shared point, leaving the
// relative rotation free.
type RevoluteConstraintBuilder struct {
	constraintBuilder

	firstAnchor    geom.Vector
	secondAnchor   geom.Vector
	referenceAngle float64
	limit          Limit
	motor          Motor
}

func (w *World) CreateRevoluteConstraintBuilder() *RevoluteConstraintBuilder {
	return &RevoluteConstraintBuilder{constraintBuilder: constraintBuilder{world: w}}
}

func (b *RevoluteConstraintBuilder) SetFirstAnchor(v geom.Vector)    { b.firstAnchor = v }
func (b *RevoluteConstraintBuilder) SetSecondAnchor(v geom.Vector)   { b.secondAnchor = v }
func (b *RevoluteConstraintBuilder) SetReferenceAngle(angle float64) { b.referenceAngle = angle }
func (b *RevoluteConstraintBuilder) SetLimitEnabled(enabled bool)    { b.limit.Enabled = enabled }
func (b *RevoluteConstraintBuilder) SetAngleLimits(lower, upper float64) {
	b.limit.Lower, b.limit.Upper = lower, upper
}
func (b *RevoluteConstraintBuilder) SetMotorEnabled(enabled bool)     { b.motor.Enabled = enabled }
func (b *RevoluteConstraintBuilder) SetMotorSpeed(speed float64)      { b.motor.Speed = speed }
func (b *RevoluteConstraintBuilder) SetMotorMaxTorque(torque float64) { b.motor.MaxEffort = torque }

func (b *RevoluteConstraintBuilder) Build() (*RevoluteConstraint, error) {
	if err := b.checkPair(); err != nil {
		return nil, err
	}
	if err := checkAnchors(b.firstAnchor, b.secondAnchor); err != nil {
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
	if err := b.world.checkUnlocked("build revolute constraint"); err != nil {
		return nil, err
	}

	c := &RevoluteConstraint{
		constraint:     constraint{kind: KindRevolute},
		firstAnchor:    b.firstAnchor,
		secondAnchor:   b.secondAnchor,
		referenceAngle: b.referenceAngle,
		limit:          b.limit,
	}
	def := box2d.MakeB2RevoluteJointDef()
	b.fill(&def.B2JointDef, c)
	def.LocalAnchorA = toB2(b.firstAnchor)
	def.LocalAnchorB = toB2(b.secondAnchor)
	def.ReferenceAngle = b.referenceAngle
	def.EnableLimit = b.limit.Enabled
	def.LowerAngle = b.limit.Lower
	def.UpperAngle = b.limit.Upper
	def.EnableMotor = b.motor.Enabled
	def.MotorSpeed = b.motor.Speed
	def.MaxMotorTorque = b.motor.MaxEffort

	joint, err := jointAs[*box2d.B2RevoluteJoint](b.world, b.world.engine.CreateJoint(&def))
	if err != nil {
		return nil, err
	}
	c.revoluteJoint = joint
	c.motorized = motorized{motor: b.motor, engine: joint, setMax: joint.SetMaxMotorTorque}
	b.created(&c.constraint, joint)
	return c, nil
}

type RevoluteConstraint struct {
	constraint
	motorized
	revoluteJoint *box2d.B2RevoluteJoint

	firstAnchor    geom.Vector
	secondAnchor   geom.Vector
	referenceAngle float64
	limit          Limit
}

func (c *RevoluteConstraint) FirstAnchor() geom.Vector  { return c.firstAnchor }
func (c *RevoluteConstraint) SecondAnchor() geom.Vector { return c.secondAnchor }
func (c *RevoluteConstraint) ReferenceAngle() float64   { return c.referenceAngle }
func (c *RevoluteConstraint) IsLimitEnabled() bool      { return c.limit.Enabled }
func (c *RevoluteConstraint) LowerAngleLimit() float64  { return c.limit.Lower }
func (c *RevoluteConstraint) UpperAngleLimit() float64  { return c.limit.Upper }

func (c *RevoluteConstraint) SetLimitEnabled(enabled bool) error {
	if err := c.check(); err != nil {
		return err
	}
	c.limit.Enabled = enabled
	c.revoluteJoint.EnableLimit(enabled)
	return nil
}

func (c *RevoluteConstraint) SetMotorEnabled(enabled bool) error {
	if err := c.check(); err != nil {
		return err
	}
	c.setEnabled(enabled)
	return nil
}

func (c *RevoluteConstraint) SetMotorSpeed(speed float64) error {
	if err := c.check(); err != nil {
		return err
	}
	return c.setSpeed(speed)
}

func (c *RevoluteConstraint) SetMotorMaxTorque(torque float64) error {
	if err := c.check(); err != nil {
		return err
	}
	return c.setMaxEffort(torque)
}
