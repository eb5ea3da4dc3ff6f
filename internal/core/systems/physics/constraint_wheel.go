package physics

import (
	"github.com/ByteArena/box2d"

	"github.com/zeusync/zeuphys/internal/core/geom"
)

// WheelConstraintBuilder models a powered axle: the second entity rotates
// freely and rides a spring along an axis fixed on the first entity.
type WheelConstraintBuilder struct {
	constraintBuilder

	firstAnchor  geom.Vector
	secondAnchor geom.Vector
	axis         geom.Vector
	frequency    float64
	damping      float64
	motor        Motor
}

func (w *World) CreateWheelConstraintBuilder() *WheelConstraintBuilder {
	return &WheelConstraintBuilder{
		constraintBuilder: constraintBuilder{world: w},
		axis:              geom.UnitX,
		frequency:         2,
		damping:           0.7,
	}
}

func (b *WheelConstraintBuilder) SetFirstAnchor(v geom.Vector)     { b.firstAnchor = v }
func (b *WheelConstraintBuilder) SetSecondAnchor(v geom.Vector)    { b.secondAnchor = v }
func (b *WheelConstraintBuilder) SetFirstAxis(axis geom.Vector)    { b.axis = axis }
func (b *WheelConstraintBuilder) SetFrequency(hz float64)          { b.frequency = hz }
func (b *WheelConstraintBuilder) SetDamping(ratio float64)         { b.damping = ratio }
func (b *WheelConstraintBuilder) SetMotorEnabled(enabled bool)     { b.motor.Enabled = enabled }
func (b *WheelConstraintBuilder) SetMotorSpeed(speed float64)      { b.motor.Speed = speed }
func (b *WheelConstraintBuilder) SetMotorMaxTorque(torque float64) { b.motor.MaxEffort = torque }

func (b *WheelConstraintBuilder) Build() (*WheelConstraint, error) {
	if err := b.checkPair(); err != nil {
		return nil, err
	}
	if err := checkAnchors(b.firstAnchor, b.secondAnchor); err != nil {
		return nil, err
	}
	if err := checkAxis(b.axis); err != nil {
		return nil, err
	}
	if err := checkSpring(b.frequency, b.damping); err != nil {
		return nil, err
	}
	if err := b.motor.validate(); err != nil {
		return nil, err
	}
	if err := b.world.checkUnlocked("build wheel constraint"); err != nil {
		return nil, err
	}

	c := &WheelConstraint{
		constraint:   constraint{kind: KindWheel},
		firstAnchor:  b.firstAnchor,
		secondAnchor: b.secondAnchor,
		axis:         b.axis.Normalized(),
		frequency:    b.frequency,
		damping:      b.damping,
	}
	def := box2d.MakeB2WheelJointDef()
	b.fill(&def.B2JointDef, c)
	def.LocalAnchorA = toB2(b.firstAnchor)
	def.LocalAnchorB = toB2(b.secondAnchor)
	def.LocalAxisA = toB2(c.axis)
	def.FrequencyHz = b.frequency
	def.DampingRatio = b.damping
	def.EnableMotor = b.motor.Enabled
	def.MotorSpeed = b.motor.Speed
	def.MaxMotorTorque = b.motor.MaxEffort

	joint, err := jointAs[*box2d.B2WheelJoint](b.world, b.world.engine.CreateJoint(&def))
	if err != nil {
		return nil, err
	}
	c.wheelJoint = joint
	c.motorized = motorized{motor: b.motor, engine: joint, setMax: joint.SetMaxMotorTorque}
	b.created(&c.constraint, joint)
	return c, nil
}

type WheelConstraint struct {
	constraint
	motorized
	wheelJoint *box2d.B2WheelJoint

	firstAnchor  geom.Vector
	secondAnchor geom.Vector
	axis         geom.Vector
	frequency    float64
	damping      float64
}

func (c *WheelConstraint) FirstAnchor() geom.Vector  { return c.firstAnchor }
func (c *WheelConstraint) SecondAnchor() geom.Vector { return c.secondAnchor }
func (c *WheelConstraint) FirstAxis() geom.Vector    { return c.axis }
func (c *WheelConstraint) Frequency() float64        { return c.frequency }
func (c *WheelConstraint) Damping() float64          { return c.damping }

func (c *WheelConstraint) SetMotorEnabled(enabled bool) error {
	if err := c.check(); err != nil {
		return err
	}
	c.setEnabled(enabled)
	return nil
}

func (c *WheelConstraint) SetMotorSpeed(speed float64) error {
	if err := c.check(); err != nil {
		return err
	}
	return c.setSpeed(speed)
}

func (c *WheelConstraint) SetMotorMaxTorque(torque float64) error {
	if err := c.check(); err != nil {
		return err
	}
	return c.setMaxEffort(torque)
}

func (c *WheelConstraint) SetFrequency(hz float64) error {
	if err := c.check(); err != nil {
		return err
	}
	if err := checkSpring(hz, c.damping); err != nil {
		return err
	}
	c.frequency = hz
	c.wheelJoint.SetSpringFrequencyHz(hz)
	return nil
}

func (c *WheelConstraint) SetDamping(ratio float64) error {
	if err := c.check(); err != nil {
		return err
	}
	if err := checkSpring(c.frequency, ratio); err != nil {
		return err
	}
	c.damping = ratio
	c.wheelJoint.SetSpringDampingRatio(ratio)
	return nil
}
