package physics

import "fmt"

// Motor is the drive staged on prismatic, revolute and wheel constraints.
// MaxEffort is a torque for rotational kinds and a force for prismatic.
type Motor struct {
	Enabled   bool
	Speed     float64
	MaxEffort float64
}

func (m Motor) validate() error {
	if !isFinite(m.Speed) {
		return fmt.Errorf("%w: motor speed %g", ErrInvalidArgument, m.Speed)
	}
	return checkForce("motor max effort", m.MaxEffort)
}

// Limit bounds a translation or an angle.
type Limit struct {
	Enabled bool
	Lower   float64
	Upper   float64
}

func (l Limit) validate() error {
	return checkLimits(l.Lower, l.Upper)
}

// motorJoint is the part of the engine joints that drive a motor the same way.
type motorJoint interface {
	EnableMotor(flag bool)
	SetMotorSpeed(speed float64)
}

// motorized carries the runtime motor state shared by the driven kinds.
type motorized struct {
	motor  Motor
	engine motorJoint
	// setMax forwards the effort cap to the kind specific engine setter.
	setMax func(float64)
}

func (m *motorized) IsMotorEnabled() bool    { return m.motor.Enabled }
func (m *motorized) MotorSpeed() float64     { return m.motor.Speed }
func (m *motorized) MotorMaxEffort() float64 { return m.motor.MaxEffort }

func (m *motorized) setEnabled(enabled bool) {
	m.motor.Enabled = enabled
	m.engine.EnableMotor(enabled)
}

func (m *motorized) setSpeed(speed float64) error {
	if !isFinite(speed) {
		return fmt.Errorf("%w: motor speed %g", ErrInvalidArgument, speed)
	}
	m.motor.Speed = speed
	m.engine.SetMotorSpeed(speed)
	return nil
}

func (m *motorized) setMaxEffort(effort float64) error {
	if err := checkForce("motor max effort", effort); err != nil {
		return err
	}
	m.motor.MaxEffort = effort
	m.setMax(effort)
	return nil
}
