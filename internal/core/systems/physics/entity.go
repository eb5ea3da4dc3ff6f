package physics

import (
	"fmt"
	"slices"

	"github.com/ByteArena/box2d"
	"github.com/google/uuid"

	"github.com/zeusync/zeuphys/internal/core/geom"
	"github.com/zeusync/zeuphys/internal/core/observability/log"
)

var _ geom.Positionable = (*Entity)(nil)

// pose is the last observed state of a body, kept so that getters keep
// answering after the entity is destroyed.
type pose struct {
	position        geom.Vector
	angle           float64
	velocity        geom.Vector
	angularVelocity float64
	mass            float64
}

// Entity is a managed rigid body.
type Entity struct {
	id    uuid.UUID
	world *World
	body  *box2d.B2Body

	fixed bool

	transform      geom.Transform
	transformValid bool

	parts     []*Part
	listeners []ContactListener

	last pose
}

func (e *Entity) ID() uuid.UUID { return e.id }

func (e *Entity) IsAlive() bool { return e.world != nil }

func (e *Entity) IsFixed() bool { return e.fixed }

func (e *Entity) check() error {
	if e.world == nil {
		return fmt.Errorf("entity %s: %w", e.id, ErrDestroyed)
	}
	return nil
}

func (e *Entity) invalidate() { e.transformValid = false }

func (e *Entity) capture() {
	e.last = pose{
		position:        fromB2(e.body.GetPosition()),
		angle:           e.body.GetAngle(),
		velocity:        fromB2(e.body.GetLinearVelocity()),
		angularVelocity: e.body.GetAngularVelocity(),
		mass:            e.body.GetMass(),
	}
}

// Transform returns the absolute pose of the body. The value is cached until
// the next World.Update or pose change.
func (e *Entity) Transform() geom.Transform {
	if e.world == nil {
		return geom.NewRotation(e.last.angle, e.last.position)
	}
	if !e.transformValid {
		e.transform = geom.NewRotation(e.body.GetAngle(), fromB2(e.body.GetPosition()))
		e.transformValid = true
	}
	return e.transform
}

func (e *Entity) Position() geom.Vector {
	if e.world == nil {
		return e.last.position
	}
	return fromB2(e.body.GetPosition())
}

func (e *Entity) AngularPosition() float64 {
	if e.world == nil {
		return e.last.angle
	}
	return e.body.GetAngle()
}

func (e *Entity) Velocity() geom.Vector {
	if e.world == nil {
		return e.last.velocity
	}
	return fromB2(e.body.GetLinearVelocity())
}

func (e *Entity) AngularVelocity() float64 {
	if e.world == nil {
		return e.last.angularVelocity
	}
	return e.body.GetAngularVelocity()
}

// Mass is zero for fixed entities.
func (e *Entity) Mass() float64 {
	if e.world == nil {
		return e.last.mass
	}
	return e.body.GetMass()
}

func (e *Entity) IsRotationFixed() bool {
	if e.world == nil {
		return false
	}
	return e.body.IsFixedRotation()
}

func (e *Entity) IsBullet() bool {
	if e.world == nil {
		return false
	}
	return e.body.IsBullet()
}

func (e *Entity) SetPosition(p geom.Vector) error {
	return e.SetPose(p, e.AngularPosition())
}

func (e *Entity) SetAngularPosition(angle float64) error {
	return e.SetPose(e.Position(), angle)
}

// SetPose teleports the body. A moving body is woken so that its contacts are
// re-evaluated on the next update.
func (e *Entity) SetPose(p geom.Vector, angle float64) error {
	if err := e.check(); err != nil {
		return err
	}
	if !p.IsFinite() || !isFinite(angle) {
		return fmt.Errorf("%w: pose %s %g", ErrInvalidArgument, p, angle)
	}
	if err := e.world.checkUnlocked("set pose"); err != nil {
		return err
	}
	e.body.SetTransform(toB2(p), angle)
	if !e.fixed {
		e.body.SetAwake(true)
	}
	e.invalidate()
	return nil
}

func (e *Entity) SetVelocity(v geom.Vector) error {
	if err := e.check(); err != nil {
		return err
	}
	if !v.IsFinite() {
		return fmt.Errorf("%w: velocity %s", ErrInvalidArgument, v)
	}
	e.body.SetLinearVelocity(toB2(v))
	return nil
}

func (e *Entity) SetAngularVelocity(w float64) error {
	if err := e.check(); err != nil {
		return err
	}
	if !isFinite(w) {
		return fmt.Errorf("%w: angular velocity %g", ErrInvalidArgument, w)
	}
	e.body.SetAngularVelocity(w)
	return nil
}

// ApplyForce applies a force for the next update. A nil point applies it to
// the center of mass; otherwise point is in world coordinates.
func (e *Entity) ApplyForce(force geom.Vector, point *geom.Vector) error {
	if err := e.check(); err != nil {
		return err
	}
	if !force.IsFinite() {
		return fmt.Errorf("%w: force %s", ErrInvalidArgument, force)
	}
	if point == nil {
		e.body.ApplyForceToCenter(toB2(force), true)
	} else {
		e.body.ApplyForce(toB2(force), toB2(*point), true)
	}
	return nil
}

// ApplyImpulse changes the velocity immediately. A nil point targets the
// center of mass.
func (e *Entity) ApplyImpulse(impulse geom.Vector, point *geom.Vector) error {
	if err := e.check(); err != nil {
		return err
	}
	if !impulse.IsFinite() {
		return fmt.Errorf("%w: impulse %s", ErrInvalidArgument, impulse)
	}
	if point == nil {
		e.body.ApplyLinearImpulse(toB2(impulse), e.body.GetWorldCenter(), true)
	} else {
		e.body.ApplyLinearImpulse(toB2(impulse), toB2(*point), true)
	}
	return nil
}

func (e *Entity) ApplyAngularForce(torque float64) error {
	if err := e.check(); err != nil {
		return err
	}
	if !isFinite(torque) {
		return fmt.Errorf("%w: torque %g", ErrInvalidArgument, torque)
	}
	e.body.ApplyTorque(torque, true)
	return nil
}

func (e *Entity) ApplyAngularImpulse(impulse float64) error {
	if err := e.check(); err != nil {
		return err
	}
	if !isFinite(impulse) {
		return fmt.Errorf("%w: angular impulse %g", ErrInvalidArgument, impulse)
	}
	e.body.ApplyAngularImpulse(impulse, true)
	return nil
}

// Parts returns a copy of the live parts in creation order.
func (e *Entity) Parts() []*Part { return slices.Clone(e.parts) }

func (e *Entity) AddContactListener(l ContactListener) error {
	if err := e.check(); err != nil {
		return err
	}
	if l == nil {
		return fmt.Errorf("%w: nil contact listener", ErrInvalidArgument)
	}
	e.listeners = append(e.listeners, l)
	return nil
}

// RemoveContactListener removes the first registration of l.
func (e *Entity) RemoveContactListener(l ContactListener) error {
	if err := e.check(); err != nil {
		return err
	}
	if i := slices.Index(e.listeners, l); i >= 0 {
		e.listeners = slices.Delete(e.listeners, i, i+1)
	}
	return nil
}

func (e *Entity) dispatch(c *Contact, call func(ContactListener, *Contact)) {
	if e == nil || len(e.listeners) == 0 {
		return
	}
	for _, l := range slices.Clone(e.listeners) {
		call(l, c)
	}
}

// CreatePartBuilder starts a part attached to this entity.
func (e *Entity) CreatePartBuilder() *PartBuilder {
	return newPartBuilder(e)
}

// Destroy removes the body together with its parts and constraints.
// Contacts it was involved in end, and their listeners are notified.
func (e *Entity) Destroy() error {
	if err := e.check(); err != nil {
		return err
	}
	w := e.world
	if err := w.checkUnlocked("destroy entity"); err != nil {
		return err
	}

	e.capture()
	w.guard(func() { w.engine.DestroyBody(e.body) })

	// Fixtures were said goodbye to by the engine; this covers any part the
	// bridge could not reach.
	for _, p := range slices.Clone(e.parts) {
		p.unregister()
	}

	w.removeEntity(e)
	e.world = nil
	e.body = nil
	e.parts = nil

	w.logger.Debug("entity destroyed", log.Stringer("id", e.id))
	return nil
}

func (e *Entity) removePart(p *Part) {
	if i := slices.Index(e.parts, p); i >= 0 {
		e.parts = slices.Delete(e.parts, i, i+1)
	}
}
