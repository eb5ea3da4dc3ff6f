package physics

import (
	"fmt"

	"github.com/ByteArena/box2d"

	"github.com/zeusync/zeuphys/internal/core/geom"
	"github.com/zeusync/zeuphys/internal/core/observability/log"
)

type Kind uint8

const (
	KindDistance Kind = iota + 1
	KindPoint
	KindPrismatic
	KindRevolute
	KindRope
	KindWeld
	KindWheel
)

func (k Kind) String() string {
	switch k {
	case KindDistance:
		return "distance"
	case KindPoint:
		return "point"
	case KindPrismatic:
		return "prismatic"
	case KindRevolute:
		return "revolute"
	case KindRope:
		return "rope"
	case KindWeld:
		return "weld"
	case KindWheel:
		return "wheel"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k := KindDistance; k <= KindWheel; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown constraint kind %q", ErrInvalidArgument, s)
}

// Constraint is a managed joint between two entities. It dies silently when
// either endpoint is destroyed.
type Constraint interface {
	Kind() Kind
	IsAlive() bool
	FirstEntity() *Entity
	SecondEntity() *Entity
	Destroy() error
}

type registered interface {
	Constraint
	unregister()
}

type constraint struct {
	kind  Kind
	world *World
	joint box2d.B2JointInterface
}

func (c *constraint) Kind() Kind { return c.kind }

func (c *constraint) IsAlive() bool { return c.world != nil }

// FirstEntity is read from the joint; nil once the constraint is dead.
func (c *constraint) FirstEntity() *Entity {
	if c.world == nil {
		return nil
	}
	return entityOf(c.joint.GetBodyA())
}

func (c *constraint) SecondEntity() *Entity {
	if c.world == nil {
		return nil
	}
	return entityOf(c.joint.GetBodyB())
}

func (c *constraint) Destroy() error {
	if err := c.check(); err != nil {
		return err
	}
	w := c.world
	if err := w.checkUnlocked("destroy constraint"); err != nil {
		return err
	}
	w.engine.DestroyJoint(c.joint)
	c.unregister()
	w.logger.Debug("constraint destroyed", log.Stringer("kind", c.kind))
	return nil
}

func (c *constraint) check() error {
	if c.world == nil {
		return fmt.Errorf("%s constraint: %w", c.kind, ErrDestroyed)
	}
	return nil
}

func (c *constraint) unregister() {
	c.world = nil
	c.joint = nil
}

func entityOf(body *box2d.B2Body) *Entity {
	if body == nil {
		return nil
	}
	e, _ := body.GetUserData().(*Entity)
	return e
}

// constraintBuilder holds what every constraint kind needs.
type constraintBuilder struct {
	world             *World
	first             *Entity
	second            *Entity
	internalCollision bool
}

func (b *constraintBuilder) SetFirstEntity(e *Entity) { b.first = e }

func (b *constraintBuilder) SetSecondEntity(e *Entity) { b.second = e }

// SetInternalCollision keeps collisions enabled between the two entities.
func (b *constraintBuilder) SetInternalCollision(collide bool) { b.internalCollision = collide }

func (b *constraintBuilder) FirstEntity() *Entity       { return b.first }
func (b *constraintBuilder) SecondEntity() *Entity      { return b.second }
func (b *constraintBuilder) HasInternalCollision() bool { return b.internalCollision }

func (b *constraintBuilder) checkEntity(e *Entity, role string) error {
	if e == nil {
		return fmt.Errorf("%s: %w", role, ErrMissingEntity)
	}
	if !e.IsAlive() {
		return fmt.Errorf("%s: %w", role, ErrDestroyed)
	}
	if e.world != b.world {
		return fmt.Errorf("%s: %w", role, ErrForeignEntity)
	}
	return nil
}

func (b *constraintBuilder) checkPair() error {
	if err := b.checkEntity(b.first, "first entity"); err != nil {
		return err
	}
	if err := b.checkEntity(b.second, "second entity"); err != nil {
		return err
	}
	if b.first == b.second {
		return ErrSameEntity
	}
	return nil
}

// fill copies the common fields into an engine joint definition.
func (b *constraintBuilder) fill(def *box2d.B2JointDef, owner registered) {
	def.BodyA = b.first.body
	if b.second != nil {
		def.BodyB = b.second.body
	}
	def.CollideConnected = b.internalCollision
	def.UserData = owner
}

func (b *constraintBuilder) created(c *constraint, joint box2d.B2JointInterface) {
	c.world = b.world
	c.joint = joint
	b.world.logger.Debug("constraint created", log.Stringer("kind", c.kind))
}

func checkSpring(frequency, damping float64) error {
	if !(frequency >= 0) || !isFinite(frequency) {
		return fmt.Errorf("%w: frequency must be non-negative, got %g", ErrInvalidArgument, frequency)
	}
	if !(damping >= 0 && damping <= 1) {
		return fmt.Errorf("%w: damping ratio must be within [0,1], got %g", ErrInvalidArgument, damping)
	}
	return nil
}

func checkAnchors(anchors ...geom.Vector) error {
	for _, a := range anchors {
		if !a.IsFinite() {
			return fmt.Errorf("%w: anchor %s", ErrInvalidArgument, a)
		}
	}
	return nil
}

func checkFinite(name string, v float64) error {
	if !isFinite(v) {
		return fmt.Errorf("%w: %s must be finite", ErrInvalidArgument, name)
	}
	return nil
}

func checkLimits(lower, upper float64) error {
	if !isFinite(lower) || !isFinite(upper) || lower > upper {
		return fmt.Errorf("%w: limits [%g, %g]", ErrInvalidArgument, lower, upper)
	}
	return nil
}

func checkAxis(axis geom.Vector) error {
	if !axis.IsFinite() || axis.Length() <= 1e-9 {
		return fmt.Errorf("%w: axis %s", ErrInvalidArgument, axis)
	}
	return nil
}

// jointAs narrows an engine joint to its concrete type. The engine always
// returns the type matching the definition, so a mismatch means the joint was
// rejected.
func jointAs[T any](w *World, joint box2d.B2JointInterface) (T, error) {
	typed, ok := joint.(T)
	if !ok {
		var zero T
		if joint != nil {
			w.engine.DestroyJoint(joint)
		}
		return zero, fmt.Errorf("%w: unexpected joint %T", ErrEngine, joint)
	}
	return typed, nil
}

var (
	_ registered = (*DistanceConstraint)(nil)
	_ registered = (*PointConstraint)(nil)
	_ registered = (*PrismaticConstraint)(nil)
	_ registered = (*RevoluteConstraint)(nil)
	_ registered = (*RopeConstraint)(nil)
	_ registered = (*WeldConstraint)(nil)
	_ registered = (*WheelConstraint)(nil)
)
