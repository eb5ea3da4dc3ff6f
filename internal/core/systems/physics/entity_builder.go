package physics

import (
	"fmt"

	"github.com/ByteArena/box2d"
	"github.com/google/uuid"

	"github.com/zeusync/zeuphys/internal/core/geom"
	"github.com/zeusync/zeuphys/internal/core/observability/log"
)

// EntityBuilder stages the initial state of a body. Nothing reaches the
// engine before Build.
type EntityBuilder struct {
	world *World

	fixed           bool
	rotationFixed   bool
	bullet          bool
	position        geom.Vector
	angle           float64
	velocity        geom.Vector
	angularVelocity float64
	linearDamping   float64
	angularDamping  float64
	gravityScale    float64
}

func (w *World) CreateEntityBuilder() *EntityBuilder {
	return &EntityBuilder{world: w, gravityScale: 1}
}

func (b *EntityBuilder) SetFixed(fixed bool) *EntityBuilder {
	b.fixed = fixed
	return b
}

func (b *EntityBuilder) SetRotationFixed(fixed bool) *EntityBuilder {
	b.rotationFixed = fixed
	return b
}

// SetBullet enables continuous collision detection for fast bodies.
func (b *EntityBuilder) SetBullet(bullet bool) *EntityBuilder {
	b.bullet = bullet
	return b
}

func (b *EntityBuilder) SetPosition(p geom.Vector) *EntityBuilder {
	b.position = p
	return b
}

func (b *EntityBuilder) SetAngularPosition(angle float64) *EntityBuilder {
	b.angle = angle
	return b
}

func (b *EntityBuilder) SetVelocity(v geom.Vector) *EntityBuilder {
	b.velocity = v
	return b
}

func (b *EntityBuilder) SetAngularVelocity(w float64) *EntityBuilder {
	b.angularVelocity = w
	return b
}

func (b *EntityBuilder) SetLinearDamping(d float64) *EntityBuilder {
	b.linearDamping = d
	return b
}

func (b *EntityBuilder) SetAngularDamping(d float64) *EntityBuilder {
	b.angularDamping = d
	return b
}

func (b *EntityBuilder) SetGravityScale(s float64) *EntityBuilder {
	b.gravityScale = s
	return b
}

func (b *EntityBuilder) validate() error {
	switch {
	case !b.position.IsFinite(), !isFinite(b.angle):
		return fmt.Errorf("%w: initial pose %s %g", ErrInvalidArgument, b.position, b.angle)
	case !b.velocity.IsFinite(), !isFinite(b.angularVelocity):
		return fmt.Errorf("%w: initial velocity %s %g", ErrInvalidArgument, b.velocity, b.angularVelocity)
	case !(b.linearDamping >= 0) || !(b.angularDamping >= 0):
		return fmt.Errorf("%w: damping must not be negative", ErrInvalidArgument)
	case !isFinite(b.gravityScale):
		return fmt.Errorf("%w: gravity scale %g", ErrInvalidArgument, b.gravityScale)
	}
	return nil
}

// Build creates the body. The builder can be reused to create more entities.
func (b *EntityBuilder) Build() (*Entity, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	w := b.world
	if err := w.checkUnlocked("build entity"); err != nil {
		return nil, err
	}

	def := box2d.MakeB2BodyDef()
	if b.fixed {
		def.Type = box2d.B2BodyType.B2_staticBody
	} else {
		def.Type = box2d.B2BodyType.B2_dynamicBody
	}
	def.Position = toB2(b.position)
	def.Angle = b.angle
	def.LinearVelocity = toB2(b.velocity)
	def.AngularVelocity = b.angularVelocity
	def.LinearDamping = b.linearDamping
	def.AngularDamping = b.angularDamping
	def.GravityScale = b.gravityScale
	def.FixedRotation = b.rotationFixed
	def.Bullet = b.bullet

	e := &Entity{
		id:    uuid.New(),
		world: w,
		fixed: b.fixed,
	}
	def.UserData = e
	e.body = w.engine.CreateBody(&def)
	w.entities = append(w.entities, e)

	w.logger.Debug("entity created", log.Stringer("id", e.id), log.Bool("fixed", b.fixed))
	return e, nil
}
