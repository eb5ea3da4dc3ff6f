package physics

import (
	"fmt"

	"github.com/ByteArena/box2d"

	"github.com/zeusync/zeuphys/internal/core/shape"
)

const (
	DefaultCollisionSignature uint16 = 0x0001
	DefaultCollisionEffect    uint16 = 0xFFFF
)

// PartBuilder stages fixture parameters for one entity.
type PartBuilder struct {
	entity *Entity

	shape       shape.Shape
	ghost       bool
	friction    float64
	restitution float64
	density     float64
	category    uint16
	mask        uint16
	group       int16
}

func newPartBuilder(e *Entity) *PartBuilder {
	return &PartBuilder{
		entity:   e,
		density:  1,
		category: DefaultCollisionSignature,
		mask:     DefaultCollisionEffect,
	}
}

func (b *PartBuilder) SetShape(s shape.Shape) *PartBuilder {
	b.shape = s
	return b
}

func (b *PartBuilder) SetGhost(ghost bool) *PartBuilder {
	b.ghost = ghost
	return b
}

func (b *PartBuilder) SetFriction(friction float64) *PartBuilder {
	b.friction = friction
	return b
}

func (b *PartBuilder) SetRestitution(restitution float64) *PartBuilder {
	b.restitution = restitution
	return b
}

func (b *PartBuilder) SetDensity(density float64) *PartBuilder {
	b.density = density
	return b
}

func (b *PartBuilder) SetCollisionSignature(category uint16) *PartBuilder {
	b.category = category
	return b
}

func (b *PartBuilder) SetCollisionEffect(mask uint16) *PartBuilder {
	b.mask = mask
	return b
}

func (b *PartBuilder) SetCollisionGroup(group int16) *PartBuilder {
	b.group = group
	return b
}

func (b *PartBuilder) validate() error {
	if err := b.entity.check(); err != nil {
		return err
	}
	if b.shape == nil {
		return ErrMissingShape
	}
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"friction", b.friction},
		{"restitution", b.restitution},
		{"density", b.density},
	} {
		if err := nonNegative(v.name, v.value); err != nil {
			return err
		}
	}
	if b.shape.RequiresFixedBody() && !b.entity.fixed {
		return fmt.Errorf("%T on entity %s: %w", b.shape, b.entity.id, ErrPolylineOnMovingBody)
	}
	return nil
}

// Build attaches the shape to the entity as one or more engine fixtures.
func (b *PartBuilder) Build() (*Part, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	e := b.entity
	w := e.world
	if err := w.checkUnlocked("build part"); err != nil {
		return nil, err
	}

	w.nextPartID++
	p := &Part{
		id:          w.nextPartID,
		entity:      e,
		shape:       b.shape,
		ghost:       b.ghost,
		friction:    b.friction,
		restitution: b.restitution,
		density:     b.density,
		category:    b.category,
		mask:        b.mask,
		group:       b.group,
	}

	for _, geometry := range b.shape.Fixtures() {
		def := box2d.MakeB2FixtureDef()
		def.Shape = geometry
		def.UserData = p
		def.Friction = p.friction
		def.Restitution = p.restitution
		def.Density = p.density
		def.IsSensor = p.ghost
		def.Filter = p.filter()
		p.fixtures = append(p.fixtures, e.body.CreateFixtureFromDef(&def))
	}
	e.parts = append(e.parts, p)

	return p, nil
}
