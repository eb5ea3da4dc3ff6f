package physics

import (
	"fmt"

	"github.com/ByteArena/box2d"

	"github.com/zeusync/zeuphys/internal/core/shape"
)

// Part is a managed collision fixture. A shape that needs several engine
// fixtures (such as a polyline) is still a single Part.
type Part struct {
	id       uint64
	entity   *Entity
	fixtures []*box2d.B2Fixture
	shape    shape.Shape

	ghost       bool
	friction    float64
	restitution float64
	density     float64
	category    uint16
	mask        uint16
	group       int16
}

// ID increases monotonically with creation order within a World.
func (p *Part) ID() uint64 { return p.id }

func (p *Part) IsAlive() bool { return p.entity != nil }

// Entity returns the owner, or nil once the part is destroyed.
func (p *Part) Entity() *Entity { return p.entity }

func (p *Part) Shape() shape.Shape { return p.shape }

func (p *Part) IsGhost() bool              { return p.ghost }
func (p *Part) Friction() float64          { return p.friction }
func (p *Part) Restitution() float64       { return p.restitution }
func (p *Part) Density() float64           { return p.density }
func (p *Part) CollisionSignature() uint16 { return p.category }
func (p *Part) CollisionEffect() uint16    { return p.mask }
func (p *Part) CollisionGroup() int16      { return p.group }

func (p *Part) check() error {
	if p.entity == nil {
		return fmt.Errorf("part %d: %w", p.id, ErrDestroyed)
	}
	return nil
}

// SetGhost turns the part into a sensor: contacts are reported but produce
// no collision response.
func (p *Part) SetGhost(ghost bool) error {
	if err := p.check(); err != nil {
		return err
	}
	p.ghost = ghost
	for _, f := range p.fixtures {
		f.SetSensor(ghost)
	}
	return nil
}

func (p *Part) SetFriction(friction float64) error {
	if err := p.check(); err != nil {
		return err
	}
	if err := nonNegative("friction", friction); err != nil {
		return err
	}
	p.friction = friction
	for _, f := range p.fixtures {
		f.SetFriction(friction)
	}
	return nil
}

func (p *Part) SetRestitution(restitution float64) error {
	if err := p.check(); err != nil {
		return err
	}
	if err := nonNegative("restitution", restitution); err != nil {
		return err
	}
	p.restitution = restitution
	for _, f := range p.fixtures {
		f.SetRestitution(restitution)
	}
	return nil
}

// SetDensity updates the density and recomputes the owner's mass.
func (p *Part) SetDensity(density float64) error {
	if err := p.check(); err != nil {
		return err
	}
	if err := nonNegative("density", density); err != nil {
		return err
	}
	p.density = density
	for _, f := range p.fixtures {
		f.SetDensity(density)
	}
	p.entity.body.ResetMassData()
	return nil
}

// SetCollisionFilter replaces category bits, mask bits and group index.
// A non-zero group overrides the category/mask test: parts sharing a positive
// group always collide, parts sharing a negative group never do.
func (p *Part) SetCollisionFilter(category, mask uint16, group int16) error {
	if err := p.check(); err != nil {
		return err
	}
	p.category, p.mask, p.group = category, mask, group
	for _, f := range p.fixtures {
		f.SetFilterData(p.filter())
	}
	return nil
}

func (p *Part) filter() box2d.B2Filter {
	return box2d.B2Filter{CategoryBits: p.category, MaskBits: p.mask, GroupIndex: p.group}
}

// Destroy removes the part's fixtures from its entity.
func (p *Part) Destroy() error {
	if err := p.check(); err != nil {
		return err
	}
	w := p.entity.world
	if err := w.checkUnlocked("destroy part"); err != nil {
		return err
	}
	body := p.entity.body
	w.guard(func() {
		for _, f := range p.fixtures {
			body.DestroyFixture(f)
		}
	})
	p.unregister()
	return nil
}

// unregister is idempotent: the engine says goodbye once per fixture.
func (p *Part) unregister() {
	if p.entity == nil {
		return
	}
	p.entity.removePart(p)
	p.entity = nil
	p.fixtures = nil
}

func nonNegative(name string, v float64) error {
	if !(v >= 0) || !isFinite(v) {
		return fmt.Errorf("%w: %s must be a finite non-negative number, got %g", ErrInvalidArgument, name, v)
	}
	return nil
}
