package physics

import (
	"github.com/ByteArena/box2d"

	"github.com/zeusync/zeuphys/internal/core/observability/log"
)

var (
	_ box2d.B2DestructionListenerInterface = destructionBridge{}
	_ box2d.B2ContactListenerInterface     = contactBridge{}
)

// destructionBridge marks proxies dead when the engine tears down fixtures
// and joints as a side effect of destroying a body.
type destructionBridge struct {
	world *World
}

func (b destructionBridge) SayGoodbyeToFixture(fixture *box2d.B2Fixture) {
	if p, ok := fixture.GetUserData().(*Part); ok {
		p.unregister()
	}
}

func (b destructionBridge) SayGoodbyeToJoint(joint box2d.B2JointInterface) {
	c, ok := joint.GetUserData().(registered)
	if !ok {
		return
	}
	if c.IsAlive() {
		b.world.logger.Debug("constraint destroyed with its entity", log.Stringer("kind", c.Kind()))
	}
	c.unregister()
}

type contactPair struct {
	a, b *Contact
}

// contactBridge is the single engine contact listener of a World.
type contactBridge struct {
	world *World
}

func (b contactBridge) BeginContact(contact box2d.B2ContactInterface) {
	pa, okA := contact.GetFixtureA().GetUserData().(*Part)
	pb, okB := contact.GetFixtureB().GetUserData().(*Part)
	if !okA || !okB || pa.entity == nil || pb.entity == nil {
		return
	}
	ea, eb := pa.entity, pb.entity
	if len(ea.listeners) == 0 && len(eb.listeners) == 0 {
		return
	}

	state := &contactState{alive: true}
	pair := &contactPair{
		a: &Contact{owner: pa, other: pb, state: state},
		b: &Contact{owner: pb, other: pa, state: state},
	}
	b.world.contacts[contact] = pair

	ea.dispatch(pair.a, ContactListener.BeginContact)
	eb.dispatch(pair.b, ContactListener.BeginContact)
}

func (b contactBridge) EndContact(contact box2d.B2ContactInterface) {
	pair, ok := b.world.contacts[contact]
	if !ok {
		return
	}

	pair.a.owner.entity.dispatch(pair.a, ContactListener.EndContact)
	pair.b.owner.entity.dispatch(pair.b, ContactListener.EndContact)

	pair.a.state.alive = false
	delete(b.world.contacts, contact)
}

func (contactBridge) PreSolve(box2d.B2ContactInterface, box2d.B2Manifold) {}

func (contactBridge) PostSolve(box2d.B2ContactInterface, *box2d.B2ContactImpulse) {}
