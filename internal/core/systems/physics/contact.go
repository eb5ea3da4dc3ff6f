package physics

// Contact describes one side of a touching pair of parts. For every engine
// contact two Contacts exist, one per side, sharing a single liveness flag.
type Contact struct {
	owner *Part
	other *Part
	state *contactState
}

type contactState struct {
	alive bool
}

// Owner is the part belonging to the entity the listener is registered on.
func (c *Contact) Owner() *Part { return c.owner }

// Other is the part on the opposite side of the contact.
func (c *Contact) Other() *Part { return c.other }

// IsAlive reports whether the parts are still touching.
func (c *Contact) IsAlive() bool { return c.state.alive }

// ContactListener receives contact events for the parts of one entity.
// Callbacks run synchronously inside World.Update or a destroy call; structural
// changes made from them fail with ErrWorldLocked.
type ContactListener interface {
	BeginContact(c *Contact)
	EndContact(c *Contact)
}

// ContactListenerFuncs adapts plain functions. Use it by pointer so that the
// same value can later be passed to RemoveContactListener.
type ContactListenerFuncs struct {
	OnBegin func(c *Contact)
	OnEnd   func(c *Contact)
}

func (f *ContactListenerFuncs) BeginContact(c *Contact) {
	if f.OnBegin != nil {
		f.OnBegin(c)
	}
}

func (f *ContactListenerFuncs) EndContact(c *Contact) {
	if f.OnEnd != nil {
		f.OnEnd(c)
	}
}

// BasicContactListener tracks the set of entities currently touching the
// entity it is registered on.
type BasicContactListener struct {
	// Allow filters contacts by the other part; nil accepts all.
	Allow func(other *Part) bool

	touching map[*Entity]int
}

func NewBasicContactListener() *BasicContactListener {
	return &BasicContactListener{touching: make(map[*Entity]int)}
}

func (l *BasicContactListener) BeginContact(c *Contact) {
	if l.Allow != nil && !l.Allow(c.Other()) {
		return
	}
	if l.touching == nil {
		l.touching = make(map[*Entity]int)
	}
	l.touching[c.Other().Entity()]++
}

func (l *BasicContactListener) EndContact(c *Contact) {
	if l.Allow != nil && !l.Allow(c.Other()) {
		return
	}
	e := c.Other().Entity()
	if n, ok := l.touching[e]; ok {
		if n <= 1 {
			delete(l.touching, e)
		} else {
			l.touching[e] = n - 1
		}
	}
}

func (l *BasicContactListener) HasContacts() bool { return len(l.touching) > 0 }

func (l *BasicContactListener) HasContactWith(e *Entity) bool {
	_, ok := l.touching[e]
	return ok
}

// Entities returns the touching entities in no particular order.
func (l *BasicContactListener) Entities() []*Entity {
	out := make([]*Entity, 0, len(l.touching))
	for e := range l.touching {
		out = append(out, e)
	}
	return out
}
