// Package scene attaches renderable things to simulated bodies.
//
// A Node refers to its parent by id through a Resolver instead of holding it,
// so a parent can be destroyed without the children noticing: a missing
// parent resolves as the identity transform.
package scene

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/zeusync/zeuphys/internal/core/geom"
)

const maxDepth = 1024

var (
	ErrParentGone = errors.New("parent no longer resolves")
	ErrCycle      = errors.New("parent chain forms a cycle")
	ErrNoResolver = errors.New("node has no resolver")
)

// Handle is anything that can be a parent.
type Handle interface {
	geom.Positionable
	ID() uuid.UUID
}

// Resolver finds a parent by id. physics.World and Registry implement it.
type Resolver interface {
	Lookup(id uuid.UUID) (geom.Positionable, bool)
}

// Attachable is a positionable whose pose is relative to an optional parent.
type Attachable interface {
	Handle
	SetParent(parent Handle) error
	Parent() (geom.Positionable, bool)
	SetRelativeTransform(t geom.Transform)
	RelativeTransform() geom.Transform
}

var _ Attachable = (*Node)(nil)

// nodeHolder is implemented by Node and everything embedding it.
type nodeHolder interface {
	node() *Node
}

type Node struct {
	id       uuid.UUID
	resolver Resolver
	parent   uuid.UUID
	relative geom.Transform
	strict   bool
}

// NewNode creates a detached node resolving parents through r.
func NewNode(r Resolver) *Node {
	return &Node{id: uuid.New(), resolver: r, relative: geom.Identity}
}

func (n *Node) ID() uuid.UUID { return n.id }

func (n *Node) node() *Node { return n }

// SetStrict makes Resolve report a dangling parent instead of ignoring it.
func (n *Node) SetStrict(strict bool) { n.strict = strict }

func (n *Node) IsStrict() bool { return n.strict }

func (n *Node) RelativeTransform() geom.Transform { return n.relative }

func (n *Node) SetRelativeTransform(t geom.Transform) { n.relative = t }

// ParentID is uuid.Nil for a detached node.
func (n *Node) ParentID() uuid.UUID { return n.parent }

// SetParent attaches the node to parent, or detaches it when parent is nil.
func (n *Node) SetParent(parent Handle) error {
	if parent == nil {
		n.parent = uuid.Nil
		return nil
	}
	if n.resolver == nil {
		return ErrNoResolver
	}
	id := parent.ID()
	if id == n.id {
		return fmt.Errorf("node %s: %w", n.id, ErrCycle)
	}

	// Walk up from the candidate: reaching n means the link would close a loop.
	cur := parent
	for depth := 0; depth < maxDepth; depth++ {
		child, ok := cur.(interface{ ParentID() uuid.UUID })
		if !ok || child.ParentID() == uuid.Nil {
			n.parent = id
			return nil
		}
		if child.ParentID() == n.id {
			return fmt.Errorf("node %s: %w", n.id, ErrCycle)
		}
		next, ok := n.resolver.Lookup(child.ParentID())
		if !ok {
			n.parent = id
			return nil
		}
		h, ok := next.(Handle)
		if !ok {
			n.parent = id
			return nil
		}
		cur = h
	}
	return fmt.Errorf("node %s: %w", n.id, ErrCycle)
}

// Parent resolves the current parent.
func (n *Node) Parent() (geom.Positionable, bool) {
	if n.parent == uuid.Nil || n.resolver == nil {
		return nil, false
	}
	return n.resolver.Lookup(n.parent)
}

// Transform is the absolute transform: the relative transform followed by the
// parent's absolute one. A missing parent counts as the identity.
func (n *Node) Transform() geom.Transform {
	t, _ := n.resolve()
	return t
}

// Resolve is Transform with error reporting. ErrParentGone is only returned
// in strict mode.
func (n *Node) Resolve() (geom.Transform, error) {
	return n.resolve()
}

func (n *Node) resolve() (geom.Transform, error) {
	chain := []geom.Transform{n.relative}
	base := geom.Identity
	var err error

	cur := n
	for depth := 0; ; depth++ {
		if depth >= maxDepth {
			err = fmt.Errorf("node %s: %w", n.id, ErrCycle)
			break
		}
		if cur.parent == uuid.Nil {
			break
		}
		p, ok := cur.Parent()
		if !ok {
			if cur.strict || n.strict {
				err = fmt.Errorf("node %s parent %s: %w", cur.id, cur.parent, ErrParentGone)
			}
			break
		}
		if next, ok := p.(nodeHolder); ok {
			cur = next.node()
			chain = append(chain, cur.relative)
			continue
		}
		base = p.Transform()
		break
	}

	for i := len(chain) - 1; i >= 0; i-- {
		base = chain[i].Transformed(base)
	}
	return base, err
}

// Velocity is the velocity of the nearest non-node ancestor.
func (n *Node) Velocity() geom.Vector {
	cur := n
	for depth := 0; depth < maxDepth; depth++ {
		p, ok := cur.Parent()
		if !ok {
			return geom.Zero
		}
		next, ok := p.(nodeHolder)
		if !ok {
			return p.Velocity()
		}
		cur = next.node()
	}
	return geom.Zero
}
