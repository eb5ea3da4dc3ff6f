package scene

import (
	"github.com/google/uuid"

	"github.com/zeusync/zeuphys/internal/core/geom"
)

var _ Resolver = (*Registry)(nil)

// Registry resolves ids of tracked handles, then asks its fallbacks in order.
// It never owns what it tracks.
type Registry struct {
	tracked   map[uuid.UUID]geom.Positionable
	fallbacks []Resolver
}

func NewRegistry(fallbacks ...Resolver) *Registry {
	return &Registry{
		tracked:   make(map[uuid.UUID]geom.Positionable),
		fallbacks: fallbacks,
	}
}

func (r *Registry) Track(h Handle) {
	r.tracked[h.ID()] = h
}

func (r *Registry) Forget(id uuid.UUID) {
	delete(r.tracked, id)
}

func (r *Registry) Lookup(id uuid.UUID) (geom.Positionable, bool) {
	if p, ok := r.tracked[id]; ok {
		if alive, isAlive := p.(interface{ IsAlive() bool }); isAlive && !alive.IsAlive() {
			return nil, false
		}
		return p, true
	}
	for _, f := range r.fallbacks {
		if p, ok := f.Lookup(id); ok {
			return p, true
		}
	}
	return nil, false
}

// NewNode creates a node resolved through r and tracks it.
func (r *Registry) NewNode() *Node {
	n := NewNode(r)
	r.Track(n)
	return n
}
