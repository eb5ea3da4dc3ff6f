// Package physics wraps the box2d engine behind managed handles.
//
// A World owns the engine instance. Entities, Parts and Constraints are
// proxies whose liveness is tracked by the World: every public operation on
// a destroyed handle reports ErrDestroyed instead of touching engine memory.
// All methods must be called from a single goroutine.
package physics

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/ByteArena/box2d"
	"github.com/google/uuid"

	"github.com/zeusync/zeuphys/internal/core/geom"
	"github.com/zeusync/zeuphys/internal/core/observability/log"
)

type Option func(*World)

func WithConfig(cfg Config) Option {
	return func(w *World) { w.config = cfg }
}

func WithLogger(l log.Log) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

type World struct {
	engine box2d.B2World
	config Config
	logger log.Log

	accumulator float64
	steps       uint64

	// busy counts nested sections in which the engine may call back into us.
	busy int

	contacts map[box2d.B2ContactInterface]*contactPair
	entities []*Entity
	anchor   *box2d.B2Body

	nextPartID uint64
}

// NewWorld creates an empty world with DefaultConfig unless overridden.
func NewWorld(opts ...Option) (*World, error) {
	w := &World{
		config:   DefaultConfig(),
		logger:   log.NewNop(),
		contacts: make(map[box2d.B2ContactInterface]*contactPair),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.config.Validate(); err != nil {
		return nil, err
	}

	w.engine = box2d.MakeB2World(toB2(w.config.Gravity))
	w.engine.SetAutoClearForces(false)
	w.engine.SetDestructionListener(destructionBridge{world: w})
	w.engine.SetContactListener(contactBridge{world: w})
	// The engine skips category, mask and group tests unless a filter is installed.
	w.engine.SetContactFilter(&box2d.B2ContactFilter{})

	return w, nil
}

func (w *World) Config() Config { return w.config }

func (w *World) Gravity() geom.Vector { return fromB2(w.engine.GetGravity()) }

func (w *World) SetGravity(g geom.Vector) error {
	if !g.IsFinite() {
		return fmt.Errorf("%w: gravity %s", ErrInvalidArgument, g)
	}
	w.engine.SetGravity(toB2(g))
	return nil
}

// StepCount is the total number of engine sub-steps run so far.
func (w *World) StepCount() uint64 { return w.steps }

// Leftover is the accumulated time not yet consumed by a sub-step.
func (w *World) Leftover() float64 { return w.accumulator }

// Locked reports whether the engine is currently stepping or delivering callbacks.
func (w *World) Locked() bool { return w.busy > 0 || w.engine.IsLocked() }

// Update advances the simulation by dt seconds in fixed sub-steps and returns
// how many sub-steps were run. Time smaller than one sub-step is carried over
// to the next call.
func (w *World) Update(dt float64) (int, error) {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return 0, fmt.Errorf("%w: %g", ErrNegativeDelta, dt)
	}
	if err := w.checkUnlocked("update"); err != nil {
		return 0, err
	}

	step := w.config.SubStep
	// Tolerates rounding drift when dt is split unevenly across calls.
	eps := step * 1e-9

	w.accumulator += dt
	steps := 0

	w.guard(func() {
		for w.accumulator+eps >= step {
			if w.config.MaxSubSteps > 0 && steps >= w.config.MaxSubSteps {
				w.logger.Warn("sub-step budget exhausted, dropping accumulated time",
					log.Int("max_sub_steps", w.config.MaxSubSteps),
					log.Float64("dropped", w.accumulator))
				w.accumulator = 0
				break
			}
			w.accumulator = math.Max(0, w.accumulator-step)
			w.engine.Step(step, w.config.VelocityIterations, w.config.PositionIterations)
			steps++
		}
		w.engine.ClearForces()
	})

	w.steps += uint64(steps)
	for _, e := range w.entities {
		e.invalidate()
	}

	return steps, nil
}

// Entities yields the live entities in creation order.
func (w *World) Entities() iter.Seq[*Entity] {
	snapshot := slices.Clone(w.entities)
	return func(yield func(*Entity) bool) {
		for _, e := range snapshot {
			if !e.IsAlive() {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

func (w *World) EntityCount() int { return len(w.entities) }

// Lookup resolves a live entity by id.
func (w *World) Lookup(id uuid.UUID) (geom.Positionable, bool) {
	for _, e := range w.entities {
		if e.id == id {
			return e, true
		}
	}
	return nil, false
}

func (w *World) checkUnlocked(op string) error {
	if w.Locked() {
		w.logger.Warn("structural change rejected while world is locked", log.String("op", op))
		return fmt.Errorf("%s: %w", op, ErrWorldLocked)
	}
	return nil
}

// guard runs fn with the world marked busy. Listeners invoked by the engine
// during fn cannot mutate the world structurally.
func (w *World) guard(fn func()) {
	w.busy++
	defer func() { w.busy-- }()
	fn()
}

func (w *World) removeEntity(e *Entity) {
	if i := slices.Index(w.entities, e); i >= 0 {
		w.entities = slices.Delete(w.entities, i, i+1)
	}
}

// anchorBody returns the hidden static body used as ground by point constraints.
func (w *World) anchorBody() *box2d.B2Body {
	if w.anchor == nil {
		def := box2d.MakeB2BodyDef()
		def.Type = box2d.B2BodyType.B2_staticBody
		w.anchor = w.engine.CreateBody(&def)
	}
	return w.anchor
}

func toB2(v geom.Vector) box2d.B2Vec2 { return box2d.MakeB2Vec2(v.X, v.Y) }

func fromB2(v box2d.B2Vec2) geom.Vector { return geom.Vector{X: v.X, Y: v.Y} }

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
