// Package shape describes collision geometry independently of the physics engine.
// A Shape knows its own measures and outline; the only engine-facing capability is
// Fixtures, which produces the engine-native geometry a Part is instantiated from.
package shape

import (
	"errors"
	"math/rand"

	"github.com/ByteArena/box2d"

	"github.com/zeusync/zeuphys/internal/core/geom"
)

var (
	ErrInvalidRadius = errors.New("radius must be positive and finite")
	ErrTooFewPoints  = errors.New("not enough points")
	ErrTooManyPoints = errors.New("too many points")
	ErrInvalidPoint  = errors.New("point coordinates must be finite")
	ErrNotConvex     = errors.New("polygon must be convex with non-zero area")
)

// Shape is immutable collision geometry.
type Shape interface {
	Area() float64
	Perimeter() float64
	// Sample returns a uniformly distributed point inside the shape, border included.
	Sample(r *rand.Rand) geom.Vector
	Outline() Outline
	// Fixtures returns fresh engine shapes, one per fixture to create.
	Fixtures() []box2d.B2ShapeInterface
	// RequiresFixedBody reports whether the shape has no mass and can only be attached to fixed entities.
	RequiresFixedBody() bool
}

// Op is a path command opcode.
type Op uint8

const (
	MoveTo Op = iota
	LineTo
	Close
	// CircleTo describes a full circle: Points[0] is the center, Radius the size.
	CircleTo
)

// PathCommand is a single renderer-agnostic drawing instruction.
type PathCommand struct {
	Op     Op
	Points []geom.Vector
	Radius float64
}

// Outline is the drawable contour of a shape in its local frame.
type Outline []PathCommand

func toB2(v geom.Vector) box2d.B2Vec2 { return box2d.MakeB2Vec2(v.X, v.Y) }

func checkPoints(points []geom.Vector) error {
	for _, p := range points {
		if !p.IsFinite() {
			return ErrInvalidPoint
		}
	}
	return nil
}
