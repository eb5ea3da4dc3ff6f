package shape

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ByteArena/box2d"

	"github.com/zeusync/zeuphys/internal/core/geom"
)

// Circle is a disc of given radius around center.
type Circle struct {
	radius float64
	center geom.Vector
}

var _ Shape = (*Circle)(nil)

func NewCircle(radius float64, center geom.Vector) (*Circle, error) {
	if radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidRadius, radius)
	}
	if !center.IsFinite() {
		return nil, ErrInvalidPoint
	}
	return &Circle{radius: radius, center: center}, nil
}

func (c *Circle) Radius() float64         { return c.radius }
func (c *Circle) Center() geom.Vector     { return c.center }
func (c *Circle) Area() float64           { return math.Pi * c.radius * c.radius }
func (c *Circle) Perimeter() float64      { return 2 * math.Pi * c.radius }
func (c *Circle) RequiresFixedBody() bool { return false }

func (c *Circle) Sample(r *rand.Rand) geom.Vector {
	// sqrt keeps the density uniform over the area
	distance := math.Sqrt(r.Float64()) * c.radius
	angle := r.Float64() * 2 * math.Pi
	return c.center.Add(geom.V(distance*math.Cos(angle), distance*math.Sin(angle)))
}

func (c *Circle) Outline() Outline {
	return Outline{{Op: CircleTo, Points: []geom.Vector{c.center}, Radius: c.radius}}
}

func (c *Circle) Fixtures() []box2d.B2ShapeInterface {
	circle := box2d.MakeB2CircleShape()
	circle.M_radius = c.radius
	circle.M_p = toB2(c.center)
	return []box2d.B2ShapeInterface{&circle}
}
