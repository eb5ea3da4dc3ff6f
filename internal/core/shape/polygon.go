package shape

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ByteArena/box2d"

	"github.com/zeusync/zeuphys/internal/core/geom"
)

// MaxPolygonVertices is the engine limit for a single convex polygon.
const MaxPolygonVertices = box2d.B2_maxPolygonVertices

// Polygon is a closed convex polygon, usable on moving entities.
type Polygon struct {
	points    []geom.Vector
	area      float64
	perimeter float64
}

var _ Shape = (*Polygon)(nil)

func NewPolygon(points ...geom.Vector) (*Polygon, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("%w: polygon needs at least 3, got %d", ErrTooFewPoints, len(points))
	}
	if len(points) > MaxPolygonVertices {
		return nil, fmt.Errorf("%w: polygon accepts at most %d, got %d", ErrTooManyPoints, MaxPolygonVertices, len(points))
	}
	if err := checkPoints(points); err != nil {
		return nil, err
	}

	p := &Polygon{points: append([]geom.Vector(nil), points...)}
	n := len(points)
	sign := 0.0
	for i := 0; i < n; i++ {
		a, b, c := points[i], points[(i+1)%n], points[(i+2)%n]
		p.area += a.Cross(b)
		p.perimeter += b.Sub(a).Length()

		turn := b.Sub(a).Cross(c.Sub(b))
		if math.Abs(turn) < 1e-12 {
			continue
		}
		if sign == 0 {
			sign = math.Copysign(1, turn)
		} else if math.Copysign(1, turn) != sign {
			return nil, ErrNotConvex
		}
	}
	p.area = math.Abs(p.area) / 2
	if p.area < 1e-9 {
		return nil, ErrNotConvex
	}
	return p, nil
}

// NewBox returns an axis-aligned rectangle centered on the origin.
func NewBox(width, height float64) (*Polygon, error) {
	hw, hh := width/2, height/2
	return NewPolygon(geom.V(-hw, -hh), geom.V(hw, -hh), geom.V(hw, hh), geom.V(-hw, hh))
}

func (p *Polygon) Points() []geom.Vector   { return append([]geom.Vector(nil), p.points...) }
func (p *Polygon) Area() float64           { return p.area }
func (p *Polygon) Perimeter() float64      { return p.perimeter }
func (p *Polygon) RequiresFixedBody() bool { return false }

// Sample picks a triangle of the fan around the first vertex weighted by area,
// then a uniform point inside it.
func (p *Polygon) Sample(r *rand.Rand) geom.Vector {
	origin := p.points[0]
	target := r.Float64() * p.area
	last := len(p.points) - 2
	for i := 1; i <= last; i++ {
		a, b := p.points[i], p.points[i+1]
		tri := math.Abs(a.Sub(origin).Cross(b.Sub(origin))) / 2
		if target <= tri || i == last {
			u, v := r.Float64(), r.Float64()
			if u+v > 1 {
				u, v = 1-u, 1-v
			}
			return origin.Add(a.Sub(origin).Mul(u)).Add(b.Sub(origin).Mul(v))
		}
		target -= tri
	}
	return origin
}

func (p *Polygon) Outline() Outline {
	out := make(Outline, 0, len(p.points)+1)
	out = append(out, PathCommand{Op: MoveTo, Points: []geom.Vector{p.points[0]}})
	for _, point := range p.points[1:] {
		out = append(out, PathCommand{Op: LineTo, Points: []geom.Vector{point}})
	}
	return append(out, PathCommand{Op: Close})
}

func (p *Polygon) Fixtures() []box2d.B2ShapeInterface {
	vertices := make([]box2d.B2Vec2, len(p.points))
	for i, point := range p.points {
		vertices[i] = toB2(point)
	}
	polygon := box2d.MakeB2PolygonShape()
	polygon.Set(vertices, len(vertices))
	return []box2d.B2ShapeInterface{&polygon}
}
