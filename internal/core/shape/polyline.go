package shape

import (
	"fmt"
	"math/rand"

	"github.com/ByteArena/box2d"

	"github.com/zeusync/zeuphys/internal/core/geom"
)

// Polyline is an open or closed sequence of segments. It has no area, hence no
// mass, so it can only be attached to fixed entities.
type Polyline struct {
	closed  bool
	points  []geom.Vector
	lengths []float64
	length  float64
}

var _ Shape = (*Polyline)(nil)

func NewPolyline(closed bool, points ...geom.Vector) (*Polyline, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: polyline needs at least 2, got %d", ErrTooFewPoints, len(points))
	}
	if err := checkPoints(points); err != nil {
		return nil, err
	}
	p := &Polyline{
		closed:  closed,
		points:  append([]geom.Vector(nil), points...),
		lengths: make([]float64, len(points)),
	}
	count := len(points)
	for i := 1; i < count; i++ {
		p.lengths[i-1] = points[i].Sub(points[i-1]).Length()
		p.length += p.lengths[i-1]
	}
	if closed {
		p.lengths[count-1] = points[0].Sub(points[count-1]).Length()
		p.length += p.lengths[count-1]
	}
	return p, nil
}

// NewPolylineXY builds a polyline from interleaved x, y coordinates.
func NewPolylineXY(closed bool, coords ...float64) (*Polyline, error) {
	if len(coords)%2 != 0 {
		return nil, fmt.Errorf("%w: odd coordinate count %d", ErrInvalidPoint, len(coords))
	}
	points := make([]geom.Vector, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		points = append(points, geom.V(coords[i], coords[i+1]))
	}
	return NewPolyline(closed, points...)
}

func (p *Polyline) IsClosed() bool { return p.closed }

// Points returns a copy of the vertices.
func (p *Polyline) Points() []geom.Vector { return append([]geom.Vector(nil), p.points...) }

func (p *Polyline) Area() float64           { return 0 }
func (p *Polyline) Perimeter() float64      { return p.length }
func (p *Polyline) RequiresFixedBody() bool { return true }

// segments is the number of edges, including the closing one.
func (p *Polyline) segments() int {
	if p.closed {
		return len(p.points)
	}
	return len(p.points) - 1
}

func (p *Polyline) Sample(r *rand.Rand) geom.Vector {
	offset := r.Float64() * p.length
	index := 0
	last := p.segments() - 1
	for index < last && offset > p.lengths[index] {
		offset -= p.lengths[index]
		index++
	}
	start := p.points[index]
	end := p.points[(index+1)%len(p.points)]
	if p.lengths[index] == 0 {
		return start
	}
	return start.Mixed(end, offset/p.lengths[index])
}

func (p *Polyline) Outline() Outline {
	out := make(Outline, 0, len(p.points)+1)
	out = append(out, PathCommand{Op: MoveTo, Points: []geom.Vector{p.points[0]}})
	for _, point := range p.points[1:] {
		out = append(out, PathCommand{Op: LineTo, Points: []geom.Vector{point}})
	}
	if p.closed {
		out = append(out, PathCommand{Op: Close})
	}
	return out
}

// Fixtures returns one edge per segment. Neighbouring vertices are set as ghost
// vertices so that bodies slide across joints without catching on them.
func (p *Polyline) Fixtures() []box2d.B2ShapeInterface {
	n := len(p.points)
	at := func(i int) box2d.B2Vec2 { return toB2(p.points[((i%n)+n)%n]) }

	edges := make([]box2d.B2ShapeInterface, 0, p.segments())
	for i := 0; i < p.segments(); i++ {
		edge := box2d.MakeB2EdgeShape()
		edge.Set(at(i), at(i+1))
		if p.closed || i > 0 {
			edge.M_hasVertex0 = true
			edge.M_vertex0 = at(i - 1)
		}
		if p.closed || i+2 < n {
			edge.M_hasVertex3 = true
			edge.M_vertex3 = at(i + 2)
		}
		edges = append(edges, &edge)
	}
	return edges
}
