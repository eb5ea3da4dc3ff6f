package physics

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/ByteArena/box2d"

	"github.com/zeusync/zeuphys/internal/core/geom"
)

// Impact is one part crossed by a ray.
type Impact struct {
	Part     *Part
	Position geom.Vector
	Normal   geom.Vector
	// Fraction locates Position along the segment, in [0,1].
	Fraction float64
}

// Trace casts a ray from start to end and returns every part it crosses,
// nearest first. Impacts at the same fraction are ordered by part ID.
func (w *World) Trace(start, end geom.Vector) ([]Impact, error) {
	if !start.IsFinite() || !end.IsFinite() {
		return nil, fmt.Errorf("%w: ray %s -> %s", ErrInvalidArgument, start, end)
	}
	if start == end {
		return nil, nil
	}

	var impacts []Impact
	w.engine.RayCast(func(fixture *box2d.B2Fixture, point, normal box2d.B2Vec2, fraction float64) float64 {
		if p, ok := fixture.GetUserData().(*Part); ok && p.IsAlive() {
			impacts = append(impacts, Impact{
				Part:     p,
				Position: fromB2(point),
				Normal:   fromB2(normal),
				Fraction: fraction,
			})
		}
		// Negative keeps the ray at full length so that every fixture is reported.
		return -1
	}, toB2(start), toB2(end))

	slices.SortStableFunc(impacts, func(a, b Impact) int {
		if c := cmp.Compare(a.Fraction, b.Fraction); c != 0 {
			return c
		}
		return cmp.Compare(a.Part.id, b.Part.id)
	})
	return impacts, nil
}
