package shape

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ByteArena/box2d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/zeuphys/internal/core/geom"
)

func TestCircle(t *testing.T) {
	c, err := NewCircle(2, geom.V(1, 1))
	require.NoError(t, err)
	assert.InDelta(t, 4*math.Pi, c.Area(), 1e-9)
	assert.InDelta(t, 4*math.Pi, c.Perimeter(), 1e-9)
	assert.False(t, c.RequiresFixedBody())

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		assert.LessOrEqual(t, c.Sample(r).Sub(c.Center()).Length(), 2.0+1e-9)
	}

	fixtures := c.Fixtures()
	require.Len(t, fixtures, 1)
	assert.Equal(t, box2d.B2Shape_Type.E_circle, fixtures[0].GetType())
	assert.InDelta(t, 2.0, fixtures[0].GetRadius(), 1e-9)
}

func TestCircleRejectsBadRadius(t *testing.T) {
	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewCircle(r, geom.Zero)
		assert.ErrorIs(t, err, ErrInvalidRadius)
	}
}

func TestPolylineMeasures(t *testing.T) {
	open, err := NewPolyline(false, geom.V(0, 0), geom.V(3, 0), geom.V(3, 4))
	require.NoError(t, err)
	assert.InDelta(t, 7.0, open.Perimeter(), 1e-9)
	assert.Zero(t, open.Area())
	assert.True(t, open.RequiresFixedBody())
	assert.Len(t, open.Fixtures(), 2)

	closed, err := NewPolyline(true, geom.V(0, 0), geom.V(3, 0), geom.V(3, 4))
	require.NoError(t, err)
	assert.InDelta(t, 12.0, closed.Perimeter(), 1e-9)
	assert.Len(t, closed.Fixtures(), 3)
	assert.Equal(t, Close, closed.Outline()[3].Op)
}

func TestPolylineRejectsSinglePoint(t *testing.T) {
	_, err := NewPolyline(false, geom.V(0, 0))
	assert.ErrorIs(t, err, ErrTooFewPoints)

	_, err = NewPolylineXY(false, 0, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidPoint)
}

func TestPolylineSampleStaysOnSegments(t *testing.T) {
	line, err := NewPolylineXY(false, 0, 0, 10, 0)
	require.NoError(t, err)
	r := rand.New(rand.NewSource(9))
	for i := 0; i < 100; i++ {
		p := line.Sample(r)
		assert.InDelta(t, 0.0, p.Y, 1e-9)
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.LessOrEqual(t, p.X, 10.0)
	}
}

func TestPolygon(t *testing.T) {
	box, err := NewBox(2, 4)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, box.Area(), 1e-9)
	assert.InDelta(t, 12.0, box.Perimeter(), 1e-9)
	assert.False(t, box.RequiresFixedBody())

	r := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		p := box.Sample(r)
		assert.LessOrEqual(t, math.Abs(p.X), 1.0+1e-9)
		assert.LessOrEqual(t, math.Abs(p.Y), 2.0+1e-9)
	}
	require.Len(t, box.Fixtures(), 1)
	assert.Equal(t, box2d.B2Shape_Type.E_polygon, box.Fixtures()[0].GetType())
}

func TestPolygonValidation(t *testing.T) {
	_, err := NewPolygon(geom.V(0, 0), geom.V(1, 0))
	assert.ErrorIs(t, err, ErrTooFewPoints)

	_, err = NewPolygon(geom.V(0, 0), geom.V(2, 0), geom.V(1, 0.2), geom.V(2, 2), geom.V(0, 2))
	assert.ErrorIs(t, err, ErrNotConvex)

	_, err = NewPolygon(geom.V(0, 0), geom.V(1, 0), geom.V(2, 0))
	assert.ErrorIs(t, err, ErrNotConvex)

	many := make([]geom.Vector, 9)
	for i := range many {
		a := float64(i) / 9 * 2 * math.Pi
		many[i] = geom.V(math.Cos(a), math.Sin(a))
	}
	_, err = NewPolygon(many...)
	assert.ErrorIs(t, err, ErrTooManyPoints)
}
