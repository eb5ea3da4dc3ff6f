package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func randomTransform(r *rand.Rand) Transform {
	return Transform{
		M00: r.Float64()*4 - 2, M01: r.Float64()*4 - 2, M02: r.Float64()*20 - 10,
		M10: r.Float64()*4 - 2, M11: r.Float64()*4 - 2, M12: r.Float64()*20 - 10,
	}
}

func TestVectorArithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, -2)

	assert.Equal(t, V(4, 2), a.Add(b))
	assert.Equal(t, V(2, 6), a.Sub(b))
	assert.Equal(t, V(6, 8), a.Mul(2))
	assert.Equal(t, V(3, -8), a.MulV(b))
	assert.InDelta(t, 5.0, a.Length(), eps)
	assert.InDelta(t, -5.0, a.Dot(b), eps)
	assert.Equal(t, V(-3, -4), a.Opposite())
	assert.Equal(t, V(1, -2), a.Min(b).Min(V(5, 5)))
	assert.Equal(t, V(3, 4), a.Max(b))
}

func TestVectorNormalized(t *testing.T) {
	assert.True(t, V(3, 4).Normalized().ApproxEqual(V(0.6, 0.8), eps))
	assert.Equal(t, UnitX, Zero.Normalized())
	assert.True(t, V(0, 2).Resized(5).ApproxEqual(V(0, 5), eps))
}

func TestVectorRotation(t *testing.T) {
	assert.True(t, UnitX.Rotated(math.Pi/2).ApproxEqual(UnitY, eps))
	assert.Equal(t, V(-2, 1), V(1, 2).CounterClockwise())
	assert.Equal(t, V(2, -1), V(1, 2).Clockwise())
	assert.True(t, V(1, -1).Mirrored(UnitY).ApproxEqual(V(1, 1), eps))
	assert.True(t, V(0, 0).Mixed(V(10, 20), 0.25).ApproxEqual(V(2.5, 5), eps))
}

func TestTransformIdentity(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		tr := randomTransform(r)
		assert.True(t, tr.Transformed(Identity).ApproxEqual(tr, eps))
		assert.True(t, Identity.Transformed(tr).ApproxEqual(tr, eps))
	}
}

func TestTransformAssociativity(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		t1, t2, t3 := randomTransform(r), randomTransform(r), randomTransform(r)
		left := t1.Transformed(t2).Transformed(t3)
		right := t1.Transformed(t2.Transformed(t3))
		assert.True(t, left.ApproxEqual(right, 1e-6), "iteration %d: %v != %v", i, left, right)
	}
}

func TestTransformOrder(t *testing.T) {
	rotate := Identity.Rotated(math.Pi / 2)
	move := NewTranslation(V(1, 0))

	// rotate first, then move
	p := rotate.Transformed(move).OnPoint(UnitX)
	assert.True(t, p.ApproxEqual(V(1, 1), eps))

	// move first, then rotate
	p = move.Transformed(rotate).OnPoint(UnitX)
	assert.True(t, p.ApproxEqual(V(0, 2), eps))
}

func TestTransformInverse(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		tr := randomTransform(r)
		if math.Abs(tr.Determinant()) < 1e-3 {
			continue
		}
		inv, err := tr.Inverted()
		require.NoError(t, err)
		p := V(r.Float64()*10, r.Float64()*10)
		assert.True(t, tr.Transformed(inv).OnPoint(p).ApproxEqual(p, 1e-6))
		assert.True(t, inv.OnPoint(tr.OnPoint(p)).ApproxEqual(p, 1e-6))
	}
}

func TestTransformSingular(t *testing.T) {
	singular := Transform{M00: 1, M01: 2, M10: 2, M11: 4, M02: 5}
	_, err := singular.Inverted()
	assert.ErrorIs(t, err, ErrSingularTransform)

	_, err = Identity.Scaled(0, 1).Inverted()
	assert.ErrorIs(t, err, ErrSingularTransform)
}

func TestTransformPointVersusVector(t *testing.T) {
	tr := NewRotation(0, V(5, 5))
	assert.Equal(t, V(6, 5), tr.OnPoint(UnitX))
	assert.Equal(t, UnitX, tr.OnVector(UnitX))
}

func TestTransformAccessors(t *testing.T) {
	tr := NewRotation(0.5, V(2, 3))
	assert.InDelta(t, 0.5, tr.Angle(), eps)
	assert.Equal(t, V(2, 3), tr.Origin())
	assert.InDelta(t, 1.0, tr.Determinant(), eps)

	scaled := Identity.Translated(V(1, 1)).Scaled(2, 3)
	assert.Equal(t, V(2, 3), scaled.Origin())
	assert.True(t, Identity.RotatedAround(math.Pi, V(1, 0)).OnPoint(Zero).ApproxEqual(V(2, 0), eps))
}
