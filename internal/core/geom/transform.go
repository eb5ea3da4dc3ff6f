package geom

import (
	"errors"
	"fmt"
	"math"
)

// ErrSingularTransform is returned when inverting a transform whose linear part has no inverse.
var ErrSingularTransform = errors.New("transform is not invertible")

const singularEpsilon = 1e-12

// Transform is an immutable 2D affine map.
// Layout:
//
//	| M00  M01  M02 |
//	| M10  M11  M12 |
//	|  0    0    1  |
//
// M02, M12 hold the translation.
type Transform struct {
	M00, M01, M02 float64
	M10, M11, M12 float64
}

// Identity is the neutral element of Transformed.
var Identity = Transform{M00: 1, M11: 1}

// NewTranslation returns a pure translation.
func NewTranslation(d Vector) Transform {
	return Transform{M00: 1, M02: d.X, M11: 1, M12: d.Y}
}

// NewRotation returns a rotation by angle followed by a translation to origin.
// This is the pose of a rigid body.
func NewRotation(angle float64, origin Vector) Transform {
	c, s := math.Cos(angle), math.Sin(angle)
	return Transform{
		M00: c, M01: -s, M02: origin.X,
		M10: s, M11: c, M12: origin.Y,
	}
}

func (t Transform) AxisX() Vector  { return Vector{t.M00, t.M10} }
func (t Transform) AxisY() Vector  { return Vector{t.M01, t.M11} }
func (t Transform) Origin() Vector { return Vector{t.M02, t.M12} }

// Angle returns the rotation of the X axis, in radians.
func (t Transform) Angle() float64 { return math.Atan2(t.M10, t.M00) }

func (t Transform) Determinant() float64 { return t.M00*t.M11 - t.M01*t.M10 }

// OnPoint transports a point, translation included.
func (t Transform) OnPoint(p Vector) Vector {
	return Vector{
		p.X*t.M00 + p.Y*t.M01 + t.M02,
		p.X*t.M10 + p.Y*t.M11 + t.M12,
	}
}

// OnVector transports a direction, translation ignored.
func (t Transform) OnVector(v Vector) Vector {
	return Vector{
		v.X*t.M00 + v.Y*t.M01,
		v.X*t.M10 + v.Y*t.M11,
	}
}

// Transformed appends o, applied after t.
func (t Transform) Transformed(o Transform) Transform {
	return Transform{
		M00: o.M00*t.M00 + o.M01*t.M10,
		M01: o.M00*t.M01 + o.M01*t.M11,
		M02: o.M00*t.M02 + o.M01*t.M12 + o.M02,
		M10: o.M10*t.M00 + o.M11*t.M10,
		M11: o.M10*t.M01 + o.M11*t.M11,
		M12: o.M10*t.M02 + o.M11*t.M12 + o.M12,
	}
}

// Translated appends a translation.
func (t Transform) Translated(d Vector) Transform {
	t.M02 += d.X
	t.M12 += d.Y
	return t
}

// Scaled appends a non-uniform scale around the origin.
func (t Transform) Scaled(sx, sy float64) Transform {
	return Transform{
		M00: t.M00 * sx, M01: t.M01 * sx, M02: t.M02 * sx,
		M10: t.M10 * sy, M11: t.M11 * sy, M12: t.M12 * sy,
	}
}

func (t Transform) ScaledUniform(s float64) Transform { return t.Scaled(s, s) }

// Rotated appends a counter-clockwise rotation around the origin.
func (t Transform) Rotated(angle float64) Transform {
	c, s := math.Cos(angle), math.Sin(angle)
	return Transform{
		M00: c*t.M00 - s*t.M10, M01: c*t.M01 - s*t.M11, M02: c*t.M02 - s*t.M12,
		M10: s*t.M00 + c*t.M10, M11: s*t.M01 + c*t.M11, M12: s*t.M02 + c*t.M12,
	}
}

// RotatedAround appends a rotation around center.
func (t Transform) RotatedAround(angle float64, center Vector) Transform {
	return t.Translated(center.Opposite()).Rotated(angle).Translated(center)
}

// Inverted returns the inverse map, or ErrSingularTransform.
func (t Transform) Inverted() (Transform, error) {
	det := t.Determinant()
	if math.Abs(det) <= singularEpsilon || math.IsNaN(det) || math.IsInf(det, 0) {
		return Identity, fmt.Errorf("%w: determinant %g", ErrSingularTransform, det)
	}
	inv := 1 / det
	a := t.M11 * inv
	b := -t.M01 * inv
	c := -t.M10 * inv
	d := t.M00 * inv
	r := Transform{
		M00: a, M01: b, M02: -(a*t.M02 + b*t.M12),
		M10: c, M11: d, M12: -(c*t.M02 + d*t.M12),
	}
	if !r.isFinite() {
		return Identity, fmt.Errorf("%w: non-finite inverse", ErrSingularTransform)
	}
	return r, nil
}

func (t Transform) isFinite() bool {
	for _, f := range [...]float64{t.M00, t.M01, t.M02, t.M10, t.M11, t.M12} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func (t Transform) ApproxEqual(o Transform, eps float64) bool {
	return math.Abs(t.M00-o.M00) <= eps && math.Abs(t.M01-o.M01) <= eps &&
		math.Abs(t.M02-o.M02) <= eps && math.Abs(t.M10-o.M10) <= eps &&
		math.Abs(t.M11-o.M11) <= eps && math.Abs(t.M12-o.M12) <= eps
}

func (t Transform) String() string {
	return fmt.Sprintf("[%f, %f, %f, %f, %f, %f]", t.M00, t.M01, t.M02, t.M10, t.M11, t.M12)
}
