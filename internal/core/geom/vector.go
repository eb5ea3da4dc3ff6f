package geom

import (
	"fmt"
	"math"
)

// Vector is an immutable 2D vector. Every operation returns a new value.
type Vector struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

var (
	Zero  = Vector{}
	UnitX = Vector{X: 1}
	UnitY = Vector{Y: 1}
)

// V is a shorthand constructor.
func V(x, y float64) Vector { return Vector{X: x, Y: y} }

func (v Vector) Length() float64 { return math.Hypot(v.X, v.Y) }

// Angle returns the direction in radians, counter-clockwise from the X axis.
func (v Vector) Angle() float64 { return math.Atan2(v.Y, v.X) }

func (v Vector) Opposite() Vector       { return Vector{-v.X, -v.Y} }
func (v Vector) Add(o Vector) Vector    { return Vector{v.X + o.X, v.Y + o.Y} }
func (v Vector) Sub(o Vector) Vector    { return Vector{v.X - o.X, v.Y - o.Y} }
func (v Vector) Mul(s float64) Vector   { return Vector{v.X * s, v.Y * s} }
func (v Vector) MulV(o Vector) Vector   { return Vector{v.X * o.X, v.Y * o.Y} }
func (v Vector) Div(s float64) Vector   { return Vector{v.X / s, v.Y / s} }
func (v Vector) DivV(o Vector) Vector   { return Vector{v.X / o.X, v.Y / o.Y} }
func (v Vector) Dot(o Vector) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vector) Cross(o Vector) float64 { return v.X*o.Y - v.Y*o.X }

// Min returns the component-wise minimum.
func (v Vector) Min(o Vector) Vector { return Vector{math.Min(v.X, o.X), math.Min(v.Y, o.Y)} }

// Max returns the component-wise maximum.
func (v Vector) Max(o Vector) Vector { return Vector{math.Max(v.X, o.X), math.Max(v.Y, o.Y)} }

func (v Vector) MinComponent() float64 { return math.Min(v.X, v.Y) }
func (v Vector) MaxComponent() float64 { return math.Max(v.X, v.Y) }

// Normalized returns the unit vector of same direction, or UnitX for (near) zero vectors.
func (v Vector) Normalized() Vector {
	length := v.Length()
	if length > 1e-6 {
		return v.Div(length)
	}
	return UnitX
}

// Resized rescales to the given length, see Normalized for the zero case.
func (v Vector) Resized(length float64) Vector { return v.Normalized().Mul(length) }

// Mirrored reflects v across the line perpendicular to normal.
func (v Vector) Mirrored(normal Vector) Vector {
	n := normal.Normalized()
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// Rotated rotates counter-clockwise by angle radians.
func (v Vector) Rotated(angle float64) Vector {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vector{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Clockwise rotates by -90 degrees.
func (v Vector) Clockwise() Vector { return Vector{v.Y, -v.X} }

// CounterClockwise rotates by 90 degrees.
func (v Vector) CounterClockwise() Vector { return Vector{-v.Y, v.X} }

// Mixed linearly interpolates towards o; factor 0 yields v, 1 yields o.
func (v Vector) Mixed(o Vector, factor float64) Vector {
	return Vector{
		v.X*(1-factor) + o.X*factor,
		v.Y*(1-factor) + o.Y*factor,
	}
}

func (v Vector) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vector) ApproxEqual(o Vector, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

func (v Vector) String() string { return fmt.Sprintf("(%g,%g)", v.X, v.Y) }
