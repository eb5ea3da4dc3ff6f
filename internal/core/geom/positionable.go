package geom

// Positionable is anything placed by an absolute affine transform.
type Positionable interface {
	Transform() Transform
	Velocity() Vector
}

// PositionOf returns the origin of p's transform.
func PositionOf(p Positionable) Vector {
	return p.Transform().Origin()
}
