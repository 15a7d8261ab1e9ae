package isotrix

import (
	"fmt"
	"math"
)

// Point3d is an immutable position. Comparison with == is exact on the
// coordinates; use Key when -0/+0 or NaN must be told apart.
type Point3d struct {
	X float64
	Y float64
	Z float64
}

func NewPoint3d(x, y, z float64) Point3d {
	return Point3d{X: x, Y: y, Z: z}
}

// DistanceTo returns the difference vector p - other.
func (p Point3d) DistanceTo(other Point3d) Vector3 {
	return Vector3{X: p.X - other.X, Y: p.Y - other.Y, Z: p.Z - other.Z}
}

func (p Point3d) Translate(v Vector3) Point3d {
	return Point3d{X: p.X + v.X, Y: p.Y + v.Y, Z: p.Z + v.Z}
}

func (p Point3d) Negate() Point3d {
	return Point3d{X: -p.X, Y: -p.Y, Z: -p.Z}
}

// FlipY mirrors the point about a frame top, turning y-up into y-down.
func (p Point3d) FlipY(top float64) Point3d {
	return Point3d{X: p.X, Y: top - p.Y, Z: p.Z}
}

// Key is the bit pattern of the coordinates, suitable as a map key.
func (p Point3d) Key() [3]uint64 {
	return [3]uint64{math.Float64bits(p.X), math.Float64bits(p.Y), math.Float64bits(p.Z)}
}

// Equal compares the float bits of both points.
func (p Point3d) Equal(other Point3d) bool {
	return p.Key() == other.Key()
}

func (p Point3d) String() string {
	return fmt.Sprintf("(%g,%g,%g)", p.X, p.Y, p.Z)
}
