package isotrix

import "math"

// Plane is the set of points where A*x + B*y + C*z + D == 0.
type Plane struct {
	A, B, C, D float64
}

const planeThickness = 1e-9

// NewPlane is the plane through a face, oriented by its outward normal.
func NewPlane(f TrixelFace) Plane {
	return NewPlaneFromPoint(f.Vertices[0], f.Normal())
}

func NewPlaneFromPoint(p Point3d, normal Vector3) Plane {
	pl := Plane{A: normal.X, B: normal.Y, C: normal.Z}
	pl.D = -(pl.A*p.X + pl.B*p.Y + pl.C*p.Z)
	return pl
}

// PointOnPlane is the signed distance scaled by the normal length; zero on the plane.
func (p Plane) PointOnPlane(pt Point3d) float64 {
	num := p.A*pt.X + p.B*pt.Y + p.C*pt.Z + p.D
	if math.Abs(num) < planeThickness {
		return 0
	}
	return num
}

// ZAt solves the plane for z at (x, y). It fails for planes seen edge-on.
func (p Plane) ZAt(x, y float64) (float64, bool) {
	if math.Abs(p.C) < planeThickness {
		return 0, false
	}
	return -(p.A*x + p.B*y + p.D) / p.C, true
}
