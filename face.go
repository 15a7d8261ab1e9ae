package isotrix

// FaceSide names one of the six faces of a trixel.
type FaceSide int

const (
	FaceLeft FaceSide = iota
	FaceRight
	FaceBottom
	FaceTop
	FaceBack
	FaceFront
)

var faceSideNames = [...]string{"left", "right", "bottom", "top", "back", "front"}

func (s FaceSide) String() string {
	if s < 0 || int(s) >= len(faceSideNames) {
		return "unknown"
	}
	return faceSideNames[s]
}

// Outward is the grid step from a trixel to its neighbour across this face.
func (s FaceSide) Outward() Trixition {
	switch s {
	case FaceLeft:
		return Trixition{X: -1}
	case FaceRight:
		return Trixition{X: 1}
	case FaceBottom:
		return Trixition{Y: -1}
	case FaceTop:
		return Trixition{Y: 1}
	case FaceBack:
		return Trixition{Z: -1}
	case FaceFront:
		return Trixition{Z: 1}
	}
	return Trixition{}
}

// winding picks the rotational sense a face builder walks its corners in.
// Opposite faces of a trixel use opposite windings so that every face winds
// clockwise when seen from outside the trixel.
type winding int

const (
	FACE_NORMAL  winding = 0
	FACE_REVERSE winding = 1
)

// TrixelFace is one square face of a trixel. Vertices wind clockwise seen
// from outside, so after projection a clockwise face points at the viewer.
type TrixelFace struct {
	Vertices [4]Point3d
	Parent   Trixel
	Side     FaceSide
}

// MakeTrixelFaces returns the faces ordered left, right, bottom, top, back, front.
func MakeTrixelFaces(t Trixel, size float64) [6]TrixelFace {
	origin := TrixitionToPosition(t.Trixition, size)
	return [6]TrixelFace{
		xFace(origin, FACE_NORMAL, size, t, FaceLeft),
		xFace(origin.Translate(Vector3{X: size}), FACE_REVERSE, size, t, FaceRight),
		yFace(origin, FACE_NORMAL, size, t, FaceBottom),
		yFace(origin.Translate(Vector3{Y: size}), FACE_REVERSE, size, t, FaceTop),
		zFace(origin, FACE_NORMAL, size, t, FaceBack),
		zFace(origin.Translate(Vector3{Z: size}), FACE_REVERSE, size, t, FaceFront),
	}
}

// xFace builds a face of constant x from its far bottom corner c.
func xFace(c Point3d, w winding, size float64, t Trixel, side FaceSide) TrixelFace {
	k := float64(w)
	return TrixelFace{
		Vertices: [4]Point3d{
			c,
			{X: c.X, Y: c.Y + size*(1-k), Z: c.Z + size*k},
			{X: c.X, Y: c.Y + size, Z: c.Z + size},
			{X: c.X, Y: c.Y + size*k, Z: c.Z + size*(1-k)},
		},
		Parent: t,
		Side:   side,
	}
}

// yFace builds a face of constant y from its far left corner c.
func yFace(c Point3d, w winding, size float64, t Trixel, side FaceSide) TrixelFace {
	k := float64(w)
	return TrixelFace{
		Vertices: [4]Point3d{
			c,
			{X: c.X + size*k, Y: c.Y, Z: c.Z + size*(1-k)},
			{X: c.X + size, Y: c.Y, Z: c.Z + size},
			{X: c.X + size*(1-k), Y: c.Y, Z: c.Z + size*k},
		},
		Parent: t,
		Side:   side,
	}
}

// zFace builds a face of constant z from its bottom left corner c.
func zFace(c Point3d, w winding, size float64, t Trixel, side FaceSide) TrixelFace {
	k := float64(w)
	return TrixelFace{
		Vertices: [4]Point3d{
			c,
			{X: c.X + size*(1-k), Y: c.Y + size*k, Z: c.Z},
			{X: c.X + size, Y: c.Y + size, Z: c.Z},
			{X: c.X + size*k, Y: c.Y + size*(1-k), Z: c.Z},
		},
		Parent: t,
		Side:   side,
	}
}

// Transform returns a copy of the face with every vertex mapped by tr.
func (f TrixelFace) Transform(tr Transform) TrixelFace {
	out := f
	for i, v := range f.Vertices {
		out.Vertices[i] = tr.Apply(v)
	}
	return out
}

// Normal is the unit outward normal.
func (f TrixelFace) Normal() Vector3 {
	u := f.Vertices[1].DistanceTo(f.Vertices[0])
	v := f.Vertices[2].DistanceTo(f.Vertices[1])
	return v.Cross(u).Normalize()
}

func (f TrixelFace) Polygon() Polygon2 {
	return Project(f.Vertices[:])
}

// IsFacingViewer reports whether the projected face winds clockwise, which
// means its outward normal points towards +z. Edge-on faces are not facing.
func (f TrixelFace) IsFacingViewer() bool {
	return f.Polygon().Clockwise()
}

// Centre is the mean of the vertices.
func (f TrixelFace) Centre() Point3d {
	var sum Vector3
	for _, v := range f.Vertices {
		sum = sum.Add(VectorFromPoint(v))
	}
	return Point3d{X: sum.X / 4, Y: sum.Y / 4, Z: sum.Z / 4}
}

// Depth is the mean vertex z.
func (f TrixelFace) Depth() float64 {
	return f.Centre().Z
}
