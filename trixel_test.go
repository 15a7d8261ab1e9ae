package isotrix

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridRoundTrip(t *testing.T) {
	testCases := []struct {
		p    Point3d
		size float64
		want Trixition
	}{
		{Point3d{X: 0, Y: 0, Z: 0}, 10, Trixition{}},
		{Point3d{X: 9.999, Y: 10, Z: 25}, 10, Trixition{X: 0, Y: 1, Z: 2}},
		{Point3d{X: -0.5, Y: -10, Z: -10.5}, 10, Trixition{X: -1, Y: -1, Z: -2}},
		{Point3d{X: 495, Y: 0, Z: 295}, 10, Trixition{X: 49, Y: 0, Z: 29}},
		{Point3d{X: 7, Y: 3.5, Z: -1}, 3.5, Trixition{X: 2, Y: 1, Z: -1}},
	}

	for _, tc := range testCases {
		got := PositionToTrixition(tc.p, tc.size)
		assert.Equal(t, tc.want, got, "trixition of %v", tc.p)

		corner := TrixitionToPosition(got, tc.size)
		for _, d := range []float64{tc.p.X - corner.X, tc.p.Y - corner.Y, tc.p.Z - corner.Z} {
			assert.GreaterOrEqual(t, d, 0.0, "corner %v overshoots %v", corner, tc.p)
			assert.Less(t, d, tc.size, "corner %v too far from %v", corner, tc.p)
		}
	}
}

func TestMakeTrixelFaces(t *testing.T) {
	faces := MakeTrixelFaces(Trixel{}, 10)
	require.Len(t, faces, 6)

	wantNormals := map[FaceSide]Vector3{
		FaceLeft:   {X: -1},
		FaceRight:  {X: 1},
		FaceBottom: {Y: -1},
		FaceTop:    {Y: 1},
		FaceBack:   {Z: -1},
		FaceFront:  {Z: 1},
	}
	for i, f := range faces {
		assert.Equal(t, FaceSide(i), f.Side)
		for _, v := range f.Vertices {
			for _, c := range []float64{v.X, v.Y, v.Z} {
				assert.True(t, c >= 0 && c <= 10, "%s face vertex %v out of bounds", f.Side, v)
			}
		}
		n := f.Normal()
		want := wantNormals[f.Side]
		assert.True(t, almostEqual(want.X, n.X) && almostEqual(want.Y, n.Y) && almostEqual(want.Z, n.Z),
			"%s face normal %v, want %v", f.Side, n, want)

		// the face lies on its own plane
		pl := NewPlane(f)
		for _, v := range f.Vertices {
			assert.Zero(t, pl.PointOnPlane(v))
		}
	}
}

func TestFacesFollowTrixition(t *testing.T) {
	tr := NewTrixel(Trixition{X: 2, Y: -1, Z: 3}, color.RGBA{R: 1, A: 255})
	for _, f := range MakeTrixelFaces(tr, 10) {
		assert.Equal(t, tr, f.Parent)
		for _, v := range f.Vertices {
			assert.True(t, v.X >= 20 && v.X <= 30)
			assert.True(t, v.Y >= -10 && v.Y <= 0)
			assert.True(t, v.Z >= 30 && v.Z <= 40)
		}
	}
}

func TestFacingViewerAtIsometricView(t *testing.T) {
	tr := MakeTransform(Vector3{}, Point3d{}, Vector3{})
	facing := map[FaceSide]bool{}
	for _, f := range MakeTrixelFaces(Trixel{}, 10) {
		f = f.Transform(tr)
		facing[f.Side] = f.IsFacingViewer()
		// facing the viewer means the view space normal points to +z
		assert.Equal(t, f.Normal().Z > 0, f.IsFacingViewer(), "%s", f.Side)
	}
	assert.Equal(t, map[FaceSide]bool{
		FaceLeft:   true,
		FaceRight:  false,
		FaceBottom: false,
		FaceTop:    true,
		FaceBack:   false,
		FaceFront:  true,
	}, facing)
}

func TestOppositeFacesNeverBothFace(t *testing.T) {
	for _, r := range []Vector3{{}, {X: 0.3, Y: 1.2}, {X: -2, Y: 0.5, Z: 1}, {Y: math.Pi}} {
		tr := MakeTransform(r, Point3d{X: 5, Y: 5, Z: 5}, Vector3{Y: 300})
		faces := MakeTrixelFaces(Trixel{}, 10)
		count := 0
		for i := 0; i < 6; i += 2 {
			a := faces[i].Transform(tr).IsFacingViewer()
			b := faces[i+1].Transform(tr).IsFacingViewer()
			assert.False(t, a && b, "%s and %s both facing at %v", faces[i].Side, faces[i+1].Side, r)
			if a || b {
				count++
			}
		}
		assert.LessOrEqual(t, count, 3)
	}
}

func TestFaceTransformIsPure(t *testing.T) {
	f := MakeTrixelFaces(Trixel{}, 10)[FaceTop]
	before := f.Vertices
	moved := f.Transform(TransMatrix(100, 0, 0))
	assert.Equal(t, before, f.Vertices)
	assert.Equal(t, before[0].X+100, moved.Vertices[0].X)
}

func squareFloor(side float64) Floor {
	return NewFloor(
		Point3d{X: 0, Y: -10, Z: 0},
		Point3d{X: side, Y: -10, Z: 0},
		Point3d{X: side, Y: -10, Z: side},
		Point3d{X: 0, Y: -10, Z: side},
	)
}

func TestFloorToTrixels(t *testing.T) {
	trixels, err := Polygon2DToTrixels(squareFloor(50).Polygon(), -10, 10, SolidColour(color.RGBA{A: 255}))
	require.NoError(t, err)
	require.Len(t, trixels, 25)

	seen := map[Trixition]bool{}
	for _, tr := range trixels {
		assert.False(t, seen[tr.Trixition], "duplicate %v", tr.Trixition)
		seen[tr.Trixition] = true
		assert.Equal(t, -1, tr.Trixition.Y)
		assert.True(t, tr.Trixition.X >= 0 && tr.Trixition.X < 5)
		assert.True(t, tr.Trixition.Z >= 0 && tr.Trixition.Z < 5)
	}
}

func TestFloorToTrixelsTriangle(t *testing.T) {
	tri := Polygon2{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 0, Y: 40}}
	trixels, err := Polygon2DToTrixels(tri, 0, 10, SolidColour(color.RGBA{A: 255}))
	require.NoError(t, err)
	// cells whose corner is strictly below the hypotenuse
	assert.Len(t, trixels, 4+3+2+1)
}

func TestEmptyGeometryFails(t *testing.T) {
	_, err := Polygon2DToTrixels(nil, 0, 10, SolidColour(color.RGBA{}))
	assert.ErrorIs(t, err, ErrDegenerateGeometry)

	_, err = TrixelsCentroid(nil, 10)
	assert.ErrorIs(t, err, ErrDegenerateGeometry)

	_, err = Floor{}.Centroid()
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
}

func TestCentroids(t *testing.T) {
	c, err := squareFloor(50).Centroid()
	require.NoError(t, err)
	assert.Equal(t, Point3d{X: 25, Y: -10, Z: 25}, c)

	trixels := []Trixel{{Trixition: Trixition{}}, {Trixition: Trixition{X: 1}}}
	c, err = TrixelsCentroid(trixels, 10)
	require.NoError(t, err)
	assert.Equal(t, Point3d{X: 10, Y: 5, Z: 5}, c)

	assert.Equal(t, Point3d{X: 15, Y: 10, Z: 5}, TopCentre(trixels[1], 10))
}

func TestTrixelSet(t *testing.T) {
	s := NewTrixelSet()
	a := NewTrixel(Trixition{X: 1}, color.RGBA{R: 1})
	b := NewTrixel(Trixition{Y: -1}, color.RGBA{R: 2})
	s.Add(a)
	s.Add(b)
	s.Add(NewTrixel(Trixition{X: 1}, color.RGBA{R: 3}))

	assert.Equal(t, 2, s.Len())
	got, ok := s.Get(Trixition{X: 1})
	require.True(t, ok)
	assert.Equal(t, uint8(3), got.Colour.R)

	sorted := s.Sorted()
	assert.Equal(t, b.Trixition, sorted[0].Trixition)

	assert.True(t, s.Remove(b.Trixition))
	assert.False(t, s.Remove(b.Trixition))
	assert.False(t, s.Has(b.Trixition))

	s.Clear()
	assert.Zero(t, s.Len())
}
