package isotrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// squareFaceAt is a view space face covering [x0,x0+w] by [y0,y0+w] at depth z.
func squareFaceAt(x0, y0, w, z float64, tr Trixition) PickedFace {
	return PickedFace{Face: TrixelFace{
		Vertices: [4]Point3d{
			{X: x0, Y: y0, Z: z},
			{X: x0, Y: y0 + w, Z: z},
			{X: x0 + w, Y: y0 + w, Z: z},
			{X: x0 + w, Y: y0, Z: z},
		},
		Parent: Trixel{Trixition: tr},
		Side:   FaceFront,
	}}
}

func TestPickNearestWins(t *testing.T) {
	// larger z is nearer: a face 5 units in front of the viewer beats one 12 units away
	far := squareFaceAt(0, 0, 100, -12, Trixition{X: 12})
	near := squareFaceAt(40, 40, 100, -5, Trixition{X: 5})

	for _, order := range [][]Pickable{{far, near}, {near, far}} {
		l := NewPickList()
		for _, p := range order {
			l.Add(p)
		}
		l.Sort()
		require.Equal(t, 2, l.Len())
		assert.Equal(t, -5.0, l.At(0).Depth())

		got, ok := l.Pick(50, 50)
		require.True(t, ok)
		assert.Equal(t, near, got)

		// only the far face covers this point
		got, ok = l.Pick(10, 10)
		require.True(t, ok)
		assert.Equal(t, far, got)
	}
}

func TestPickMiss(t *testing.T) {
	l := NewPickList()
	l.Add(squareFaceAt(0, 0, 10, 0, Trixition{}))
	l.Sort()

	_, ok := l.Pick(50, 50)
	assert.False(t, ok)
	_, ok = NewPickList().Pick(0, 0)
	assert.False(t, ok)
}

func TestPickTieFavoursLaterEntry(t *testing.T) {
	first := squareFaceAt(0, 0, 10, 3, Trixition{X: 1})
	second := squareFaceAt(0, 0, 10, 3, Trixition{X: 2})
	l := NewPickList()
	l.Add(first)
	l.Add(second)
	l.Sort()

	got, ok := l.Pick(5, 5)
	require.True(t, ok)
	assert.Equal(t, second, got)
}

func TestPickedDrawableRect(t *testing.T) {
	prop := NewProp(PropChest, "Chest0", Point3d{})
	d := NewPickedDrawable(prop, Point3d{X: 100, Y: 100}, IdentTransform())

	// chests are 20 wide, 15 high and 15 long
	testCases := []struct {
		x, y float64
		want bool
	}{
		{100, 100, true},
		{90, 92.5, true},
		{109.9, 107.4, true},
		{110, 100, false},
		{89.9, 100, false},
		{100, 92.4, false},
		{100, 107.5, false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, d.Contains(tc.x, tc.y), "(%g, %g)", tc.x, tc.y)
	}
}

func TestPickFaceLooksPastDrawables(t *testing.T) {
	face := squareFaceAt(0, 0, 100, -50, Trixition{})
	prop := NewProp(PropTree, "Tree0", Point3d{})
	l := NewPickList()
	l.Add(face)
	l.Add(NewPickedDrawable(prop, Point3d{X: 50, Y: 50, Z: 0}, IdentTransform()))
	l.Sort()

	got, ok := l.Pick(50, 60)
	require.True(t, ok)
	assert.IsType(t, PickedDrawable{}, got)

	f, ok := l.PickFace(50, 60)
	require.True(t, ok)
	assert.Equal(t, face, f)
}
