package isotrix

import (
	"cmp"
	"fmt"
	"image/color"
	"math"
	"slices"
)

// Trixition is the integer position of a cell in the trixel grid.
type Trixition struct {
	X, Y, Z int
}

func (t Trixition) Add(o Trixition) Trixition {
	return Trixition{X: t.X + o.X, Y: t.Y + o.Y, Z: t.Z + o.Z}
}

func (t Trixition) String() string {
	return fmt.Sprintf("[%d,%d,%d]", t.X, t.Y, t.Z)
}

func compareTrixitions(a, b Trixition) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Z, b.Z)
}

// Trixel is a cubic cell of the grid with a single colour.
type Trixel struct {
	Trixition Trixition
	Colour    color.RGBA
}

func NewTrixel(t Trixition, c color.RGBA) Trixel {
	return Trixel{Trixition: t, Colour: c}
}

// PositionToTrixition returns the cell containing a world position.
func PositionToTrixition(p Point3d, size float64) Trixition {
	return Trixition{
		X: int(math.Floor(p.X / size)),
		Y: int(math.Floor(p.Y / size)),
		Z: int(math.Floor(p.Z / size)),
	}
}

// TrixitionToPosition returns the minimum corner of a cell.
func TrixitionToPosition(t Trixition, size float64) Point3d {
	return Point3d{
		X: float64(t.X) * size,
		Y: float64(t.Y) * size,
		Z: float64(t.Z) * size,
	}
}

// TrixelCentroid is the centre of the cube.
func TrixelCentroid(t Trixel, size float64) Point3d {
	half := size / 2
	return TrixitionToPosition(t.Trixition, size).Translate(Vector3{X: half, Y: half, Z: half})
}

// TopCentre is the centre of the trixel's top face, where props stand.
func TopCentre(t Trixel, size float64) Point3d {
	half := size / 2
	return TrixitionToPosition(t.Trixition, size).Translate(Vector3{X: half, Y: size, Z: half})
}

// TrixelsCentroid averages the centres of all trixels.
func TrixelsCentroid(trixels []Trixel, size float64) (Point3d, error) {
	if len(trixels) == 0 {
		return Point3d{}, fmt.Errorf("centroid of no trixels: %w", ErrDegenerateGeometry)
	}
	var sum Vector3
	for _, t := range trixels {
		sum = sum.Add(VectorFromPoint(TrixelCentroid(t, size)))
	}
	n := float64(len(trixels))
	return Point3d{X: sum.X / n, Y: sum.Y / n, Z: sum.Z / n}, nil
}

// Polygon2DToTrixels lays a flat polygon (x, z footprint) out as one layer of
// trixels at height y. A cell is included when its minimum corner lies
// inside the polygon.
func Polygon2DToTrixels(poly Polygon2, y, size float64, colours ColourSource) ([]Trixel, error) {
	if len(poly) == 0 {
		return nil, fmt.Errorf("polygon to trixels: %w", ErrDegenerateGeometry)
	}
	minX, minZ, maxX, maxZ := poly.Bounds()

	var trixels []Trixel
	for x := float64(minX); x < float64(maxX); x += size {
		for z := float64(minZ); z < float64(maxZ); z += size {
			if !poly.Contains(x, z) {
				continue
			}
			t := PositionToTrixition(Point3d{X: x, Y: y, Z: z}, size)
			trixels = append(trixels, NewTrixel(t, colours.Colour(t)))
		}
	}
	return trixels, nil
}

// TrixelSet is one layer of trixels, at most one per grid cell.
type TrixelSet struct {
	cells map[Trixition]Trixel
}

func NewTrixelSet() *TrixelSet {
	return &TrixelSet{cells: make(map[Trixition]Trixel)}
}

// Add stores the trixel, replacing any trixel already in its cell.
func (s *TrixelSet) Add(t Trixel) {
	s.cells[t.Trixition] = t
}

func (s *TrixelSet) Remove(t Trixition) bool {
	if _, ok := s.cells[t]; !ok {
		return false
	}
	delete(s.cells, t)
	return true
}

func (s *TrixelSet) Has(t Trixition) bool {
	_, ok := s.cells[t]
	return ok
}

func (s *TrixelSet) Get(t Trixition) (Trixel, bool) {
	tr, ok := s.cells[t]
	return tr, ok
}

func (s *TrixelSet) Len() int {
	return len(s.cells)
}

func (s *TrixelSet) Clear() {
	clear(s.cells)
}

// Sorted returns the trixels in grid order (y, then x, then z).
func (s *TrixelSet) Sorted() []Trixel {
	out := make([]Trixel, 0, len(s.cells))
	for _, t := range s.cells {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b Trixel) int {
		return compareTrixitions(a.Trixition, b.Trixition)
	})
	return out
}
