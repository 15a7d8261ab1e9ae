package isotrix

import "math"

// Vector2 is a point on the projected (x, y) plane.
type Vector2 struct {
	X float64
	Y float64
}

// projectionEpsilon is the smallest projected area treated as a real face.
const projectionEpsilon = 1e-9

// Polygon2 is a projected polygon. Winding is read with y pointing up.
type Polygon2 []Vector2

// Project drops the depth component of each point.
func Project(points []Point3d) Polygon2 {
	poly := make(Polygon2, len(points))
	for i, p := range points {
		poly[i] = Vector2{X: p.X, Y: p.Y}
	}
	return poly
}

// SignedArea is positive for counter-clockwise polygons (y up).
func (poly Polygon2) SignedArea() float64 {
	if len(poly) < 3 {
		return 0
	}
	sum := 0.0
	for i := range poly {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Clockwise reports a clockwise winding with a non-degenerate area.
func (poly Polygon2) Clockwise() bool {
	return poly.SignedArea() < -projectionEpsilon
}

// Contains uses the even-odd crossing rule. Points on a left or bottom edge
// are inside, points on a right or top edge are outside, so adjacent cells
// never both claim a shared edge.
func (poly Polygon2) Contains(x, y float64) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > y) != (b.Y > y) {
			crossX := (b.X-a.X)*(y-a.Y)/(b.Y-a.Y) + a.X
			if x < crossX {
				inside = !inside
			}
		}
	}
	return inside
}

// Bounds returns the integer box enclosing the polygon, max exclusive.
func (poly Polygon2) Bounds() (minX, minY, maxX, maxY int) {
	if len(poly) == 0 {
		return 0, 0, 0, 0
	}
	fminX, fminY := poly[0].X, poly[0].Y
	fmaxX, fmaxY := poly[0].X, poly[0].Y
	for _, v := range poly[1:] {
		fminX = math.Min(fminX, v.X)
		fminY = math.Min(fminY, v.Y)
		fmaxX = math.Max(fmaxX, v.X)
		fmaxY = math.Max(fmaxY, v.Y)
	}
	return int(math.Floor(fminX)), int(math.Floor(fminY)), int(math.Ceil(fmaxX)), int(math.Ceil(fmaxY))
}
