package isotrix

import "fmt"

// Drawable is a world object that is shown as a sprite.
type Drawable interface {
	Position() Point3d
	BoundingBox() Box3
	ImageName() string
	Name() string
}

// Placed is implemented by drawables whose position depends on the scene
// holding them.
type Placed interface {
	PositionIn(scene *Scene) Point3d
}

// Labeller is implemented by drawables that may show their name above them.
type Labeller interface {
	Label() (string, bool)
}

func positionIn(d Drawable, scene *Scene) Point3d {
	if p, ok := d.(Placed); ok {
		return p.PositionIn(scene)
	}
	return d.Position()
}

// Floor is the boundary of a room's walkable area.
type Floor struct {
	Points []Point3d
}

func NewFloor(points ...Point3d) Floor {
	return Floor{Points: append([]Point3d(nil), points...)}
}

func (f Floor) Translate(v Vector3) Floor {
	points := make([]Point3d, len(f.Points))
	for i, p := range f.Points {
		points[i] = p.Translate(v)
	}
	return Floor{Points: points}
}

// Centroid is the mean of the boundary vertices.
func (f Floor) Centroid() (Point3d, error) {
	if len(f.Points) == 0 {
		return Point3d{}, fmt.Errorf("floor centroid: %w", ErrDegenerateGeometry)
	}
	var sum Vector3
	for _, p := range f.Points {
		sum = sum.Add(VectorFromPoint(p))
	}
	n := float64(len(f.Points))
	return Point3d{X: sum.X / n, Y: sum.Y / n, Z: sum.Z / n}, nil
}

// Polygon is the floor seen from above: world x and z become x and y.
func (f Floor) Polygon() Polygon2 {
	poly := make(Polygon2, len(f.Points))
	for i, p := range f.Points {
		poly[i] = Vector2{X: p.X, Y: p.Z}
	}
	return poly
}

// Scene is everything the renderer draws for one place. When FloorTrixels
// is empty the floor boundary is decomposed into trixels on every render.
type Scene struct {
	Name         string
	Floor        Floor
	FloorTrixels []Trixel
	Trixels      []Trixel
	Drawables    []Drawable
}

// Portals returns the portal markers among the drawables.
func (s *Scene) Portals() []*Portal {
	var out []*Portal
	for _, d := range s.Drawables {
		if p, ok := d.(*Portal); ok {
			out = append(out, p)
		}
	}
	return out
}
