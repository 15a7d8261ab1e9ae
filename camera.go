package isotrix

// IsoCamera holds the accumulated user rotation about a pivot and the fixed
// view-space translation. The view itself is always isometric.
type IsoCamera struct {
	rotation        Vector3
	pivot           Point3d
	viewTranslation Vector3
	rotateSpeed     float64
	transform       Transform
}

func NewIsoCamera(pivot Point3d, viewTranslation Vector3, rotateSpeed float64) *IsoCamera {
	c := &IsoCamera{
		pivot:           pivot,
		viewTranslation: viewTranslation,
		rotateSpeed:     rotateSpeed,
	}
	c.update()
	return c
}

func (c *IsoCamera) update() {
	c.transform = MakeTransform(c.rotation, c.pivot, c.viewTranslation)
}

// AddAngle rotates by a number of input steps (e.g. pixels dragged) per axis.
func (c *IsoCamera) AddAngle(x, y, z float64) {
	c.rotation = c.rotation.Add(Vector3{X: x, Y: y, Z: z}.Scale(c.rotateSpeed))
	c.update()
}

func (c *IsoCamera) SetRotation(r Vector3) {
	c.rotation = r
	c.update()
}

func (c *IsoCamera) Rotation() Vector3 {
	return c.rotation
}

func (c *IsoCamera) SetPivot(p Point3d) {
	c.pivot = p
	c.update()
}

func (c *IsoCamera) Pivot() Point3d {
	return c.pivot
}

// Transform is the world to view transform for the current state.
func (c *IsoCamera) Transform() Transform {
	return c.transform
}

// ReverseTransform maps view space back into world space.
func (c *IsoCamera) ReverseTransform() Transform {
	return MakeReverseTransform(c.rotation, c.pivot, c.viewTranslation)
}
