package isotrix

import "sort"

// Pickable is an entry of a PickList: either a PickedFace or a
// PickedDrawable. Coordinates are in view space with y up.
type Pickable interface {
	Depth() float64
	Contains(x, y float64) bool

	pickable()
}

// PickedFace is a viewer-facing trixel face after the view transform.
type PickedFace struct {
	Face TrixelFace

	// Floor is set for faces of floor trixels.
	Floor bool
}

func (p PickedFace) pickable() {}

func (p PickedFace) Depth() float64 { return p.Face.Depth() }

func (p PickedFace) Contains(x, y float64) bool {
	return p.Face.Polygon().Contains(x, y)
}

// PickedDrawable stands in for a drawable: its transformed anchor and the
// rectangle its sprite covers.
type PickedDrawable struct {
	Drawable Drawable
	Position Point3d
	Box      Box3
}

func NewPickedDrawable(d Drawable, pos Point3d, t Transform) PickedDrawable {
	return PickedDrawable{Drawable: d, Position: t.Apply(pos), Box: d.BoundingBox()}
}

func (p PickedDrawable) pickable() {}

func (p PickedDrawable) Depth() float64 { return p.Position.Z }

// Contains tests the sprite rectangle, which rises Height above a base
// sitting Length/2 below the anchor.
func (p PickedDrawable) Contains(x, y float64) bool {
	left := p.Position.X - p.Box.Width/2
	bottom := p.Position.Y - p.Box.Length/2
	return x >= left && x < left+p.Box.Width &&
		y >= bottom && y < bottom+p.Box.Height
}

// PickList holds pickables nearest first.
type PickList struct {
	items []Pickable
}

func NewPickList() *PickList {
	return &PickList{items: make([]Pickable, 0, 64)}
}

func (l *PickList) Add(p Pickable) {
	l.items = append(l.items, p)
}

func (l *PickList) Reset() {
	l.items = l.items[:0]
}

func (l *PickList) Len() int {
	return len(l.items)
}

func (l *PickList) At(i int) Pickable {
	return l.items[i]
}

// Sort orders the list farthest first and then reverses it, leaving the
// nearest entry at index 0. Of two entries at the same depth the one added
// later comes first, as it is also drawn later.
func (l *PickList) Sort() {
	sort.SliceStable(l.items, func(i, j int) bool {
		return l.items[i].Depth() < l.items[j].Depth()
	})
	for i, j := 0, len(l.items)-1; i < j; i, j = i+1, j-1 {
		l.items[i], l.items[j] = l.items[j], l.items[i]
	}
}

// Pick returns the nearest entry containing the view-space point.
func (l *PickList) Pick(x, y float64) (Pickable, bool) {
	for _, p := range l.items {
		if p.Contains(x, y) {
			return p, true
		}
	}
	return nil, false
}

// PickFace returns the nearest face containing the point, looking past
// drawables.
func (l *PickList) PickFace(x, y float64) (PickedFace, bool) {
	for _, p := range l.items {
		if f, ok := p.(PickedFace); ok && f.Contains(x, y) {
			return f, true
		}
	}
	return PickedFace{}, false
}
