package isotrix

import (
	"image"
	"image/color"
)

// Surface is what a render pass draws onto. Coordinates are in screen space
// with y growing downwards.
type Surface interface {
	Fill(c color.RGBA)
	FillPolygon(xs, ys []float64, c color.RGBA)
	DrawImage(img image.Image, x, y, w, h int)
	DrawText(text string, x, y float64, c color.RGBA)
	DrawLine(x1, y1, x2, y2 float64, c color.RGBA)
}

// Renderable is anything that can be placed in the depth queue. The set of
// variants is closed: ShadedPolygon, Sprite, Label and Line.
type Renderable interface {
	// Depth is the view-space z used to order drawing; larger is nearer.
	Depth() float64
	Transform(t Transform) Renderable
	FlipY(top float64) Renderable
	Draw(s Surface)

	renderable()
}

// Box3 is the size of a world object.
type Box3 struct {
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
	Length float64 `toml:"length" yaml:"length"`
}

var (
	labelColour       = color.RGBA{R: 255, A: 255}
	lineColour        = color.RGBA{R: 255, G: 200, A: 255}
	placeholderColour = color.RGBA{R: 255, B: 255, A: 255}
)

// ShadedPolygon is a flat filled polygon, usually a trixel face.
type ShadedPolygon struct {
	Points []Point3d
	Colour color.RGBA
}

// NewShadedPolygon shades a face and keeps its vertices.
func NewShadedPolygon(f TrixelFace, lights []LightSource, ambient color.RGBA) ShadedPolygon {
	return ShadedPolygon{
		Points: append([]Point3d(nil), f.Vertices[:]...),
		Colour: f.ShadedColour(lights, ambient),
	}
}

func (p ShadedPolygon) renderable() {}

func (p ShadedPolygon) Depth() float64 {
	if len(p.Points) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range p.Points {
		sum += v.Z
	}
	return sum / float64(len(p.Points))
}

func (p ShadedPolygon) Transform(t Transform) Renderable {
	return ShadedPolygon{Points: t.ApplyAll(p.Points), Colour: p.Colour}
}

func (p ShadedPolygon) FlipY(top float64) Renderable {
	points := make([]Point3d, len(p.Points))
	for i, v := range p.Points {
		points[i] = v.FlipY(top)
	}
	return ShadedPolygon{Points: points, Colour: p.Colour}
}

func (p ShadedPolygon) Draw(s Surface) {
	xs := make([]float64, len(p.Points))
	ys := make([]float64, len(p.Points))
	for i, v := range p.Points {
		xs[i] = v.X
		ys[i] = v.Y
	}
	s.FillPolygon(xs, ys, p.Colour)
}

// Sprite is an image standing on its position. A nil Image draws a
// placeholder marker of the same size.
type Sprite struct {
	Position Point3d
	Box      Box3
	Image    image.Image
	Name     string
}

func (sp Sprite) renderable() {}

func (sp Sprite) Depth() float64 { return sp.Position.Z }

func (sp Sprite) Transform(t Transform) Renderable {
	sp.Position = t.Apply(sp.Position)
	return sp
}

func (sp Sprite) FlipY(top float64) Renderable {
	sp.Position = sp.Position.FlipY(top)
	return sp
}

// ScreenRect is the drawn rectangle in screen space (y down).
func (sp Sprite) ScreenRect() image.Rectangle {
	x := int(sp.Position.X - sp.Box.Width/2)
	y := int(sp.Position.Y + sp.Box.Length/2 - sp.Box.Height)
	return image.Rect(x, y, x+int(sp.Box.Width), y+int(sp.Box.Height))
}

func (sp Sprite) Draw(s Surface) {
	r := sp.ScreenRect()
	if sp.Image != nil {
		s.DrawImage(sp.Image, r.Min.X, r.Min.Y, r.Dx(), r.Dy())
		return
	}
	x0, y0 := float64(r.Min.X), float64(r.Min.Y)
	x1, y1 := float64(r.Max.X), float64(r.Max.Y)
	s.FillPolygon([]float64{x0, x1, x1, x0}, []float64{y0, y0, y1, y1}, placeholderColour)
	s.DrawLine(x0, y0, x1, y1, labelColour)
	s.DrawLine(x1, y0, x0, y1, labelColour)
}

// Label is a line of text anchored at a point.
type Label struct {
	Text     string
	Position Point3d
	Colour   color.RGBA
}

func NewLabel(text string, pos Point3d) Label {
	return Label{Text: text, Position: pos, Colour: labelColour}
}

func (l Label) renderable() {}

func (l Label) Depth() float64 { return l.Position.Z }

func (l Label) Transform(t Transform) Renderable {
	l.Position = t.Apply(l.Position)
	return l
}

func (l Label) FlipY(top float64) Renderable {
	l.Position = l.Position.FlipY(top)
	return l
}

func (l Label) Draw(s Surface) {
	s.DrawText(l.Text, l.Position.X, l.Position.Y, l.Colour)
}

// Line is a debug segment, ordered by its first point.
type Line struct {
	P1, P2 Point3d
	Colour color.RGBA
}

func NewLine(p1, p2 Point3d) Line {
	return Line{P1: p1, P2: p2, Colour: lineColour}
}

func (l Line) renderable() {}

func (l Line) Depth() float64 { return l.P1.Z }

func (l Line) Transform(t Transform) Renderable {
	return Line{P1: t.Apply(l.P1), P2: t.Apply(l.P2), Colour: l.Colour}
}

func (l Line) FlipY(top float64) Renderable {
	return Line{P1: l.P1.FlipY(top), P2: l.P2.FlipY(top), Colour: l.Colour}
}

func (l Line) Draw(s Surface) {
	s.DrawLine(l.P1.X, l.P1.Y, l.P2.X, l.P2.Y, l.Colour)
}

// AxisLines are the three world axes from the origin, for debugging.
func AxisLines(length float64) []Line {
	origin := Point3d{}
	return []Line{
		NewLine(origin, Point3d{X: length}),
		NewLine(origin, Point3d{Y: length}),
		NewLine(origin, Point3d{Z: length}),
	}
}
