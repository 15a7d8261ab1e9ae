package isotrix

import (
	"image"
	"image/color"
)

// recordingSurface is a mock Surface that keeps every call in order.
type recordingSurface struct {
	calls []surfaceCall
}

type surfaceCall struct {
	op     string
	xs, ys []float64
	colour color.RGBA
	text   string
	img    image.Image
}

func (s *recordingSurface) Fill(c color.RGBA) {
	s.calls = append(s.calls, surfaceCall{op: "fill", colour: c})
}

func (s *recordingSurface) FillPolygon(xs, ys []float64, c color.RGBA) {
	s.calls = append(s.calls, surfaceCall{op: "polygon", xs: xs, ys: ys, colour: c})
}

func (s *recordingSurface) DrawImage(img image.Image, x, y, w, h int) {
	s.calls = append(s.calls, surfaceCall{
		op:  "image",
		xs:  []float64{float64(x), float64(x + w)},
		ys:  []float64{float64(y), float64(y + h)},
		img: img,
	})
}

func (s *recordingSurface) DrawText(text string, x, y float64, c color.RGBA) {
	s.calls = append(s.calls, surfaceCall{op: "text", xs: []float64{x}, ys: []float64{y}, colour: c, text: text})
}

func (s *recordingSurface) DrawLine(x1, y1, x2, y2 float64, c color.RGBA) {
	s.calls = append(s.calls, surfaceCall{op: "line", xs: []float64{x1, x2}, ys: []float64{y1, y2}, colour: c})
}

func (s *recordingSurface) count(op string) int {
	n := 0
	for _, c := range s.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

// memoryAssets resolves names from a map. Names in missing are image backed
// but fail to load.
type memoryAssets struct {
	images  map[string]image.Image
	missing map[string]bool
}

func (m memoryAssets) IsImageBacked(name string) bool {
	_, ok := m.images[name]
	return ok || m.missing[name]
}

func (m memoryAssets) ImageForName(name string) (image.Image, error) {
	if img, ok := m.images[name]; ok {
		return img, nil
	}
	return nil, ErrUnknownResource
}
