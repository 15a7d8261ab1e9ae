// Package ebitensurface draws render passes onto an ebiten image.
package ebitensurface

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image

	labelFace = text.NewGoXFace(basicfont.Face7x13)
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

const lineWidth = 1

// Surface wraps the screen for one frame. Sprite textures and the triangle
// buffers are kept between frames, so one Surface should be reused with Begin.
type Surface struct {
	screen   *ebiten.Image
	textures map[image.Image]*ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func New() *Surface {
	return &Surface{textures: make(map[image.Image]*ebiten.Image)}
}

// Begin sets the image drawn on until the next call.
func (s *Surface) Begin(screen *ebiten.Image) {
	s.screen = screen
}

func (s *Surface) Fill(c color.RGBA) {
	s.screen.Fill(c)
}

// FillPolygon fans triangles out from the first vertex. Trixel faces and
// placeholders are convex.
func (s *Surface) FillPolygon(xs, ys []float64, c color.RGBA) {
	if len(xs) < 3 || len(xs) != len(ys) {
		return
	}
	s.fan(xs, ys)
	s.drawSolid(c)
}

// fan fills the buffers with a triangle fan over the polygon.
func (s *Surface) fan(xs, ys []float64) {
	s.vertices, s.indices = s.vertices[:0], s.indices[:0]
	for i := range xs {
		s.vertices = append(s.vertices, ebiten.Vertex{DstX: float32(xs[i]), DstY: float32(ys[i])})
		if i >= 2 {
			s.indices = append(s.indices, 0, uint16(i-1), uint16(i))
		}
	}
}

// StrokePolygon outlines a closed polygon, e.g. the face under the cursor.
func (s *Surface) StrokePolygon(xs, ys []float64, width float32, c color.RGBA) {
	if len(xs) < 2 || len(xs) != len(ys) {
		return
	}
	var path vector.Path
	path.MoveTo(float32(xs[0]), float32(ys[0]))
	for i := 1; i < len(xs); i++ {
		path.LineTo(float32(xs[i]), float32(ys[i]))
	}
	path.Close()
	s.vertices, s.indices = path.AppendVerticesAndIndicesForStroke(
		s.vertices[:0], s.indices[:0], &vector.StrokeOptions{Width: width})
	s.drawSolid(c)
}

// drawSolid paints the buffered triangles in one colour, sampling the
// single white pixel.
func (s *Surface) drawSolid(c color.RGBA) {
	s.tint(c)
	s.screen.DrawTriangles(s.vertices, s.indices, whiteSub, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (s *Surface) tint(c color.RGBA) {
	r, g, b, a := float32(c.R)/0xff, float32(c.G)/0xff, float32(c.B)/0xff, float32(c.A)/0xff
	for i := range s.vertices {
		v := &s.vertices[i]
		v.SrcX, v.SrcY = 1, 1
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = r, g, b, a
	}
}

func (s *Surface) DrawImage(img image.Image, x, y, w, h int) {
	tex, ok := s.textures[img]
	if !ok {
		tex = ebiten.NewImageFromImage(img)
		s.textures[img] = tex
	}
	b := tex.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	op.GeoM.Translate(float64(x), float64(y))
	op.Filter = ebiten.FilterLinear
	s.screen.DrawImage(tex, op)
}

// DrawText draws text with its baseline starting at x, y.
func (s *Surface) DrawText(str string, x, y float64, c color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-labelFace.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.screen, str, labelFace, op)
}

func (s *Surface) DrawLine(x1, y1, x2, y2 float64, c color.RGBA) {
	vector.StrokeLine(s.screen, float32(x1), float32(y1), float32(x2), float32(y2), lineWidth, c, true)
}
