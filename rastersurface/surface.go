// Package rastersurface draws render passes into an in-memory RGBA image.
package rastersurface

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/mitchellh/go-homedir"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const lineWidth = 1

// Surface is an isotrix.Surface backed by an *image.RGBA.
type Surface struct {
	img    *image.RGBA
	raster *vector.Rasterizer
}

func New(width, height int) *Surface {
	return &Surface{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		raster: vector.NewRasterizer(width, height),
	}
}

func (s *Surface) Image() *image.RGBA {
	return s.img
}

func (s *Surface) Fill(c color.RGBA) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (s *Surface) FillPolygon(xs, ys []float64, c color.RGBA) {
	if len(xs) < 3 || len(xs) != len(ys) {
		return
	}
	b := s.img.Bounds()
	s.raster.Reset(b.Dx(), b.Dy())
	s.raster.DrawOp = draw.Over
	s.raster.MoveTo(float32(xs[0]), float32(ys[0]))
	for i := 1; i < len(xs); i++ {
		s.raster.LineTo(float32(xs[i]), float32(ys[i]))
	}
	s.raster.ClosePath()
	s.raster.Draw(s.img, b, image.NewUniform(c), image.Point{})
}

// DrawImage scales the image to w by h and draws it over the surface.
func (s *Surface) DrawImage(img image.Image, x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	scaled := img
	if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
		scaled = transform.Resize(img, w, h, transform.Linear)
	}
	dst := image.Rect(x, y, x+w, y+h)
	draw.Draw(s.img, dst, scaled, scaled.Bounds().Min, draw.Over)
}

// DrawText draws text with its baseline starting at x, y.
func (s *Surface) DrawText(text string, x, y float64, c color.RGBA) {
	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(x), int(y)),
	}
	d.DrawString(text)
}

// DrawLine fills a thin quad along the segment.
func (s *Surface) DrawLine(x1, y1, x2, y2 float64, c color.RGBA) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// half the line width along the segment normal
	nx, ny := -dy/length*lineWidth/2, dx/length*lineWidth/2
	s.FillPolygon(
		[]float64{x1 + nx, x2 + nx, x2 - nx, x1 - nx},
		[]float64{y1 + ny, y2 + ny, y2 - ny, y1 - ny},
		c,
	)
}

// SavePNG writes the surface to a PNG file.
func (s *Surface) SavePNG(path string) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("could not expand output path %s: %w", path, err)
	}
	if err := imgio.Save(path, s.img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("could not save %s: %w", path, err)
	}
	return nil
}
