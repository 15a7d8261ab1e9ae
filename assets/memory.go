package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/smasonuk/isotrix"
)

// Memory resolves names from images held in memory. Names never added are
// reported as not image backed.
type Memory struct {
	images map[string]image.Image
	backed map[string]bool
}

func NewMemory() *Memory {
	return &Memory{
		images: make(map[string]image.Image),
		backed: make(map[string]bool),
	}
}

func (m *Memory) Add(name string, img image.Image) {
	m.images[name] = img
	m.backed[name] = true
}

// Expect marks a name as image backed without providing an image, so that
// asking for it fails.
func (m *Memory) Expect(name string) {
	m.backed[name] = true
}

func (m *Memory) IsImageBacked(name string) bool {
	return m.backed[name]
}

func (m *Memory) ImageForName(name string) (image.Image, error) {
	img, ok := m.images[name]
	if !ok {
		return nil, fmt.Errorf("no image %q: %w", name, isotrix.ErrUnknownResource)
	}
	return img, nil
}

// Solid is a w by h image of one colour.
func Solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}
