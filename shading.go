package isotrix

import (
	"image/color"
	"math"
)

// LightSource is a directional light. Direction is the way the light
// travels, so a face is fully lit when its normal points against it.
type LightSource struct {
	Intensity float64
	Direction Vector3
	Colour    color.RGBA
}

func NewLightSource(intensity float64, direction Vector3, col color.RGBA) LightSource {
	return LightSource{
		Intensity: intensity,
		Direction: direction.Normalize(),
		Colour:    col,
	}
}

// lambert is the diffuse factor of a light on a surface normal, never negative.
func (l LightSource) lambert(normal Vector3) float64 {
	return math.Max(0, -normal.Dot(l.Direction))
}

// ShadedColour lights the face colour with every light and adds the result
// to the ambient colour. Each light contributes the face colour filtered by
// the light colour, scaled by intensity and the lambert term.
func (f TrixelFace) ShadedColour(lights []LightSource, ambient color.RGBA) color.RGBA {
	return shade(f.Normal(), f.Parent.Colour, lights, ambient)
}

func shade(normal Vector3, surface color.RGBA, lights []LightSource, ambient color.RGBA) color.RGBA {
	r, g, b := float64(ambient.R), float64(ambient.G), float64(ambient.B)
	for _, l := range lights {
		k := l.lambert(normal) * l.Intensity
		if k == 0 {
			continue
		}
		r += k * float64(surface.R) * float64(l.Colour.R) / 255
		g += k * float64(surface.G) * float64(l.Colour.G) / 255
		b += k * float64(surface.B) * float64(l.Colour.B) / 255
	}

	return color.RGBA{
		R: uint8(clamp(int(math.Round(r)), 0, 255)),
		G: uint8(clamp(int(math.Round(g)), 0, 255)),
		B: uint8(clamp(int(math.Round(b)), 0, 255)),
		A: 255,
	}
}
