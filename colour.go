package isotrix

import (
	"image/color"
	"math/rand"

	"github.com/aquilax/go-perlin"
)

// ColourSource picks the colour of a newly made trixel.
type ColourSource interface {
	Colour(t Trixition) color.RGBA
}

// ColourFunc adapts a function to ColourSource.
type ColourFunc func(t Trixition) color.RGBA

func (f ColourFunc) Colour(t Trixition) color.RGBA { return f(t) }

// SolidColour gives every trixel the same colour.
type SolidColour color.RGBA

func (c SolidColour) Colour(Trixition) color.RGBA { return color.RGBA(c) }

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func deviate(base color.RGBA, dr, dg, db int) color.RGBA {
	return color.RGBA{
		R: uint8(clamp(int(base.R)+dr, 0, 255)),
		G: uint8(clamp(int(base.G)+dg, 0, 255)),
		B: uint8(clamp(int(base.B)+db, 0, 255)),
		A: 255,
	}
}

// RandomColours deviates each channel of a base colour by a uniform random
// amount in [-Deviation, Deviation]. The sequence repeats after Reset.
type RandomColours struct {
	Base      color.RGBA
	Deviation int
	seed      int64
	rnd       *rand.Rand
}

func NewRandomColours(base color.RGBA, deviation int, seed int64) *RandomColours {
	return &RandomColours{
		Base:      base,
		Deviation: deviation,
		seed:      seed,
		rnd:       rand.New(rand.NewSource(seed)),
	}
}

func (r *RandomColours) Reset() {
	r.rnd = rand.New(rand.NewSource(r.seed))
}

func (r *RandomColours) next() int {
	if r.Deviation <= 0 {
		return 0
	}
	return r.rnd.Intn(r.Deviation*2+1) - r.Deviation
}

func (r *RandomColours) Colour(Trixition) color.RGBA {
	return deviate(r.Base, r.next(), r.next(), r.next())
}

// RandomBaseColour picks any fully saturated-range colour.
func (r *RandomColours) RandomBaseColour() color.RGBA {
	return color.RGBA{
		R: uint8(r.rnd.Intn(256)),
		G: uint8(r.rnd.Intn(256)),
		B: uint8(r.rnd.Intn(256)),
		A: 255,
	}
}

// NoiseColours varies a base colour smoothly across the grid with perlin
// noise, so a trixel keeps its colour however often the floor is rebuilt.
type NoiseColours struct {
	Base      color.RGBA
	Deviation int
	noise     *perlin.Perlin
}

const (
	noiseAlpha   = 2.
	noiseBeta    = 2.
	noiseOctaves = 3
	noiseScale   = 0.21
	// channel offsets keep r, g and b uncorrelated
	noiseChannelOffset = 97.3
)

func NewNoiseColours(base color.RGBA, deviation int, seed int64) *NoiseColours {
	return &NoiseColours{
		Base:      base,
		Deviation: deviation,
		noise:     perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed),
	}
}

func (n *NoiseColours) channel(t Trixition, c int) int {
	v := n.noise.Noise3D(
		float64(t.X)*noiseScale+float64(c)*noiseChannelOffset,
		float64(t.Y)*noiseScale,
		float64(t.Z)*noiseScale,
	)
	return clamp(int(v*float64(n.Deviation)*2), -n.Deviation, n.Deviation)
}

func (n *NoiseColours) Colour(t Trixition) color.RGBA {
	return deviate(n.Base, n.channel(t, 0), n.channel(t, 1), n.channel(t, 2))
}
