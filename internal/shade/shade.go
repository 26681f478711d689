// Package shade colors a height field for display: a precomputed water
// palette indexed by height, lit with a Lambert term from the surface normal.
package shade

import (
	"fmt"
	"math"

	"github.com/crazy3lf/colorconv"

	"wavegrid/internal/wave"
)

const (
	paletteSize = 512
	// hue sweep from deep water to crest
	troughHue = 232.0
	crestHue  = 178.0
	ambient   = 0.25
)

// RGB is a color with components in [0, 1].
type RGB struct {
	R, G, B float64
}

// Palette maps heights in [-Range, Range] to water colors.
type Palette struct {
	Range  float32
	colors [paletteSize]RGB
}

// NewPalette precomputes a palette spanning heights in [-rng, rng].
func NewPalette(rng float32) (*Palette, error) {
	if !(rng > 0) {
		return nil, fmt.Errorf("shade: palette range %v must be positive", rng)
	}
	p := &Palette{Range: rng}
	for i := range p.colors {
		f := float64(i) / (paletteSize - 1)
		hue := troughHue + (crestHue-troughHue)*f
		sat := 0.85 - 0.55*f
		val := 0.35 + 0.6*f
		r, g, b, err := colorconv.HSVToRGB(hue, sat, val)
		if err != nil {
			return nil, fmt.Errorf("shade: palette entry %d: %w", i, err)
		}
		p.colors[i] = RGB{float64(r) / 255, float64(g) / 255, float64(b) / 255}
	}
	return p, nil
}

// Color returns the unlit color for a height. Heights outside the range
// clamp to the end colors.
func (p *Palette) Color(height float32) RGB {
	f := (float64(height)/float64(p.Range) + 1) * 0.5
	f = math.Max(0, math.Min(1, f))
	return p.colors[int(f*(paletteSize-1)+0.5)]
}

// Shade returns the lit color for a height and surface normal under a
// directional light pointing from the surface toward the light.
func (p *Palette) Shade(height float32, normal, light wave.Vec3) RGB {
	c := p.Color(height)
	k := ambient + (1-ambient)*float64(Lambert(normal, light))
	return RGB{c.R * k, c.G * k, c.B * k}
}

// Lambert returns the clamped cosine between normal and light.
func Lambert(normal, light wave.Vec3) float32 {
	d := wave.Dot(wave.Normalize(normal), wave.Normalize(light))
	if d < 0 {
		return 0
	}
	return d
}
