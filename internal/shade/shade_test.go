package shade

import (
	"testing"

	"wavegrid/internal/wave"
)

func TestLambert(t *testing.T) {
	tests := []struct {
		name          string
		normal, light wave.Vec3
		want          float32
	}{
		{"facing", wave.Vec3{Y: 1}, wave.Vec3{Y: 2}, 1},
		{"grazing", wave.Vec3{Y: 1}, wave.Vec3{X: 1}, 0},
		{"behind", wave.Vec3{Y: 1}, wave.Vec3{Y: -1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lambert(tt.normal, tt.light); got != tt.want {
				t.Errorf("Lambert(%v, %v) = %v, want %v", tt.normal, tt.light, got, tt.want)
			}
		})
	}
}

func TestPaletteOrdering(t *testing.T) {
	p, err := NewPalette(1)
	if err != nil {
		t.Fatal(err)
	}
	trough, rest, crest := p.Color(-1), p.Color(0), p.Color(1)
	lum := func(c RGB) float64 { return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B }
	if !(lum(trough) < lum(rest) && lum(rest) < lum(crest)) {
		t.Errorf("luminance not increasing with height: %v %v %v", lum(trough), lum(rest), lum(crest))
	}
	if p.Color(-50) != trough || p.Color(50) != crest {
		t.Error("out-of-range heights do not clamp to the end colors")
	}
	for _, c := range []RGB{trough, rest, crest} {
		if c.B < c.R {
			t.Errorf("water color %v is not blue-dominant", c)
		}
	}
}

func TestShadeDarkensSlopes(t *testing.T) {
	p, err := NewPalette(1)
	if err != nil {
		t.Fatal(err)
	}
	light := wave.Vec3{Y: 1}
	flat := p.Shade(0, wave.Vec3{Y: 1}, light)
	tilted := p.Shade(0, wave.Vec3{X: 1, Y: 1}, light)
	away := p.Shade(0, wave.Vec3{Y: -1}, light)
	if !(flat.B > tilted.B && tilted.B > away.B) {
		t.Errorf("blue channel flat %v tilted %v away %v, want decreasing", flat.B, tilted.B, away.B)
	}
	if base := p.Color(0); away.B != base.B*ambient {
		t.Errorf("unlit shade = %v, want ambient %v", away.B, base.B*ambient)
	}
}

func TestNewPaletteRejectsRange(t *testing.T) {
	if _, err := NewPalette(0); err == nil {
		t.Error("NewPalette(0) succeeded, want error")
	}
}
