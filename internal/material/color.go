package material

import "math"

// Color is a scene-linear RGBA value.
type Color struct {
	R, G, B, A float64
}

func Gray(v float64) Color {
	return Color{v, v, v, 1}
}

func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A}
}

// Mix blends a towards b by fac in [0,1].
func Mix(a, b Color, fac float64) Color {
	fac = math.Max(0, math.Min(1, fac))
	return Color{
		a.R + (b.R-a.R)*fac,
		a.G + (b.G-a.G)*fac,
		a.B + (b.B-a.B)*fac,
		a.A + (b.A-a.A)*fac,
	}
}

var srgbToLinear [256]float64

func init() {
	for i := range srgbToLinear {
		c := float64(i) / 255
		if c <= 0.04045 {
			srgbToLinear[i] = c / 12.92
		} else {
			srgbToLinear[i] = math.Pow((c+0.055)/1.055, 2.4)
		}
	}
}

// FromSRGB8 decodes 8-bit sRGB channels; alpha stays linear.
func FromSRGB8(r, g, b, a uint8) Color {
	return Color{srgbToLinear[r], srgbToLinear[g], srgbToLinear[b], float64(a) / 255}
}
