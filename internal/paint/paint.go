// Package paint reproduces the game's random vehicle paint selection.
package paint

import (
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"

	"pz-icon-renderer/internal/material"
)

// HSV is a colour in hue/saturation/value, each in [0,1].
type HSV struct {
	H, S, V float64
}

// band is one bucket of the paint roll: rolls below limit use these ranges.
type band struct {
	limit      int
	hue        [2]float64
	saturation [2]float64
	value      [2]float64
}

// Rolls 0-19 reds, 20-31 blues, 32-66 whites, 67-88 near blacks and the rest
// any saturated hue.
var bands = []band{
	{20, [2]float64{0, 0.03}, [2]float64{0.85, 1}, [2]float64{0.55, 0.85}},
	{32, [2]float64{0.55, 0.61}, [2]float64{0.85, 1}, [2]float64{0.65, 0.75}},
	{67, [2]float64{0.15, 0.15}, [2]float64{0, 0.1}, [2]float64{0.7, 0.8}},
	{89, [2]float64{0, 1}, [2]float64{0, 0.1}, [2]float64{0.1, 0.25}},
	{100, [2]float64{0, 1}, [2]float64{0.6, 0.75}, [2]float64{0.3, 0.7}},
}

// VehicleHSV rolls a paint colour.
func VehicleHSV(rng *rand.Rand) HSV {
	roll := rng.Intn(100)
	for _, b := range bands {
		if roll < b.limit {
			return HSV{
				H: uniform(rng, b.hue),
				S: uniform(rng, b.saturation),
				V: uniform(rng, b.value),
			}
		}
	}
	return HSV{}
}

// VehicleColour rolls a paint colour and converts it to RGB, rounded to four
// decimals, fully opaque.
func VehicleColour(rng *rand.Rand) material.Color {
	return ToRGB(VehicleHSV(rng))
}

// ToRGB converts to RGB rounded to four decimals with alpha 1.
func ToRGB(c HSV) material.Color {
	rgb := colorful.Hsv(c.H*360, c.S, c.V)
	return material.Color{
		R: round4(rgb.R),
		G: round4(rgb.G),
		B: round4(rgb.B),
		A: 1,
	}
}

func uniform(rng *rand.Rand, r [2]float64) float64 {
	if r[0] == r[1] {
		return r[0]
	}
	return r[0] + (r[1]-r[0])*rng.Float64()
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
