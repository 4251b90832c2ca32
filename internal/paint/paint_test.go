package paint

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inBand(c HSV) bool {
	between := func(v float64, r [2]float64) bool { return v >= r[0] && v <= r[1] }
	for _, b := range bands {
		if between(c.H, b.hue) && between(c.S, b.saturation) && between(c.V, b.value) {
			return true
		}
	}
	return false
}

func TestVehicleHSVStaysInBands(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	whites := 0
	for i := 0; i < 2000; i++ {
		c := VehicleHSV(rng)
		require.True(t, inBand(c), "colour %+v outside every band", c)
		if c.H == 0.15 {
			whites++
		}
	}
	// the white band covers 35% of rolls
	assert.InDelta(t, 700, whites, 120)
}

func TestVehicleColourDeterministic(t *testing.T) {
	a := VehicleColour(rand.New(rand.NewSource(7)))
	b := VehicleColour(rand.New(rand.NewSource(7)))
	assert.Equal(t, a, b)
	assert.Equal(t, 1.0, a.A)
}

func TestToRGB(t *testing.T) {
	red := ToRGB(HSV{0, 1, 0.5})
	assert.Equal(t, 0.5, red.R)
	assert.Equal(t, 0.0, red.G)
	assert.Equal(t, 0.0, red.B)

	white := ToRGB(HSV{0.15, 0.1, 0.8})
	assert.InDelta(t, 0.8, white.R, 1e-12)
	assert.InDelta(t, 0.792, white.G, 1e-12)
	assert.InDelta(t, 0.72, white.B, 1e-12)

	odd := ToRGB(HSV{0.5, 1, 1.0 / 3})
	assert.Equal(t, 0.3333, odd.G, "rounded to four decimals")
}
