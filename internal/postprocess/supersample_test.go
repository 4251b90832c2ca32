package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDownsampleSize(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 80, 40))
	out := Downsample(img, 20, 10)
	assert.Equal(t, image.Rect(0, 0, 20, 10), out.Bounds())
	assert.Same(t, out, Downsample(out, 20, 10))
}

func TestDownsampleKeepsEdgeColour(t *testing.T) {
	// Left half opaque red, right half fully transparent black.
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 0, 0, 255})
		}
	}
	out := Downsample(img, 4, 4)

	edge := out.NRGBAAt(1, 2)
	assert.Greater(t, edge.A, uint8(0))
	assert.GreaterOrEqual(t, edge.R, uint8(250), "no dark halo at the alpha edge")
	assert.True(t, Opaque(out))
	assert.False(t, Opaque(image.NewNRGBA(image.Rect(0, 0, 2, 2))))
}
