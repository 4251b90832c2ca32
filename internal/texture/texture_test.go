package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestIndexResolveCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	want := filepath.Join(root, "Vehicles", "Vehicle_Wheel.png")
	writePNG(t, want, color.NRGBA{255, 0, 0, 255})

	idx := NewIndex()

	got, ok := idx.Resolve(root, "Vehicles/Vehicle_Wheel", ".png")
	require.True(t, ok)
	assert.Equal(t, want, got)

	got, ok = idx.Resolve(root, `vehicles\vehicle_wheel`, ".tga", ".png")
	require.True(t, ok)
	assert.Equal(t, want, got)

	_, ok = idx.Resolve(root, "vehicles/missing", ".png")
	assert.False(t, ok)

	_, ok = idx.Resolve(root, "vehicles", "")
	assert.False(t, ok, "directories are not files")
	assert.Positive(t, idx.Len())
}

func TestCacheLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skin.png")
	writePNG(t, path, color.NRGBA{10, 20, 30, 128})

	c := NewCache()
	img, err := c.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, color.NRGBA{10, 20, 30, 128}, img.NRGBAAt(1, 1))

	again, err := c.Load(path)
	require.NoError(t, err)
	assert.Same(t, img, again)

	_, err = c.Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
	assert.Equal(t, 2, c.Len())
}
