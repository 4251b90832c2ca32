package batch

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"github.com/pkg/errors"

	"pz-icon-renderer/internal/config"
	"pz-icon-renderer/internal/postprocess"
	"pz-icon-renderer/internal/raster"
	"pz-icon-renderer/internal/scene"
)

// FileName returns the sprite name of camera step i: the first render is
// <name>_Model, the others <name>_<i>_Model.
func FileName(name string, i int, f config.Format) string {
	if i == 0 {
		return fmt.Sprintf("%s_Model%s", name, f.Ext())
	}
	return fmt.Sprintf("%s_%d_Model%s", name, i, f.Ext())
}

// Count returns the number of camera steps rendered per entry.
func Count(single bool) int {
	if single {
		return 1
	}
	return 8
}

// renderFrame renders the scene through its current camera and writes the
// downsampled sprite.
func renderFrame(s *scene.Scene, settings config.Config, file string) error {
	img, err := raster.Render(s, settings.DimX, settings.DimY, settings.Engine.Supersample())
	if err != nil {
		return err
	}
	img = postprocess.Downsample(img, settings.DimX, settings.DimY)
	if !postprocess.Opaque(img) {
		logger.Warningf("%s is empty: nothing in view", file)
	}
	return writeImage(filepath.Join(settings.OutputDir, file), img, settings.Format)
}

func writeImage(path string, img *image.NRGBA, format config.Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "batch: create %s", filepath.Dir(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "batch: create %s", path)
	}
	defer f.Close()

	switch format {
	case config.WebP:
		err = nativewebp.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return errors.Wrapf(err, "batch: encode %s", path)
	}
	return f.Close()
}
