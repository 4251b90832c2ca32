package batch

import (
	"sync"

	"pz-icon-renderer/internal/material"
	"pz-icon-renderer/internal/scene"
	"pz-icon-renderer/internal/texture"
)

// WheelSource imports the shared wheel mesh and texture once per run.
// Vehicles attach copies of the loaded objects.
type WheelSource struct {
	MeshPath    string
	TexturePath string

	once sync.Once
	objs []*scene.Object
	mat  *material.Material
	err  error
}

// Load returns the wheel objects and material. The material is nil when the
// texture cannot be read; the objects then render with the default
// material.
func (w *WheelSource) Load(cache *texture.Cache) ([]*scene.Object, *material.Material, error) {
	w.once.Do(func() {
		w.objs, w.err = scene.ImportFile(w.MeshPath)
		if w.err != nil {
			return
		}
		for _, o := range w.objs {
			if o.Mesh != nil && !o.Mesh.HasUVs() {
				o.Mesh.SmartProject()
			}
		}

		img, err := cache.Load(w.TexturePath)
		if err != nil {
			logger.Warningf("failed to load wheel texture: %v", err)
			return
		}
		w.mat = material.Textured("WheelMat", img)
	})
	return w.objs, w.mat, w.err
}
