// Package scene holds the per-entry scene: imported objects, one sun and the
// active camera.
package scene

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"pz-icon-renderer/internal/fbx"
	"pz-icon-renderer/internal/mesh"
	"pz-icon-renderer/internal/xfile"
)

type Scene struct {
	Objects []*Object
	Sun     *Sun
	Camera  *Camera
}

func New() *Scene {
	return &Scene{}
}

// Clear removes every object, the light and the camera.
func (s *Scene) Clear() {
	s.Objects = nil
	s.Sun = nil
	s.Camera = nil
}

// Add appends objects to the scene.
func (s *Scene) Add(objs ...*Object) {
	s.Objects = append(s.Objects, objs...)
}

// Import loads a mesh file into the scene and returns the new objects.
func (s *Scene) Import(path string) ([]*Object, error) {
	objs, err := ImportFile(path)
	if err != nil {
		return nil, err
	}
	s.Add(objs...)
	return objs, nil
}

// ImportFile decodes an .fbx or .x file into unattached objects.
func ImportFile(path string) ([]*Object, error) {
	var (
		inst []mesh.Instance
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".fbx":
		inst, err = fbx.Load(path)
	case ".x":
		inst, err = xfile.Load(path)
	default:
		return nil, errors.Errorf("scene: no importer for %q", ext)
	}
	if err != nil {
		return nil, err
	}

	objs := make([]*Object, len(inst))
	for i, in := range inst {
		objs[i] = NewObject(in)
	}
	return objs, nil
}
