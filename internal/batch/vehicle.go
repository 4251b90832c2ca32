package batch

import (
	"context"
	"image"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"pz-icon-renderer/internal/manifest"
	"pz-icon-renderer/internal/material"
	"pz-icon-renderer/internal/mathutil"
	"pz-icon-renderer/internal/paint"
	"pz-icon-renderer/internal/scene"
	"pz-icon-renderer/internal/texture"
)

// Vehicle camera ring.
var vehicleOrbit = scene.Orbit{Radius: 12, Height: 2.7, Pitch: 75}

func renderVehicle(ctx context.Context, cfg Config, item manifest.Item) Result {
	name := manifest.IDType(item.ID)
	res := Result{ID: item.ID, Name: name}

	if item.Mesh == "" || item.Texture == "" {
		logger.Warningf("Missing mesh or texture for %s, skipping.", item.ID)
		res.Skipped = true
		return res
	}

	logger.Infof("Rendering: %s", name)
	s, err := buildVehicle(cfg, item, name)
	if err != nil {
		logger.Errorf("Failed to import or apply texture: %s: %v", name, err)
		res.Error = err.Error()
		return res
	}

	s.Sun = &scene.Sun{
		Location: mgl64.Vec3{5, 0, 5},
		Rotation: mathutil.EulerDeg(0, 10, 0),
		Energy:   2,
	}

	settings := cfg.Settings
	camIndex := item.CameraIndex(settings.CamIndex)
	lens := item.CameraLens(settings.Lens)
	count := Count(settings.Single)

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			res.Error = err.Error()
			return res
		}
		s.Camera = vehicleOrbit.Camera(camIndex, i, lens)

		file := FileName(name, i, settings.Format)
		if err := renderFrame(s, settings, file); err != nil {
			res.Error = err.Error()
			return res
		}
		res.Images = append(res.Images, file)
		logSaved(name, file, i, count)
	}
	return res
}

func buildVehicle(cfg Config, item manifest.Item, name string) (*scene.Scene, error) {
	settings := cfg.Settings
	s := scene.New()

	objs, err := importMesh(cfg, s, item.MeshPath(), ".FBX", ".fbx")
	if err != nil {
		return nil, err
	}
	for _, o := range objs {
		o.ApplyOffset(item.LocationOffset(), item.RotationOffset())
	}

	img, err := loadTexture(cfg, item.Texture)
	if err != nil {
		return nil, err
	}

	colour := paint.VehicleColour(entryRand(settings.Seed, item.ID))
	logger.Infof("[%s] Generated colour: (%.4f, %.4f, %.4f, %.1f)", name, colour.R, colour.G, colour.B, colour.A)

	for _, o := range objs {
		if o.Mesh == nil {
			continue
		}
		if !o.Mesh.HasUVs() {
			o.Mesh.SmartProject()
		}
		o.Material = material.Painted("AutoMat", img, colour)
		o.Smooth = true
	}

	if scene.SkipWheels(name) {
		logger.Infof("Skipping wheels for burnt variant: %s", name)
		return s, nil
	}

	sockets, err := item.Wheels()
	if err != nil {
		return nil, err
	}
	if len(sockets) == 0 {
		return s, nil
	}

	wheel, mat, err := cfg.Wheel.Load(cfg.Textures)
	if err != nil {
		logger.Warningf("Failed to import wheels for %s: %v", name, err)
		return s, nil
	}

	ss := make([]scene.Socket, len(sockets))
	for i, w := range sockets {
		ss[i] = scene.Socket{Name: w.Name, Position: mgl64.Vec3(w.Position), Scale: w.Scale}
	}
	s.AttachWheels(name, ss, wheel, mat)
	return s, nil
}

// importMesh resolves rel under the mesh directory and imports it into s.
func importMesh(cfg Config, s *scene.Scene, rel string, exts ...string) ([]*scene.Object, error) {
	path, ok := cfg.Index.Resolve(cfg.Settings.MeshDir, rel, exts...)
	if !ok {
		return nil, errors.Errorf("batch: model not found for %s", rel)
	}
	return s.Import(path)
}

// loadTexture resolves rel under the textures directory and decodes it.
func loadTexture(cfg Config, rel string) (*image.NRGBA, error) {
	path, ok := cfg.Index.Resolve(cfg.Settings.TextureDir, rel, texture.Extensions...)
	if !ok {
		return nil, errors.Errorf("batch: texture not found for %s", rel)
	}
	return cfg.Textures.Load(path)
}

func logSaved(name, file string, i, count int) {
	if count == 1 {
		logger.Infof("[%s] Render saved: %s", name, file)
		return
	}
	logger.Infof("[%s] Render %d/%d saved: %s", name, i+1, count, file)
}
