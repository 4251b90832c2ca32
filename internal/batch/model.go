package batch

import (
	"context"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"pz-icon-renderer/internal/manifest"
	"pz-icon-renderer/internal/material"
	"pz-icon-renderer/internal/scene"
)

// Model camera ring. The camera sits higher than for vehicles.
var modelOrbit = scene.Orbit{Radius: 12, Height: 3.215, Pitch: 75}

func renderModel(ctx context.Context, cfg Config, item manifest.Item) Result {
	name := item.ID
	res := Result{ID: item.ID, Name: name}

	if item.Mesh == "" {
		logger.Warningf("Missing mesh for %s, skipping.", item.ID)
		res.Skipped = true
		return res
	}

	logger.Infof("Rendering: %s", name)
	s, err := buildModel(cfg, item)
	if err != nil {
		logger.Errorf("Failed to import or apply texture: %s: %v", name, err)
		res.Error = err.Error()
		return res
	}

	sun := &scene.Sun{Location: mgl64.Vec3{0, 0, 5}, Energy: 2}
	s.Sun = sun

	settings := cfg.Settings
	camIndex := item.CameraIndex(settings.CamIndex)
	lens := item.CameraLens(settings.Lens)
	count := Count(settings.Single)

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			res.Error = err.Error()
			return res
		}
		s.Camera = modelOrbit.Camera(camIndex, i, lens)
		// The sun turns with the camera so every angle is lit alike.
		sun.Rotation = mgl64.Vec3{mgl64.DegToRad(45), 0, mgl64.DegToRad(scene.Angle(camIndex, i)) + math.Pi/2}

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

func buildModel(cfg Config, item manifest.Item) (*scene.Scene, error) {
	s := scene.New()

	objs, err := importMesh(cfg, s, item.MeshPath(), ".FBX", ".fbx", ".x", ".X")
	if err != nil {
		return nil, err
	}
	for _, o := range objs {
		o.ApplyOffset(item.LocationOffset(), item.RotationOffset())
	}
	for _, o := range objs {
		o.Center()
	}

	img, err := loadTexture(cfg, item.ModelTexture())
	if err != nil {
		return nil, err
	}
	for _, o := range objs {
		if o.Mesh == nil {
			continue
		}
		if !o.Mesh.HasUVs() {
			o.Mesh.SmartProject()
		}
		o.Material = material.Textured("AutoMat", img)
	}
	return s, nil
}
