package batch

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/binzume/modelconv/fbx"
	"github.com/binzume/modelconv/geom"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pz-icon-renderer/internal/config"
	"pz-icon-renderer/internal/manifest"
)

// writeCube saves a binary FBX file holding one cube model of side 2 file
// units, scaled by the model's Lcl Scaling.
func writeCube(t *testing.T, path, name string, scaling *geom.Vector3) {
	t.Helper()
	doc := fbx.NewDocument()
	model := fbx.NewModel(name, "Mesh")
	model.SetScaling(scaling)
	doc.AddObject(model)

	g := fbx.NewGeometry(name+"Mesh", []*geom.Vector3{
		{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
	}, [][]int{
		{0, 3, 2, 1}, {4, 5, 6, 7}, {0, 1, 5, 4},
		{1, 2, 6, 5}, {2, 3, 7, 6}, {3, 0, 4, 7},
	})
	doc.AddObject(g)
	doc.AddConnection(doc.Scene, model)
	doc.AddConnection(model, g)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	w, err := os.Create(path)
	require.NoError(t, err)
	fbx.Write(w, doc)
	require.NoError(t, w.Close())
}

const plank = `xof 0303txt 0032
Frame Plank {
  FrameTransformMatrix {
    1.0,0.0,0.0,0.0,
    0.0,1.0,0.0,0.0,
    0.0,0.0,1.0,0.0,
    3.0,0.0,0.0,1.0;;
  }
  Mesh PlankMesh {
    4;
    -0.5;0.0;-0.5;,
    0.5;0.0;-0.5;,
    0.5;0.0;0.5;,
    -0.5;0.0;0.5;;
    1;
    4;0,1,2,3;;
    MeshTextureCoords {
      4;
      0.0;0.0;,
      1.0;0.0;,
      1.0;1.0;,
      0.0;1.0;;
    }
  }
}
`

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func writeTexture(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

// mediaDir lays out a minimal game media folder.
func mediaDir(t *testing.T) string {
	media := t.TempDir()
	models := filepath.Join(media, "models_X")
	textures := filepath.Join(media, "textures")

	writeCube(t, filepath.Join(models, "Vehicles_Van.fbx"), "Body", &geom.Vector3{X: 100, Y: 100, Z: 100})
	writeCube(t, filepath.Join(models, "WorldItems", "Wheel.FBX"), "Wheel", &geom.Vector3{X: 30, Y: 30, Z: 30})
	writeFile(t, filepath.Join(models, "WorldItems", "Plank.X"), []byte(plank))
	writeFile(t, filepath.Join(models, "WorldItems", "Broken.X"), []byte("xof 0303txt 0032\nMesh M {3;0;0;0;,1;0;0;,0;1;0;;1;-1;;}"))

	// Half transparent so the paint shows through.
	writeTexture(t, filepath.Join(textures, "Vehicles", "Vehicle_Van.png"), color.NRGBA{200, 200, 200, 128})
	writeTexture(t, filepath.Join(textures, "Vehicles", "vehicle_wheel.png"), color.NRGBA{20, 20, 20, 255})
	writeTexture(t, filepath.Join(textures, "WorldItems", "Plank.png"), color.NRGBA{150, 100, 50, 255})
	return media
}

func settings(t *testing.T, kind config.Kind, media string) config.Config {
	cfg := config.Default(kind)
	cfg.Resolve(config.Flags{MediaDir: media, OutputDir: t.TempDir(), Workers: 2})
	cfg.DimX, cfg.DimY = 24, 24
	cfg.Engine = config.Workbench
	return cfg
}

func items(t *testing.T, js string) []manifest.Item {
	m, err := manifest.Parse([]byte(js))
	require.NoError(t, err)
	return m.Items
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func hasOpaquePixel(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
				return true
			}
		}
	}
	return false
}

func TestRunVehicles(t *testing.T) {
	media := mediaDir(t)
	cfg := NewConfig(settings(t, config.Vehicles, media))
	cfg.Settings.Single = false
	cfg.Progress = 0

	results := Run(context.Background(), cfg, items(t, `{
		"Base.Van": {
			"mesh": "Vehicles_Van|Body",
			"texture": "vehicles/vehicle_van",
			"camera": {"lens": 200},
			"wheel": {"FrontLeft": [0.9, 1.2, -0.5], "RearRight": [-0.9, -1.2, -0.5, 1.2]}
		},
		"Base.VanBurnt": {"mesh": "Vehicles_Van", "texture": "Vehicles/Vehicle_Van", "wheel": {"FrontLeft": [1, 1, 0]}},
		"Base.NoTexture": {"mesh": "Vehicles_Van"},
		"Base.Ghost": {"mesh": "Vehicles_Ghost", "texture": "Vehicles/Vehicle_Van"}
	}`))
	require.Len(t, results, 4)

	van := results[0]
	require.True(t, van.Success(), van.Error)
	assert.Equal(t, "Van", van.Name)
	require.Len(t, van.Images, 8)
	assert.Equal(t, "Van_Model.png", van.Images[0])
	assert.Equal(t, "Van_7_Model.png", van.Images[7])

	for _, name := range van.Images {
		img := decodePNG(t, filepath.Join(cfg.Settings.OutputDir, name))
		assert.Equal(t, image.Rect(0, 0, 24, 24), img.Bounds())
		assert.True(t, hasOpaquePixel(img), name)
	}

	assert.True(t, results[1].Success(), results[1].Error)
	assert.True(t, results[2].Skipped)
	assert.Contains(t, results[3].Error, "model not found")

	ok, skipped, failed := Summary(results)
	assert.Equal(t, [3]int{2, 1, 1}, [3]int{ok, skipped, failed})

	path := filepath.Join(cfg.Settings.OutputDir, "manifest.json")
	require.NoError(t, WriteManifest(path, results))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var listed []ManifestEntry
	require.NoError(t, jsoniter.Unmarshal(data, &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "Base.Van", listed[0].ID)
	assert.Equal(t, "VanBurnt_Model.png", listed[1].Images[0])
}

func TestRunModels(t *testing.T) {
	media := mediaDir(t)
	set := settings(t, config.Models, media)
	set.Lens = 400
	set.Format = config.WebP
	cfg := NewConfig(set)
	cfg.Progress = 0

	results := Run(context.Background(), cfg, items(t, `{
		"Base.Plank": {"mesh": "WorldItems/Plank", "texture": "WorldItems/Plank", "rotation": [0, 0, 45]},
		"Base.Missing": {"texture": "WorldItems/Plank"},
		"Base.Untextured": {"mesh": "WorldItems/Plank", "texture": "WorldItems/Nothing"},
		"Base.Broken": {"mesh": "WorldItems/Broken", "texture": "WorldItems/Plank"}
	}`))
	require.Len(t, results, 4)

	plank := results[0]
	require.True(t, plank.Success(), plank.Error)
	assert.Equal(t, []string{"Base.Plank_Model.webp"}, plank.Images)
	info, err := os.Stat(filepath.Join(set.OutputDir, "Base.Plank_Model.webp"))
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.True(t, results[1].Skipped)
	assert.Contains(t, results[2].Error, "texture not found")
	assert.Contains(t, results[3].Error, "bad corner count")
}

func TestRunCanceled(t *testing.T) {
	media := mediaDir(t)
	cfg := NewConfig(settings(t, config.Models, media))
	cfg.Progress = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := Run(ctx, cfg, items(t, `{"Base.Plank": {"mesh": "WorldItems/Plank"}}`))
	require.Len(t, results, 1)
	assert.Equal(t, context.Canceled.Error(), results[0].Error)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "CarNormal_Model.png", FileName("CarNormal", 0, config.PNG))
	assert.Equal(t, "CarNormal_3_Model.png", FileName("CarNormal", 3, config.PNG))
	assert.Equal(t, "Base.Axe_Model.webp", FileName("Base.Axe", 0, config.WebP))
	assert.Equal(t, 1, Count(true))
	assert.Equal(t, 8, Count(false))
}

func TestEntryRandDeterministic(t *testing.T) {
	a := entryRand(7, "Base.Van").Int63()
	b := entryRand(7, "Base.Van").Int63()
	c := entryRand(7, "Base.Car").Int63()
	d := entryRand(8, "Base.Van").Int63()
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
}
