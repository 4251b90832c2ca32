package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := Default(Vehicles)
	assert.Equal(t, 800, v.DimX)
	assert.Equal(t, 800, v.DimY)
	assert.Equal(t, Cycles, v.Engine)
	assert.Equal(t, 50.0, v.Lens)
	assert.True(t, v.Single)

	m := Default(Models)
	assert.Equal(t, 400, m.DimX)
	assert.Equal(t, Eevee, m.Engine)
	assert.Equal(t, 600.0, m.Lens)
	assert.Equal(t, 0, m.CamIndex)
	assert.Equal(t, "model_data.json", m.Manifest)
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"media_dir": "/games/pz/media", "dim_x": 256, "is_single": false}`), 0o644))

	cfg, err := Load(path, Models)
	require.NoError(t, err)
	assert.Equal(t, "/games/pz/media", cfg.MediaDir)
	assert.Equal(t, 256, cfg.DimX)
	assert.Equal(t, 400, cfg.DimY)
	assert.False(t, cfg.Single)
	assert.Equal(t, Models, cfg.Kind)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"), Models)
	assert.ErrorContains(t, err, "config: read")
}

func TestResolvePaths(t *testing.T) {
	media := t.TempDir()
	cfg := Default(Vehicles)
	cfg.Resolve(Flags{MediaDir: media, Workers: 3})

	assert.Equal(t, filepath.Join(media, "models_X"), cfg.MeshDir)
	assert.Equal(t, filepath.Join(media, "textures"), cfg.TextureDir)
	assert.Equal(t, filepath.Join(media, "models_X", "WorldItems", "Wheel.FBX"), cfg.WheelMesh)
	assert.Equal(t, filepath.Join(media, "textures", "Vehicles", "vehicle_wheel.png"), cfg.WheelTexture)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, 3, cfg.Workers)
	require.NoError(t, cfg.Validate())
}

func TestApplyArgs(t *testing.T) {
	cfg := Default(Models)
	err := cfg.ApplyArgs([]string{
		"is_single=False",
		"render_engine=CYCLES",
		"dim=512",
		"dim_y=256",
		"lens=300",
		"cam=3",
		"models=Base.Axe, ,Base.Pan",
		"models=Base.Mug",
		"seed=42",
		"format=webp",
		"bogus=1",
		"noequals",
	}, DefaultPresets())
	require.NoError(t, err)

	assert.False(t, cfg.Single)
	assert.Equal(t, Cycles, cfg.Engine)
	assert.Equal(t, 512, cfg.DimX)
	assert.Equal(t, 256, cfg.DimY)
	assert.Equal(t, 300.0, cfg.Lens)
	assert.Equal(t, 3, cfg.CamIndex)
	assert.Equal(t, []string{"Base.Axe", "Base.Pan", "Base.Mug"}, cfg.Models)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, WebP, cfg.Format)
}

func TestApplyArgsInvalidInteger(t *testing.T) {
	cfg := Default(Vehicles)
	assert.Error(t, cfg.ApplyArgs([]string{"dim=big"}, nil))
	assert.Error(t, cfg.ApplyArgs([]string{"cam=x"}, nil))
	assert.Error(t, cfg.ApplyArgs([]string{"render_engine=POVRAY"}, nil))
}

func TestPresetAppliedLast(t *testing.T) {
	cfg := Default(Models)
	require.NoError(t, cfg.ApplyArgs([]string{"preset=small-2", "lens=10", "cam=1"}, DefaultPresets()))
	assert.Equal(t, 1000.0, cfg.Lens)
	assert.Equal(t, 4, cfg.CamIndex)

	cfg = Default(Models)
	require.NoError(t, cfg.ApplyArgs([]string{"preset=enormous-9", "lens=10"}, DefaultPresets()))
	assert.Equal(t, 10.0, cfg.Lens)
}

func TestDefaultPresetTable(t *testing.T) {
	p := DefaultPresets()
	assert.Len(t, p, 20)
	for name, want := range map[string][2]float64{
		"huge-0":  {200, 0},
		"large-1": {400, 2},
		"med-2":   {600, 4},
		"tiny-3":  {1600, 6},
	} {
		require.Contains(t, p, name)
		assert.Equal(t, want[0], p[name].FocalLength, name)
		assert.Equal(t, int(want[1]), *p[name].CamIndex, name)
	}
}

func TestLoadPresetsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
thumb:
  dimension: 128
  is_single: false
  render_engine: workbench
med-0:
  focal_length: 700
  cam_index: 1
`), 0o644))

	extra, err := LoadPresets(path)
	require.NoError(t, err)
	all := DefaultPresets().Merge(extra)

	cfg := Default(Vehicles)
	require.NoError(t, cfg.ApplyArgs([]string{"preset=thumb"}, all))
	assert.Equal(t, 128, cfg.DimX)
	assert.Equal(t, 128, cfg.DimY)
	assert.False(t, cfg.Single)
	assert.Equal(t, Workbench, cfg.Engine)

	cfg = Default(Models)
	require.NoError(t, cfg.ApplyArgs([]string{"preset=med-0"}, all))
	assert.Equal(t, 700.0, cfg.Lens)
	assert.Equal(t, 1, cfg.CamIndex)
}

func TestEngineAndFormat(t *testing.T) {
	e, err := ParseEngine("blender_eevee_next")
	require.NoError(t, err)
	assert.Equal(t, Eevee, e)
	assert.Equal(t, 2, Eevee.Supersample())
	assert.Equal(t, 4, Cycles.Supersample())
	assert.Equal(t, 1, Workbench.Supersample())

	f, err := ParseFormat("PNG")
	require.NoError(t, err)
	assert.Equal(t, ".png", f.Ext())
	assert.Equal(t, ".webp", WebP.Ext())
	_, err = ParseFormat("gif")
	assert.Error(t, err)
}

func TestValidateNormalisesNames(t *testing.T) {
	tests := []struct {
		json   string
		engine Engine
		scale  int
		format Format
	}{
		{`{"render_engine": "cycles"}`, Cycles, 4, PNG},
		{`{"render_engine": "BLENDER_EEVEE_NEXT"}`, Eevee, 2, PNG},
		{`{"render_engine": "workbench", "format": "WEBP"}`, Workbench, 1, WebP},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(tt.json), 0o644))

		cfg, err := Load(path, Vehicles)
		require.NoError(t, err)
		require.NoError(t, cfg.Validate(), tt.json)
		assert.Equal(t, tt.engine, cfg.Engine, tt.json)
		assert.Equal(t, tt.scale, cfg.Engine.Supersample(), tt.json)
		assert.Equal(t, tt.format, cfg.Format, tt.json)
	}

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"format": "WEBP"}`), 0o644))
	cfg, err := Load(path, Models)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ".webp", cfg.Format.Ext())
}
