// Package config holds the paths and render settings of a batch run. Values
// are layered: per-kind defaults, optional JSON config file, CLI flags, then
// key=value tokens and presets.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// Kind selects the render pipeline.
type Kind string

const (
	Vehicles Kind = "vehicles"
	Models   Kind = "models"
)

// DefaultMediaDir is where a Steam install keeps the game's media folder.
const DefaultMediaDir = "C:/Program Files (x86)/Steam/steamapps/common/ProjectZomboid/media"

// Config holds all configurable paths and render settings.
type Config struct {
	Kind Kind `json:"-"`

	// Paths
	MediaDir     string `json:"media_dir"`
	MeshDir      string `json:"mesh_dir"`
	TextureDir   string `json:"texture_dir"`
	WheelMesh    string `json:"wheel_mesh"`
	WheelTexture string `json:"wheel_texture"`
	Manifest     string `json:"manifest"`
	OutputDir    string `json:"output_dir"`
	PresetsFile  string `json:"presets_file"`

	// Render settings
	Single   bool     `json:"is_single"`
	Engine   Engine   `json:"render_engine"`
	DimX     int      `json:"dim_x"`
	DimY     int      `json:"dim_y"`
	Lens     float64  `json:"lens"`
	CamIndex int      `json:"cam_index"`
	Models   []string `json:"models"`
	Preset   string   `json:"preset"`
	Seed     int64    `json:"seed"`

	// Output settings
	Format  Format `json:"format"`
	Workers int    `json:"workers"`
}

// Default returns the built-in settings for a pipeline.
func Default(kind Kind) Config {
	cfg := Config{
		Kind:   kind,
		Single: true,
		Format: PNG,
	}
	switch kind {
	case Vehicles:
		cfg.Engine = Cycles
		cfg.DimX, cfg.DimY = 800, 800
		cfg.Lens = 50
		cfg.Manifest = "vehicle_data.json"
	default:
		cfg.Engine = Eevee
		cfg.DimX, cfg.DimY = 400, 400
		cfg.Lens = 600
		cfg.Manifest = "model_data.json"
	}
	return cfg
}

// Load reads a JSON config file over the defaults for kind.
// Fields not set in the file keep their default values.
func Load(path string, kind Kind) (Config, error) {
	cfg := Default(kind)

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "config: parse %s", path)
	}
	cfg.Kind = kind
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	MediaDir    string
	Manifest    string
	OutputDir   string
	PresetsFile string
	Workers     int
}

// Resolve fills in empty fields with auto-detected defaults and makes
// relative asset paths absolute. CLI flags take priority when non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.MediaDir != "" {
		c.MediaDir = flags.MediaDir
	}
	if flags.Manifest != "" {
		c.Manifest = flags.Manifest
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.PresetsFile != "" {
		c.PresetsFile = flags.PresetsFile
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.MediaDir == "" {
		c.MediaDir = detectMediaDir()
	}

	c.MeshDir = under(c.MediaDir, c.MeshDir, "models_X")
	c.TextureDir = under(c.MediaDir, c.TextureDir, "textures")
	c.WheelMesh = under(c.MeshDir, c.WheelMesh, filepath.Join("WorldItems", "Wheel.FBX"))
	c.WheelTexture = under(c.TextureDir, c.WheelTexture, filepath.Join("Vehicles", "vehicle_wheel.png"))

	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
	if c.Format == "" {
		c.Format = PNG
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate reports settings that cannot be rendered and normalises the
// engine and format names.
func (c *Config) Validate() error {
	if c.DimX <= 0 || c.DimY <= 0 {
		return errors.Errorf("config: invalid dimensions %dx%d", c.DimX, c.DimY)
	}
	if c.Lens <= 0 {
		return errors.Errorf("config: invalid focal length %g", c.Lens)
	}
	engine, err := ParseEngine(string(c.Engine))
	if err != nil {
		return err
	}
	format, err := ParseFormat(string(c.Format))
	if err != nil {
		return err
	}
	c.Engine, c.Format = engine, format
	return nil
}

// under resolves p against base, falling back to def when p is empty.
func under(base, p, def string) string {
	if p == "" {
		p = def
	}
	if filepath.IsAbs(p) || base == "" {
		return p
	}
	return filepath.Join(base, p)
}

func detectMediaDir() string {
	var candidates []string

	// Try relative to executable
	if exe, _ := os.Executable(); exe != "" {
		dir := filepath.Dir(exe)
		candidates = append(candidates, filepath.Join(dir, "media"), filepath.Join(filepath.Dir(dir), "media"))
	}

	// Try current working directory and its parent
	if cwd, _ := os.Getwd(); cwd != "" {
		candidates = append(candidates, filepath.Join(cwd, "media"), filepath.Join(filepath.Dir(cwd), "media"))
	}

	for _, c := range candidates {
		if _, err := os.Stat(filepath.Join(c, "models_X")); err == nil {
			return c
		}
	}
	return DefaultMediaDir
}
