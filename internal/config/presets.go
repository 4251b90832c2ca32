package config

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Preset bundles overrides selected with preset=<name>. Zero or nil fields
// leave the setting alone.
type Preset struct {
	IsSingle     *bool   `yaml:"is_single"`
	RenderEngine string  `yaml:"render_engine"`
	Dimension    int     `yaml:"dimension"`
	DimensionX   int     `yaml:"dimension_x"`
	DimensionY   int     `yaml:"dimension_y"`
	FocalLength  float64 `yaml:"focal_length"`
	CamIndex     *int    `yaml:"cam_index"`
}

// Presets maps preset names to their overrides.
type Presets map[string]Preset

// DefaultPresets returns the size × angle table: huge, large, med, small and
// tiny pick the focal length, the numeric suffix picks one of four camera
// indices.
func DefaultPresets() Presets {
	sizes := []struct {
		name string
		lens float64
	}{
		{"huge", 200},
		{"large", 400},
		{"med", 600},
		{"small", 1000},
		{"tiny", 1600},
	}

	p := make(Presets, len(sizes)*4)
	for _, s := range sizes {
		for i := 0; i < 4; i++ {
			cam := i * 2
			p[fmt.Sprintf("%s-%d", s.name, i)] = Preset{FocalLength: s.lens, CamIndex: &cam}
		}
	}
	return p
}

// LoadPresets reads a YAML mapping of preset name to overrides.
func LoadPresets(path string) (Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: read presets %s", path)
	}
	var p Presets
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrapf(err, "config: parse presets %s", path)
	}
	return p, nil
}

// Merge returns a table with o's presets replacing p's of the same name.
func (p Presets) Merge(o Presets) Presets {
	out := make(Presets, len(p)+len(o))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range o {
		out[k] = v
	}
	return out
}

// ApplyPreset overrides settings with the non-zero fields of p.
func (c *Config) ApplyPreset(p Preset) error {
	if p.IsSingle != nil {
		c.Single = *p.IsSingle
	}
	if p.RenderEngine != "" {
		e, err := ParseEngine(p.RenderEngine)
		if err != nil {
			return err
		}
		c.Engine = e
	}
	if p.Dimension > 0 {
		c.DimX, c.DimY = p.Dimension, p.Dimension
	}
	if p.DimensionX > 0 {
		c.DimX = p.DimensionX
	}
	if p.DimensionY > 0 {
		c.DimY = p.DimensionY
	}
	if p.FocalLength > 0 {
		c.Lens = p.FocalLength
	}
	if p.CamIndex != nil {
		c.CamIndex = *p.CamIndex
	}
	return nil
}
