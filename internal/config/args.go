package config

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"pz-icon-renderer/internal/log"
)

var logger = log.New("config")

// ApplyArgs applies key=value override tokens in order. A preset= token is
// applied after every other token, so it wins over lens= and cam=.
// Unknown keys and unknown presets are logged and ignored.
func (c *Config) ApplyArgs(tokens []string, presets Presets) error {
	preset := c.Preset

	for _, tok := range tokens {
		key, val, ok := strings.Cut(tok, "=")
		if !ok {
			logger.Warningf("ignoring argument %q: expected key=value", tok)
			continue
		}

		var err error
		switch key {
		case "is_single":
			c.Single = strings.ToLower(val) == "true"
		case "render_engine":
			c.Engine, err = ParseEngine(val)
		case "dim":
			var n int
			if n, err = parseInt(key, val); err == nil {
				c.DimX, c.DimY = n, n
			}
		case "dim_x":
			c.DimX, err = parseInt(key, val)
		case "dim_y":
			c.DimY, err = parseInt(key, val)
		case "lens":
			c.Lens, err = strconv.ParseFloat(val, 64)
			err = errors.Wrapf(err, "config: invalid %s", key)
		case "cam":
			c.CamIndex, err = parseInt(key, val)
		case "preset":
			preset = val
		case "vehicles", "models":
			c.Models = append(c.Models, splitList(val)...)
		case "seed":
			c.Seed, err = strconv.ParseInt(val, 10, 64)
			err = errors.Wrapf(err, "config: invalid %s", key)
		case "format":
			c.Format, err = ParseFormat(val)
		default:
			logger.Warningf("ignoring unknown argument %q", tok)
		}
		if err != nil {
			return err
		}
	}

	if preset == "" {
		return nil
	}
	c.Preset = preset
	p, ok := presets[preset]
	if !ok {
		logger.Warningf("unknown preset %q", preset)
		return nil
	}
	return c.ApplyPreset(p)
}

func parseInt(key, val string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, errors.Wrapf(err, "config: invalid %s", key)
	}
	return n, nil
}

// splitList splits a comma list, trimming blanks and dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
