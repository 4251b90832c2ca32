package config

import (
	"strings"

	"github.com/pkg/errors"
)

// Engine names the render quality tier. The names match the host
// application's engine identifiers the manifests and scripts use.
type Engine string

const (
	Eevee     Engine = "BLENDER_EEVEE"
	Cycles    Engine = "CYCLES"
	Workbench Engine = "WORKBENCH"
)

// ParseEngine accepts an engine name in any case. BLENDER_EEVEE_NEXT is an
// alias of BLENDER_EEVEE.
func ParseEngine(s string) (Engine, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(Eevee), "BLENDER_EEVEE_NEXT", "EEVEE":
		return Eevee, nil
	case string(Cycles):
		return Cycles, nil
	case string(Workbench):
		return Workbench, nil
	}
	return "", errors.Errorf("config: unknown render engine %q", s)
}

// Supersample returns the per-axis supersampling factor of the engine.
func (e Engine) Supersample() int {
	switch e {
	case Cycles:
		return 4
	case Eevee:
		return 2
	default:
		return 1
	}
}

// Format is the output image encoding.
type Format string

const (
	PNG  Format = "png"
	WebP Format = "webp"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case PNG, WebP:
		return f, nil
	}
	return "", errors.Errorf("config: unknown output format %q", s)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	if f == WebP {
		return ".webp"
	}
	return ".png"
}
