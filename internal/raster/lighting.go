package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"pz-icon-renderer/internal/scene"
)

// LightConfig holds precomputed lighting parameters.
type LightConfig struct {
	ToLight  mgl64.Vec3 // unit vector towards the sun
	Energy   float64
	Ambient  float64
	Hemi     float64 // sky fill, strongest on upward faces
	Direct   float64 // diffuse response per unit of sun energy
	SpecInt  float64 // scaled by the material's specular level
	SpecPow  float64
	Exposure float64
}

// DefaultLightConfig returns the lighting used without a sun: a soft key
// from above.
func DefaultLightConfig() LightConfig {
	return LightConfig{
		ToLight:  mgl64.Vec3{0, 0, 1},
		Energy:   1,
		Ambient:  0.35,
		Hemi:     0.25,
		Direct:   0.6,
		SpecInt:  0.5,
		SpecPow:  24,
		Exposure: 1.0,
	}
}

// SunLight builds the lighting for a scene sun.
func SunLight(sun *scene.Sun) LightConfig {
	lc := DefaultLightConfig()
	if sun == nil {
		return lc
	}
	lc.ToLight = sun.Direction().Mul(-1).Normalize()
	lc.Energy = sun.Energy
	return lc
}

// Shade returns the lighting scalar for a world-space normal n facing the
// viewer, with toView the unit vector from the surface to the camera.
func (lc *LightConfig) Shade(n, toView mgl64.Vec3, specular float64) float64 {
	ndl := math.Max(0, n.Dot(lc.ToLight))
	hemi := (0.5 + 0.5*n[2]) * lc.Hemi

	spec := 0.0
	if ndl > 0 && specular > 0 {
		h := lc.ToLight.Add(toView).Normalize()
		spec = math.Pow(math.Max(0, n.Dot(h)), lc.SpecPow) * lc.SpecInt * specular * lc.Energy
	}
	return lc.Ambient + hemi + ndl*lc.Direct*lc.Energy + spec
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

// LinearToSRGB encodes a linear value in [0,1].
func LinearToSRGB(x float64) float64 {
	if x <= 0.0031308 {
		return math.Max(0, x*12.92)
	}
	return 1.055*math.Pow(x, 1/2.4) - 0.055
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
