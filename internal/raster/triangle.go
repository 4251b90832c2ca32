package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"pz-icon-renderer/internal/material"
)

// Vertex is a projected triangle corner.
type Vertex struct {
	X, Y float64 // screen position in pixels
	InvZ float64 // 1/depth
	UV   mgl64.Vec2
	N    mgl64.Vec3 // world normal, facing the camera
	P    mgl64.Vec3 // world position
}

// Surface describes how a triangle is shaded.
type Surface struct {
	Material *material.Material
	Smooth   bool
	Flat     mgl64.Vec3 // face normal, used when !Smooth
	Eye      mgl64.Vec3
}

// RasterizeTriangle rasterizes a single triangle with perspective-correct
// attributes, z-buffer, material evaluation, lighting and ACES tone mapping.
//
// This is the HOT PATH. Nothing in the pixel loop allocates.
func RasterizeTriangle(fb *FrameBuffer, v [3]Vertex, s *Surface, lc *LightConfig) {
	x0, y0 := v[0].X, v[0].Y
	x1, y1 := v[1].X, v[1].Y
	x2, y2 := v[2].X, v[2].Y

	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-12 && det < 1e-12 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	mat := s.Material
	if mat == nil {
		mat = material.Default
	}
	specular := mat.Specular()

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			// Perspective-correct weights
			p0 := w0 * v[0].InvZ
			p1 := w1 * v[1].InvZ
			p2 := w2 * v[2].InvZ
			invZ := p0 + p1 + p2
			zIdx := rowOff + sx
			if invZ <= fb.ZBuf[zIdx] {
				continue
			}
			k := 1 / invZ
			p0 *= k
			p1 *= k
			p2 *= k

			u := p0*v[0].UV[0] + p1*v[1].UV[0] + p2*v[2].UV[0]
			vv := p0*v[0].UV[1] + p1*v[1].UV[1] + p2*v[2].UV[1]
			c := mat.BaseColor(u, vv)

			// Skip transparent texels
			if c.A < 8.0/255 {
				continue
			}
			fb.ZBuf[zIdx] = invZ

			n := s.Flat
			if s.Smooth {
				n = v[0].N.Mul(p0).Add(v[1].N.Mul(p1)).Add(v[2].N.Mul(p2))
				if l := n.Len(); l > 1e-12 {
					n = n.Mul(1 / l)
				} else {
					n = s.Flat
				}
			}
			pos := v[0].P.Mul(p0).Add(v[1].P.Mul(p1)).Add(v[2].P.Mul(p2))
			toView := s.Eye.Sub(pos)
			if l := toView.Len(); l > 1e-12 {
				toView = toView.Mul(1 / l)
			}
			shade := lc.Shade(n, toView, specular) * lc.Exposure

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = clamp255(LinearToSRGB(ACESTonemap(c.R*shade)) * 255)
			fb.Color[pxIdx+1] = clamp255(LinearToSRGB(ACESTonemap(c.G*shade)) * 255)
			fb.Color[pxIdx+2] = clamp255(LinearToSRGB(ACESTonemap(c.B*shade)) * 255)
			fb.Color[pxIdx+3] = clamp255(c.A * 255)
		}
	}
}
