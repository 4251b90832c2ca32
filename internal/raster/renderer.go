// Package raster draws a scene through its camera with a software z-buffer
// rasterizer.
package raster

import (
	"image"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"pz-icon-renderer/internal/scene"
)

// NearClip is the distance of the near clipping plane.
const NearClip = 0.1

// Render draws the scene at (w·supersample)×(h·supersample) pixels on a
// transparent background. The caller downsamples the result.
func Render(s *scene.Scene, w, h, supersample int) (*image.NRGBA, error) {
	if s.Camera == nil {
		return nil, errors.New("raster: scene has no camera")
	}
	if w <= 0 || h <= 0 {
		return nil, errors.Errorf("raster: invalid size %dx%d", w, h)
	}
	if supersample < 1 {
		supersample = 1
	}

	renderW, renderH := w*supersample, h*supersample
	fb := NewFrameBuffer(renderW, renderH)
	lc := SunLight(s.Sun)

	p := projection{
		view:  s.Camera.View(),
		focal: s.Camera.FocalPixels(renderW, renderH),
		cx:    float64(renderW) / 2,
		cy:    float64(renderH) / 2,
		eye:   s.Camera.Location,
	}

	for _, obj := range s.Objects {
		drawObject(fb, obj, &p, &lc)
	}

	img := image.NewNRGBA(image.Rect(0, 0, renderW, renderH))
	copy(img.Pix, fb.Color)
	return img, nil
}

type projection struct {
	view   mgl64.Mat4
	focal  float64
	cx, cy float64
	eye    mgl64.Vec3
}

// corner is a triangle corner in view space, before projection.
type corner struct {
	view  mgl64.Vec3
	world mgl64.Vec3
	uv    mgl64.Vec2
	n     mgl64.Vec3
}

func drawObject(fb *FrameBuffer, obj *scene.Object, p *projection, lc *LightConfig) {
	m := obj.Mesh
	if m == nil || len(m.Positions) == 0 {
		return
	}

	world := obj.World()
	toView := p.view.Mul4(world)

	worldPos := make([]mgl64.Vec3, len(m.Positions))
	viewPos := make([]mgl64.Vec3, len(m.Positions))
	for i, v := range m.Positions {
		worldPos[i] = world.Mul4x1(v.Vec4(1)).Vec3()
		viewPos[i] = toView.Mul4x1(v.Vec4(1)).Vec3()
	}

	// Mirrored transforms flip the winding of the transformed triangles.
	linear := world.Mat3()
	handed := 1.0
	if linear.Det() < 0 {
		handed = -1
	}

	var normals []mgl64.Vec3
	if obj.Smooth {
		nm := linear.Inv().Transpose()
		normals = m.VertexNormals()
		for i, n := range normals {
			if w := nm.Mul3x1(n); w.Len() > 1e-12 {
				normals[i] = w.Normalize()
			}
		}
	}

	surf := Surface{
		Material: obj.MaterialOrDefault(),
		Smooth:   obj.Smooth,
		Eye:      p.eye,
	}

	for _, tri := range m.Triangles() {
		a, b, c := worldPos[tri.V[0]], worldPos[tri.V[1]], worldPos[tri.V[2]]
		flat := b.Sub(a).Cross(c.Sub(a))
		if flat.Len() < 1e-12 {
			continue
		}
		flat = flat.Normalize().Mul(handed)

		// Surfaces render double-sided: back faces are lit as seen.
		facing := 1.0
		if flat.Dot(p.eye.Sub(a)) < 0 {
			facing = -1
		}
		surf.Flat = flat.Mul(facing)

		var poly [3]corner
		for k, vi := range tri.V {
			poly[k] = corner{view: viewPos[vi], world: worldPos[vi], uv: tri.UV[k], n: surf.Flat}
			if normals != nil {
				poly[k].n = normals[vi].Mul(facing)
			}
		}

		clipped := clipNear(poly[:])
		for k := 1; k+1 < len(clipped); k++ {
			v := [3]Vertex{
				p.project(clipped[0]),
				p.project(clipped[k]),
				p.project(clipped[k+1]),
			}
			RasterizeTriangle(fb, v, &surf, lc)
		}
	}
}

func (p *projection) project(c corner) Vertex {
	invZ := 1 / -c.view[2]
	return Vertex{
		X:    p.cx + p.focal*c.view[0]*invZ,
		Y:    p.cy - p.focal*c.view[1]*invZ,
		InvZ: invZ,
		UV:   c.uv,
		N:    c.n,
		P:    c.world,
	}
}

// clipNear clips a convex polygon against the near plane z = -NearClip.
func clipNear(poly []corner) []corner {
	inside := func(c corner) bool { return c.view[2] <= -NearClip }

	all := true
	for _, c := range poly {
		if !inside(c) {
			all = false
			break
		}
	}
	if all {
		return poly
	}

	out := make([]corner, 0, len(poly)+1)
	for i, cur := range poly {
		prev := poly[(i+len(poly)-1)%len(poly)]
		if inside(cur) != inside(prev) {
			t := (-NearClip - prev.view[2]) / (cur.view[2] - prev.view[2])
			out = append(out, lerpCorner(prev, cur, t))
		}
		if inside(cur) {
			out = append(out, cur)
		}
	}
	return out
}

func lerpCorner(a, b corner, t float64) corner {
	return corner{
		view:  a.view.Add(b.view.Sub(a.view).Mul(t)),
		world: a.world.Add(b.world.Sub(a.world).Mul(t)),
		uv:    a.uv.Add(b.uv.Sub(a.uv).Mul(t)),
		n:     a.n.Add(b.n.Sub(a.n).Mul(t)),
	}
}
