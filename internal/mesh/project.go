package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SmartProject generates UVs for meshes imported without a UV layer. Each
// polygon is projected along the dominant axis of its normal onto the two
// remaining axes, normalised to the mesh bounds. It is a no-op when UVs are
// already present.
func (m *Mesh) SmartProject() {
	if m.HasUVs() {
		return
	}

	b := m.Bounds()
	size := b.Size()
	for k := range size {
		if size[k] < 1e-9 {
			size[k] = 1
		}
	}

	m.UVs = make([][]mgl64.Vec2, len(m.Polygons))
	for pi, poly := range m.Polygons {
		if !inRange(poly, len(m.Positions)) {
			m.UVs[pi] = make([]mgl64.Vec2, len(poly))
			continue
		}
		ua, va := projectionAxes(m.polygonNormal(poly))
		uvs := make([]mgl64.Vec2, len(poly))
		for k, vi := range poly {
			p := m.Positions[vi]
			uvs[k] = mgl64.Vec2{
				(p[ua] - b.Min[ua]) / size[ua],
				(p[va] - b.Min[va]) / size[va],
			}
		}
		m.UVs[pi] = uvs
	}
}

// polygonNormal uses Newell's method so non-planar quads still get a
// sensible direction.
func (m *Mesh) polygonNormal(poly []int) mgl64.Vec3 {
	var n mgl64.Vec3
	for k := range poly {
		a := m.Positions[poly[k]]
		b := m.Positions[poly[(k+1)%len(poly)]]
		n[0] += (a[1] - b[1]) * (a[2] + b[2])
		n[1] += (a[2] - b[2]) * (a[0] + b[0])
		n[2] += (a[0] - b[0]) * (a[1] + b[1])
	}
	return n
}

func projectionAxes(n mgl64.Vec3) (int, int) {
	ax, ay, az := math.Abs(n[0]), math.Abs(n[1]), math.Abs(n[2])
	switch {
	case ax >= ay && ax >= az:
		return 1, 2
	case ay >= ax && ay >= az:
		return 0, 2
	default:
		return 0, 1
	}
}
