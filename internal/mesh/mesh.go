package mesh

import (
	"github.com/go-gl/mathgl/mgl64"

	"pz-icon-renderer/internal/mathutil"
)

// Mesh is polygonal geometry as it comes out of an importer. UVs are stored
// per polygon corner, parallel to Polygons; UVs is nil when the source file
// carried no UV layer.
type Mesh struct {
	Name      string
	Positions []mgl64.Vec3
	Polygons  [][]int
	UVs       [][]mgl64.Vec2
}

// Instance places a mesh in the importing file's world space.
type Instance struct {
	Name      string
	Mesh      *Mesh
	Transform mgl64.Mat4
}

// Triangle references three positions and carries the matching corner UVs.
type Triangle struct {
	V  [3]int
	UV [3]mgl64.Vec2
}

func (m *Mesh) HasUVs() bool {
	return m.UVs != nil
}

// Bounds returns the bounding box in mesh space.
func (m *Mesh) Bounds() mathutil.Box3 {
	b := mathutil.EmptyBox()
	for _, p := range m.Positions {
		b = b.Extend(p)
	}
	return b
}

// Triangles fan-triangulates every polygon. Polygons with fewer than three
// corners or out-of-range indices are dropped.
func (m *Mesh) Triangles() []Triangle {
	tris := make([]Triangle, 0, len(m.Polygons))
	n := len(m.Positions)
	for pi, poly := range m.Polygons {
		if len(poly) < 3 || !inRange(poly, n) {
			continue
		}
		var uvs []mgl64.Vec2
		if m.UVs != nil && pi < len(m.UVs) && len(m.UVs[pi]) == len(poly) {
			uvs = m.UVs[pi]
		}
		for k := 1; k+1 < len(poly); k++ {
			t := Triangle{V: [3]int{poly[0], poly[k], poly[k+1]}}
			if uvs != nil {
				t.UV = [3]mgl64.Vec2{uvs[0], uvs[k], uvs[k+1]}
			}
			tris = append(tris, t)
		}
	}
	return tris
}

// VertexNormals returns area-weighted normals per position, used for smooth
// shading.
func (m *Mesh) VertexNormals() []mgl64.Vec3 {
	normals := make([]mgl64.Vec3, len(m.Positions))
	for _, t := range m.Triangles() {
		a, b, c := m.Positions[t.V[0]], m.Positions[t.V[1]], m.Positions[t.V[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		for _, v := range t.V {
			normals[v] = normals[v].Add(n)
		}
	}
	for i, n := range normals {
		if n.Len() > 1e-12 {
			normals[i] = n.Normalize()
		}
	}
	return normals
}

// Transform returns a copy of the mesh with m applied to every position.
func (m *Mesh) Transform(t mgl64.Mat4) *Mesh {
	out := *m
	out.Positions = make([]mgl64.Vec3, len(m.Positions))
	for i, p := range m.Positions {
		out.Positions[i] = mgl64.TransformCoordinate(p, t)
	}
	return &out
}

func inRange(poly []int, n int) bool {
	for _, i := range poly {
		if i < 0 || i >= n {
			return false
		}
	}
	return true
}
