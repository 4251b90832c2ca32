package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitQuad() *Mesh {
	return &Mesh{
		Name: "quad",
		Positions: []mgl64.Vec3{
			{0, 0, 0}, {2, 0, 0}, {2, 1, 0}, {0, 1, 0},
		},
		Polygons: [][]int{{0, 1, 2, 3}},
	}
}

func TestTrianglesFan(t *testing.T) {
	m := unitQuad()
	m.UVs = [][]mgl64.Vec2{{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}

	tris := m.Triangles()
	require.Len(t, tris, 2)
	assert.Equal(t, [3]int{0, 1, 2}, tris[0].V)
	assert.Equal(t, [3]int{0, 2, 3}, tris[1].V)
	assert.Equal(t, mgl64.Vec2{0, 1}, tris[1].UV[2])
}

func TestTrianglesDropsBrokenPolygons(t *testing.T) {
	m := unitQuad()
	m.Polygons = append(m.Polygons, []int{0, 1}, []int{0, 1, 9})

	assert.Len(t, m.Triangles(), 2)
}

func TestSmartProject(t *testing.T) {
	m := unitQuad()
	require.False(t, m.HasUVs())

	m.SmartProject()
	require.True(t, m.HasUVs())
	require.Len(t, m.UVs, 1)

	// normal is +Z so the quad is projected onto X/Y and normalised
	assert.Equal(t, []mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, m.UVs[0])

	// existing UVs are left alone
	m.UVs[0][0] = mgl64.Vec2{0.5, 0.5}
	m.SmartProject()
	assert.Equal(t, mgl64.Vec2{0.5, 0.5}, m.UVs[0][0])
}

func TestVertexNormals(t *testing.T) {
	normals := unitQuad().VertexNormals()
	require.Len(t, normals, 4)
	for _, n := range normals {
		assert.True(t, n.ApproxEqualThreshold(mgl64.Vec3{0, 0, 1}, 1e-9), "normal %v", n)
	}
}

func TestTransformAndBounds(t *testing.T) {
	m := unitQuad()
	moved := m.Transform(mgl64.Translate3D(0, 0, 5))

	assert.Equal(t, mgl64.Vec3{1, 0.5, 5}, moved.Bounds().Center())
	assert.Equal(t, mgl64.Vec3{1, 0.5, 0}, m.Bounds().Center(), "source mesh untouched")
}
