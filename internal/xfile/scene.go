// Package xfile reads DirectX .x meshes in the text encoding.
package xfile

import (
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"pz-icon-renderer/internal/mesh"
)

// toZUp swaps Y and Z, turning DirectX's left-handed Y-up space into a
// right-handed Z-up one. It is its own inverse.
var toZUp = mgl64.Mat4{
	1, 0, 0, 0,
	0, 0, 1, 0,
	0, 1, 0, 0,
	0, 0, 0, 1,
}

// Load reads a text .x file and returns its meshes.
func Load(path string) ([]mesh.Instance, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "xfile: read %s", path)
	}
	inst, err := Decode(string(raw))
	if err != nil {
		return nil, errors.Wrapf(err, "xfile: decode %s", path)
	}
	return inst, nil
}

// Decode parses the contents of a text .x file.
func Decode(src string) ([]mesh.Instance, error) {
	objects, err := Parse(src)
	if err != nil {
		return nil, err
	}

	var out []mesh.Instance
	for _, o := range objects {
		if err := collect(o, mgl64.Ident4(), "", &out); err != nil {
			return nil, err
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no meshes")
	}
	return out, nil
}

// Parse checks the header and returns the top-level data objects.
func Parse(src string) ([]*Object, error) {
	if len(src) < 16 || !strings.HasPrefix(src, "xof ") {
		return nil, errors.New("missing xof header")
	}
	switch format := src[8:12]; format {
	case "txt ":
	case "bin ", "tzip", "bzip":
		return nil, errors.Errorf("%q encoding is not supported", strings.TrimSpace(format))
	default:
		return nil, errors.Errorf("unknown encoding %q", format)
	}

	p := &parser{lex: newLexer(src[16:])}
	return p.parseObjects()
}

func collect(o *Object, parent mgl64.Mat4, frame string, out *[]mesh.Instance) error {
	switch o.Type {
	case "Frame":
		local := mgl64.Ident4()
		if ft := o.Child("FrameTransformMatrix"); ft != nil {
			m, err := frameMatrix(ft)
			if err != nil {
				return err
			}
			local = m
		}
		world := parent.Mul4(local)
		for _, c := range o.Children {
			if err := collect(c, world, o.Name, out); err != nil {
				return err
			}
		}
	case "Mesh":
		m, err := decodeMesh(o)
		if err != nil {
			return err
		}
		name := o.Name
		if name == "" {
			name = frame
		}
		if name == "" {
			name = "Mesh"
		}
		m.Name = name
		*out = append(*out, mesh.Instance{
			Name:      name,
			Mesh:      m.Transform(toZUp),
			Transform: toZUp.Mul4(parent).Mul4(toZUp),
		})
	}
	return nil
}

// frameMatrix reads the sixteen row-major floats. DirectX multiplies row
// vectors, so the same sequence read column-major is the column-vector form.
func frameMatrix(o *Object) (mgl64.Mat4, error) {
	c := &cursor{obj: o}
	var m mgl64.Mat4
	for i := range m {
		m[i] = c.float()
	}
	return m, c.err
}

func decodeMesh(o *Object) (*mesh.Mesh, error) {
	c := &cursor{obj: o}
	m := &mesh.Mesh{}

	nVerts := c.int()
	if c.err == nil && (nVerts < 0 || nVerts*3 > len(o.Data)) {
		return nil, errors.Errorf("Mesh %s: bad vertex count %d", o.Name, nVerts)
	}
	m.Positions = make([]mgl64.Vec3, 0, nVerts)
	for i := 0; i < nVerts && c.err == nil; i++ {
		m.Positions = append(m.Positions, mgl64.Vec3{c.float(), c.float(), c.float()})
	}

	nFaces := c.int()
	for i := 0; i < nFaces && c.err == nil; i++ {
		n := c.int()
		if c.err == nil && (n < 0 || n > c.remaining()) {
			return nil, errors.Errorf("Mesh %s: bad corner count %d", o.Name, n)
		}
		poly := make([]int, n)
		for k := range poly {
			poly[k] = c.int()
		}
		m.Polygons = append(m.Polygons, poly)
	}
	if c.err != nil {
		return nil, c.err
	}

	if tc := o.Child("MeshTextureCoords"); tc != nil {
		tcur := &cursor{obj: tc}
		n := tcur.int()
		if tcur.err == nil && (n < 0 || n*2 > tcur.remaining()) {
			return nil, errors.Errorf("MeshTextureCoords %s: bad count %d", tc.Name, n)
		}
		coords := make([]mgl64.Vec2, 0, n)
		for i := 0; i < n && tcur.err == nil; i++ {
			coords = append(coords, mgl64.Vec2{tcur.float(), tcur.float()})
		}
		if tcur.err != nil {
			return nil, tcur.err
		}
		// texture coordinates are per vertex
		if len(coords) == len(m.Positions) {
			m.UVs = make([][]mgl64.Vec2, len(m.Polygons))
			for pi, poly := range m.Polygons {
				uvs := make([]mgl64.Vec2, len(poly))
				for k, vi := range poly {
					if vi >= 0 && vi < len(coords) {
						uvs[k] = coords[vi]
					}
				}
				m.UVs[pi] = uvs
			}
		}
	}
	return m, nil
}
