// Package fbx turns FBX documents into mesh instances. Files are decoded by
// modelconv's FBX package; this package walks the model tree, reads the
// geometry layers the renderer needs and maps the file's axis system onto
// the renderer's Z-up world.
package fbx

import (
	fbxdoc "github.com/binzume/modelconv/fbx"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"pz-icon-renderer/internal/mathutil"
	"pz-icon-renderer/internal/mesh"
)

// maxDepth bounds model nesting so a cyclic connection list cannot recurse
// forever.
const maxDepth = 64

// Load reads an FBX file and returns its meshes. Mesh data stays in file
// axes; each instance transform is conv · world, so the axis and unit
// conversion lives on the object like any other transform.
func Load(path string) (inst []mesh.Instance, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("fbx: decode %s: %v", path, r)
		}
	}()

	doc, err := fbxdoc.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "fbx: read %s", path)
	}
	inst, err = Instances(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "fbx: import %s", path)
	}
	return inst, nil
}

// Instances extracts every mesh model below the document's scene root.
// Parent transforms are folded into each instance.
func Instances(doc *fbxdoc.Document) ([]mesh.Instance, error) {
	if doc == nil || doc.Scene == nil {
		return nil, errors.New("no scene")
	}
	conv := conversion(settingsNode(doc))

	var out []mesh.Instance
	var walk func(m *fbxdoc.Model, parent mgl64.Mat4, depth int) error
	walk = func(m *fbxdoc.Model, parent mgl64.Mat4, depth int) error {
		if depth > maxDepth {
			return errors.Errorf("model %q nested too deep", m.Name())
		}
		world := parent.Mul4(localTransform(props70(m.Node)))
		if g := m.GetGeometry(); g != nil && isMesh(g.Node) {
			gm, err := decodeGeometry(g.Node)
			if err != nil {
				return errors.Wrapf(err, "geometry of %q", m.Name())
			}
			gm.Name = m.Name()
			out = append(out, mesh.Instance{Name: m.Name(), Mesh: gm, Transform: conv.Mul4(world)})
		}
		for _, c := range m.GetChildModels() {
			if err := walk(c, world, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	for _, m := range doc.Scene.GetChildModels() {
		if err := walk(m, mgl64.Ident4(), 0); err != nil {
			return nil, err
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no mesh models")
	}
	return out, nil
}

func settingsNode(doc *fbxdoc.Document) *fbxdoc.Node {
	if doc.GlobalSettings == nil {
		return nil
	}
	return doc.GlobalSettings.Node
}

// isMesh skips shape and curve geometries. Documents built in code may omit
// the class name.
func isMesh(n *fbxdoc.Node) bool {
	class := attrString(n, 2)
	return class == "" || class == "Mesh"
}

// localTransform evaluates T · Rpre · R · Rpost⁻¹ · S. Pivots and offsets are
// not used by the game's assets.
func localTransform(props map[string]*fbxdoc.Node) mgl64.Mat4 {
	vec := func(name string, def mgl64.Vec3) mgl64.Vec3 {
		p, ok := props[name]
		if !ok || len(p.Attributes) < 7 {
			return def
		}
		return mgl64.Vec3{attrFloat(p, 4), attrFloat(p, 5), attrFloat(p, 6)}
	}
	deg := func(v mgl64.Vec3) mgl64.Mat4 {
		return mathutil.EulerXYZ(mathutil.EulerDeg(v[0], v[1], v[2])).Mat4()
	}

	t := vec("Lcl Translation", mgl64.Vec3{})
	r := vec("Lcl Rotation", mgl64.Vec3{})
	s := vec("Lcl Scaling", mgl64.Vec3{1, 1, 1})
	pre := vec("PreRotation", mgl64.Vec3{})
	post := vec("PostRotation", mgl64.Vec3{})

	return mgl64.Translate3D(t[0], t[1], t[2]).
		Mul4(deg(pre)).
		Mul4(deg(r)).
		Mul4(deg(post).Transpose()).
		Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}

// conversion maps the file's axis system onto X right, Y back, Z up and
// scales centimetres to metres. A Y-up file gets a +90 degree X rotation.
func conversion(settings *fbxdoc.Node) mgl64.Mat4 {
	props := props70(settings)
	get := func(name string, def float64) float64 {
		if p, ok := props[name]; ok && len(p.Attributes) > 4 {
			return attrFloat(p, 4)
		}
		return def
	}

	up, upSign := int(get("UpAxis", 1)), get("UpAxisSign", 1)
	front, frontSign := int(get("FrontAxis", 2)), get("FrontAxisSign", 1)
	coord, coordSign := int(get("CoordAxis", 0)), get("CoordAxisSign", 1)
	unit := get("UnitScaleFactor", 1)
	if unit <= 0 {
		unit = 1
	}

	if !validAxes(up, front, coord) {
		up, front, coord = 1, 2, 0
		upSign, frontSign, coordSign = 1, 1, 1
	}

	// Row i of the rotation picks the file axis feeding target axis i.
	// Front (towards the viewer) becomes -Y.
	var m mgl64.Mat3
	m.Set(0, coord, sign(coordSign))
	m.Set(1, front, -sign(frontSign))
	m.Set(2, up, sign(upSign))

	s := unit / 100
	return mgl64.Scale3D(s, s, s).Mul4(m.Mat4())
}

func validAxes(a, b, c int) bool {
	if a < 0 || a > 2 || b < 0 || b > 2 || c < 0 || c > 2 {
		return false
	}
	return a != b && b != c && a != c
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func decodeGeometry(n *fbxdoc.Node) (*mesh.Mesh, error) {
	verts := attrFloats(child(n, "Vertices"))
	if len(verts)%3 != 0 {
		return nil, errors.Errorf("vertex array length %d is not a multiple of 3", len(verts))
	}
	g := &mesh.Mesh{Positions: make([]mgl64.Vec3, len(verts)/3)}
	for i := range g.Positions {
		g.Positions[i] = mgl64.Vec3{verts[i*3], verts[i*3+1], verts[i*3+2]}
	}
	g.Polygons = splitPolygons(attrInts(child(n, "PolygonVertexIndex")))

	if uv := child(n, "LayerElementUV"); uv != nil {
		layer := uvLayer{
			mapping:   attrString(child(uv, "MappingInformationType"), 0),
			reference: attrString(child(uv, "ReferenceInformationType"), 0),
			uv:        attrFloats(child(uv, "UV")),
			index:     attrInts(child(uv, "UVIndex")),
		}
		uvs, err := layer.resolve(g.Polygons, len(g.Positions))
		if err != nil {
			return nil, err
		}
		g.UVs = uvs
	}
	return g, nil
}

// splitPolygons cuts a PolygonVertexIndex array into polygons. A negative
// index closes a polygon and is stored as ^index.
func splitPolygons(indices []int) [][]int {
	var polys [][]int
	var poly []int
	for _, idx := range indices {
		if idx < 0 {
			polys = append(polys, append(poly, ^idx))
			poly = nil
			continue
		}
		poly = append(poly, idx)
	}
	if len(poly) > 0 {
		polys = append(polys, poly)
	}
	return polys
}

// uvLayer is the raw content of a LayerElementUV.
type uvLayer struct {
	mapping   string
	reference string
	uv        []float64
	index     []int
}

// resolve expands the layer to one UV per polygon corner.
func (l uvLayer) resolve(polygons [][]int, numVerts int) ([][]mgl64.Vec2, error) {
	direct := make([]mgl64.Vec2, len(l.uv)/2)
	for i := range direct {
		// FBX V runs bottom-up, images top-down
		direct[i] = mgl64.Vec2{l.uv[i*2], 1 - l.uv[i*2+1]}
	}
	indexed := l.reference == "IndexToDirect" || l.reference == "Index"

	lookup := func(i int) (mgl64.Vec2, error) {
		if indexed {
			if i < 0 || i >= len(l.index) {
				return mgl64.Vec2{}, errors.Errorf("UV index %d out of range", i)
			}
			i = l.index[i]
		}
		if i < 0 || i >= len(direct) {
			// unmapped corners are written as -1 by some exporters
			return mgl64.Vec2{}, nil
		}
		return direct[i], nil
	}

	out := make([][]mgl64.Vec2, len(polygons))
	corner := 0
	for pi, poly := range polygons {
		uvs := make([]mgl64.Vec2, len(poly))
		for k, vi := range poly {
			var key int
			switch l.mapping {
			case "ByPolygonVertex":
				key = corner
			case "ByVertice", "ByVertex", "ByControlPoint":
				if vi >= numVerts {
					return nil, errors.Errorf("vertex %d out of range", vi)
				}
				key = vi
			case "ByPolygon":
				key = pi
			case "AllSame":
				key = 0
			default:
				return nil, errors.Errorf("unsupported UV mapping %q", l.mapping)
			}
			v, err := lookup(key)
			if err != nil {
				return nil, err
			}
			uvs[k] = v
			corner++
		}
		out[pi] = uvs
	}
	return out, nil
}
