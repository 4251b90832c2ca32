package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"pz-icon-renderer/internal/material"
	"pz-icon-renderer/internal/mathutil"
	"pz-icon-renderer/internal/mesh"
)

// Object is a mesh placed in the scene. Rotation is Euler XYZ in radians.
type Object struct {
	Name     string
	Mesh     *mesh.Mesh
	Material *material.Material
	Location mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
	Smooth   bool
}

// NewObject places an imported mesh instance.
func NewObject(in mesh.Instance) *Object {
	loc, rot, scale := mathutil.Decompose(in.Transform)
	return &Object{
		Name:     in.Name,
		Mesh:     in.Mesh,
		Location: loc,
		Rotation: rot,
		Scale:    scale,
	}
}

// World returns the object-to-world matrix.
func (o *Object) World() mgl64.Mat4 {
	return mathutil.Compose(o.Location, o.Rotation, o.Scale)
}

// WorldBounds returns the bounding box of the mesh in world space.
func (o *Object) WorldBounds() mathutil.Box3 {
	if o.Mesh == nil {
		return mathutil.EmptyBox()
	}
	return o.Mesh.Bounds().Transform(o.World())
}

// Center moves the object so its world bounding box is centred on the
// origin.
func (o *Object) Center() {
	b := o.WorldBounds()
	if b.IsEmpty() {
		return
	}
	o.Location = o.Location.Sub(b.Center())
}

// ApplyOffset adds loc to the location and rotDeg (degrees) to the Euler
// rotation, keeping the imported orientation.
func (o *Object) ApplyOffset(loc, rotDeg [3]float64) {
	o.Location = o.Location.Add(mgl64.Vec3(loc))
	o.Rotation = o.Rotation.Add(mathutil.EulerDeg(rotDeg[0], rotDeg[1], rotDeg[2]))
}

// MaterialOrDefault returns the assigned material or the grey default.
func (o *Object) MaterialOrDefault() *material.Material {
	if o.Material == nil {
		return material.Default
	}
	return o.Material
}

// Clone returns a copy sharing the mesh.
func (o *Object) Clone() *Object {
	c := *o
	return &c
}
