// Package material builds the small shader graphs assigned to imported
// meshes: image texture, optional colour mix, principled shader, output.
package material

import "image"

// Material is a named shader graph.
type Material struct {
	Name   string
	Output Output
}

// Default is used for objects without a material.
var Default = &Material{
	Name: "Default",
	Output: Output{Surface: &Principled{
		BaseColor: &RGB{Value: Gray(0.8)},
		Roughness: 0.5,
		Specular:  0.5,
	}},
}

// Textured wires image → principled → output.
func Textured(name string, img *image.NRGBA) *Material {
	return &Material{
		Name: name,
		Output: Output{Surface: &Principled{
			BaseColor: &opaque{&ImageTexture{Image: img}},
			Roughness: 0.5,
			Specular:  0.5,
		}},
	}
}

// Painted places a base colour underneath the image, using the image alpha
// as the mix factor, so transparent texels show the paint.
func Painted(name string, img *image.NRGBA, paint Color) *Material {
	tex := &ImageTexture{Image: img}
	return &Material{
		Name: name,
		Output: Output{Surface: &Principled{
			BaseColor: &MixRGB{
				Fac: &AlphaOf{Source: tex},
				A:   &RGB{Value: paint},
				B:   tex,
			},
			Roughness: 0.5,
			Specular:  0.5,
		}},
	}
}

// BaseColor evaluates the surface colour at (u, v).
func (m *Material) BaseColor(u, v float64) Color {
	s := m.Output.Surface
	if s == nil || s.BaseColor == nil {
		return Gray(0.8)
	}
	return s.BaseColor.Sample(u, v)
}

// Specular returns the surface's specular level.
func (m *Material) Specular() float64 {
	if m.Output.Surface == nil {
		return 0.5
	}
	return m.Output.Surface.Specular
}

// opaque drops the alpha of its source; the principled alpha input is left
// unconnected, so surfaces always render opaque.
type opaque struct {
	Source Source
}

func (n *opaque) Sample(u, v float64) Color {
	c := n.Source.Sample(u, v)
	c.A = 1
	return c
}
