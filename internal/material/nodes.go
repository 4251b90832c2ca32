package material

import "image"

// Source is a shader node output that can be evaluated at a UV coordinate.
type Source interface {
	Sample(u, v float64) Color
}

// RGB is a constant colour node.
type RGB struct {
	Value Color
}

func (n *RGB) Sample(u, v float64) Color {
	return n.Value
}

// ImageTexture samples an image with bilinear filtering and repeat
// wrapping. The colour is decoded from sRGB; alpha is the image alpha.
type ImageTexture struct {
	Image *image.NRGBA
}

func (n *ImageTexture) Sample(u, v float64) Color {
	if n.Image == nil {
		return Color{0, 0, 0, 0}
	}
	r, g, b, a := SampleBilinear(n.Image, u, v)
	return FromSRGB8(r, g, b, a)
}

// AlphaOf exposes a source's alpha channel as a factor.
type AlphaOf struct {
	Source Source
}

func (n *AlphaOf) Factor(u, v float64) float64 {
	return n.Source.Sample(u, v).A
}

// Factor is a scalar node output.
type Factor interface {
	Factor(u, v float64) float64
}

// Value is a constant factor.
type Value float64

func (f Value) Factor(u, v float64) float64 {
	return float64(f)
}

// MixRGB blends A (underneath) and B (on top) by Fac.
type MixRGB struct {
	Fac  Factor
	A, B Source
}

func (n *MixRGB) Sample(u, v float64) Color {
	fac := n.Fac.Factor(u, v)
	c := Mix(n.A.Sample(u, v), n.B.Sample(u, v), fac)
	c.A = 1
	return c
}

// Principled is the physically based surface shader. Only the inputs the
// rasterizer uses are modelled.
type Principled struct {
	BaseColor Source
	Roughness float64
	Specular  float64
}

// Output terminates the graph.
type Output struct {
	Surface *Principled
}

// SampleBilinear filters tex at (u, v) with wrap-around addressing. v = 0 is
// the top row.
func SampleBilinear(tex *image.NRGBA, u, v float64) (r, g, b, a uint8) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, 0, 0, 0
	}

	u = u - float64(int(u))
	if u < 0 {
		u += 1.0
	}
	v = v - float64(int(v))
	if v < 0 {
		v += 1.0
	}

	fx := u*float64(w) - 0.5
	fy := v*float64(h) - 0.5
	if fx < 0 {
		fx += float64(w)
	}
	if fy < 0 {
		fy += float64(h)
	}
	x0 := int(fx) % w
	y0 := int(fy) % h
	x1 := (x0 + 1) % w
	y1 := (y0 + 1) % h
	dx := fx - float64(int(fx))
	dy := fy - float64(int(fy))

	stride := tex.Stride
	pix := tex.Pix

	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	fr := float64(pix[i00])*w00 + float64(pix[i10])*w10 + float64(pix[i01])*w01 + float64(pix[i11])*w11
	fg := float64(pix[i00+1])*w00 + float64(pix[i10+1])*w10 + float64(pix[i01+1])*w01 + float64(pix[i11+1])*w11
	fb := float64(pix[i00+2])*w00 + float64(pix[i10+2])*w10 + float64(pix[i01+2])*w01 + float64(pix[i11+2])*w11
	fa := float64(pix[i00+3])*w00 + float64(pix[i10+3])*w10 + float64(pix[i01+3])*w01 + float64(pix[i11+3])*w11

	return uint8(fr + 0.5), uint8(fg + 0.5), uint8(fb + 0.5), uint8(fa + 0.5)
}
