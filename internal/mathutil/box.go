package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box3 is an axis-aligned bounding box. The zero value is not empty; use
// EmptyBox.
type Box3 struct {
	Min, Max mgl64.Vec3
}

func EmptyBox() Box3 {
	inf := math.Inf(1)
	return Box3{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

func (b Box3) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Extend grows the box to contain p.
func (b Box3) Extend(p mgl64.Vec3) Box3 {
	for k := 0; k < 3; k++ {
		b.Min[k] = math.Min(b.Min[k], p[k])
		b.Max[k] = math.Max(b.Max[k], p[k])
	}
	return b
}

func (b Box3) Union(o Box3) Box3 {
	if o.IsEmpty() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

func (b Box3) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b Box3) Size() mgl64.Vec3 {
	if b.IsEmpty() {
		return mgl64.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Transform returns the bounds of the box's eight corners under m.
func (b Box3) Transform(m mgl64.Mat4) Box3 {
	out := EmptyBox()
	if b.IsEmpty() {
		return out
	}
	for i := 0; i < 8; i++ {
		c := b.Min
		if i&1 != 0 {
			c[0] = b.Max[0]
		}
		if i&2 != 0 {
			c[1] = b.Max[1]
		}
		if i&4 != 0 {
			c[2] = b.Max[2]
		}
		out = out.Extend(mgl64.TransformCoordinate(c, m))
	}
	return out
}
