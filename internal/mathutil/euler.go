package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// EulerXYZ returns the rotation matrix for Euler angles (radians) applied in
// X, Y, Z order, i.e. Rz · Ry · Rx.
func EulerXYZ(r mgl64.Vec3) mgl64.Mat3 {
	return mgl64.Rotate3DZ(r[2]).Mul3(mgl64.Rotate3DY(r[1])).Mul3(mgl64.Rotate3DX(r[0]))
}

// EulerDeg converts a degree triple to a radian vector.
func EulerDeg(x, y, z float64) mgl64.Vec3 {
	return mgl64.Vec3{mgl64.DegToRad(x), mgl64.DegToRad(y), mgl64.DegToRad(z)}
}

// Compose builds the affine matrix T · R · S.
func Compose(loc, rot, scale mgl64.Vec3) mgl64.Mat4 {
	m := EulerXYZ(rot).Mul3(mgl64.Diag3(scale)).Mat4()
	m.SetCol(3, loc.Vec4(1))
	return m
}

// Decompose splits an affine matrix without shear into location, Euler XYZ
// rotation (radians) and scale. A negative determinant is folded into the X
// scale.
func Decompose(m mgl64.Mat4) (loc, rot, scale mgl64.Vec3) {
	loc = m.Col(3).Vec3()

	c0, c1, c2 := m.Col(0).Vec3(), m.Col(1).Vec3(), m.Col(2).Vec3()
	scale = mgl64.Vec3{c0.Len(), c1.Len(), c2.Len()}
	if m.Mat3().Det() < 0 {
		scale[0] = -scale[0]
	}
	for i, s := range scale {
		if math.Abs(s) < 1e-12 {
			scale[i] = 1e-12
		}
	}
	c0, c1, c2 = c0.Mul(1/scale[0]), c1.Mul(1/scale[1]), c2.Mul(1/scale[2])

	// R = Rz·Ry·Rx: R20 = -sin(y), R21 = cos(y)sin(x), R22 = cos(y)cos(x),
	// R10 = cos(y)sin(z), R00 = cos(y)cos(z).
	r20 := clamp(c0[2], -1, 1)
	rot[1] = -math.Asin(r20)
	if math.Abs(r20) < 1-1e-9 {
		rot[0] = math.Atan2(c1[2], c2[2])
		rot[2] = math.Atan2(c0[1], c0[0])
	} else {
		// gimbal lock: fold everything into X
		rot[0] = math.Atan2(-c2[1], c1[1])
		rot[2] = 0
	}
	return loc, rot, scale
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
