package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"pz-icon-renderer/internal/mathutil"
)

// SensorWidth is the default camera sensor width in millimetres.
const SensorWidth = 36.0

// Orbit describes the fixed camera ring the renders are taken from.
type Orbit struct {
	Radius float64
	Height float64
	Pitch  float64 // degrees from straight down
}

// Angles are spaced 45° apart starting at 135°.
const (
	orbitOrigin = 135.0
	orbitStep   = 45.0
)

// Angle returns the orbit angle in degrees for a camera index and step.
func Angle(index, step int) float64 {
	return orbitOrigin + float64(index+step)*orbitStep
}

// Camera is a perspective camera looking down its local -Z with +Y up.
type Camera struct {
	Location    mgl64.Vec3
	Rotation    mgl64.Vec3
	Lens        float64
	SensorWidth float64
}

// Camera places a camera on the orbit for the given index and step.
func (o Orbit) Camera(index, step int, lens float64) *Camera {
	a := mgl64.DegToRad(Angle(index, step))
	return &Camera{
		Location:    mgl64.Vec3{o.Radius * math.Cos(a), o.Radius * math.Sin(a), o.Height},
		Rotation:    mgl64.Vec3{mgl64.DegToRad(o.Pitch), 0, a + math.Pi/2},
		Lens:        lens,
		SensorWidth: SensorWidth,
	}
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl64.Mat4 {
	r := mathutil.EulerXYZ(c.Rotation).Transpose()
	t := r.Mul3x1(c.Location).Mul(-1)
	v := r.Mat4()
	v.SetCol(3, t.Vec4(1))
	return v
}

// FocalPixels returns the focal length in pixels for a w×h frame, fitting the
// sensor to the larger dimension.
func (c *Camera) FocalPixels(w, h int) float64 {
	sensor := c.SensorWidth
	if sensor <= 0 {
		sensor = SensorWidth
	}
	return c.Lens / sensor * float64(max(w, h))
}

// Forward returns the viewing direction in world space.
func (c *Camera) Forward() mgl64.Vec3 {
	return mathutil.EulerXYZ(c.Rotation).Mul3x1(mgl64.Vec3{0, 0, -1})
}

// Sun is a directional light. It shines along its local -Z.
type Sun struct {
	Location mgl64.Vec3
	Rotation mgl64.Vec3
	Energy   float64
}

// Direction returns the direction the light travels in world space.
func (s *Sun) Direction() mgl64.Vec3 {
	return mathutil.EulerXYZ(s.Rotation).Mul3x1(mgl64.Vec3{0, 0, -1})
}
