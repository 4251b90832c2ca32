package scene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"pz-icon-renderer/internal/material"
	"pz-icon-renderer/internal/mathutil"
)

// Socket is a wheel mount point in vehicle space.
type Socket struct {
	Name     string
	Position mgl64.Vec3
	Scale    float64 // multiplies the wheel mesh scale; 0 means 1
}

// SkipWheels reports whether a vehicle variant is rendered without wheels.
// Burnt wrecks have none.
func SkipWheels(idType string) bool {
	return strings.Contains(strings.ToLower(idType), "burnt")
}

// AttachWheels places a copy of every wheel object at each socket. Sockets
// are processed in name order. Right-hand wheels are flipped to face
// outwards.
func (s *Scene) AttachWheels(idType string, sockets []Socket, wheel []*Object, mat *material.Material) []*Object {
	sorted := append([]Socket(nil), sockets...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var added []*Object
	for _, sock := range sorted {
		factor := sock.Scale
		if factor == 0 {
			factor = 1
		}
		for _, w := range wheel {
			if w.Mesh == nil {
				continue
			}
			obj := w.Clone()
			scale := w.Scale[0] * factor
			obj.Scale = mgl64.Vec3{scale, scale, scale}
			obj.Location = sock.Position
			if strings.Contains(sock.Name, "Right") {
				obj.Rotation = mathutil.EulerDeg(-180, -90, 0)
			} else {
				obj.Rotation = mathutil.EulerDeg(0, -90, 0)
			}
			obj.Name = fmt.Sprintf("%s_%s_Wheel", idType, sock.Name)
			obj.Smooth = true
			if mat != nil {
				obj.Material = mat
			}
			added = append(added, obj)
		}
	}
	s.Add(added...)
	return added
}
