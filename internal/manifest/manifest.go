// Package manifest reads the JSON files that map item ids to mesh, texture
// and camera settings. Entry order follows the file.
package manifest

import (
	"os"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// Entry describes how one item is rendered.
type Entry struct {
	Mesh           string               `json:"mesh"`
	Texture        string               `json:"texture"`
	Static         *bool                `json:"static"`
	AnimationsMesh string               `json:"animationsMesh"`
	Location       []float64            `json:"location"`
	Rotation       []float64            `json:"rotation"`
	Camera         *Camera              `json:"camera"`
	Wheel          map[string][]float64 `json:"wheel"`
}

// Camera holds per-entry camera overrides.
type Camera struct {
	Index *int     `json:"index"`
	Lens  *float64 `json:"lens"`
}

// Item is a manifest entry with its id.
type Item struct {
	ID string
	Entry
}

// Manifest is the ordered list of entries of one file.
type Manifest struct {
	Items []Item
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest: read %s", path)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest: parse %s", path)
	}
	return m, nil
}

// Parse decodes a top-level JSON object of id → entry, keeping key order.
func Parse(data []byte) (*Manifest, error) {
	api := jsoniter.ConfigCompatibleWithStandardLibrary
	iter := api.BorrowIterator(data)
	defer api.ReturnIterator(iter)

	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return nil, errors.New("top-level value is not an object")
	}

	m := &Manifest{}
	iter.ReadObjectCB(func(it *jsoniter.Iterator, id string) bool {
		var e Entry
		it.ReadVal(&e)
		if it.Error != nil {
			return false
		}
		m.Items = append(m.Items, Item{ID: id, Entry: e})
		return true
	})
	if iter.Error != nil {
		return nil, iter.Error
	}
	return m, nil
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	return len(m.Items)
}

// Select returns the entries whose id is in filter, in manifest order. An
// empty filter selects everything.
func (m *Manifest) Select(filter []string) []Item {
	if len(filter) == 0 {
		return m.Items
	}
	want := make(map[string]bool, len(filter))
	for _, id := range filter {
		want[id] = true
	}
	var out []Item
	for _, it := range m.Items {
		if want[it.ID] {
			out = append(out, it)
		}
	}
	return out
}

// IDType returns the part of a Module.Type id after the first dot, or the
// whole id when it has none.
func IDType(id string) string {
	if _, t, ok := strings.Cut(id, "."); ok {
		return t
	}
	return id
}

// MeshPath returns the mesh path without its "|submesh" suffix.
func (e *Entry) MeshPath() string {
	p, _, _ := strings.Cut(e.Mesh, "|")
	return p
}

// IsStatic reports whether the entry is a static model. Entries without the
// field are static.
func (e *Entry) IsStatic() bool {
	return e.Static == nil || *e.Static
}

// ModelTexture returns the texture path of a model entry relative to the
// textures directory, without extension. Static models fall back to the
// mesh path; animated models live under Body/ and fall back to their
// animations mesh.
func (e *Entry) ModelTexture() string {
	if e.IsStatic() {
		if e.Texture != "" {
			return e.Texture
		}
		return e.MeshPath()
	}
	if e.Texture != "" {
		return "Body/" + e.Texture
	}
	return "Body/" + e.AnimationsMesh
}

// LocationOffset returns the location offset, padded with zeros.
func (e *Entry) LocationOffset() [3]float64 {
	return vec3(e.Location)
}

// RotationOffset returns the rotation offset in degrees, padded with zeros.
func (e *Entry) RotationOffset() [3]float64 {
	return vec3(e.Rotation)
}

// CameraIndex returns the entry's camera index or def.
func (e *Entry) CameraIndex(def int) int {
	if e.Camera == nil || e.Camera.Index == nil {
		return def
	}
	return *e.Camera.Index
}

// CameraLens returns the entry's focal length or def.
func (e *Entry) CameraLens(def float64) float64 {
	if e.Camera == nil || e.Camera.Lens == nil {
		return def
	}
	return *e.Camera.Lens
}

// Wheel is a wheel socket of a vehicle entry.
type Wheel struct {
	Name     string
	Position [3]float64
	Scale    float64
}

// Wheels returns the wheel sockets sorted by name. Each socket is [x, y, z]
// or [x, y, z, scale]; the scale defaults to 1.
func (e *Entry) Wheels() ([]Wheel, error) {
	out := make([]Wheel, 0, len(e.Wheel))
	for name, v := range e.Wheel {
		if len(v) < 3 {
			return nil, errors.Errorf("manifest: wheel %q has %d components, want 3 or 4", name, len(v))
		}
		w := Wheel{Name: name, Position: [3]float64{v[0], v[1], v[2]}, Scale: 1}
		if len(v) > 3 {
			w.Scale = v[3]
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func vec3(v []float64) [3]float64 {
	var out [3]float64
	copy(out[:], v)
	return out
}
