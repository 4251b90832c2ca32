package fbx

import (
	"strings"

	fbxdoc "github.com/binzume/modelconv/fbx"
)

// child returns the first child of n with the given name, or nil.
func child(n *fbxdoc.Node, name string) *fbxdoc.Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// props70 collects the "P" entries of a Properties70 child keyed by name.
func props70(n *fbxdoc.Node) map[string]*fbxdoc.Node {
	out := make(map[string]*fbxdoc.Node)
	block := child(n, "Properties70")
	if block == nil {
		return out
	}
	for _, p := range block.Children {
		if p.Name == "P" && len(p.Attributes) >= 4 {
			out[attrString(p, 0)] = p
		}
	}
	return out
}

func attr(n *fbxdoc.Node, i int) interface{} {
	if n == nil || i < 0 || i >= len(n.Attributes) || n.Attributes[i] == nil {
		return nil
	}
	return n.Attributes[i].Value
}

// attrString returns attribute i as a string. Object names are stored as
// "Name\x00\x01Class"; only the name part is returned.
func attrString(n *fbxdoc.Node, i int) string {
	switch v := attr(n, i).(type) {
	case string:
		if j := strings.Index(v, "\x00\x01"); j >= 0 {
			return v[:j]
		}
		return v
	case []byte:
		return string(v)
	}
	return ""
}

// attrFloat returns attribute i widened to float64.
func attrFloat(n *fbxdoc.Node, i int) float64 {
	switch v := attr(n, i).(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case bool:
		if v {
			return 1
		}
	}
	return 0
}

// attrFloats returns the first attribute as a float64 slice, converting
// from any numeric array type.
func attrFloats(n *fbxdoc.Node) []float64 {
	switch v := attr(n, 0).(type) {
	case []float64:
		return v
	case []float32:
		return widen(v)
	case []int32:
		return widen(v)
	case []int64:
		return widen(v)
	}
	return nil
}

// attrInts returns the first attribute as an int slice.
func attrInts(n *fbxdoc.Node) []int {
	switch v := attr(n, 0).(type) {
	case []int32:
		return toInts(v)
	case []int64:
		return toInts(v)
	case []int:
		return v
	}
	return nil
}

func widen[T float32 | int32 | int64](v []T) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

func toInts[T int32 | int64](v []T) []int {
	out := make([]int, len(v))
	for i, x := range v {
		out[i] = int(x)
	}
	return out
}
