// Command inspect prints the objects of a mesh file as the renderer imports
// them.
package main

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"pz-icon-renderer/internal/mathutil"
	"pz-icon-renderer/internal/scene"
)

func main() {
	cmd := &cobra.Command{
		Use:   "inspect <mesh.fbx|mesh.x> ...",
		Short: "Print objects, counts and bounds of mesh files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if err := inspect(path); err != nil {
					return err
				}
			}
			return nil
		},
	}
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func inspect(path string) error {
	objs, err := scene.ImportFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d objects\n", path, len(objs))
	total := mathutil.EmptyBox()
	for i, o := range objs {
		m := o.Mesh
		fmt.Printf("  Object[%d] %q: verts=%d, polys=%d, tris=%d, uvs=%v\n",
			i, o.Name, len(m.Positions), len(m.Polygons), len(m.Triangles()), m.HasUVs())
		fmt.Printf("    Location: %.3f %.3f %.3f\n", o.Location[0], o.Location[1], o.Location[2])
		fmt.Printf("    Rotation: %.1f %.1f %.1f (deg)\n", mgl64.RadToDeg(o.Rotation[0]), mgl64.RadToDeg(o.Rotation[1]), mgl64.RadToDeg(o.Rotation[2]))
		fmt.Printf("    Scale: %.3f %.3f %.3f\n", o.Scale[0], o.Scale[1], o.Scale[2])

		b := o.WorldBounds()
		size := b.Size()
		fmt.Printf("    BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n", b.Min[0], b.Max[0], b.Min[1], b.Max[1], b.Min[2], b.Max[2])
		fmt.Printf("    Size: %.3f x %.3f x %.3f\n", size[0], size[1], size[2])
		total = total.Union(b)
	}
	if !total.IsEmpty() {
		size := total.Size()
		fmt.Printf("  Total size: %.3f x %.3f x %.3f\n", size[0], size[1], size[2])
	}
	return nil
}
