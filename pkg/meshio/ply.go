package meshio

import (
	"bufio"
	"fmt"
	"os"

	"marchcubes/pkg/mc"
)

// WritePLY writes mesh in ASCII PLY format, one line per vertex (position
// and normal) followed by one line per triangle (vertex count then the
// three indices).
func WritePLY(path string, mesh *mc.Mesh) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("meshio: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintln(w, "ply")
	fmt.Fprintln(w, "format ascii 1.0")
	fmt.Fprintf(w, "element vertex %d\n", len(mesh.Verts))
	fmt.Fprintln(w, "property float x")
	fmt.Fprintln(w, "property float y")
	fmt.Fprintln(w, "property float z")
	fmt.Fprintln(w, "property float nx")
	fmt.Fprintln(w, "property float ny")
	fmt.Fprintln(w, "property float nz")
	fmt.Fprintf(w, "element face %d\n", len(mesh.Tris))
	fmt.Fprintln(w, "property list uchar int vertex_indices")
	fmt.Fprintln(w, "end_header")

	for _, v := range mesh.Verts {
		fmt.Fprintf(w, "%g %g %g %g %g %g\n", v.X, v.Y, v.Z, v.NX, v.NY, v.NZ)
	}
	for _, t := range mesh.Tris {
		fmt.Fprintf(w, "3 %d %d %d\n", t.V1, t.V2, t.V3)
	}

	return w.Flush()
}
