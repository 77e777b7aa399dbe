// Package meshio serializes an extracted mesh to the on-disk formats
// consumed by downstream viewers: binary STL and ASCII PLY.
package meshio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"marchcubes/pkg/mc"
)

// stlHeader is left zero-filled; binary STL readers ignore its content.
type stlHeader [80]byte

type stlTriangle struct {
	Normal  [3]float32
	V1      [3]float32
	V2      [3]float32
	V3      [3]float32
	AttrCnt uint16
}

// WriteSTL writes mesh in the binary STL format: an 80-byte header, a
// little-endian uint32 triangle count, then one 50-byte record per
// triangle (a flat-shaded normal computed from the triangle's vertices,
// the three vertices, and a two-byte attribute count left at zero).
func WriteSTL(path string, mesh *mc.Mesh) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("meshio: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	var header stlHeader
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("meshio: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(mesh.Tris))); err != nil {
		return fmt.Errorf("meshio: %w", err)
	}

	verts := mesh.Verts
	for _, t := range mesh.Tris {
		a, b, c := verts[t.V1], verts[t.V2], verts[t.V3]
		nx, ny, nz := faceNormal(a, b, c)
		rec := stlTriangle{
			Normal: [3]float32{float32(nx), float32(ny), float32(nz)},
			V1:     [3]float32{float32(a.X), float32(a.Y), float32(a.Z)},
			V2:     [3]float32{float32(b.X), float32(b.Y), float32(b.Z)},
			V3:     [3]float32{float32(c.X), float32(c.Y), float32(c.Z)},
		}
		if err := binary.Write(w, binary.LittleEndian, rec); err != nil {
			return fmt.Errorf("meshio: %w", err)
		}
	}

	return w.Flush()
}

func faceNormal(a, b, c mc.Vertex) (nx, ny, nz float64) {
	ux, uy, uz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	vx, vy, vz := c.X-a.X, c.Y-a.Y, c.Z-a.Z
	nx = uy*vz - uz*vy
	ny = uz*vx - ux*vz
	nz = ux*vy - uy*vx
	mag := nx*nx + ny*ny + nz*nz
	if mag < 1e-20 {
		return 0, 0, 0
	}
	inv := 1 / math.Sqrt(mag)
	return nx * inv, ny * inv, nz * inv
}
