// Package mc implements the topologically consistent Marching Cubes variant
// of Lewiner et al.: extraction of a triangle mesh with per-vertex normals
// from a uniformly sampled 3-D scalar field.
package mc

import "fmt"

// Grid is a dense 3-D array of floating-point samples, addressed by (i,j,k)
// with i fastest. Samples are read-only during extraction.
type Grid struct {
	nx, ny, nz int
	samples    []float64
}

// NewGrid allocates a grid with the given dimensions. All samples start at
// zero.
func NewGrid(nx, ny, nz int) *Grid {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		panic("mc: grid dimensions must be positive")
	}
	return &Grid{nx: nx, ny: ny, nz: nz, samples: make([]float64, nx*ny*nz)}
}

// Resize reallocates the grid to new dimensions, discarding existing samples.
func (g *Grid) Resize(nx, ny, nz int) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		panic("mc: grid dimensions must be positive")
	}
	g.nx, g.ny, g.nz = nx, ny, nz
	g.samples = make([]float64, nx*ny*nz)
}

// Dims returns the grid's dimensions, satisfying gradient.Field.
func (g *Grid) Dims() (nx, ny, nz int) { return g.nx, g.ny, g.nz }

func (g *Grid) index(i, j, k int) int {
	return (k*g.ny+j)*g.nx + i
}

// SetSample stores the sample at (i,j,k). Reading or writing outside
// [0,Nx)x[0,Ny)x[0,Nz) is undefined and is the caller's responsibility to
// avoid; the extractor itself never reads out of bounds.
func (g *Grid) SetSample(i, j, k int, value float64) {
	g.samples[g.index(i, j, k)] = value
}

// GetSample reads the sample at (i,j,k).
func (g *Grid) GetSample(i, j, k int) float64 {
	return g.samples[g.index(i, j, k)]
}

// Sample satisfies gradient.Field: identical to GetSample, named for that
// interface.
func (g *Grid) Sample(i, j, k int) float64 { return g.GetSample(i, j, k) }

func (g *Grid) String() string {
	return fmt.Sprintf("Grid{%dx%dx%d}", g.nx, g.ny, g.nz)
}
